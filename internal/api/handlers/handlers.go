// Package handlers implements the HTTP API of the price-list calculator.
package handlers

import (
	"errors"
	"net/http"

	"pricelist-profit/internal/announce"
	"pricelist-profit/internal/api/models"
	"pricelist-profit/internal/config"
	"pricelist-profit/internal/store"
	"pricelist-profit/internal/table"

	"github.com/gin-gonic/gin"
)

// Deps are the stores and settings shared by all handlers.
type Deps struct {
	Config    *config.Config
	Uploads   *store.UploadStore
	Fees      *store.FeeRepository
	Rates     *store.RateRepository
	Announcer *announce.Syncer
}

// RegisterRoutes mounts every endpoint on api (normally /api/v1).
func RegisterRoutes(api *gin.RouterGroup, d Deps) {
	uploads := NewUploadHandler(d)
	columns := NewColumnsHandler(d)
	calc := NewCalculateHandler(d)
	fees := NewFeeHandler(d)
	rates := NewRateHandler(d)
	meta := NewMetaHandler(d)

	api.GET("/health", Health)
	api.GET("/countries", meta.ListCountries)
	api.GET("/announcements", meta.ListAnnouncements)

	api.POST("/uploads", uploads.Upload)
	api.GET("/uploads", uploads.ListUploads)
	api.GET("/columns", columns.GetColumns)

	api.POST("/calculate", calc.Calculate)
	api.POST("/export", calc.Export)

	api.GET("/fees", fees.ListFees)
	api.PUT("/fees", fees.ReplaceFees)
	api.GET("/fees/lookup", fees.LookupFee)

	api.GET("/rates", rates.ListRates)
	api.PUT("/rates", rates.UpdateRates)
}

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondFileError maps errors from opening a stored upload.
func respondFileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "UPLOAD_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, table.ErrUnsupportedFormat):
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error(), nil)
	default:
		_ = c.Error(err)
		respondError(c, http.StatusUnprocessableEntity, "FILE_READ_ERROR", err.Error(), nil)
	}
}

// headerRow applies the configured default and bounds a requested row.
func headerRow(c *gin.Context, cfg *config.Config, requested int) (int, bool) {
	if requested == 0 {
		return cfg.Calc.DefaultHeaderRow, true
	}
	if requested < 1 || requested > config.MaxHeaderRow {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "header_row must be between 1 and 20", nil)
		return 0, false
	}
	return requested, true
}
