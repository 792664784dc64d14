package handlers

import (
	"errors"
	"net/http"

	"pricelist-profit/internal/api/models"
	"pricelist-profit/internal/store"
	"pricelist-profit/internal/table"

	"github.com/gin-gonic/gin"
)

// FeeHandler serves the platform fee table
type FeeHandler struct {
	deps Deps
}

func NewFeeHandler(d Deps) *FeeHandler {
	return &FeeHandler{deps: d}
}

// ListFees handles GET /api/v1/fees
func (h *FeeHandler) ListFees(c *gin.Context) {
	fees, err := h.deps.Fees.Load()
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "FEE_LOAD_ERROR", err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, models.FeesResponse{Fees: fees})
}

// ReplaceFees handles PUT /api/v1/fees (multipart: file)
func (h *FeeHandler) ReplaceFees(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field \"file\" is required", nil)
		return
	}
	format, err := table.FormatFromName(fh.Filename)
	if err != nil {
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error(), nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", err.Error(), nil)
		return
	}
	defer f.Close()

	fees, err := h.deps.Fees.Replace(f, format)
	if err != nil {
		var mc *store.MissingColumnsError
		switch {
		case errors.As(err, &mc):
			respondError(c, http.StatusBadRequest, "MISSING_COLUMNS", err.Error(), map[string]interface{}{
				"missing": mc.Columns,
			})
		case errors.Is(err, table.ErrNoRows):
			respondError(c, http.StatusBadRequest, "EMPTY_FILE", err.Error(), nil)
		default:
			_ = c.Error(err)
			respondError(c, http.StatusUnprocessableEntity, "FILE_READ_ERROR", err.Error(), nil)
		}
		return
	}
	c.JSON(http.StatusOK, models.FeesResponse{Fees: fees})
}

// LookupFee handles GET /api/v1/fees/lookup
func (h *FeeHandler) LookupFee(c *gin.Context) {
	var q models.FeeLookupQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	e, err := h.deps.Fees.Lookup(q.Country, q.Platform, q.Scenario)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "FEE_NOT_FOUND", err.Error(), nil)
		return
	}
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "FEE_LOAD_ERROR", err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, e)
}
