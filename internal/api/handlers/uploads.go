package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"pricelist-profit/internal/api/models"
	"pricelist-profit/internal/model"
	"pricelist-profit/internal/store"
	"pricelist-profit/internal/table"

	"github.com/gin-gonic/gin"
)

// UploadHandler handles price-list uploads
type UploadHandler struct {
	deps Deps
}

func NewUploadHandler(d Deps) *UploadHandler {
	return &UploadHandler{deps: d}
}

// Upload handles POST /api/v1/uploads (multipart: file, country)
func (h *UploadHandler) Upload(c *gin.Context) {
	country := c.PostForm("country")
	if model.CurrencyFor(country) == "" {
		respondError(c, http.StatusBadRequest, "UNKNOWN_COUNTRY", fmt.Sprintf("unknown country %q", country), nil)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field \"file\" is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", err.Error(), nil)
		return
	}
	defer f.Close()

	u, err := h.deps.Uploads.Save(c.Request.Context(), country, fh.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, table.ErrUnsupportedFormat):
			respondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error(), nil)
		case errors.Is(err, store.ErrBadFilename):
			respondError(c, http.StatusBadRequest, "INVALID_FILENAME", err.Error(), nil)
		default:
			_ = c.Error(err)
			respondError(c, http.StatusInternalServerError, "UPLOAD_ERROR", err.Error(), nil)
		}
		return
	}
	c.JSON(http.StatusCreated, toUploadInfo(u))
}

// ListUploads handles GET /api/v1/uploads?country=
func (h *UploadHandler) ListUploads(c *gin.Context) {
	ups, err := h.deps.Uploads.List(c.Request.Context(), c.Query("country"))
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "LEDGER_ERROR", err.Error(), nil)
		return
	}
	out := make([]models.UploadInfo, len(ups))
	for i, u := range ups {
		out[i] = toUploadInfo(u)
	}
	c.JSON(http.StatusOK, gin.H{"uploads": out})
}

func toUploadInfo(u model.Upload) models.UploadInfo {
	return models.UploadInfo{Country: u.Country, Filename: u.Filename, UploadDate: u.UploadDate}
}
