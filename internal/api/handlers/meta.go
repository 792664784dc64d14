package handlers

import (
	"net/http"

	"pricelist-profit/internal/api/models"
	"pricelist-profit/internal/model"

	"github.com/gin-gonic/gin"
)

// MetaHandler serves countries and announcements
type MetaHandler struct {
	deps Deps
}

func NewMetaHandler(d Deps) *MetaHandler {
	return &MetaHandler{deps: d}
}

// ListCountries handles GET /api/v1/countries
func (h *MetaHandler) ListCountries(c *gin.Context) {
	rates := h.deps.Rates.Load()
	names := model.Countries()
	out := make([]models.CountryInfo, len(names))
	for i, name := range names {
		cur := model.CurrencyFor(name)
		out[i] = models.CountryInfo{Name: name, Currency: cur, Rate: rates[cur]}
	}
	c.JSON(http.StatusOK, gin.H{"countries": out, "reference_currency": model.ReferenceCurrency})
}

// ListAnnouncements handles GET /api/v1/announcements
func (h *MetaHandler) ListAnnouncements(c *gin.Context) {
	items, err := h.deps.Announcer.Sync(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "ANNOUNCEMENTS_UNAVAILABLE", err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, models.AnnouncementsResponse{Announcements: items})
}
