package handlers

import (
	"net/http"

	"pricelist-profit/internal/api/models"
	"pricelist-profit/internal/model"

	"github.com/gin-gonic/gin"
)

// RateHandler serves the exchange rates
type RateHandler struct {
	deps Deps
}

func NewRateHandler(d Deps) *RateHandler {
	return &RateHandler{deps: d}
}

// ListRates handles GET /api/v1/rates
func (h *RateHandler) ListRates(c *gin.Context) {
	c.JSON(http.StatusOK, models.RatesResponse{
		Reference: model.ReferenceCurrency,
		Rates:     h.deps.Rates.Load(),
	})
}

// UpdateRates handles PUT /api/v1/rates
func (h *RateHandler) UpdateRates(c *gin.Context) {
	var req models.RatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	rates, err := h.deps.Rates.Set(req.Rates)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_RATES", err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, models.RatesResponse{Reference: model.ReferenceCurrency, Rates: rates})
}
