package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"pricelist-profit/internal/analysis"
	"pricelist-profit/internal/api/models"
	"pricelist-profit/internal/export"
	"pricelist-profit/internal/model"
	"pricelist-profit/internal/profit"
	"pricelist-profit/internal/resolve"
	"pricelist-profit/internal/store"
	"pricelist-profit/internal/table"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CalculateHandler handles POST /calculate and POST /export
type CalculateHandler struct {
	deps Deps
}

func NewCalculateHandler(d Deps) *CalculateHandler {
	return &CalculateHandler{deps: d}
}

// calculation is one resolved and executed request.
type calculation struct {
	req       models.CalculateRequest
	currency  string
	headerRow int
	table     *table.Table
	mapping   resolve.Mapping
	params    profit.Params
	threshold float64
	result    *profit.Result
	filtered  []model.ProfitRecord
	hasFilter bool
}

// Calculate handles POST /api/v1/calculate
func (h *CalculateHandler) Calculate(c *gin.Context) {
	calc, ok := h.run(c)
	if !ok {
		return
	}
	resp := models.CalculateResponse{
		Country:           calc.req.Country,
		Currency:          calc.currency,
		ReferenceCurrency: model.ReferenceCurrency,
		ExchangeRate:      calc.params.Rate(),
		FeePct:            calc.params.FeePct,
		CommissionPct:     calc.params.CommissionPct,
		Threshold:         calc.threshold,
		MissingCost:       string(calc.params.MissingCost),
		HeaderRow:         calc.headerRow,
		Mapping:           mappingInfo(calc.table, calc.mapping),
		Rows:              calc.result.Rows,
		PricedRows:        calc.result.PricedRows,
		SkippedRows:       calc.result.SkippedRows,
		Records:           toRecords(calc.result.Records, calc.threshold),
		Summary:           analysis.Summarize(calc.result.Records, calc.threshold),
		Chart:             analysis.ChartData(calc.result.Records, export.ChartTopN, calc.threshold),
	}
	if calc.hasFilter {
		resp.Filtered = toRecords(calc.filtered, calc.threshold)
	}
	c.JSON(http.StatusOK, resp)
}

// Export handles POST /api/v1/export
func (h *CalculateHandler) Export(c *gin.Context) {
	calc, ok := h.run(c)
	if !ok {
		return
	}
	settings := export.Settings{
		Country:       calc.req.Country,
		Currency:      calc.currency,
		SourceFile:    calc.req.Filename,
		HeaderRow:     calc.headerRow,
		FeePct:        calc.params.FeePct,
		CommissionPct: calc.params.CommissionPct,
		ExchangeRate:  calc.params.Rate(),
		Threshold:     calc.threshold,
		MissingCost:   calc.params.MissingCost,
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, calc.result.Records, calc.filtered, settings); err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error(), nil)
		return
	}
	name := strings.TrimSuffix(calc.req.Filename, filepath.Ext(calc.req.Filename)) + "_profit.xlsx"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// run binds the request, opens the upload, resolves the mapping and the
// parameters, and prices the table. It writes the error response itself.
func (h *CalculateHandler) run(c *gin.Context) (*calculation, bool) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return nil, false
	}
	cfg := h.deps.Config
	calc := &calculation{req: req}

	calc.currency = model.CurrencyFor(req.Country)
	if calc.currency == "" {
		respondError(c, http.StatusBadRequest, "UNKNOWN_COUNTRY", fmt.Sprintf("unknown country %q", req.Country), nil)
		return nil, false
	}
	row, ok := headerRow(c, cfg, req.HeaderRow)
	if !ok {
		return nil, false
	}
	calc.headerRow = row

	t, _, err := h.deps.Uploads.Open(c.Request.Context(), req.Country, req.Filename, row)
	if err != nil {
		respondFileError(c, err)
		return nil, false
	}
	calc.table = t

	m, err := resolve.FromRefs(t, resolve.Refs{
		Name:       req.Mapping.Name,
		Cost:       req.Mapping.Cost,
		PromoCost:  req.Mapping.PromoCost,
		PromoPrice: req.Mapping.PromoPrice,
		Prices:     req.Mapping.Prices,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_MAPPING", err.Error(), nil)
		return nil, false
	}
	if err := m.Validate(t); err != nil {
		if errors.Is(err, resolve.ErrMappingIncomplete) {
			respondError(c, http.StatusUnprocessableEntity, "MAPPING_INCOMPLETE", err.Error(), map[string]interface{}{
				"missing": m.MissingFields(),
			})
			return nil, false
		}
		respondError(c, http.StatusBadRequest, "INVALID_MAPPING", err.Error(), nil)
		return nil, false
	}
	calc.mapping = m

	params, ok := h.params(c, req, calc.currency)
	if !ok {
		return nil, false
	}
	calc.params = params
	calc.threshold = cfg.Calc.ProfitThreshold
	if req.Threshold != nil {
		calc.threshold = *req.Threshold
	}

	var filter profit.Filter
	if req.Filter != nil {
		f := req.Filter
		filter, err = profit.ParseFilter(f.Query, f.Source, f.Classes, f.MinProfit, f.MaxProfit, calc.threshold)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_FILTER", err.Error(), nil)
			return nil, false
		}
		calc.hasFilter = true
	}

	res, err := profit.New(params).Run(t, m)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "CALCULATION_ERROR", err.Error(), nil)
		return nil, false
	}
	calc.result = res
	if calc.hasFilter {
		calc.filtered = filter.Apply(res.Records)
	}
	return calc, true
}

// params fills unset percentages from the fee table or the configured
// defaults and the rate from the rate store.
func (h *CalculateHandler) params(c *gin.Context, req models.CalculateRequest, currency string) (profit.Params, bool) {
	cfg := h.deps.Config
	p := profit.Params{
		FeePct:        cfg.Calc.DefaultFeePct,
		CommissionPct: cfg.Calc.DefaultCommissionPct,
	}
	switch {
	case req.FeePct != nil:
		p.FeePct = *req.FeePct
	case req.Platform != "":
		e, err := h.deps.Fees.Lookup(req.Country, req.Platform, req.Scenario)
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "FEE_NOT_FOUND", err.Error(), nil)
			return profit.Params{}, false
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, "FEE_LOAD_ERROR", err.Error(), nil)
			return profit.Params{}, false
		}
		p.FeePct = e.FeePct
	}
	if req.CommissionPct != nil {
		p.CommissionPct = *req.CommissionPct
	}
	if p.FeePct < 0 || p.CommissionPct < 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "fee_pct and commission_pct must be >= 0", nil)
		return profit.Params{}, false
	}

	if req.ExchangeRate != nil {
		p.ExchangeRate = *req.ExchangeRate
	} else {
		p.ExchangeRate = h.deps.Rates.Load()[currency]
	}

	policy := cfg.MissingCostPolicy()
	if req.MissingCost != "" {
		var err error
		if policy, err = profit.ParseMissingCostPolicy(req.MissingCost); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
			return profit.Params{}, false
		}
	}
	p.MissingCost = policy
	return p, true
}
