package profit

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"pricelist-profit/internal/model"
	"pricelist-profit/internal/resolve"
	"pricelist-profit/internal/table"
)

// MissingCostPolicy decides what happens to a normal-priced row whose cost
// cell is missing or not numeric.
type MissingCostPolicy string

const (
	// MissingCostZero prices the row as if cost were 0.
	MissingCostZero MissingCostPolicy = "zero"
	// MissingCostSkip drops the row.
	MissingCostSkip MissingCostPolicy = "skip"
)

// ParseMissingCostPolicy accepts "zero" or "skip"; empty means zero.
func ParseMissingCostPolicy(s string) (MissingCostPolicy, error) {
	switch MissingCostPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MissingCostZero:
		return MissingCostZero, nil
	case MissingCostSkip:
		return MissingCostSkip, nil
	default:
		return "", fmt.Errorf("unknown missing-cost policy %q (want zero or skip)", s)
	}
}

// Params are the per-calculation inputs shared by every row.
type Params struct {
	FeePct        float64
	CommissionPct float64
	// ExchangeRate is local currency units per reference unit.
	ExchangeRate float64
	MissingCost  MissingCostPolicy
}

// Rate returns the exchange rate used for conversion; non-positive or
// non-finite rates are treated as 1.
func (p Params) Rate() float64 {
	r := p.ExchangeRate
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 1.0
	}
	return r
}

// Result is the output of one calculation.
type Result struct {
	// Records are sorted by ProfitConverted, highest first.
	Records []model.ProfitRecord

	Rows        int
	PricedRows  int
	SkippedRows int
}

type Engine struct {
	Params Params
}

func New(p Params) *Engine { return &Engine{Params: p} }

// Run prices every row of t under mapping m. It never fails on cell
// content: bad prices are dropped and bad costs follow MissingCost.
func (e *Engine) Run(t *table.Table, m resolve.Mapping) (*Result, error) {
	if t == nil {
		return nil, fmt.Errorf("table is nil")
	}
	if err := m.Validate(t); err != nil {
		return nil, err
	}
	rows := BuildRows(t, m)
	res := &Result{Rows: len(rows)}
	for _, r := range rows {
		recs, ok := e.PriceRow(r)
		if !ok {
			res.SkippedRows++
			continue
		}
		if len(recs) > 0 {
			res.PricedRows++
		}
		res.Records = append(res.Records, recs...)
	}
	SortByProfit(res.Records)
	return res, nil
}

// PriceRow emits one record per price option of r. ok is false when the
// row was dropped by the missing-cost policy.
func (e *Engine) PriceRow(r model.PriceRow) (recs []model.ProfitRecord, ok bool) {
	var (
		cost   float64
		prices []model.PricePoint
		source model.Source
	)
	if r.HasPromoPair {
		if r.PromoCost != nil {
			cost = *r.PromoCost
		}
		prices, source = r.PromoPrices, model.SourcePromotion
	} else {
		if r.NormalCost != nil {
			cost = *r.NormalCost
		} else if e.Params.MissingCost == MissingCostSkip {
			return nil, false
		}
		prices, source = r.NormalPrices, model.SourceNormal
	}

	p := e.Params
	rate := p.Rate()
	recs = make([]model.ProfitRecord, 0, len(prices))
	for _, pp := range prices {
		price := pp.Price
		fee := price * p.FeePct / 100
		local := price - cost - fee
		margin := math.NaN()
		if price > 0 {
			margin = local / price * 100
		}
		commission := local * p.CommissionPct / 100

		recs = append(recs, model.ProfitRecord{
			Row:                 r.Row,
			ProductName:         r.ProductName,
			PriceColumn:         pp.Column,
			Cost:                cost,
			Price:               price,
			PlatformFee:         fee,
			ProfitLocal:         local,
			ProfitConverted:     local / rate,
			MarginPct:           margin,
			CommissionConverted: commission / rate,
			Source:              source,
		})
	}
	return recs, true
}

// SortByProfit orders records by converted profit, highest first. Equal
// profits keep their emission order.
func SortByProfit(records []model.ProfitRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ProfitConverted > records[j].ProfitConverted
	})
}

// Calculate is Run for callers that only want the records.
func Calculate(t *table.Table, m resolve.Mapping, p Params) ([]model.ProfitRecord, error) {
	res, err := New(p).Run(t, m)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}
