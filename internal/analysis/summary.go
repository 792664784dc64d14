// Package analysis aggregates profit records for the summary panel and the
// chart sheet.
package analysis

import (
	"math"
	"sort"

	"pricelist-profit/internal/model"
	"pricelist-profit/internal/profit"
)

// Summary describes the distribution of converted profit over a record set.
type Summary struct {
	Records  int `json:"records"`
	Products int `json:"products"`

	ByClass  map[profit.Class]int  `json:"by_class"`
	BySource map[model.Source]int `json:"by_source"`

	TotalProfit float64 `json:"total_profit"`
	MeanProfit  float64 `json:"mean_profit"`
	MinProfit   float64 `json:"min_profit"`
	MaxProfit   float64 `json:"max_profit"`
	P05Profit   float64 `json:"p05_profit"`
	P50Profit   float64 `json:"p50_profit"`
	P95Profit   float64 `json:"p95_profit"`
}

// Summarize computes a Summary in the reference currency. Classes use
// threshold as the high-profit bound.
func Summarize(records []model.ProfitRecord, threshold float64) Summary {
	s := Summary{
		ByClass:  map[profit.Class]int{},
		BySource: map[model.Source]int{},
	}
	if len(records) == 0 {
		return s
	}
	s.Records = len(records)

	products := map[string]struct{}{}
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(records))
	for _, r := range records {
		v := r.ProfitConverted
		vals = append(vals, v)
		s.TotalProfit += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
		s.ByClass[profit.Classify(r, threshold)]++
		s.BySource[r.Source]++
		products[r.ProductName] = struct{}{}
	}
	sort.Float64s(vals)
	s.Products = len(products)
	s.MinProfit = minv
	s.MaxProfit = maxv
	s.MeanProfit = s.TotalProfit / float64(len(vals))
	s.P05Profit = percentileSorted(vals, 0.05)
	s.P50Profit = percentileSorted(vals, 0.50)
	s.P95Profit = percentileSorted(vals, 0.95)
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
