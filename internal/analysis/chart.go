package analysis

import (
	"sort"

	"pricelist-profit/internal/model"
	"pricelist-profit/internal/profit"
)

// ChartPoint is one bar of the profit chart: the best-paying option of a
// product.
type ChartPoint struct {
	ProductName     string       `json:"product_name"`
	ProfitConverted float64      `json:"profit_converted"`
	Price           float64      `json:"price"`
	Source          model.Source `json:"source"`
	Class           profit.Class `json:"class"`
	Options         int          `json:"options"`
}

// ChartData keeps the most profitable record per product name and returns
// the n best, highest first (n <= 0 means all). Ties keep first-seen order.
func ChartData(records []model.ProfitRecord, n int, threshold float64) []ChartPoint {
	idx := map[string]int{}
	out := make([]ChartPoint, 0, len(records))
	for _, r := range records {
		i, seen := idx[r.ProductName]
		if !seen {
			idx[r.ProductName] = len(out)
			out = append(out, point(r, threshold))
			continue
		}
		out[i].Options++
		if r.ProfitConverted > out[i].ProfitConverted {
			opts := out[i].Options
			out[i] = point(r, threshold)
			out[i].Options = opts
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProfitConverted > out[j].ProfitConverted
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func point(r model.ProfitRecord, threshold float64) ChartPoint {
	return ChartPoint{
		ProductName:     r.ProductName,
		ProfitConverted: r.ProfitConverted,
		Price:           r.Price,
		Source:          r.Source,
		Class:           profit.Classify(r, threshold),
		Options:         1,
	}
}
