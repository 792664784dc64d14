package profit

import (
	"strings"

	"pricelist-profit/internal/model"
	"pricelist-profit/internal/resolve"
	"pricelist-profit/internal/table"
)

// BuildRows resolves every data row of t through m. Unparseable cost cells
// become nil; the calculator decides what a nil cost means.
func BuildRows(t *table.Table, m resolve.Mapping) []model.PriceRow {
	rows := make([]model.PriceRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		r := model.PriceRow{Row: i + 1}

		if name := t.Cell(i, m.Name); !table.IsMissing(name) {
			r.ProductName = strings.TrimSpace(name)
		}
		r.NormalCost = numberPtr(t.Cell(i, m.Cost))

		for _, id := range m.Prices {
			r.NormalPrices = append(r.NormalPrices, points(t.Label(id), t.Cell(i, id))...)
		}

		if m.HasPromo() {
			costCell, priceCell := t.Cell(i, m.PromoCost), t.Cell(i, m.PromoPrice)
			r.PromoCost = numberPtr(costCell)
			r.PromoPrices = points(t.Label(m.PromoPrice), priceCell)
			r.HasPromoPair = !table.IsMissing(costCell) && !table.IsMissing(priceCell)
		}
		rows = append(rows, r)
	}
	return rows
}

func points(label, cell string) []model.PricePoint {
	prices := ParsePriceCell(cell)
	if len(prices) == 0 {
		return nil
	}
	out := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = model.PricePoint{Column: label, Price: p}
	}
	return out
}

func numberPtr(cell string) *float64 {
	v, ok := table.ParseNumber(cell)
	if !ok {
		return nil
	}
	return &v
}
