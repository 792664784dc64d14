package model

import "math"

// PriceRow is the resolved view of one input row.
// It is rebuilt from the uploaded table on every calculation and never cached.
type PriceRow struct {
	// Row is the 1-based data row number in the source table.
	Row int

	ProductName string

	// NormalCost and PromoCost are nil when the cell is missing or not numeric.
	NormalCost *float64
	PromoCost  *float64

	NormalPrices []PricePoint
	PromoPrices  []PricePoint

	// HasPromoPair reports whether both promo cells were configured and non-missing.
	HasPromoPair bool
}

// PricePoint is one parsed price together with the column it came from.
type PricePoint struct {
	Column string
	Price  float64
}

// ProfitRecord is one priced option of a row. All money values are
// unrounded; rounding happens only at presentation time.
type ProfitRecord struct {
	Row         int
	ProductName string
	PriceColumn string

	Cost        float64
	Price       float64
	PlatformFee float64

	// ProfitLocal is in the country currency, ProfitConverted in the reference currency.
	ProfitLocal     float64
	ProfitConverted float64

	// MarginPct is NaN when Price <= 0.
	MarginPct float64

	CommissionConverted float64

	Source Source
}

// HasMargin reports whether MarginPct is defined.
func (r ProfitRecord) HasMargin() bool {
	return !math.IsNaN(r.MarginPct)
}
