package models

// MappingRequest selects columns by index ("#3") or label. Empty fields
// fall back to the suggested mapping; "-" clears an optional field.
type MappingRequest struct {
	Name       string   `json:"name,omitempty"`
	Cost       string   `json:"cost,omitempty"`
	PromoCost  string   `json:"promo_cost,omitempty"`
	PromoPrice string   `json:"promo_price,omitempty"`
	Prices     []string `json:"prices,omitempty"`
}

// FilterRequest narrows the records returned in Filtered and exported on
// the Filtered sheet.
type FilterRequest struct {
	Query     string   `json:"query,omitempty"`
	Source    string   `json:"source,omitempty"` // "Normal" | "Promotion"
	Classes   []string `json:"classes,omitempty"`
	MinProfit *float64 `json:"min_profit,omitempty"`
	MaxProfit *float64 `json:"max_profit,omitempty"`
}

// CalculateRequest is the body of POST /calculate and POST /export.
type CalculateRequest struct {
	Country   string         `json:"country" binding:"required"`
	Filename  string         `json:"filename" binding:"required"`
	HeaderRow int            `json:"header_row,omitempty"` // 1-based; default from config
	Mapping   MappingRequest `json:"mapping"`

	// Unset percentages come from the fee table (Platform/Scenario) or the
	// configured defaults.
	Platform      string   `json:"platform,omitempty"`
	Scenario      string   `json:"scenario,omitempty"`
	FeePct        *float64 `json:"fee_pct,omitempty"`
	CommissionPct *float64 `json:"commission_pct,omitempty"`

	// ExchangeRate overrides the stored rate for the country's currency.
	ExchangeRate *float64 `json:"exchange_rate,omitempty"`
	Threshold    *float64 `json:"threshold,omitempty"`
	MissingCost  string   `json:"missing_cost,omitempty"` // "zero" | "skip"

	Filter *FilterRequest `json:"filter,omitempty"`
}

// ColumnsQuery is the query of GET /columns.
type ColumnsQuery struct {
	Country   string `form:"country" binding:"required"`
	Filename  string `form:"filename" binding:"required"`
	HeaderRow int    `form:"header_row"`
}

// FeeLookupQuery is the query of GET /fees/lookup.
type FeeLookupQuery struct {
	Country  string `form:"country" binding:"required"`
	Platform string `form:"platform" binding:"required"`
	Scenario string `form:"scenario"`
}

// RatesRequest is the body of PUT /rates. Listed currencies are updated,
// others keep their value.
type RatesRequest struct {
	Rates map[string]float64 `json:"rates" binding:"required"`
}
