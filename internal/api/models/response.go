package models

import (
	"time"

	"pricelist-profit/internal/analysis"
	"pricelist-profit/internal/announce"
	"pricelist-profit/internal/model"
)

// CountryInfo is one entry of GET /countries.
type CountryInfo struct {
	Name     string  `json:"name"`
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// UploadInfo describes a stored price list.
type UploadInfo struct {
	Country    string    `json:"country"`
	Filename   string    `json:"filename"`
	UploadDate time.Time `json:"upload_date"`
}

// ColumnRef identifies a column by position; Label is for display.
type ColumnRef struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// MappingInfo is a resolved column mapping. Nil fields are unset.
type MappingInfo struct {
	Name       *ColumnRef  `json:"name"`
	Cost       *ColumnRef  `json:"cost"`
	PromoCost  *ColumnRef  `json:"promo_cost"`
	PromoPrice *ColumnRef  `json:"promo_price"`
	Prices     []ColumnRef `json:"prices"`
}

// ColumnsResponse is the body of GET /columns.
type ColumnsResponse struct {
	Country         string      `json:"country"`
	Filename        string      `json:"filename"`
	HeaderRow       int         `json:"header_row"`
	HeaderMode      string      `json:"header_mode"`
	Columns         []ColumnRef `json:"columns"`
	Preview         [][]string  `json:"preview"`
	Suggested       MappingInfo `json:"suggested"`
	PriceCandidates []ColumnRef `json:"price_candidates"`
	NameSamples     []string    `json:"name_samples"`
}

// Record is a ProfitRecord as served over HTTP. MarginPct is null when the
// price is not positive. *Display fields are rounded to 2 dp.
type Record struct {
	Row                 int      `json:"row"`
	ProductName         string   `json:"product_name"`
	PriceColumn         string   `json:"price_column"`
	Source              string   `json:"source"`
	Class               string   `json:"class"`
	Price               float64  `json:"price"`
	Cost                float64  `json:"cost"`
	PlatformFee         float64  `json:"platform_fee"`
	ProfitLocal         float64  `json:"profit_local"`
	ProfitConverted     float64  `json:"profit_converted"`
	MarginPct           *float64 `json:"margin_pct"`
	CommissionConverted float64  `json:"commission_converted"`

	ProfitLocalDisplay     string `json:"profit_local_display"`
	ProfitConvertedDisplay string `json:"profit_converted_display"`
	MarginDisplay          string `json:"margin_display"`
}

// CalculateResponse is the body of POST /calculate.
type CalculateResponse struct {
	Country           string  `json:"country"`
	Currency          string  `json:"currency"`
	ReferenceCurrency string  `json:"reference_currency"`
	ExchangeRate      float64 `json:"exchange_rate"`
	FeePct            float64 `json:"fee_pct"`
	CommissionPct     float64 `json:"commission_pct"`
	Threshold         float64 `json:"threshold"`
	MissingCost       string  `json:"missing_cost"`
	HeaderRow         int     `json:"header_row"`

	Mapping     MappingInfo `json:"mapping"`
	Rows        int         `json:"rows"`
	PricedRows  int         `json:"priced_rows"`
	SkippedRows int         `json:"skipped_rows"`

	Records  []Record              `json:"records"`
	Filtered []Record              `json:"filtered,omitempty"`
	Summary  analysis.Summary      `json:"summary"`
	Chart    []analysis.ChartPoint `json:"chart"`
}

// FeesResponse is the body of GET/PUT /fees.
type FeesResponse struct {
	Fees []model.FeeEntry `json:"fees"`
}

// RatesResponse is the body of GET/PUT /rates.
type RatesResponse struct {
	Reference string             `json:"reference"`
	Rates     map[string]float64 `json:"rates"`
}

// AnnouncementsResponse is the body of GET /announcements.
type AnnouncementsResponse struct {
	Announcements []announce.Announcement `json:"announcements"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
