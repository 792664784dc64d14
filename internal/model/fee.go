package model

// FeeEntry is one row of the platform fee table. It only supplies a
// default platform fee percentage to the calculator.
type FeeEntry struct {
	Country  string  `json:"country"`
	Platform string  `json:"platform"`
	Scenario string  `json:"scenario"`
	FeePct   float64 `json:"fee_pct"`
	Remark   string  `json:"remark"`
}

// FeeColumns are the required columns of a fee table file, in file order.
var FeeColumns = []string{"country", "platform", "scenario", "fee_pct", "remark"}
