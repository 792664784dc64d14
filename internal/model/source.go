package model

import "strings"

// Source tags which cost/price pair produced a ProfitRecord.
// Keep these values stable; they are written to CSV and xlsx exports.
type Source string

const (
	SourceNormal    Source = "Normal"
	SourcePromotion Source = "Promotion"
)

// ParseSource accepts the exported spelling case-insensitively.
func ParseSource(s string) (Source, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, string(SourceNormal)):
		return SourceNormal, true
	case strings.EqualFold(s, string(SourcePromotion)):
		return SourcePromotion, true
	default:
		return "", false
	}
}
