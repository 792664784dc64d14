// Package profit derives per-price profit records from a resolved price list.
package profit

import (
	"regexp"
	"strings"

	"pricelist-profit/internal/table"
)

// separators split one cell into price options: slash, pipe, semicolon,
// full-width comma and any whitespace.
var separators = regexp.MustCompile(`[/|;，\s]+`)

// thousands matches a token written with comma digit grouping ("1,200").
var thousands = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParsePriceCell converts one cell into its price options, left to right.
// Tokens that are not finite numbers are dropped; a missing cell yields nil.
// Comma-separated tokens are individual options unless the whole token is
// a thousands-grouped number.
func ParsePriceCell(cell string) []float64 {
	if table.IsMissing(cell) {
		return nil
	}
	var out []float64
	for _, seg := range separators.Split(strings.TrimSpace(cell), -1) {
		if thousands.MatchString(seg) {
			seg = strings.ReplaceAll(seg, ",", "")
		}
		for _, tok := range strings.Split(seg, ",") {
			if v, ok := table.ParseNumber(tok); ok {
				out = append(out, v)
			}
		}
	}
	return out
}
