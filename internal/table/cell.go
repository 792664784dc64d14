package table

import (
	"math"
	"strconv"
	"strings"
)

// IsMissing reports whether a raw cell holds no value. Empty text and the
// literal null markers written by spreadsheet exports count as missing.
func IsMissing(cell string) bool {
	s := strings.TrimSpace(cell)
	if s == "" {
		return true
	}
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return true
	}
	return false
}

// ParseNumber coerces a cell to a finite number. Failure is reported via
// ok=false and never as an error, so callers can drop or default bad cells
// without aborting a whole sheet.
func ParseNumber(cell string) (v float64, ok bool) {
	s := strings.TrimSpace(cell)
	if IsMissing(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
