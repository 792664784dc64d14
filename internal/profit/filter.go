package profit

import (
	"fmt"
	"strings"

	"pricelist-profit/internal/model"
)

// Filter narrows a record set for display and the filtered export sheet.
// Zero values match everything.
type Filter struct {
	// Query is a case-insensitive substring of the product name.
	Query string

	Source  model.Source
	Classes []Class

	MinProfit *float64
	MaxProfit *float64

	// Threshold feeds Classify when Classes is set.
	Threshold float64
}

// Match reports whether r passes every constraint of f.
func (f Filter) Match(r model.ProfitRecord) bool {
	if q := strings.TrimSpace(f.Query); q != "" &&
		!strings.Contains(strings.ToLower(r.ProductName), strings.ToLower(q)) {
		return false
	}
	if f.Source != "" && r.Source != f.Source {
		return false
	}
	if f.MinProfit != nil && r.ProfitConverted < *f.MinProfit {
		return false
	}
	if f.MaxProfit != nil && r.ProfitConverted > *f.MaxProfit {
		return false
	}
	if len(f.Classes) > 0 {
		c := Classify(r, f.Threshold)
		found := false
		for _, want := range f.Classes {
			if c == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply returns the matching records in their original order.
func (f Filter) Apply(in []model.ProfitRecord) []model.ProfitRecord {
	out := make([]model.ProfitRecord, 0, len(in))
	for _, r := range in {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// ParseFilter builds a Filter from user-supplied names. Source and class
// names are validated; empty values leave the constraint off.
func ParseFilter(query, source string, classes []string, minProfit, maxProfit *float64, threshold float64) (Filter, error) {
	f := Filter{Query: query, MinProfit: minProfit, MaxProfit: maxProfit, Threshold: threshold}
	if strings.TrimSpace(source) != "" {
		s, ok := model.ParseSource(strings.TrimSpace(source))
		if !ok {
			return Filter{}, fmt.Errorf("unknown source %q", source)
		}
		f.Source = s
	}
	for _, name := range classes {
		c, ok := ParseClass(strings.TrimSpace(name))
		if !ok {
			return Filter{}, fmt.Errorf("unknown class %q", name)
		}
		f.Classes = append(f.Classes, c)
	}
	if minProfit != nil && maxProfit != nil && *minProfit > *maxProfit {
		return Filter{}, fmt.Errorf("min profit %v exceeds max profit %v", *minProfit, *maxProfit)
	}
	return f, nil
}
