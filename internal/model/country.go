package model

import "sort"

// ReferenceCurrency is the currency every converted profit is expressed in.
const ReferenceCurrency = "MYR"

// CountryCurrency maps a selectable country to its local currency code.
var CountryCurrency = map[string]string{
	"Thailand":    "THB",
	"Malaysia":    "MYR",
	"Vietnam":     "VND",
	"Philippines": "PHP",
	"Indonesia":   "IDR",
}

// DefaultRates are units of each currency per 1 unit of the reference currency.
// Illustrative values, not live rates.
var DefaultRates = map[string]float64{
	"THB": 7.8,
	"MYR": 1.0,
	"VND": 5400.0,
	"PHP": 12.0,
	"IDR": 3400.0,
}

// Countries returns the selectable countries sorted by name.
func Countries() []string {
	out := make([]string, 0, len(CountryCurrency))
	for c := range CountryCurrency {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CurrencyFor returns the currency of a country, or "" if unknown.
func CurrencyFor(country string) string {
	return CountryCurrency[country]
}
