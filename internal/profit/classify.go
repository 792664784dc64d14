package profit

import "pricelist-profit/internal/model"

// Class is the display highlight of a record.
type Class string

const (
	ClassNone       Class = "none"
	ClassLoss       Class = "loss"
	ClassPromotion  Class = "promotion"
	ClassHighProfit Class = "high_profit"
)

// Classes lists every class in precedence order.
var Classes = []Class{ClassLoss, ClassPromotion, ClassHighProfit, ClassNone}

// Classify picks the highlight for r: loss first, then promotion, then
// profit above threshold (reference currency).
func Classify(r model.ProfitRecord, threshold float64) Class {
	switch {
	case r.ProfitConverted < 0:
		return ClassLoss
	case r.Source == model.SourcePromotion:
		return ClassPromotion
	case r.ProfitConverted > threshold:
		return ClassHighProfit
	default:
		return ClassNone
	}
}

// ParseClass reports whether s names a class.
func ParseClass(s string) (Class, bool) {
	for _, c := range Classes {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
