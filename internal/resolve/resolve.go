// Package resolve maps dirty spreadsheet headers to the fields the profit
// calculator needs.
package resolve

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"pricelist-profit/internal/table"
)

// ErrMappingIncomplete is returned when required fields are not selected.
var ErrMappingIncomplete = errors.New("field mapping incomplete")

// namePatterns are tried in order; within one pattern the leftmost
// matching header wins.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(desc(ription)?|product(\s*name)?|item(\s*name)?|name|title)\b`),
	regexp.MustCompile(`(产品|商品|品名|名稱|名称|标题|描述)`),
	regexp.MustCompile(`(ชื่อสินค้า|รายละเอียด)`),
}

var priceHeader = regexp.MustCompile(`(?i)price|sell`)

const (
	costHeader       = "COST"
	promoCostHeader  = "PROMOTION"
	promoPriceHeader = "PROMO SELLING PRICE"

	// defaultPriceColumns is how many guessed price columns are preselected.
	defaultPriceColumns = 2
)

// GuessNameColumn picks the most likely product-name column.
//
// Headers are first matched against namePatterns. If none matches, each
// column is scored 0.6*(share of non-numeric values) + 0.4*(share of
// distinct values) over its non-missing cells; columns without values are
// skipped and ties keep the leftmost column. A table with columns always
// yields a column; an empty one yields NoColumn.
func GuessNameColumn(t *table.Table) table.ColumnID {
	if t.Width() == 0 {
		return table.NoColumn
	}
	for _, pat := range namePatterns {
		for i, h := range t.Headers {
			if pat.MatchString(h) {
				return table.ColumnID(i)
			}
		}
	}

	best, bestScore := table.ColumnID(0), math.Inf(-1)
	for i := range t.Headers {
		score, ok := textScore(t.Column(table.ColumnID(i)))
		if !ok {
			continue
		}
		if score > bestScore {
			best, bestScore = table.ColumnID(i), score
		}
	}
	return best
}

func textScore(cells []string) (float64, bool) {
	n, text := 0, 0
	distinct := make(map[string]struct{})
	for _, c := range cells {
		if table.IsMissing(c) {
			continue
		}
		n++
		s := strings.TrimSpace(c)
		if _, isNum := table.ParseNumber(s); !isNum {
			text++
		}
		distinct[s] = struct{}{}
	}
	if n == 0 {
		return 0, false
	}
	return 0.6*float64(text)/float64(n) + 0.4*float64(len(distinct))/float64(n), true
}

// Mapping binds each semantic field to a column. Unset fields hold NoColumn.
type Mapping struct {
	Name       table.ColumnID
	Cost       table.ColumnID
	PromoCost  table.ColumnID
	PromoPrice table.ColumnID
	Prices     []table.ColumnID
}

// EmptyMapping has every field unset.
func EmptyMapping() Mapping {
	return Mapping{
		Name:       table.NoColumn,
		Cost:       table.NoColumn,
		PromoCost:  table.NoColumn,
		PromoPrice: table.NoColumn,
	}
}

// HasPromo reports whether both promotion columns are selected.
func (m Mapping) HasPromo() bool {
	return m.PromoCost != table.NoColumn && m.PromoPrice != table.NoColumn
}

// ResolveFields proposes defaults for the selection UI: the guessed name
// column, conventionally named cost and promotion columns, and the first
// two remaining headers mentioning price or sell.
func ResolveFields(t *table.Table) Mapping {
	m := EmptyMapping()
	m.Name = GuessNameColumn(t)
	m.Cost = exactHeader(t, costHeader)
	m.PromoCost = exactHeader(t, promoCostHeader)
	m.PromoPrice = exactHeader(t, promoPriceHeader)

	for i, h := range t.Headers {
		id := table.ColumnID(i)
		if id == m.PromoPrice || id == m.PromoCost || id == m.Cost {
			continue
		}
		if priceHeader.MatchString(h) {
			m.Prices = append(m.Prices, id)
			if len(m.Prices) == defaultPriceColumns {
				break
			}
		}
	}
	return m
}

// PriceCandidates lists every header mentioning price or sell; the UI offers
// these first and falls back to all columns when empty.
func PriceCandidates(t *table.Table) []table.ColumnID {
	var out []table.ColumnID
	for i, h := range t.Headers {
		if priceHeader.MatchString(h) {
			out = append(out, table.ColumnID(i))
		}
	}
	return out
}

func exactHeader(t *table.Table, want string) table.ColumnID {
	for i, h := range t.Headers {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return table.ColumnID(i)
		}
	}
	return table.NoColumn
}

// MissingFields names the required fields m leaves unset.
func (m Mapping) MissingFields() []string {
	var missing []string
	if m.Name == table.NoColumn {
		missing = append(missing, "name")
	}
	if len(m.Prices) == 0 {
		missing = append(missing, "prices")
	}
	return missing
}

// Validate checks that required fields are set and every id addresses t.
func (m Mapping) Validate(t *table.Table) error {
	if missing := m.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: select %s", ErrMappingIncomplete, strings.Join(missing, ", "))
	}
	check := func(field string, id table.ColumnID) error {
		if id != table.NoColumn && !t.Valid(id) {
			return fmt.Errorf("%s column %d out of range (table has %d columns)", field, id, t.Width())
		}
		return nil
	}
	if err := check("name", m.Name); err != nil {
		return err
	}
	if err := check("cost", m.Cost); err != nil {
		return err
	}
	if err := check("promo cost", m.PromoCost); err != nil {
		return err
	}
	if err := check("promo price", m.PromoPrice); err != nil {
		return err
	}
	for _, id := range m.Prices {
		if err := check("price", id); err != nil {
			return err
		}
	}
	return nil
}

// Refs are user-facing column references, as accepted by
// table.ParseColumnRef ("#3" or a label).
type Refs struct {
	Name       string
	Cost       string
	PromoCost  string
	PromoPrice string
	Prices     []string
}

// NoneRef explicitly unsets an optional field in Refs.
const NoneRef = "-"

// FromRefs resolves refs against t. Empty references fall back to the
// ResolveFields suggestion for that field; NoneRef clears it.
func FromRefs(t *table.Table, refs Refs) (Mapping, error) {
	m := ResolveFields(t)
	var err error
	set := func(dst *table.ColumnID, ref string) {
		ref = strings.TrimSpace(ref)
		switch {
		case err != nil || ref == "":
			return
		case ref == NoneRef:
			*dst = table.NoColumn
			return
		}
		*dst, err = t.ParseColumnRef(ref)
	}
	set(&m.Name, refs.Name)
	set(&m.Cost, refs.Cost)
	set(&m.PromoCost, refs.PromoCost)
	set(&m.PromoPrice, refs.PromoPrice)
	if err != nil {
		return Mapping{}, err
	}
	if len(refs.Prices) > 0 {
		m.Prices = m.Prices[:0:0]
		for _, ref := range refs.Prices {
			id, perr := t.ParseColumnRef(ref)
			if perr != nil {
				return Mapping{}, perr
			}
			if id != table.NoColumn {
				m.Prices = append(m.Prices, id)
			}
		}
	}
	return m, nil
}
