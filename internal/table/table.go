// Package table holds uploaded price lists as positional string grids.
//
// Columns are addressed by ColumnID (their index), never by label: merged
// or repaired headers routinely produce duplicate labels.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnID is the zero-based position of a column.
type ColumnID int

// NoColumn marks an unset field in a mapping.
const NoColumn ColumnID = -1

// Column binds a ColumnID to its display label.
type Column struct {
	ID    ColumnID `json:"id"`
	Label string   `json:"label"`
}

// Table is a header row plus data rows of raw cell text.
// Every row has exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
	Mode    HeaderMode
}

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.Headers) }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Valid reports whether id addresses an existing column.
func (t *Table) Valid(id ColumnID) bool {
	return id >= 0 && int(id) < len(t.Headers)
}

// Label returns the display label of id, or "" when out of range.
func (t *Table) Label(id ColumnID) string {
	if !t.Valid(id) {
		return ""
	}
	return t.Headers[id]
}

// Cell returns the raw text at (row, id); out-of-range lookups return "".
func (t *Table) Cell(row int, id ColumnID) string {
	if row < 0 || row >= len(t.Rows) || !t.Valid(id) {
		return ""
	}
	return t.Rows[row][id]
}

// Column returns a copy of every data cell of id.
func (t *Table) Column(id ColumnID) []string {
	if !t.Valid(id) {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[id]
	}
	return out
}

// Columns lists every column in order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.Headers))
	for i, h := range t.Headers {
		out[i] = Column{ID: ColumnID(i), Label: h}
	}
	return out
}

// Lookup returns the first column whose label equals label, trying an
// exact match before a case-insensitive one.
func (t *Table) Lookup(label string) ColumnID {
	label = strings.TrimSpace(label)
	for i, h := range t.Headers {
		if h == label {
			return ColumnID(i)
		}
	}
	for i, h := range t.Headers {
		if strings.EqualFold(h, label) {
			return ColumnID(i)
		}
	}
	return NoColumn
}

// Preview returns up to n leading data rows.
func (t *Table) Preview(n int) [][]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return t.Rows[:n]
}

// ParseColumnRef resolves a user reference: "#3" selects the column at
// index 3, anything else is looked up by label. Empty means NoColumn.
func (t *Table) ParseColumnRef(ref string) (ColumnID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return NoColumn, nil
	}
	if strings.HasPrefix(ref, "#") {
		n, err := strconv.Atoi(ref[1:])
		if err != nil || !t.Valid(ColumnID(n)) {
			return NoColumn, fmt.Errorf("column index %q out of range (0..%d)", ref, t.Width()-1)
		}
		return ColumnID(n), nil
	}
	id := t.Lookup(ref)
	if id == NoColumn {
		return NoColumn, fmt.Errorf("no column labelled %q", ref)
	}
	return id, nil
}
