package table

import (
	"fmt"
	"strconv"
	"strings"
)

// HeaderMode records how the header of a table was obtained.
type HeaderMode string

const (
	HeaderSingle     HeaderMode = "single"
	HeaderDual       HeaderMode = "dual"
	HeaderHeaderless HeaderMode = "headerless"
)

// placeholderMarker is what spreadsheet tools write into exported
// unlabeled header cells ("Unnamed: 3").
const placeholderMarker = "unnamed"

// A single-row header is accepted while at most placeholderPct percent of
// its cells are placeholders.
const placeholderPct = 30

// maxHeaderScan bounds how many leading rows GuessHeaderRow inspects.
const maxHeaderScan = 20

// IsPlaceholder reports whether one header cell carries no usable label.
func IsPlaceholder(cell string) bool {
	s := strings.TrimSpace(cell)
	if s == "" || strings.EqualFold(s, "nan") {
		return true
	}
	return strings.Contains(strings.ToLower(s), placeholderMarker)
}

// NormalizeHeaders collapses per-column header components into one label
// per column. Placeholder components are dropped and the rest joined by a
// space. Columns left without a label take the nearest label to their left,
// leading ones the nearest to their right; if no column has a label at all
// the result is Column_0, Column_1, ... Duplicate labels are kept.
func NormalizeHeaders(components [][]string) []string {
	n := len(components)
	labels := make([]string, n)
	resolved := make([]bool, n)

	for i, parts := range components {
		kept := make([]string, 0, len(parts))
		for _, p := range parts {
			if IsPlaceholder(p) {
				continue
			}
			kept = append(kept, strings.TrimSpace(p))
		}
		if len(kept) > 0 {
			labels[i] = strings.Join(kept, " ")
			resolved[i] = true
		}
	}

	first := -1
	for i := range labels {
		if resolved[i] {
			first = i
			break
		}
	}
	if first < 0 {
		return syntheticHeaders(n)
	}

	last := first
	for i := first + 1; i < n; i++ {
		if resolved[i] {
			last = i
			continue
		}
		labels[i] = labels[last]
	}
	for i := 0; i < first; i++ {
		labels[i] = labels[first]
	}
	return labels
}

// NormalizeFlat is NormalizeHeaders for a single header row.
func NormalizeFlat(cells []string) []string {
	comps := make([][]string, len(cells))
	for i, c := range cells {
		comps[i] = []string{c}
	}
	return NormalizeHeaders(comps)
}

func syntheticHeaders(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Column_%d", i)
	}
	return out
}

// Build turns a raw grid into a table whose header starts at headerRow
// (1-based; 0 or less guesses it).
//
// A single header row is used when at most 30% of its cells are
// placeholders. Otherwise the header row and the row below it are read as a
// stacked header. When the grid is too short for the requested header, every
// row becomes data under synthetic Column_i labels.
func Build(grid [][]string, headerRow int) *Table {
	if headerRow <= 0 {
		headerRow = GuessHeaderRow(grid)
	}
	h := headerRow - 1
	width := gridWidth(grid)

	if h >= len(grid) || width == 0 {
		return &Table{
			Headers: syntheticHeaders(width),
			Rows:    dataRows(grid, width),
			Mode:    HeaderHeaderless,
		}
	}

	single := pad(grid[h], width)
	placeholders := 0
	for _, c := range single {
		if IsPlaceholder(c) {
			placeholders++
		}
	}
	if placeholders*100 <= placeholderPct*width || h+1 >= len(grid) {
		return &Table{
			Headers: NormalizeFlat(single),
			Rows:    dataRows(grid[h+1:], width),
			Mode:    HeaderSingle,
		}
	}

	second := pad(grid[h+1], width)
	comps := make([][]string, width)
	for j := 0; j < width; j++ {
		comps[j] = []string{single[j], second[j]}
	}
	return &Table{
		Headers: NormalizeHeaders(comps),
		Rows:    dataRows(grid[h+2:], width),
		Mode:    HeaderDual,
	}
}

// GuessHeaderRow returns the 1-based row among the first rows of grid that
// holds the most labelled, non-numeric cells. Ties go to the earlier row.
func GuessHeaderRow(grid [][]string) int {
	best, bestScore := 1, -1
	for i := 0; i < len(grid) && i < maxHeaderScan; i++ {
		score := 0
		for _, c := range grid[i] {
			s := strings.TrimSpace(c)
			if IsPlaceholder(s) {
				continue
			}
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				continue
			}
			score++
		}
		if score > bestScore {
			best, bestScore = i+1, score
		}
	}
	return best
}

func gridWidth(grid [][]string) int {
	w := 0
	for _, r := range grid {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

func pad(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

func dataRows(rows [][]string, width int) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		if emptyRow(r) {
			continue
		}
		out = append(out, pad(r, width))
	}
	return out
}
