package table

import (
	"reflect"
	"testing"
)

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		name  string
		comps [][]string
		want  []string
	}{
		{
			name:  "joins stacked components",
			comps: [][]string{{"PRICE", "1"}, {"PRICE", "2"}, {"COST", ""}},
			want:  []string{"PRICE 1", "PRICE 2", "COST"},
		},
		{
			name:  "drops nan and unnamed markers",
			comps: [][]string{{"Unnamed: 0_level_0", "SKU"}, {"nan", "NAME"}, {"  ", "COST"}},
			want:  []string{"SKU", "NAME", "COST"},
		},
		{
			name:  "forward fills from the left",
			comps: [][]string{{"PRICE"}, {""}, {"Unnamed: 2"}, {"COST"}},
			want:  []string{"PRICE", "PRICE", "PRICE", "COST"},
		},
		{
			name:  "backward fills leading columns",
			comps: [][]string{{""}, {"nan"}, {"NAME"}, {""}},
			want:  []string{"NAME", "NAME", "NAME", "NAME"},
		},
		{
			name:  "all unresolved falls back to synthetic labels",
			comps: [][]string{{""}, {"Unnamed: 1"}, {"NaN"}},
			want:  []string{"Column_0", "Column_1", "Column_2"},
		},
		{
			name:  "duplicates are kept",
			comps: [][]string{{"PRICE"}, {"PRICE"}},
			want:  []string{"PRICE", "PRICE"},
		},
		{
			name:  "empty input",
			comps: nil,
			want:  []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeHeaders(tc.comps)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d labels, got %d (%v)", len(tc.want), len(got), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("label %d: expected %q, got %q (all %v)", i, tc.want[i], got[i], got)
				}
			}
		})
	}
}

func TestNormalizeFlatIsIdempotentOnCleanInput(t *testing.T) {
	clean := []string{"SKU", "DESCRIPTION", "COST", "PRICE 1/2"}
	once := NormalizeFlat(clean)
	twice := NormalizeFlat(once)
	if !reflect.DeepEqual(once, clean) {
		t.Fatalf("expected clean headers unchanged, got %v", once)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected idempotent result, got %v then %v", once, twice)
	}
}

func TestNormalizeNeverEmitsPlaceholders(t *testing.T) {
	got := NormalizeFlat([]string{"", "Unnamed: 1", "A", "", "nan", "B"})
	for i, l := range got {
		if l == "" || IsPlaceholder(l) {
			t.Fatalf("label %d is a placeholder: %q", i, l)
		}
	}
}

func TestBuildSingleHeader(t *testing.T) {
	grid := [][]string{
		{"Price list 2024"},
		{"SKU", "NAME", "COST", "PRICE", ""},
		{"A1", "Widget", "100", "150/180", ""},
		{"", "", "", "", ""},
		{"A2", "Gadget", "50", "40"},
	}
	tb := Build(grid, 2)
	if tb.Mode != HeaderSingle {
		t.Fatalf("expected single header, got %s", tb.Mode)
	}
	want := []string{"SKU", "NAME", "COST", "PRICE", "PRICE"}
	if !reflect.DeepEqual(tb.Headers, want) {
		t.Fatalf("expected headers %v, got %v", want, tb.Headers)
	}
	if tb.Len() != 2 {
		t.Fatalf("expected blank row dropped, got %d rows", tb.Len())
	}
	if got := tb.Cell(1, 3); got != "40" {
		t.Fatalf("expected ragged row padded, got %q", got)
	}
	if got := tb.Cell(1, 4); got != "" {
		t.Fatalf("expected padded cell empty, got %q", got)
	}
}

func TestBuildDualHeaderWhenTooManyPlaceholders(t *testing.T) {
	grid := [][]string{
		{"PRODUCT", "", "PRICE", "", ""},
		{"CODE", "NAME", "NORMAL", "PROMO", "COST"},
		{"A1", "Widget", "150", "120", "100"},
	}
	tb := Build(grid, 1)
	if tb.Mode != HeaderDual {
		t.Fatalf("expected dual header, got %s", tb.Mode)
	}
	want := []string{"PRODUCT CODE", "NAME", "PRICE NORMAL", "PROMO", "COST"}
	if !reflect.DeepEqual(tb.Headers, want) {
		t.Fatalf("expected headers %v, got %v", want, tb.Headers)
	}
	if tb.Len() != 1 || tb.Cell(0, 1) != "Widget" {
		t.Fatalf("unexpected data rows %v", tb.Rows)
	}
}

func TestBuildAcceptsSingleAtThreshold(t *testing.T) {
	// 3 of 10 columns are placeholders: exactly 30%.
	row := []string{"A", "B", "C", "D", "E", "F", "G", "", "", ""}
	grid := [][]string{row, {"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}}
	tb := Build(grid, 1)
	if tb.Mode != HeaderSingle {
		t.Fatalf("expected single header at 30%%, got %s", tb.Mode)
	}
	if tb.Headers[9] != "G" {
		t.Fatalf("expected forward-filled label G, got %q", tb.Headers[9])
	}
}

func TestBuildHeaderlessWhenHeaderRowOutOfRange(t *testing.T) {
	grid := [][]string{{"a", "b"}, {"c"}}
	tb := Build(grid, 5)
	if tb.Mode != HeaderHeaderless {
		t.Fatalf("expected headerless, got %s", tb.Mode)
	}
	if !reflect.DeepEqual(tb.Headers, []string{"Column_0", "Column_1"}) {
		t.Fatalf("unexpected headers %v", tb.Headers)
	}
	if tb.Len() != 2 {
		t.Fatalf("expected every row as data, got %d", tb.Len())
	}
}

func TestGuessHeaderRow(t *testing.T) {
	grid := [][]string{
		{"Supplier price list"},
		{"SKU", "DESCRIPTION", "COST", "PRICE"},
		{"A1", "Widget", "100", "150"},
	}
	if got := GuessHeaderRow(grid); got != 2 {
		t.Fatalf("expected row 2, got %d", got)
	}
	if tb := Build(grid, 0); tb.Headers[1] != "DESCRIPTION" {
		t.Fatalf("expected guessed header, got %v", tb.Headers)
	}
}
