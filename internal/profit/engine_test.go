package profit

import (
	"errors"
	"math"
	"testing"

	"pricelist-profit/internal/model"
	"pricelist-profit/internal/resolve"
	"pricelist-profit/internal/table"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

// widgetTable has columns NAME, COST, PROMOTION, PRICE, PROMO SELLING PRICE.
func widgetTable(rows ...[]string) *table.Table {
	return &table.Table{
		Headers: []string{"NAME", "COST", "PROMOTION", "PRICE", "PROMO SELLING PRICE"},
		Rows:    rows,
	}
}

func fullMapping() resolve.Mapping {
	return resolve.Mapping{
		Name:       0,
		Cost:       1,
		PromoCost:  2,
		PromoPrice: 4,
		Prices:     []table.ColumnID{3},
	}
}

func TestPromotionPairOverridesNormal(t *testing.T) {
	tb := widgetTable([]string{"Widget", "100", "80", "150/180", "120"})
	res, err := New(Params{FeePct: 10, ExchangeRate: 7.8}).Run(tb, fullMapping())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	r := res.Records[0]
	if r.Source != model.SourcePromotion {
		t.Fatalf("expected promotion source, got %s", r.Source)
	}
	if r.Cost != 80 || r.Price != 120 || !almostEqual(r.PlatformFee, 12) {
		t.Fatalf("unexpected cost/price/fee %+v", r)
	}
	if !almostEqual(r.ProfitLocal, 28) {
		t.Fatalf("expected profit 28, got %v", r.ProfitLocal)
	}
	if !almostEqual(r.MarginPct, 28.0/120*100) {
		t.Fatalf("expected margin ~23.33, got %v", r.MarginPct)
	}
	if math.Abs(r.ProfitConverted-3.59) > 0.005 {
		t.Fatalf("expected converted ~3.59, got %v", r.ProfitConverted)
	}
	if r.PriceColumn != "PROMO SELLING PRICE" || r.Row != 1 {
		t.Fatalf("unexpected provenance %q row %d", r.PriceColumn, r.Row)
	}
}

func TestPartialPromoPairIsIgnored(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{name: "promo price missing", row: []string{"Widget", "100", "80", "150/180", ""}},
		{name: "promo cost missing", row: []string{"Widget", "100", "", "150/180", "120"}},
		{name: "promo cost nan", row: []string{"Widget", "100", "nan", "150/180", "120"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs, err := Calculate(widgetTable(tc.row), fullMapping(), Params{ExchangeRate: 1})
			if err != nil {
				t.Fatalf("calculate: %v", err)
			}
			if len(recs) != 2 {
				t.Fatalf("expected 2 normal records, got %d", len(recs))
			}
			for _, r := range recs {
				if r.Source != model.SourceNormal || r.Cost != 100 {
					t.Fatalf("expected normal record with cost 100, got %+v", r)
				}
			}
		})
	}
}

func TestPromoColumnsNotConfigured(t *testing.T) {
	tb := widgetTable([]string{"Widget", "100", "80", "150", "120"})
	m := fullMapping()
	m.PromoCost = table.NoColumn
	recs, err := Calculate(tb, m, Params{ExchangeRate: 1})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if len(recs) != 1 || recs[0].Source != model.SourceNormal {
		t.Fatalf("expected one normal record, got %+v", recs)
	}
}

func TestUnparseablePromoCostDefaultsToZero(t *testing.T) {
	tb := widgetTable([]string{"Widget", "100", "n/a", "150", "120"})
	recs, err := Calculate(tb, fullMapping(), Params{ExchangeRate: 1, MissingCost: MissingCostSkip})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if len(recs) != 1 || recs[0].Source != model.SourcePromotion || recs[0].Cost != 0 {
		t.Fatalf("expected promotion record with zero cost, got %+v", recs)
	}
}

func TestLossScenario(t *testing.T) {
	tb := &table.Table{Headers: []string{"NAME", "COST", "PRICE"}, Rows: [][]string{{"Gadget", "50", "40"}}}
	m := resolve.EmptyMapping()
	m.Name, m.Cost, m.Prices = 0, 1, []table.ColumnID{2}

	recs, err := Calculate(tb, m, Params{FeePct: 5, ExchangeRate: 1})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.Source != model.SourceNormal || !almostEqual(r.PlatformFee, 2) || !almostEqual(r.ProfitLocal, -12) {
		t.Fatalf("unexpected record %+v", r)
	}
	for _, threshold := range []float64{-100, 0, 100} {
		if c := Classify(r, threshold); c != ClassLoss {
			t.Fatalf("threshold %v: expected loss, got %s", threshold, c)
		}
	}
}

func TestProfitFormulaIsExact(t *testing.T) {
	tb := widgetTable(
		[]string{"A", "33.3", "", "99.99/0.07", ""},
		[]string{"B", "12", "", "1,234.5", ""},
	)
	p := Params{FeePct: 7.25, CommissionPct: 3, ExchangeRate: 3.3}
	recs, err := Calculate(tb, fullMapping(), p)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for _, r := range recs {
		wantLocal := r.Price - r.Cost - r.Price*p.FeePct/100
		if r.ProfitLocal != wantLocal {
			t.Fatalf("profit_local %v != %v", r.ProfitLocal, wantLocal)
		}
		if r.ProfitConverted != wantLocal/3.3 {
			t.Fatalf("profit_converted %v != %v", r.ProfitConverted, wantLocal/3.3)
		}
		if r.CommissionConverted != wantLocal*3/100/3.3 {
			t.Fatalf("commission %v != %v", r.CommissionConverted, wantLocal*3/100/3.3)
		}
	}
}

func TestRateGuard(t *testing.T) {
	for _, rate := range []float64{0, -5, math.NaN()} {
		p := Params{ExchangeRate: rate}
		if p.Rate() != 1 {
			t.Fatalf("rate %v: expected guard to 1, got %v", rate, p.Rate())
		}
	}
	tb := widgetTable([]string{"A", "10", "", "30", ""})
	recs, err := Calculate(tb, fullMapping(), Params{ExchangeRate: 0})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if recs[0].ProfitConverted != recs[0].ProfitLocal {
		t.Fatalf("expected unconverted profit with zero rate, got %+v", recs[0])
	}
}

func TestMarginUndefinedForNonPositivePrice(t *testing.T) {
	tb := widgetTable([]string{"Free", "0", "", "0/-5", ""})
	recs, err := Calculate(tb, fullMapping(), Params{ExchangeRate: 1})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	for _, r := range recs {
		if r.HasMargin() {
			t.Fatalf("expected undefined margin for price %v", r.Price)
		}
	}
}

func TestMissingCostPolicy(t *testing.T) {
	tb := widgetTable(
		[]string{"NoCost", "", "", "50", ""},
		[]string{"BadCost", "abc", "", "60", ""},
		[]string{"HasCost", "10", "", "70", ""},
	)

	t.Run("zero", func(t *testing.T) {
		res, err := New(Params{ExchangeRate: 1, MissingCost: MissingCostZero}).Run(tb, fullMapping())
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if len(res.Records) != 3 || res.SkippedRows != 0 {
			t.Fatalf("expected 3 records and no skips, got %d / %d", len(res.Records), res.SkippedRows)
		}
		for _, r := range res.Records {
			if r.ProductName != "HasCost" && r.Cost != 0 {
				t.Fatalf("expected zero cost for %s, got %v", r.ProductName, r.Cost)
			}
		}
	})

	t.Run("skip", func(t *testing.T) {
		res, err := New(Params{ExchangeRate: 1, MissingCost: MissingCostSkip}).Run(tb, fullMapping())
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if len(res.Records) != 1 || res.Records[0].ProductName != "HasCost" {
			t.Fatalf("expected only HasCost, got %+v", res.Records)
		}
		if res.SkippedRows != 2 {
			t.Fatalf("expected 2 skipped rows, got %d", res.SkippedRows)
		}
	})
}

func TestRowsWithoutPricesEmitNothing(t *testing.T) {
	tb := widgetTable(
		[]string{"A", "10", "", "", ""},
		[]string{"B", "10", "", "TBD", ""},
	)
	res, err := New(Params{ExchangeRate: 1}).Run(tb, fullMapping())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Records) != 0 || res.PricedRows != 0 || res.Rows != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestMultiplePriceColumnsInConfiguredOrder(t *testing.T) {
	tb := &table.Table{
		Headers: []string{"NAME", "PRICE A", "PRICE B"},
		Rows:    [][]string{{"W", "10", "20/30"}},
	}
	m := resolve.EmptyMapping()
	m.Name = 0
	m.Prices = []table.ColumnID{2, 1}

	res, err := New(Params{ExchangeRate: 1}).Run(tb, m)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	rows := BuildRows(tb, m)
	got := []float64{}
	for _, p := range rows[0].NormalPrices {
		got = append(got, p.Price)
	}
	if len(got) != 3 || got[0] != 20 || got[1] != 30 || got[2] != 10 {
		t.Fatalf("expected prices in configured column order, got %v", got)
	}
	if res.Records[0].Price != 30 || res.Records[0].PriceColumn != "PRICE B" {
		t.Fatalf("expected most profitable first, got %+v", res.Records[0])
	}
}

func TestSortIsStableDescending(t *testing.T) {
	tb := widgetTable(
		[]string{"first", "0", "", "10/20", ""},
		[]string{"second", "0", "", "10/5", ""},
		[]string{"third", "0", "", "20", ""},
	)
	recs, err := Calculate(tb, fullMapping(), Params{ExchangeRate: 1})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	type key struct {
		name  string
		price float64
	}
	want := []key{{"first", 20}, {"third", 20}, {"first", 10}, {"second", 10}, {"second", 5}}
	if len(recs) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(recs))
	}
	for i, w := range want {
		if recs[i].ProductName != w.name || recs[i].Price != w.price {
			t.Fatalf("position %d: expected %v, got %s/%v", i, w, recs[i].ProductName, recs[i].Price)
		}
	}
}

func TestRunRejectsIncompleteMapping(t *testing.T) {
	tb := widgetTable([]string{"A", "1", "", "2", ""})
	m := fullMapping()
	m.Prices = nil
	_, err := New(Params{}).Run(tb, m)
	if !errors.Is(err, resolve.ErrMappingIncomplete) {
		t.Fatalf("expected ErrMappingIncomplete, got %v", err)
	}
}

func TestMissingNameBecomesEmpty(t *testing.T) {
	tb := widgetTable([]string{"", "1", "", "2", ""}, []string{"nan", "1", "", "3", ""})
	recs, err := Calculate(tb, fullMapping(), Params{ExchangeRate: 1})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	for _, r := range recs {
		if r.ProductName != "" {
			t.Fatalf("expected empty name, got %q", r.ProductName)
		}
	}
}

func TestParseMissingCostPolicy(t *testing.T) {
	if p, err := ParseMissingCostPolicy(""); err != nil || p != MissingCostZero {
		t.Fatalf("expected default zero, got %q %v", p, err)
	}
	if p, err := ParseMissingCostPolicy("SKIP"); err != nil || p != MissingCostSkip {
		t.Fatalf("expected skip, got %q %v", p, err)
	}
	if _, err := ParseMissingCostPolicy("drop"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
