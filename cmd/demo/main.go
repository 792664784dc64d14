package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"pricelist-profit/internal/analysis"
	"pricelist-profit/internal/export"
	"pricelist-profit/internal/model"
	"pricelist-profit/internal/profit"
	"pricelist-profit/internal/resolve"
	"pricelist-profit/internal/table"
)

// Demo:
// - Build a small supplier sheet with a two-row header in memory
// - Normalize headers and guess the column mapping
// - Price every row and print the ranked records
func main() {
	country := flag.String("country", "Thailand", "Country whose default rate is used")
	fee := flag.Float64("fee", 5, "Platform fee percent")
	commission := flag.Float64("commission", 0, "Commission percent")
	threshold := flag.Float64("threshold", 3, "High-profit threshold (MYR)")
	out := flag.String("out", "", "Optional .xlsx or .csv output path")
	flag.Parse()

	grid := [][]string{
		{"Spring Catalogue", "", "", "", "", ""},
		{"Product", "Unnamed: 1", "Selling", "", "Promo", ""},
		{"Name", "COST", "Price", "RRP Price", "PROMOTION", "PROMO SELLING PRICE"},
		{"Rice Cooker 1.8L", "120", "199/229", "259", "", ""},
		{"Air Fryer 4L", "180", "259", "1,299", "150", "239"},
		{"Kettle", "nan", "89", "", "", ""},
		{"Blender", "95", "90", "", "", ""},
	}
	t := table.Build(grid, 2)
	fmt.Printf("Header mode=%s\n", t.Mode)
	for _, c := range t.Columns() {
		fmt.Printf("  #%d %q\n", c.ID, c.Label)
	}

	m := resolve.ResolveFields(t)
	// Stacked headers join into "Promo PROMOTION"; bind the promo pair by position.
	m.PromoCost, m.PromoPrice = 4, 5
	fmt.Printf("mapping: name=%q cost=%q prices=%d promo=%v\n\n", t.Label(m.Name), t.Label(m.Cost), len(m.Prices), m.HasPromo())

	currency := model.CurrencyFor(*country)
	rate := model.DefaultRates[currency]
	params := profit.Params{FeePct: *fee, CommissionPct: *commission, ExchangeRate: rate}

	res, err := profit.New(params).Run(t, m)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d rows, %d records (%s, rate %.2f per %s)\n\n", res.Rows, len(res.Records), currency, rate, model.ReferenceCurrency)
	for _, r := range res.Records {
		margin := "   n/a"
		if r.HasMargin() {
			margin = fmt.Sprintf("%5.1f%%", r.MarginPct)
		}
		fmt.Printf("%-18s %-9s price=%8.2f  cost=%7.2f  profit=%8.2f %s  %8.2f %s  margin=%s  [%s]\n",
			r.ProductName, r.Source, r.Price, r.Cost,
			r.ProfitLocal, currency, r.ProfitConverted, model.ReferenceCurrency,
			margin, profit.Classify(r, *threshold))
	}

	s := analysis.Summarize(res.Records, *threshold)
	fmt.Printf("\nTotal=%.2f %s  median=%.2f  losses=%d\n", s.TotalProfit, model.ReferenceCurrency, s.P50Profit, s.ByClass[profit.ClassLoss])

	if *out == "" {
		return
	}
	f, err := os.Create(*out)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	switch filepath.Ext(*out) {
	case ".csv":
		err = profit.WriteRecordsCSV(f, res.Records, *threshold)
	default:
		err = export.Write(f, res.Records, nil, export.Settings{
			Country: *country, Currency: currency, SourceFile: "demo", HeaderRow: 2,
			FeePct: *fee, CommissionPct: *commission, ExchangeRate: rate, Threshold: *threshold,
			MissingCost: profit.MissingCostZero,
		})
	}
	if err != nil {
		panic(err)
	}
	fmt.Printf("\nWrote %s\n", *out)
}
