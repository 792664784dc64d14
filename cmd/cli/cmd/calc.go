package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricelist-profit/internal/analysis"
	"pricelist-profit/internal/export"
	"pricelist-profit/internal/logging"
	"pricelist-profit/internal/model"
	"pricelist-profit/internal/profit"
	"pricelist-profit/internal/resolve"
	"pricelist-profit/internal/table"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Price a list and print or export the results",
	Long: `Price every row of a price list.

Columns are selected by label or by index ("#3"); unset columns fall back
to the suggested mapping and "-" clears an optional one. A row with both
promotion cells filled is priced from the promotion pair only.

Without --out the records are printed as a table.`,
	RunE: runCalc,
}

var (
	calcFile        string
	calcCountry     string
	calcHeaderRow   int
	calcName        string
	calcCost        string
	calcPromoCost   string
	calcPromoPrice  string
	calcPrices      []string
	calcFee         float64
	calcCommission  float64
	calcRate        float64
	calcThreshold   float64
	calcMissingCost string
	calcPlatform    string
	calcScenario    string
	calcOut         string
	calcQuery       string
	calcSource      string
	calcClasses     []string
	calcLimit       int
)

func init() {
	f := calcCmd.Flags()
	f.StringVarP(&calcFile, "file", "f", "", "price list (.csv or .xlsx) [REQUIRED]")
	f.StringVarP(&calcCountry, "country", "c", "Malaysia", "country of the price list")
	f.IntVar(&calcHeaderRow, "header-row", 0, "1-based header row, 0 to auto-detect (default from config)")
	f.StringVar(&calcName, "name", "", "product name column")
	f.StringVar(&calcCost, "cost", "", "normal cost column")
	f.StringVar(&calcPromoCost, "promo-cost", "", "promotion cost column")
	f.StringVar(&calcPromoPrice, "promo-price", "", "promotion selling price column")
	f.StringArrayVar(&calcPrices, "price", nil, "normal selling price column (repeatable)")
	f.Float64Var(&calcFee, "fee", 0, "platform fee percent (default from fee table or config)")
	f.Float64Var(&calcCommission, "commission", 0, "commission percent (default from config)")
	f.Float64Var(&calcRate, "rate", 0, "local units per MYR (default from stored rates)")
	f.Float64Var(&calcThreshold, "threshold", 0, "high-profit threshold in MYR (default from config)")
	f.StringVar(&calcMissingCost, "missing-cost", "", "zero or skip (default from config)")
	f.StringVar(&calcPlatform, "platform", "", "look the fee up in the fee table for this platform")
	f.StringVar(&calcScenario, "scenario", "", "fee table scenario for --platform")
	f.StringVarP(&calcOut, "out", "o", "", "write results to .xlsx or .csv")
	f.StringVar(&calcQuery, "query", "", "filter: product name substring")
	f.StringVar(&calcSource, "source", "", "filter: Normal or Promotion")
	f.StringArrayVar(&calcClasses, "class", nil, "filter: loss, promotion, high_profit or none (repeatable)")
	f.IntVar(&calcLimit, "limit", 0, "print at most N records (0 = all)")
	_ = calcCmd.MarkFlagRequired("file")
}

func runCalc(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	currency := model.CurrencyFor(calcCountry)
	if currency == "" {
		return fmt.Errorf("unknown country %q (one of %s)", calcCountry, strings.Join(model.Countries(), ", "))
	}

	headerRow := cfg.Calc.DefaultHeaderRow
	if flags.Changed("header-row") {
		headerRow = calcHeaderRow
	}
	t, err := table.ReadFile(calcFile, headerRow)
	if err != nil {
		return fmt.Errorf("read %s: %w", calcFile, err)
	}

	m, err := resolve.FromRefs(t, resolve.Refs{
		Name:       calcName,
		Cost:       calcCost,
		PromoCost:  calcPromoCost,
		PromoPrice: calcPromoPrice,
		Prices:     calcPrices,
	})
	if err != nil {
		return err
	}
	if err := m.Validate(t); err != nil {
		if errors.Is(err, resolve.ErrMappingIncomplete) {
			return fmt.Errorf("%w (columns: %s)", err, strings.Join(t.Headers, " | "))
		}
		return err
	}

	params := profit.Params{
		FeePct:        cfg.Calc.DefaultFeePct,
		CommissionPct: cfg.Calc.DefaultCommissionPct,
		MissingCost:   cfg.MissingCostPolicy(),
	}
	switch {
	case flags.Changed("fee"):
		params.FeePct = calcFee
	case calcPlatform != "":
		e, err := feeRepo().Lookup(calcCountry, calcPlatform, calcScenario)
		if err != nil {
			return err
		}
		params.FeePct = e.FeePct
	}
	if flags.Changed("commission") {
		params.CommissionPct = calcCommission
	}
	if flags.Changed("rate") {
		params.ExchangeRate = calcRate
	} else {
		_, params.ExchangeRate, err = rateRepo().RateFor(calcCountry)
		if err != nil {
			return err
		}
	}
	if calcMissingCost != "" {
		if params.MissingCost, err = profit.ParseMissingCostPolicy(calcMissingCost); err != nil {
			return err
		}
	}
	threshold := cfg.Calc.ProfitThreshold
	if flags.Changed("threshold") {
		threshold = calcThreshold
	}

	filter, err := profit.ParseFilter(calcQuery, calcSource, calcClasses, nil, nil, threshold)
	if err != nil {
		return err
	}

	res, err := profit.New(params).Run(t, m)
	if err != nil {
		return err
	}
	filtered := filter.Apply(res.Records)
	logging.Debug("calculated",
		zap.String("file", calcFile),
		zap.Int("rows", res.Rows),
		zap.Int("records", len(res.Records)),
		zap.Int("skipped", res.SkippedRows),
	)

	out := cmd.OutOrStdout()
	switch strings.ToLower(filepath.Ext(calcOut)) {
	case "":
		printRecords(out, filtered, threshold, currency, calcLimit)
		printSummary(out, analysis.Summarize(res.Records, threshold))
		return nil
	case ".xlsx":
		f, err := os.Create(calcOut)
		if err != nil {
			return err
		}
		defer f.Close()
		err = export.Write(f, res.Records, filtered, export.Settings{
			Country:       calcCountry,
			Currency:      currency,
			SourceFile:    filepath.Base(calcFile),
			HeaderRow:     headerRow,
			FeePct:        params.FeePct,
			CommissionPct: params.CommissionPct,
			ExchangeRate:  params.Rate(),
			Threshold:     threshold,
			MissingCost:   params.MissingCost,
		})
		if err != nil {
			return err
		}
	case ".csv":
		f, err := os.Create(calcOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := profit.WriteRecordsCSV(f, filtered, threshold); err != nil {
			return err
		}
	default:
		return fmt.Errorf("--out must end in .xlsx or .csv, got %q", calcOut)
	}
	fmt.Fprintf(out, "Wrote %d records to %s\n", len(res.Records), calcOut)
	return nil
}

func printRecords(w io.Writer, recs []model.ProfitRecord, threshold float64, currency string, limit int) {
	if limit > 0 && limit < len(recs) {
		recs = recs[:limit]
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ROW\tPRODUCT\tSOURCE\tPRICE\tPROFIT %s\tPROFIT %s\tMARGIN\tCLASS\n", currency, model.ReferenceCurrency)
	for _, r := range recs {
		margin := "-"
		if r.HasMargin() {
			margin = money(r.MarginPct) + "%"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Row, r.ProductName, r.Source, money(r.Price), money(r.ProfitLocal),
			money(r.ProfitConverted), margin, profit.Classify(r, threshold))
	}
	_ = tw.Flush()
}

func printSummary(w io.Writer, s analysis.Summary) {
	if s.Records == 0 {
		fmt.Fprintln(w, "No records.")
		return
	}
	fmt.Fprintf(w, "\n%d records over %d products. Total %s %s, median %s, range %s..%s\n",
		s.Records, s.Products, model.ReferenceCurrency, money(s.TotalProfit), money(s.P50Profit),
		money(s.MinProfit), money(s.MaxProfit))
	fmt.Fprintf(w, "loss=%d promotion=%d high_profit=%d none=%d\n",
		s.ByClass[profit.ClassLoss], s.ByClass[profit.ClassPromotion],
		s.ByClass[profit.ClassHighProfit], s.ByClass[profit.ClassNone])
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
