// Package export renders calculation results as an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"pricelist-profit/internal/analysis"
	"pricelist-profit/internal/model"
	"pricelist-profit/internal/profit"
)

// Sheet names, in workbook order.
const (
	SheetResults  = "Results"
	SheetFiltered = "Filtered"
	SheetChart    = "Chart"
	SheetSettings = "Settings"
)

// ChartTopN bounds the chart sheet.
const ChartTopN = 20

// Settings are echoed on the Settings sheet.
type Settings struct {
	Country       string
	Currency      string
	SourceFile    string
	HeaderRow     int
	FeePct        float64
	CommissionPct float64
	ExchangeRate  float64
	Threshold     float64
	MissingCost   profit.MissingCostPolicy
}

// fills per class; ClassNone rows are left plain.
var fills = map[profit.Class]string{
	profit.ClassLoss:       "FFC7CE",
	profit.ClassPromotion:  "FFEB9C",
	profit.ClassHighProfit: "C6EFCE",
}

// Workbook builds the export. filtered may be nil, in which case the
// Filtered sheet holds only the header.
func Workbook(records, filtered []model.ProfitRecord, s Settings) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetResults); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetFiltered, SheetChart, SheetSettings} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	w, err := newWriter(f)
	if err != nil {
		return nil, err
	}
	if err := w.records(SheetResults, records, s); err != nil {
		return nil, err
	}
	if err := w.records(SheetFiltered, filtered, s); err != nil {
		return nil, err
	}
	if err := w.chart(analysis.ChartData(records, ChartTopN, s.Threshold)); err != nil {
		return nil, err
	}
	if err := w.settings(s); err != nil {
		return nil, err
	}
	return f, nil
}

// Write renders the workbook to out.
func Write(out io.Writer, records, filtered []model.ProfitRecord, s Settings) error {
	f, err := Workbook(records, filtered, s)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(out)
}

type writer struct {
	f      *excelize.File
	header int
	styles map[profit.Class]int
}

func newWriter(f *excelize.File) (*writer, error) {
	w := &writer{f: f, styles: map[profit.Class]int{}}
	id, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	w.header = id
	for c, color := range fills {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, err
		}
		w.styles[c] = id
	}
	return w, nil
}

func recordHeader(currency string) []interface{} {
	ref := model.ReferenceCurrency
	return []interface{}{
		"Row", "Product", "Price Column", "Source",
		fmt.Sprintf("Price (%s)", currency),
		fmt.Sprintf("Cost (%s)", currency),
		fmt.Sprintf("Platform Fee (%s)", currency),
		fmt.Sprintf("Profit (%s)", currency),
		fmt.Sprintf("Profit (%s)", ref),
		"Margin %",
		fmt.Sprintf("Commission (%s)", ref),
		"Class",
	}
}

func (w *writer) records(sheet string, records []model.ProfitRecord, s Settings) error {
	head := recordHeader(s.Currency)
	if err := w.row(sheet, 1, head, w.header); err != nil {
		return err
	}
	for i, r := range records {
		class := profit.Classify(r, s.Threshold)
		var margin interface{} = ""
		if r.HasMargin() {
			margin = round2(r.MarginPct)
		}
		vals := []interface{}{
			r.Row, r.ProductName, r.PriceColumn, string(r.Source),
			round2(r.Price), round2(r.Cost), round2(r.PlatformFee),
			round2(r.ProfitLocal), round2(r.ProfitConverted), margin,
			round2(r.CommissionConverted), string(class),
		}
		if err := w.row(sheet, i+2, vals, w.styles[class]); err != nil {
			return err
		}
	}
	if err := w.f.SetColWidth(sheet, "B", "C", 28); err != nil {
		return err
	}
	return w.f.SetColWidth(sheet, "D", "L", 16)
}

func (w *writer) chart(points []analysis.ChartPoint) error {
	head := []interface{}{"Product", fmt.Sprintf("Best Profit (%s)", model.ReferenceCurrency), "Price", "Source", "Options", "Class"}
	if err := w.row(SheetChart, 1, head, w.header); err != nil {
		return err
	}
	for i, p := range points {
		vals := []interface{}{p.ProductName, round2(p.ProfitConverted), round2(p.Price), string(p.Source), p.Options, string(p.Class)}
		if err := w.row(SheetChart, i+2, vals, 0); err != nil {
			return err
		}
	}
	if len(points) == 0 {
		return nil
	}
	last := len(points) + 1
	return w.f.AddChart(SheetChart, "H2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", SheetChart),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetChart, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetChart, last),
		}},
		Title: []excelize.RichTextRun{{Text: "Best profit per product"}},
	})
}

func (w *writer) settings(s Settings) error {
	rows := [][]interface{}{
		{"Setting", "Value"},
		{"Country", s.Country},
		{"Currency", s.Currency},
		{"Reference Currency", model.ReferenceCurrency},
		{"Source File", s.SourceFile},
		{"Header Row", s.HeaderRow},
		{"Platform Fee %", s.FeePct},
		{"Commission %", s.CommissionPct},
		{"Exchange Rate", s.ExchangeRate},
		{"High Profit Threshold", s.Threshold},
		{"Missing Cost", string(s.MissingCost)},
	}
	for i, r := range rows {
		style := 0
		if i == 0 {
			style = w.header
		}
		if err := w.row(SheetSettings, i+1, r, style); err != nil {
			return err
		}
	}
	return w.f.SetColWidth(SheetSettings, "A", "A", 24)
}

func (w *writer) row(sheet string, n int, vals []interface{}, style int) error {
	start, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(sheet, start, &vals); err != nil {
		return err
	}
	if style == 0 || len(vals) == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(vals), n)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, start, end, style)
}

// round2 rounds half away from zero to cents for display.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
