package profit

import (
	"encoding/csv"
	"io"
	"strconv"

	"pricelist-profit/internal/model"
)

// CSVHeader is the column order of WriteRecordsCSV.
var CSVHeader = []string{
	"row",
	"product",
	"price_column",
	"source",
	"price",
	"cost",
	"platform_fee",
	"profit_local",
	"profit_converted",
	"margin_pct",
	"commission_converted",
	"class",
}

// WriteRecordsCSV writes records with full precision; an undefined margin
// is written as an empty cell.
func WriteRecordsCSV(w io.Writer, records []model.ProfitRecord, threshold float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		margin := ""
		if r.HasMargin() {
			margin = fmtFloat(r.MarginPct)
		}
		row := []string{
			strconv.Itoa(r.Row),
			r.ProductName,
			r.PriceColumn,
			string(r.Source),
			fmtFloat(r.Price),
			fmtFloat(r.Cost),
			fmtFloat(r.PlatformFee),
			fmtFloat(r.ProfitLocal),
			fmtFloat(r.ProfitConverted),
			margin,
			fmtFloat(r.CommissionConverted),
			string(Classify(r, threshold)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
