package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pricelist-profit/internal/resolve"
	"pricelist-profit/internal/table"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show the normalized headers and the suggested column mapping",
	RunE:  runColumns,
}

var (
	columnsFile      string
	columnsHeaderRow int
)

func init() {
	columnsCmd.Flags().StringVarP(&columnsFile, "file", "f", "", "price list (.csv or .xlsx) [REQUIRED]")
	columnsCmd.Flags().IntVar(&columnsHeaderRow, "header-row", 0, "1-based header row, 0 to auto-detect (default from config)")
	_ = columnsCmd.MarkFlagRequired("file")
}

func runColumns(cmd *cobra.Command, args []string) error {
	headerRow := cfg.Calc.DefaultHeaderRow
	if cmd.Flags().Changed("header-row") {
		headerRow = columnsHeaderRow
	}
	t, err := table.ReadFile(columnsFile, headerRow)
	if err != nil {
		return fmt.Errorf("read %s: %w", columnsFile, err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Header mode: %s, %d data rows\n\n", t.Mode, t.Len())
	for _, c := range t.Columns() {
		fmt.Fprintf(out, "  #%d  %s\n", c.ID, c.Label)
	}

	m := resolve.ResolveFields(t)
	label := func(id table.ColumnID) string {
		if id == table.NoColumn {
			return "-"
		}
		return fmt.Sprintf("#%d %s", id, t.Label(id))
	}
	prices := make([]string, len(m.Prices))
	for i, id := range m.Prices {
		prices[i] = label(id)
	}
	fmt.Fprintln(out, "\nSuggested mapping:")
	fmt.Fprintf(out, "  name:        %s\n", label(m.Name))
	fmt.Fprintf(out, "  cost:        %s\n", label(m.Cost))
	fmt.Fprintf(out, "  promo cost:  %s\n", label(m.PromoCost))
	fmt.Fprintf(out, "  promo price: %s\n", label(m.PromoPrice))
	fmt.Fprintf(out, "  prices:      %s\n", strings.Join(prices, ", "))

	samples := t.Column(m.Name)
	if len(samples) > 10 {
		samples = samples[:10]
	}
	if len(samples) > 0 {
		fmt.Fprintf(out, "\nName samples: %s\n", strings.Join(samples, " | "))
	}
	return nil
}
