package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pricelist-profit/internal/model"
	"pricelist-profit/internal/store"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Exchange rate management (units per MYR)",
}

var ratesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the exchange rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		rates := rateRepo().Load()
		out := cmd.OutOrStdout()
		for _, cur := range store.SortedCurrencies(rates) {
			fmt.Fprintf(out, "%s  %v per %s\n", cur, rates[cur], model.ReferenceCurrency)
		}
		return nil
	},
}

var ratesSetCmd = &cobra.Command{
	Use:   "set CUR=VALUE...",
	Short: "Update one or more exchange rates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		updates, err := parseRateArgs(args)
		if err != nil {
			return err
		}
		if _, err := rateRepo().Set(updates); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d rate(s) in %s\n", len(updates), cfg.Storage.RatesFile)
		return nil
	},
}

func init() {
	ratesCmd.AddCommand(ratesListCmd)
	ratesCmd.AddCommand(ratesSetCmd)
}

func parseRateArgs(args []string) (map[string]float64, error) {
	out := make(map[string]float64, len(args))
	for _, a := range args {
		cur, val, ok := strings.Cut(a, "=")
		cur = strings.ToUpper(strings.TrimSpace(cur))
		if !ok || cur == "" {
			return nil, fmt.Errorf("expected CUR=VALUE, got %q", a)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("rate for %s: %w", cur, err)
		}
		out[cur] = v
	}
	return out, nil
}
