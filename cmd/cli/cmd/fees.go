package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pricelist-profit/internal/table"
)

var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "Platform fee table management",
}

var feesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the fee table (the current one is archived first)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := table.FormatFromName(args[0])
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		entries, err := feeRepo().Replace(f, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d fee rows into %s\n", len(entries), cfg.Storage.FeeFile)
		return nil
	},
}

var feesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the fee table",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := feeRepo().Load()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "COUNTRY\tPLATFORM\tSCENARIO\tFEE %\tREMARK")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Country, e.Platform, e.Scenario, money(e.FeePct), e.Remark)
		}
		return tw.Flush()
	},
}

func init() {
	feesCmd.AddCommand(feesImportCmd)
	feesCmd.AddCommand(feesListCmd)
}
