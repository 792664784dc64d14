package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pricelist-profit/internal/model"
)

var uploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "Stored price lists shared with the HTTP server",
}

var uploadsCountry string

var uploadsAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Store a price list for a country",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := uploadStore()
		if err != nil {
			return err
		}
		defer s.Ledger.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		u, err := s.Save(cmd.Context(), uploadsCountry, filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s for %s at %s\n", u.Filename, u.Country, u.Filepath)
		return nil
	},
}

var uploadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored price lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := uploadStore()
		if err != nil {
			return err
		}
		defer s.Ledger.Close()

		ups, err := s.List(cmd.Context(), uploadsCountry)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "COUNTRY\tFILENAME\tUPLOADED")
		for _, u := range ups {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Country, u.Filename, u.UploadDate.Format(model.UploadDateLayout))
		}
		return tw.Flush()
	},
}

func init() {
	uploadsCmd.PersistentFlags().StringVarP(&uploadsCountry, "country", "c", "", "country (required for add)")
	uploadsCmd.AddCommand(uploadsAddCmd)
	uploadsCmd.AddCommand(uploadsListCmd)
}
