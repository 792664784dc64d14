// Package cmd provides the pricecalc commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pricelist-profit/internal/config"
	"pricelist-profit/internal/logging"
	"pricelist-profit/internal/store"
)

var (
	cfgFile string
	verbose bool

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "pricecalc",
	Short: "Compute per-product profit from supplier price lists",
	Long: `pricecalc reads a CSV or xlsx price list, maps its columns to product
name, cost, promotion cost, promotion price and one or more selling prices,
and reports the profit of every price option in local and reference (MYR)
currency.

Examples:
  pricecalc columns --file list.xlsx
  pricecalc calc --file list.xlsx --country Thailand --fee 5 --out result.xlsx
  pricecalc fees import platform_fees.csv
  pricecalc rates set THB=7.9`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (defaults apply when omitted)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(feesCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(uploadsCmd)
}

func initConfig() error {
	// A missing .env is fine.
	_ = godotenv.Load()

	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	return nil
}

func feeRepo() *store.FeeRepository {
	return store.NewFeeRepository(cfg.Storage.FeeFile, cfg.Storage.FeeHistoryDir)
}

func rateRepo() *store.RateRepository {
	return store.NewRateRepository(cfg.Storage.RatesFile, cfg.RatesHistoryDir())
}

func uploadStore() (*store.UploadStore, error) {
	ledger, err := store.OpenLedger(cfg.Ledger.Driver, cfg.Storage.LedgerFile, cfg.Ledger.SQLitePath)
	if err != nil {
		return nil, err
	}
	return store.NewUploadStore(cfg.Storage.UploadDir, ledger), nil
}
