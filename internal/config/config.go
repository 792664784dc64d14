package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pricelist-profit/internal/logging"
	"pricelist-profit/internal/profit"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Storage StorageConfig  `yaml:"storage"`
	Ledger  LedgerConfig   `yaml:"ledger"`
	Calc    CalcConfig     `yaml:"calc"`
	Logging logging.Config `yaml:"logging"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	Env         string   `yaml:"env"` // development | production
	CORSOrigins []string `yaml:"cors_origins"`
}

type StorageConfig struct {
	UploadDir     string `yaml:"upload_dir"`
	LedgerFile    string `yaml:"ledger_file"`
	FeeFile       string `yaml:"fee_file"`
	FeeHistoryDir string `yaml:"fee_history_dir"`
	RatesFile     string `yaml:"rates_file"`
	// ArchiveRates copies the previous rates file into FeeHistoryDir on save.
	ArchiveRates bool `yaml:"archive_rates"`
}

// Ledger drivers.
const (
	LedgerCSV    = "csv"
	LedgerSQLite = "sqlite"
)

type LedgerConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
}

type CalcConfig struct {
	DefaultFeePct        float64 `yaml:"default_fee_pct"`
	DefaultCommissionPct float64 `yaml:"default_commission_pct"`
	// ProfitThreshold is the high-profit bound in the reference currency.
	ProfitThreshold   float64 `yaml:"profit_threshold"`
	MissingCost       string  `yaml:"missing_cost"`
	DefaultHeaderRow  int     `yaml:"default_header_row"`
	ReferenceCurrency string  `yaml:"reference_currency"`
}

// MaxHeaderRow bounds the user-selectable header row.
const MaxHeaderRow = 20

const defaultDataDir = "data"

// Default returns a complete configuration rooted at ./data.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Env:         "development",
			CORSOrigins: []string{"*"},
		},
		Storage: StorageUnder(defaultDataDir),
		Ledger: LedgerConfig{
			Driver:     LedgerCSV,
			SQLitePath: filepath.Join(defaultDataDir, "ledger.db"),
		},
		Calc: CalcConfig{
			ProfitThreshold:   10,
			MissingCost:       string(profit.MissingCostZero),
			DefaultHeaderRow:  2,
			ReferenceCurrency: "MYR",
		},
		Logging: logging.DefaultConfig(),
	}
}

// StorageUnder places every storage path inside dir.
func StorageUnder(dir string) StorageConfig {
	return StorageConfig{
		UploadDir:     filepath.Join(dir, "uploads"),
		LedgerFile:    filepath.Join(dir, "file_metadata.csv"),
		FeeFile:       filepath.Join(dir, "platform_fees.csv"),
		FeeHistoryDir: filepath.Join(dir, "config_history"),
		RatesFile:     filepath.Join(dir, "exchange_rates.json"),
	}
}

// Load builds the configuration: defaults, then APP_DATA_DIR, then the
// YAML file at path (if path is non-empty), then the remaining environment
// overrides. The result is validated.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked is Load without validation.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if dir := os.Getenv("APP_DATA_DIR"); dir != "" {
		c.Storage = StorageUnder(dir)
		c.Ledger.SQLitePath = filepath.Join(dir, "ledger.db")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		// Keys absent from the file keep their defaults.
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("API_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("API_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Ledger.Driver {
	case LedgerCSV:
		if c.Storage.LedgerFile == "" {
			return errors.New("storage.ledger_file is required for the csv ledger")
		}
	case LedgerSQLite:
		if c.Ledger.SQLitePath == "" {
			return errors.New("ledger.sqlite_path is required for the sqlite ledger")
		}
	default:
		return fmt.Errorf("ledger.driver %q must be csv or sqlite", c.Ledger.Driver)
	}
	for name, v := range map[string]string{
		"storage.upload_dir": c.Storage.UploadDir,
		"storage.fee_file":   c.Storage.FeeFile,
		"storage.rates_file": c.Storage.RatesFile,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if c.Calc.DefaultFeePct < 0 || c.Calc.DefaultCommissionPct < 0 {
		return errors.New("calc fee and commission percentages must be >= 0")
	}
	if c.Calc.DefaultHeaderRow < 1 || c.Calc.DefaultHeaderRow > MaxHeaderRow {
		return fmt.Errorf("calc.default_header_row must be 1..%d", MaxHeaderRow)
	}
	if _, err := profit.ParseMissingCostPolicy(c.Calc.MissingCost); err != nil {
		return fmt.Errorf("calc.missing_cost: %w", err)
	}
	if c.Calc.ReferenceCurrency != "MYR" {
		return fmt.Errorf("calc.reference_currency %q unsupported (rates are per MYR)", c.Calc.ReferenceCurrency)
	}
	return nil
}

// MissingCostPolicy returns the validated policy.
func (c *Config) MissingCostPolicy() profit.MissingCostPolicy {
	p, err := profit.ParseMissingCostPolicy(c.Calc.MissingCost)
	if err != nil {
		return profit.MissingCostZero
	}
	return p
}

// RatesHistoryDir is where rate archives go, or "" when disabled.
func (c *Config) RatesHistoryDir() string {
	if !c.Storage.ArchiveRates {
		return ""
	}
	return c.Storage.FeeHistoryDir
}
