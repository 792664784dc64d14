package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"pricelist-profit/internal/logging"
	"pricelist-profit/internal/model"
)

// RateRepository keeps currency -> rate (units per reference unit) in a
// JSON object file.
type RateRepository struct {
	Path string
	// HistoryDir, when set, receives a copy of the previous file on Save.
	HistoryDir string

	now func() time.Time
}

func NewRateRepository(path, historyDir string) *RateRepository {
	return &RateRepository{Path: path, HistoryDir: historyDir, now: time.Now}
}

// Load returns the stored rates merged over model.DefaultRates. A missing
// or unreadable file yields the defaults alone.
func (r *RateRepository) Load() map[string]float64 {
	out := make(map[string]float64, len(model.DefaultRates))
	for k, v := range model.DefaultRates {
		out[k] = v
	}
	raw, err := os.ReadFile(r.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warn("exchange rates unreadable, using defaults", zap.Error(err))
		}
		return out
	}
	var stored map[string]float64
	if err := json.Unmarshal(raw, &stored); err != nil {
		logging.Warn("exchange rates malformed, using defaults", zap.Error(err))
		return out
	}
	for k, v := range stored {
		out[k] = v
	}
	return out
}

// Save writes the whole rate map. Values must be positive and finite.
func (r *RateRepository) Save(rates map[string]float64) error {
	for k, v := range rates {
		if k == "" {
			return errors.New("currency code is required")
		}
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("rate for %s must be > 0, got %v", k, v)
		}
	}
	if r.HistoryDir != "" {
		if _, err := archive(r.Path, r.HistoryDir, "exchange_rates", r.now()); err != nil {
			logging.Warn("exchange rates archive skipped", zap.Error(err))
		}
	}
	raw, err := json.MarshalIndent(rates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rates: %w", err)
	}
	return writeFile(r.Path, raw)
}

// Set merges updates into the current rates and saves them.
func (r *RateRepository) Set(updates map[string]float64) (map[string]float64, error) {
	cur := r.Load()
	for k, v := range updates {
		cur[k] = v
	}
	if err := r.Save(cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// RateFor returns the currency and rate for a country. Unknown countries
// return ErrNotFound.
func (r *RateRepository) RateFor(country string) (string, float64, error) {
	cur := model.CurrencyFor(country)
	if cur == "" {
		return "", 0, fmt.Errorf("country %q: %w", country, ErrNotFound)
	}
	rate, ok := r.Load()[cur]
	if !ok {
		return cur, 1, nil
	}
	return cur, rate, nil
}

// SortedCurrencies returns the keys of rates in order.
func SortedCurrencies(rates map[string]float64) []string {
	out := make([]string, 0, len(rates))
	for k := range rates {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
