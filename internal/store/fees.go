package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"pricelist-profit/internal/logging"
	"pricelist-profit/internal/model"
	"pricelist-profit/internal/table"
)

// FeeRepository keeps the platform fee table in a CSV file. Replacing the
// table first copies the current file into HistoryDir.
type FeeRepository struct {
	Path       string
	HistoryDir string

	now func() time.Time
}

func NewFeeRepository(path, historyDir string) *FeeRepository {
	return &FeeRepository{Path: path, HistoryDir: historyDir, now: time.Now}
}

// Load reads the fee table. A missing file yields an empty table.
func (r *FeeRepository) Load() ([]model.FeeEntry, error) {
	f, err := os.Open(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.FeeEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open fee table: %w", err)
	}
	defer f.Close()
	entries, err := ParseFees(f, table.FormatCSV)
	if errors.Is(err, table.ErrNoRows) {
		return []model.FeeEntry{}, nil
	}
	return entries, err
}

// Replace validates an uploaded fee table, archives the current one and
// overwrites it. The stored file is always CSV in FeeColumns order.
func (r *FeeRepository) Replace(src io.Reader, format table.Format) ([]model.FeeEntry, error) {
	entries, err := ParseFees(src, format)
	if err != nil {
		return nil, err
	}
	if r.HistoryDir != "" {
		dst, err := archive(r.Path, r.HistoryDir, "platform_fees", r.now())
		if err != nil {
			logging.Warn("fee table archive skipped", zap.Error(err))
		} else if dst != "" {
			logging.Debug("fee table archived", zap.String("path", dst))
		}
	}
	var buf bytes.Buffer
	if err := WriteFees(&buf, entries); err != nil {
		return nil, err
	}
	if err := writeFile(r.Path, buf.Bytes()); err != nil {
		return nil, err
	}
	return entries, nil
}

// Lookup finds the fee row for country and platform (case-insensitive).
// An empty scenario matches the first row of that platform.
func (r *FeeRepository) Lookup(country, platform, scenario string) (model.FeeEntry, error) {
	entries, err := r.Load()
	if err != nil {
		return model.FeeEntry{}, err
	}
	for _, e := range entries {
		if !strings.EqualFold(e.Country, country) || !strings.EqualFold(e.Platform, platform) {
			continue
		}
		if scenario == "" || strings.EqualFold(e.Scenario, scenario) {
			return e, nil
		}
	}
	return model.FeeEntry{}, fmt.Errorf("fee for %s/%s/%s: %w", country, platform, scenario, ErrNotFound)
}

// ParseFees reads a fee table whose first row holds the column names.
// Column order is free and extra columns are ignored; a fee_pct cell that
// is not numeric reads as 0.
func ParseFees(src io.Reader, format table.Format) ([]model.FeeEntry, error) {
	grid, err := table.ReadGrid(src, format)
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range grid[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	var missing []string
	for _, c := range model.FeeColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	cell := func(row []string, col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	out := make([]model.FeeEntry, 0, len(grid)-1)
	for _, row := range grid[1:] {
		e := model.FeeEntry{
			Country:  cell(row, "country"),
			Platform: cell(row, "platform"),
			Scenario: cell(row, "scenario"),
			Remark:   cell(row, "remark"),
		}
		if e.Country == "" && e.Platform == "" && e.Scenario == "" {
			continue
		}
		e.FeePct, _ = table.ParseNumber(cell(row, "fee_pct"))
		out = append(out, e)
	}
	return out, nil
}

// WriteFees writes entries as CSV with a FeeColumns header.
func WriteFees(w io.Writer, entries []model.FeeEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.FeeColumns); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{e.Country, e.Platform, e.Scenario, fmtFloat(e.FeePct), e.Remark}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
