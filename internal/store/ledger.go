package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"pricelist-profit/internal/model"
)

// LedgerRepository records which price lists were uploaded for which
// country. (Country, Filename) is unique; a second Upsert replaces the
// first.
type LedgerRepository interface {
	Upsert(ctx context.Context, u model.Upload) error
	// List returns entries for country ("" means all), oldest first.
	List(ctx context.Context, country string) ([]model.Upload, error)
	Get(ctx context.Context, country, filename string) (model.Upload, error)
	Close() error
}

var ledgerColumns = []string{"country", "filename", "filepath", "upload_date"}

// CSVLedger is the file_metadata.csv ledger.
type CSVLedger struct {
	Path string

	mu sync.Mutex
}

func NewCSVLedger(path string) *CSVLedger {
	return &CSVLedger{Path: path}
}

func (l *CSVLedger) Upsert(_ context.Context, u model.Upload) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.read()
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].Country == u.Country && all[i].Filename == u.Filename {
			all[i] = u
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, u)
	}
	return l.write(all)
}

func (l *CSVLedger) List(_ context.Context, country string) ([]model.Upload, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.read()
	if err != nil {
		return nil, err
	}
	out := make([]model.Upload, 0, len(all))
	for _, u := range all {
		if country == "" || u.Country == country {
			out = append(out, u)
		}
	}
	sortUploads(out)
	return out, nil
}

func (l *CSVLedger) Get(ctx context.Context, country, filename string) (model.Upload, error) {
	all, err := l.List(ctx, country)
	if err != nil {
		return model.Upload{}, err
	}
	for _, u := range all {
		if u.Filename == filename {
			return u, nil
		}
	}
	return model.Upload{}, fmt.Errorf("upload %s/%s: %w", country, filename, ErrNotFound)
}

func (l *CSVLedger) Close() error { return nil }

func (l *CSVLedger) read() ([]model.Upload, error) {
	f, err := os.Open(l.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	var out []model.Upload
	header := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(rec) < len(ledgerColumns) {
			continue
		}
		out = append(out, model.Upload{
			Country:    rec[0],
			Filename:   rec[1],
			Filepath:   rec[2],
			UploadDate: parseUploadDate(rec[3]),
		})
	}
	return out, nil
}

func (l *CSVLedger) write(all []model.Upload) error {
	var sb strings.Builder
	cw := csv.NewWriter(&sb)
	if err := cw.Write(ledgerColumns); err != nil {
		return err
	}
	for _, u := range all {
		if err := cw.Write([]string{u.Country, u.Filename, u.Filepath, u.UploadDate.Format(model.UploadDateLayout)}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return writeFile(l.Path, []byte(sb.String()))
}

// parseUploadDate reads a ledger timestamp; invalid values give the zero time.
func parseUploadDate(s string) time.Time {
	t, err := time.ParseInLocation(model.UploadDateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func sortUploads(us []model.Upload) {
	sort.SliceStable(us, func(i, j int) bool {
		if !us[i].UploadDate.Equal(us[j].UploadDate) {
			return us[i].UploadDate.Before(us[j].UploadDate)
		}
		if us[i].Country != us[j].Country {
			return us[i].Country < us[j].Country
		}
		return us[i].Filename < us[j].Filename
	})
}
