package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"pricelist-profit/internal/model"
	"pricelist-profit/internal/table"
)

// UploadStore saves price-list files under Dir/<country>/ and records them
// in the ledger.
type UploadStore struct {
	Dir    string
	Ledger LedgerRepository

	now func() time.Time
}

func NewUploadStore(dir string, ledger LedgerRepository) *UploadStore {
	return &UploadStore{Dir: dir, Ledger: ledger, now: time.Now}
}

// ErrBadFilename is returned for names that reduce to nothing usable.
var ErrBadFilename = errors.New("invalid filename")

// SanitizeFilename keeps only the base name of an uploaded file.
func SanitizeFilename(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	switch base {
	case "", ".", "..", "/":
		return "", fmt.Errorf("%q: %w", name, ErrBadFilename)
	}
	return base, nil
}

// Save writes src and upserts its ledger entry. Re-uploading the same
// filename for a country overwrites the file and the entry.
func (s *UploadStore) Save(ctx context.Context, country, filename string, src io.Reader) (model.Upload, error) {
	if model.CurrencyFor(country) == "" {
		return model.Upload{}, fmt.Errorf("country %q: %w", country, ErrNotFound)
	}
	name, err := SanitizeFilename(filename)
	if err != nil {
		return model.Upload{}, err
	}
	if _, err := table.FormatFromName(name); err != nil {
		return model.Upload{}, err
	}
	raw, err := io.ReadAll(src)
	if err != nil {
		return model.Upload{}, fmt.Errorf("failed to read upload: %w", err)
	}
	path := filepath.Join(s.Dir, country, name)
	if err := writeFile(path, raw); err != nil {
		return model.Upload{}, err
	}
	u := model.Upload{
		Country:    country,
		Filename:   name,
		Filepath:   path,
		UploadDate: s.now().Truncate(time.Second),
	}
	if err := s.Ledger.Upsert(ctx, u); err != nil {
		return model.Upload{}, err
	}
	return u, nil
}

func (s *UploadStore) List(ctx context.Context, country string) ([]model.Upload, error) {
	return s.Ledger.List(ctx, country)
}

// Open reads a previously uploaded file as a table.
func (s *UploadStore) Open(ctx context.Context, country, filename string, headerRow int) (*table.Table, model.Upload, error) {
	u, err := s.Ledger.Get(ctx, country, filename)
	if err != nil {
		return nil, model.Upload{}, err
	}
	t, err := table.ReadFile(u.Filepath, headerRow)
	if err != nil {
		return nil, u, err
	}
	return t, u, nil
}
