// Package store persists the fee table, exchange rates, uploaded price
// lists and the upload ledger. Every store is file backed except the
// optional sqlite ledger.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a lookup matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrMissingColumns is wrapped by MissingColumnsError.
	ErrMissingColumns = errors.New("missing required columns")
)

// MissingColumnsError lists the required columns absent from an upload.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// historyStamp formats archive file suffixes.
const historyStamp = "20060102_150405"

// writeFile replaces path with raw, creating the parent directory.
func writeFile(path string, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// archive copies src into dir as <prefix>_<stamp><ext>. A missing src is
// not an error; the returned path is empty then.
func archive(src, dir, prefix string, now time.Time) (string, error) {
	raw, err := os.ReadFile(src)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	dst := filepath.Join(dir, prefix+"_"+now.Format(historyStamp)+filepath.Ext(src))
	if err := writeFile(dst, raw); err != nil {
		return "", err
	}
	return dst, nil
}
