package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pricelist-profit/internal/model"
)

func ledgers(t *testing.T) map[string]LedgerRepository {
	t.Helper()
	dir := t.TempDir()
	sq, err := OpenSQLiteLedger(filepath.Join(dir, "ledger.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteLedger: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]LedgerRepository{
		"csv":    NewCSVLedger(filepath.Join(dir, "file_metadata.csv")),
		"sqlite": sq,
	}
}

func TestLedgerUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local)
	t2 := t1.Add(time.Hour)

	for name, l := range ledgers(t) {
		t.Run(name, func(t *testing.T) {
			ups := []model.Upload{
				{Country: "Thailand", Filename: "a.csv", Filepath: "/x/a.csv", UploadDate: t1},
				{Country: "Malaysia", Filename: "b.xlsx", Filepath: "/x/b.xlsx", UploadDate: t1},
				{Country: "Thailand", Filename: "a.csv", Filepath: "/y/a.csv", UploadDate: t2},
			}
			for _, u := range ups {
				if err := l.Upsert(ctx, u); err != nil {
					t.Fatalf("Upsert: %v", err)
				}
			}

			all, err := l.List(ctx, "")
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(all) != 2 {
				t.Fatalf("expected 2 entries, got %+v", all)
			}

			th, err := l.List(ctx, "Thailand")
			if err != nil || len(th) != 1 {
				t.Fatalf("List(Thailand) = %+v, %v", th, err)
			}
			if th[0].Filepath != "/y/a.csv" || !th[0].UploadDate.Equal(t2) {
				t.Fatalf("expected replaced entry, got %+v", th[0])
			}

			got, err := l.Get(ctx, "Malaysia", "b.xlsx")
			if err != nil || got.Filepath != "/x/b.xlsx" {
				t.Fatalf("Get = %+v, %v", got, err)
			}
			if _, err := l.Get(ctx, "Malaysia", "a.csv"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestUploadStoreSaveAndOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewUploadStore(filepath.Join(dir, "uploads"), NewCSVLedger(filepath.Join(dir, "file_metadata.csv")))

	body := "title\nProduct Name,Price\nWidget,10\n"
	u, err := s.Save(ctx, "Thailand", "../../evil/list.csv", strings.NewReader(body))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if u.Filename != "list.csv" || u.Filepath != filepath.Join(dir, "uploads", "Thailand", "list.csv") {
		t.Fatalf("unexpected upload %+v", u)
	}

	tbl, _, err := s.Open(ctx, "Thailand", "list.csv", 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tbl.Headers[0] != "Product Name" || tbl.Len() != 1 {
		t.Fatalf("unexpected table %+v", tbl)
	}

	if _, err := s.Save(ctx, "Atlantis", "x.csv", strings.NewReader(body)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown country, got %v", err)
	}
	if _, err := s.Save(ctx, "Thailand", "..", strings.NewReader(body)); !errors.Is(err, ErrBadFilename) {
		t.Fatalf("expected ErrBadFilename, got %v", err)
	}
}

func TestOpenLedger(t *testing.T) {
	dir := t.TempDir()
	l, err := OpenLedger("csv", filepath.Join(dir, "m.csv"), "")
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if _, ok := l.(*CSVLedger); !ok {
		t.Fatalf("expected CSVLedger, got %T", l)
	}
	l, err = OpenLedger("sqlite", "", filepath.Join(dir, "l.db"))
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer l.Close()
	if _, ok := l.(*SQLiteLedger); !ok {
		t.Fatalf("expected SQLiteLedger, got %T", l)
	}
	if _, err := OpenLedger("mongo", "", ""); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
