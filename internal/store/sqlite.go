package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"pricelist-profit/internal/model"
)

const ledgerSchema = `CREATE TABLE IF NOT EXISTS uploads (
	country     TEXT NOT NULL,
	filename    TEXT NOT NULL,
	filepath    TEXT NOT NULL,
	upload_date TEXT NOT NULL,
	PRIMARY KEY (country, filename)
)`

// SQLiteLedger keeps the ledger in a sqlite database so concurrent
// uploads cannot lose each other's rows.
type SQLiteLedger struct {
	db *sql.DB
}

// OpenSQLiteLedger opens (creating if needed) the database at path.
func OpenSQLiteLedger(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite ledger: %w", err)
	}
	// One writer; sqlite serializes anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(ledgerSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger table: %w", err)
	}
	return &SQLiteLedger{db: db}, nil
}

func (l *SQLiteLedger) Upsert(ctx context.Context, u model.Upload) error {
	_, err := l.db.ExecContext(ctx, `INSERT INTO uploads (country, filename, filepath, upload_date)
VALUES (?, ?, ?, ?)
ON CONFLICT (country, filename) DO UPDATE SET filepath = excluded.filepath, upload_date = excluded.upload_date`,
		u.Country, u.Filename, u.Filepath, u.UploadDate.Format(model.UploadDateLayout))
	if err != nil {
		return fmt.Errorf("upsert upload: %w", err)
	}
	return nil
}

func (l *SQLiteLedger) List(ctx context.Context, country string) ([]model.Upload, error) {
	q := `SELECT country, filename, filepath, upload_date FROM uploads`
	var args []any
	if country != "" {
		q += ` WHERE country = ?`
		args = append(args, country)
	}
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	out := []model.Upload{}
	for rows.Next() {
		var u model.Upload
		var date string
		if err := rows.Scan(&u.Country, &u.Filename, &u.Filepath, &date); err != nil {
			return nil, err
		}
		u.UploadDate = parseUploadDate(date)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortUploads(out)
	return out, nil
}

func (l *SQLiteLedger) Get(ctx context.Context, country, filename string) (model.Upload, error) {
	var u model.Upload
	var date string
	err := l.db.QueryRowContext(ctx,
		`SELECT country, filename, filepath, upload_date FROM uploads WHERE country = ? AND filename = ?`,
		country, filename).Scan(&u.Country, &u.Filename, &u.Filepath, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Upload{}, fmt.Errorf("upload %s/%s: %w", country, filename, ErrNotFound)
	}
	if err != nil {
		return model.Upload{}, err
	}
	u.UploadDate = parseUploadDate(date)
	return u, nil
}

func (l *SQLiteLedger) Close() error { return l.db.Close() }
