package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
	"github.com/cognicore/wordfreq/pkg/wordfreq/topk"
)

const (
	kindTop    = "top"
	kindBottom = "bottom"

	// fixed width so created_at sorts as text
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	created_at TEXT NOT NULL,
	k INTEGER NOT NULL,
	total_tokens INTEGER NOT NULL,
	distinct_words INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS reports_created_at ON reports(created_at);

CREATE TABLE IF NOT EXISTS report_entries (
	report_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	rank INTEGER NOT NULL,
	word TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(report_id, kind, rank),
	FOREIGN KEY(report_id) REFERENCES reports(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveReport inserts or replaces a report and its entries
func (s *sqliteStore) SaveReport(ctx context.Context, r report.Report) error {
	if r.ID == "" {
		return fmt.Errorf("%w: report ID is required", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO reports (id, source, created_at, k, total_tokens, distinct_words)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source=excluded.source,
	created_at=excluded.created_at,
	k=excluded.k,
	total_tokens=excluded.total_tokens,
	distinct_words=excluded.distinct_words;
`
	_, err = tx.ExecContext(ctx, stmt,
		r.ID,
		r.Source,
		r.CreatedAt.UTC().Format(timeLayout),
		r.K,
		r.TotalTokens,
		r.DistinctWords,
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM report_entries WHERE report_id = ?`, r.ID); err != nil {
		return err
	}
	if err := insertEntries(ctx, tx, r.ID, kindTop, r.Top); err != nil {
		return err
	}
	if err := insertEntries(ctx, tx, r.ID, kindBottom, r.Bottom); err != nil {
		return err
	}

	return tx.Commit()
}

func insertEntries(ctx context.Context, tx *sql.Tx, id, kind string, entries []topk.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO report_entries (report_id, kind, rank, word, count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, id, kind, i, e.Word, e.Count); err != nil {
			return err
		}
	}
	return nil
}

// GetReport returns a report by ID
func (s *sqliteStore) GetReport(ctx context.Context, id string) (report.Report, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, source, created_at, k, total_tokens, distinct_words
FROM reports WHERE id = ?`, id)

	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Report{}, fmt.Errorf("report %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return report.Report{}, err
	}

	if err := s.loadEntries(ctx, &r); err != nil {
		return report.Report{}, err
	}
	return r, nil
}

// ListReports returns the newest reports first
func (s *sqliteStore) ListReports(ctx context.Context, limit int) ([]report.Report, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, source, created_at, k, total_tokens, distinct_words
FROM reports ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range out {
		if err := s.loadEntries(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(sc scanner) (report.Report, error) {
	var (
		r       report.Report
		created string
	)
	if err := sc.Scan(&r.ID, &r.Source, &created, &r.K, &r.TotalTokens, &r.DistinctWords); err != nil {
		return report.Report{}, err
	}
	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return report.Report{}, fmt.Errorf("parse created_at for %s: %w", r.ID, err)
	}
	r.CreatedAt = ts
	return r, nil
}

func (s *sqliteStore) loadEntries(ctx context.Context, r *report.Report) error {
	rows, err := s.db.QueryContext(ctx, `
SELECT kind, word, count FROM report_entries
WHERE report_id = ? ORDER BY kind, rank`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	r.Top = []topk.Entry{}
	r.Bottom = []topk.Entry{}
	for rows.Next() {
		var (
			kind string
			e    topk.Entry
		)
		if err := rows.Scan(&kind, &e.Word, &e.Count); err != nil {
			return err
		}
		switch kind {
		case kindTop:
			r.Top = append(r.Top, e)
		case kindBottom:
			r.Bottom = append(r.Bottom, e)
		}
	}
	return rows.Err()
}
