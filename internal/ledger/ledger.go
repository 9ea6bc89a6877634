// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records every build run and the content hash of each
// document it wrote, so unchanged output can be reported and the build
// history inspected.
package ledger

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cv-engine/pkg/types"
)

const (
	ledgerDir = ".cv-engine"
	dbFile    = "ledger.db"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Store manages the ledger SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Path returns the ledger database path for an output directory.
func Path(outputDir string) string {
	return filepath.Join(outputDir, ledgerDir, dbFile)
}

// Open opens or creates the ledger at outputDir/.cv-engine/ledger.db and
// creates the schema if it does not exist.
func Open(outputDir string, opts ...Option) (*Store, error) {
	dbPath := Path(outputDir)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			status TEXT NOT NULL,
			rows_kept INTEGER NOT NULL DEFAULT 0,
			rows_skipped INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			hash TEXT NOT NULL,
			bytes INTEGER NOT NULL,
			changed INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_name ON documents(name)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_run ON documents(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Hash returns the hex sha256 of the document body with its "last updated"
// line removed, so a rebuild from unchanged data hashes identically.
func Hash(doc types.Document) string {
	body := doc.Body
	if doc.Stamp != "" {
		body = strings.Replace(body, doc.Stamp, "", 1)
	}
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

// DocumentEntry is one document row of a run.
type DocumentEntry struct {
	Name    string
	Hash    string
	Bytes   int
	Changed bool
}

// Run is one recorded build.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Status      string
	RowsKept    int
	RowsSkipped int
	Documents   []DocumentEntry
}

// BeginRun inserts a running run and returns its id.
func (s *Store) BeginRun(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, status) VALUES (?, ?, ?)`,
		id, s.now().UTC().Format(time.RFC3339Nano), StatusRunning,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return id, nil
}

// RecordDocument stores the hash of doc under runID and reports whether it
// differs from the last recorded version of the same document.
func (s *Store) RecordDocument(ctx context.Context, runID string, doc types.Document) (bool, error) {
	hash := Hash(doc)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	changed, err := changedSince(ctx, tx, doc.Name, hash)
	if err != nil {
		return false, err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (run_id, name, hash, bytes, changed) VALUES (?, ?, ?, ?, ?)`,
		runID, doc.Name, hash, len(doc.Body), changed,
	)
	if err != nil {
		return false, fmt.Errorf("inserting document %s: %w", doc.Name, err)
	}
	return changed, tx.Commit()
}

// FinishRun closes a run with its final status and row counts.
func (s *Store) FinishRun(ctx context.Context, runID, status string, kept, skipped int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, rows_kept = ?, rows_skipped = ? WHERE id = ?`,
		s.now().UTC().Format(time.RFC3339Nano), status, kept, skipped, runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finishing run: unknown run %s", runID)
	}
	return nil
}

// Changed reports whether hash differs from the last recorded hash of the
// named document. A document never recorded is changed.
func (s *Store) Changed(ctx context.Context, name, hash string) (bool, error) {
	return changedSince(ctx, s.db, name, hash)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func changedSince(ctx context.Context, q queryer, name, hash string) (bool, error) {
	var last string
	err := q.QueryRowContext(ctx,
		`SELECT hash FROM documents WHERE name = ? ORDER BY rowid DESC LIMIT 1`, name,
	).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading last hash of %s: %w", name, err)
	}
	return last != hash, nil
}

// History returns the most recent runs, newest first, with their
// documents. A limit of 0 or less returns every run.
func (s *Store) History(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, COALESCE(finished_at, ''), status, rows_kept, rows_skipped
		FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Status, &r.RowsKept, &r.RowsSkipped); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range runs {
		docs, err := s.documents(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Documents = docs
	}
	return runs, nil
}

func (s *Store) documents(ctx context.Context, runID string) ([]DocumentEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, hash, bytes, changed FROM documents WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentEntry
	for rows.Next() {
		var d DocumentEntry
		if err := rows.Scan(&d.Name, &d.Hash, &d.Bytes, &d.Changed); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
