package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/adventcal/internal/model"
)

// dbFileName is the SQLite database file name under the history directory.
const dbFileName = "adventcal.db"

// HistoryDB provides SQLite-based storage for crawl-run summaries.
//
// Design decision: We use modernc.org/sqlite (a pure-Go driver) so the
// binary builds without cgo and cross-compiles cleanly. Run history is
// tiny and write-once, so driver performance is irrelevant.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// With CreateIfNotExists the directory and database file are created as
// needed; without it a missing database is an error.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw prevents the driver from creating a new file when the
	// caller required an existing database.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer; one connection is all we need.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (h *HistoryDB) createTables() error {
	schema := `
	-- Runs store one row per completed crawl invocation
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		year INTEGER NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		calendars INTEGER NOT NULL DEFAULT 0,
		items INTEGER NOT NULL DEFAULT 0,
		likers INTEGER NOT NULL DEFAULT 0,
		skipped_items INTEGER NOT NULL DEFAULT 0,
		request_count INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		output_files TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_year ON runs(year);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// Run is a stored crawl-run record.
type Run struct {
	ID           int64
	Kind         string
	Year         int
	Category     string
	Calendars    int
	Items        int
	Likers       int
	SkippedItems int64
	RequestCount int64
	StartedAt    time.Time
	FinishedAt   time.Time
	OutputFiles  []string
}

// SaveRun inserts a run summary and returns its row ID.
func (h *HistoryDB) SaveRun(ctx context.Context, summary *model.Summary) (int64, error) {
	filesJSON, err := json.Marshal(summary.OutputFiles)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize output files: %w", err)
	}

	query := `
	INSERT INTO runs (kind, year, category, calendars, items, likers,
		skipped_items, request_count, started_at, finished_at, output_files)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := h.db.ExecContext(ctx, query,
		summary.Kind,
		summary.Year,
		summary.Category,
		summary.Calendars,
		summary.Items,
		summary.Likers,
		summary.SkippedItems,
		summary.RequestCount,
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.FinishedAt.UTC().Format(time.RFC3339Nano),
		string(filesJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
// A non-positive limit returns all runs.
func (h *HistoryDB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
	SELECT id, kind, year, category, calendars, items, likers,
		skipped_items, request_count, started_at, finished_at, output_files
	FROM runs
	ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			finishedAt string
			filesJSON  sql.NullString
		)
		if err := rows.Scan(
			&run.ID,
			&run.Kind,
			&run.Year,
			&run.Category,
			&run.Calendars,
			&run.Items,
			&run.Likers,
			&run.SkippedItems,
			&run.RequestCount,
			&startedAt,
			&finishedAt,
			&filesJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = parseTimestamp(startedAt)
		run.FinishedAt = parseTimestamp(finishedAt)

		if filesJSON.Valid && filesJSON.String != "" {
			if err := json.Unmarshal([]byte(filesJSON.String), &run.OutputFiles); err != nil {
				return nil, fmt.Errorf("failed to parse output files for run %d: %w", run.ID, err)
			}
		}

		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// parseTimestamp converts a timestamp column value into time.Time.
// Timestamps are stored as RFC 3339 text, but older database files may
// hold SQLite's own DATETIME formatting, so several layouts are tried.
func parseTimestamp(s string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999",
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
