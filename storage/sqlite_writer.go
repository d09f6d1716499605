package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"playstore-analytics/models"
)

const sqliteBatchSize = 500

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS aggregate_runs (
	run_id       TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	apps_kept    INTEGER NOT NULL DEFAULT 0,
	reviews_kept INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS aggregate_buckets (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id    TEXT NOT NULL,
	aggregate TEXT NOT NULL,
	key_json  TEXT NOT NULL,
	metric    TEXT NOT NULL,
	value     REAL,
	rank_no   INTEGER NOT NULL DEFAULT 0,
	flagged   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS aggregate_gates (
	run_id    TEXT NOT NULL,
	aggregate TEXT NOT NULL,
	available INTEGER NOT NULL,
	notice    TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, aggregate)
);

CREATE INDEX IF NOT EXISTS idx_buckets_run ON aggregate_buckets(run_id);
`

// SQLiteWriter persists aggregate runs to a local SQLite file.
type SQLiteWriter struct {
	db *sqlx.DB
}

// NewSQLiteWriter opens (or creates) the database at path and applies the
// schema.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &SQLiteWriter{db: db}, nil
}

// Write stores the report in one transaction, replacing any run with the
// same id.
func (s *SQLiteWriter) Write(report *models.Report) error {
	buckets, err := bucketRecords(report)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	gates := gateRecords(report)

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"aggregate_buckets", "aggregate_gates", "aggregate_runs"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE run_id = ?", report.RunID); err != nil {
			return fmt.Errorf("sqlite: clear %s: %w", table, err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO aggregate_runs (run_id, generated_at, apps_kept, reviews_kept) VALUES (?, ?, ?, ?)`,
		report.RunID, report.GeneratedAt.UTC().Format(time.RFC3339Nano),
		report.Stats.AppsKept, report.Stats.ReviewsKept)
	if err != nil {
		return fmt.Errorf("sqlite: insert run: %w", err)
	}

	for i := 0; i < len(buckets); i += sqliteBatchSize {
		end := i + sqliteBatchSize
		if end > len(buckets) {
			end = len(buckets)
		}
		_, err := tx.NamedExec(`INSERT INTO aggregate_buckets
			(run_id, aggregate, key_json, metric, value, rank_no, flagged)
			VALUES (:run_id, :aggregate, :key_json, :metric, :value, :rank_no, :flagged)`, buckets[i:end])
		if err != nil {
			return fmt.Errorf("sqlite: insert buckets: %w", err)
		}
	}

	if len(gates) > 0 {
		_, err := tx.NamedExec(`INSERT INTO aggregate_gates (run_id, aggregate, available, notice)
			VALUES (:run_id, :aggregate, :available, :notice)`, gates)
		if err != nil {
			return fmt.Errorf("sqlite: insert gates: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// FetchBuckets retrieves the stored buckets of a run in insertion order.
func (s *SQLiteWriter) FetchBuckets(runID string) ([]BucketRecord, error) {
	var out []BucketRecord
	err := s.db.Select(&out, `
		SELECT run_id, aggregate, key_json, metric, value, rank_no, flagged
		FROM aggregate_buckets WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetch buckets: %w", err)
	}
	return out, nil
}

// FetchGates retrieves the gate records of a run.
func (s *SQLiteWriter) FetchGates(runID string) ([]GateRecord, error) {
	var out []GateRecord
	err := s.db.Select(&out, `
		SELECT run_id, aggregate, available, notice
		FROM aggregate_gates WHERE run_id = ? ORDER BY aggregate`, runID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetch gates: %w", err)
	}
	return out, nil
}

func (s *SQLiteWriter) Close() error {
	return s.db.Close()
}
