package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"playstore-analytics/models"
	"playstore-analytics/utils"
)

const postgresBatchSize = 50

// PostgresWriter persists aggregate runs to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, retries the ping up
// to attempts times, runs schema migrations and returns a ready writer.
func NewPostgresWriter(dsn string, attempts int, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := utils.RetryConfig{MaxAttempts: attempts, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS aggregate_runs (
			run_id        TEXT        PRIMARY KEY,
			generated_at  TIMESTAMPTZ NOT NULL,
			apps_kept     INTEGER     NOT NULL DEFAULT 0,
			reviews_kept  INTEGER     NOT NULL DEFAULT 0,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS aggregate_buckets (
			id         SERIAL PRIMARY KEY,
			run_id     TEXT    NOT NULL REFERENCES aggregate_runs(run_id) ON DELETE CASCADE,
			aggregate  TEXT    NOT NULL,
			key_json   TEXT    NOT NULL,
			metric     TEXT    NOT NULL,
			value      DOUBLE PRECISION,
			rank_no    INTEGER NOT NULL DEFAULT 0,
			flagged    BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE IF NOT EXISTS aggregate_gates (
			run_id     TEXT    NOT NULL REFERENCES aggregate_runs(run_id) ON DELETE CASCADE,
			aggregate  TEXT    NOT NULL,
			available  BOOLEAN NOT NULL,
			notice     TEXT    NOT NULL DEFAULT '',
			PRIMARY KEY (run_id, aggregate)
		);

		CREATE INDEX IF NOT EXISTS idx_buckets_run       ON aggregate_buckets(run_id);
		CREATE INDEX IF NOT EXISTS idx_buckets_aggregate ON aggregate_buckets(aggregate);
	`)
	return err
}

// DeleteRun removes a stored run and everything attached to it.
func (pw *PostgresWriter) DeleteRun(runID string) error {
	_, err := pw.db.Exec("DELETE FROM aggregate_runs WHERE run_id = $1", runID)
	if err != nil {
		return fmt.Errorf("postgres: delete run: %w", err)
	}
	return nil
}

// Write stores the report as one run, replacing any run with the same id.
func (pw *PostgresWriter) Write(report *models.Report) error {
	buckets, err := bucketRecords(report)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	if err := pw.DeleteRun(report.RunID); err != nil {
		return err
	}

	_, err = pw.db.Exec(
		`INSERT INTO aggregate_runs (run_id, generated_at, apps_kept, reviews_kept) VALUES ($1, $2, $3, $4)`,
		report.RunID, report.GeneratedAt, report.Stats.AppsKept, report.Stats.ReviewsKept)
	if err != nil {
		return fmt.Errorf("postgres: insert run: %w", err)
	}

	for i := 0; i < len(buckets); i += postgresBatchSize {
		end := i + postgresBatchSize
		if end > len(buckets) {
			end = len(buckets)
		}
		if err := pw.insertBatch(buckets[i:end]); err != nil {
			return fmt.Errorf("postgres: insert buckets: %w", err)
		}
	}

	for _, g := range gateRecords(report) {
		_, err := pw.db.Exec(
			`INSERT INTO aggregate_gates (run_id, aggregate, available, notice) VALUES ($1, $2, $3, $4)`,
			g.RunID, g.Aggregate, g.Available, g.Notice)
		if err != nil {
			return fmt.Errorf("postgres: insert gate: %w", err)
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []BucketRecord) error {
	const cols = 7
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, b := range batch {
		base := idx * cols
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			b.RunID, b.Aggregate, b.Key, b.Metric, b.Value, b.Rank, b.Flagged)
	}

	query := fmt.Sprintf(`
		INSERT INTO aggregate_buckets (run_id, aggregate, key_json, metric, value, rank_no, flagged)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchBuckets retrieves the stored buckets of a run in insertion order.
func (pw *PostgresWriter) FetchBuckets(runID string) ([]BucketRecord, error) {
	rows, err := pw.db.Query(`
		SELECT run_id, aggregate, key_json, metric, value, rank_no, flagged
		FROM aggregate_buckets
		WHERE run_id = $1
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch buckets: %w", err)
	}
	defer rows.Close()

	var out []BucketRecord
	for rows.Next() {
		var b BucketRecord
		if err := rows.Scan(&b.RunID, &b.Aggregate, &b.Key, &b.Metric, &b.Value, &b.Rank, &b.Flagged); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
