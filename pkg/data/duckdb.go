package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         VARCHAR PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	document   VARCHAR NOT NULL,
	logos_dir  VARCHAR NOT NULL,
	dry_run    BOOLEAN NOT NULL,
	updated    INTEGER NOT NULL,
	missing    INTEGER NOT NULL,
	skipped    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_chapters (
	run_id            VARCHAR NOT NULL,
	idx               INTEGER NOT NULL,
	chapter_id        VARCHAR,
	title             VARCHAR,
	outcome           VARCHAR NOT NULL,
	expected_filename VARCHAR,
	local_path        VARCHAR,
	original_url      VARCHAR,
	PRIMARY KEY (run_id, idx)
);`

// InitDuckDB opens (creating if needed) the ledger database at path.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return db, nil
}

// Repository stores run reports.
type Repository struct {
	db *sql.DB
}

// OpenLedger opens the ledger at path.
func OpenLedger(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Close releases the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveRun persists a run and its per-chapter results. A missing ID or start
// time is filled in.
func (r *Repository) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs (id, started_at, document, logos_dir, dry_run, updated, missing, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.Document, run.LogosDir, run.DryRun,
		run.Report.Updated, run.Report.Missing, run.Report.Skipped)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	for _, res := range run.Report.Results {
		_, err := tx.ExecContext(ctx, `INSERT INTO run_chapters (run_id, idx, chapter_id, title, outcome, expected_filename, local_path, original_url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, res.Index, res.ChapterID, res.Title, string(res.Outcome),
			res.ExpectedFilename, res.LocalPath, res.OriginalURL)
		if err != nil {
			return fmt.Errorf("failed to save chapter %d of run: %w", res.Index, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs first, without per-chapter results.
// limit <= 0 returns every run.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, started_at, document, logos_dir, dry_run, updated, missing, skipped
		FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.Document, &run.LogosDir, &run.DryRun,
			&run.Report.Updated, &run.Report.Missing, &run.Report.Skipped); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads a run with its per-chapter results, or nil if it does not exist.
func (r *Repository) GetRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{}
	err := r.db.QueryRowContext(ctx, `SELECT id, started_at, document, logos_dir, dry_run, updated, missing, skipped
		FROM runs WHERE id = ?`, id).Scan(&run.ID, &run.StartedAt, &run.Document, &run.LogosDir, &run.DryRun,
		&run.Report.Updated, &run.Report.Missing, &run.Report.Skipped)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT idx, chapter_id, title, outcome, expected_filename, local_path, original_url
		FROM run_chapters WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapters of run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var res Result
		var outcome string
		if err := rows.Scan(&res.Index, &res.ChapterID, &res.Title, &outcome,
			&res.ExpectedFilename, &res.LocalPath, &res.OriginalURL); err != nil {
			return nil, err
		}
		res.Outcome = Outcome(outcome)
		run.Report.Results = append(run.Report.Results, res)
	}
	return run, rows.Err()
}
