package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/umputun/texpress/app/web/enums"
)

// ErrNotFound returned when a job is not in the history
var ErrNotFound = errors.New("not found")

// JobRecord is a single processed request
type JobRecord struct {
	ID         string
	Kind       enums.JobKind
	Status     enums.JobStatus
	StartedAt  time.Time
	FinishedAt time.Time
	InputSize  int
	OutputSize int64
	Details    string // diagnostics or error text for unsuccessful jobs
}

// Stats aggregates job counts by status
type Stats struct {
	Total    int `db:"total" json:"total"`
	Success  int `db:"success" json:"success"`
	Rejected int `db:"rejected" json:"rejected"`
	Failed   int `db:"failed" json:"failed"`
	Error    int `db:"error" json:"error"`
}

// jobRow is the database representation of JobRecord, timestamps kept as unix milliseconds
type jobRow struct {
	ID         string          `db:"id"`
	Kind       enums.JobKind   `db:"kind"`
	Status     enums.JobStatus `db:"status"`
	StartedAt  int64           `db:"started_at"`
	FinishedAt int64           `db:"finished_at"`
	InputSize  int             `db:"input_size"`
	OutputSize int64           `db:"output_size"`
	Details    string          `db:"details"`
}

func (r jobRow) record() JobRecord {
	return JobRecord{
		ID:         r.ID,
		Kind:       r.Kind,
		Status:     r.Status,
		StartedAt:  time.UnixMilli(r.StartedAt),
		FinishedAt: time.UnixMilli(r.FinishedAt),
		InputSize:  r.InputSize,
		OutputSize: r.OutputSize,
		Details:    r.Details,
	}
}

// SQLiteStore implements job history using SQLite
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) the database and makes the schema
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to set WAL mode: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initialize(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("%w (also failed to close db: %v)", err, closeErr)
		}
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			status TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			input_size INTEGER DEFAULT 0,
			output_size INTEGER DEFAULT 0,
			details TEXT DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_started_at ON jobs(started_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// RecordJob stores a processed job, replacing a record with the same id
func (s *SQLiteStore) RecordJob(rec JobRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	row := jobRow{
		ID:         rec.ID,
		Kind:       rec.Kind,
		Status:     rec.Status,
		StartedAt:  rec.StartedAt.UnixMilli(),
		FinishedAt: rec.FinishedAt.UnixMilli(),
		InputSize:  rec.InputSize,
		OutputSize: rec.OutputSize,
		Details:    rec.Details,
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT OR REPLACE INTO jobs (id, kind, status, started_at, finished_at, input_size, output_size, details)
		VALUES (:id, :kind, :status, :started_at, :finished_at, :input_size, :output_size, :details)`, row)
	if err != nil {
		return fmt.Errorf("failed to record job %s: %w", rec.ID, err)
	}
	return nil
}

// ListJobs returns up to limit most recent jobs, newest first
func (s *SQLiteStore) ListJobs(limit int) ([]JobRecord, error) {
	var rows []jobRow
	err := s.db.Select(&rows, `SELECT id, kind, status, started_at, finished_at, input_size, output_size, details
		FROM jobs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}

	res := make([]JobRecord, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.record())
	}
	return res, nil
}

// GetJob returns a job by id or ErrNotFound
func (s *SQLiteStore) GetJob(id string) (JobRecord, error) {
	var row jobRow
	err := s.db.Get(&row, `SELECT id, kind, status, started_at, finished_at, input_size, output_size, details
		FROM jobs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return JobRecord{}, ErrNotFound
	}
	if err != nil {
		return JobRecord{}, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	return row.record(), nil
}

// Stats returns job counts by status
func (s *SQLiteStore) Stats() (Stats, error) {
	var st Stats
	err := s.db.Get(&st, `SELECT
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0) AS success,
		COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0) AS rejected,
		COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) AS failed,
		COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0) AS error
		FROM jobs`)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count jobs: %w", err)
	}
	return st, nil
}

// CleanupOldJobs keeps only the most recent keep jobs, returns the number of removed records
func (s *SQLiteStore) CleanupOldJobs(keep int) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM jobs WHERE id NOT IN (
		SELECT id FROM jobs ORDER BY started_at DESC, rowid DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup jobs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
