// Package storage provides SQLite persistence for jobs and candidates plus
// file-based storage for interview artifacts.
//
// Information Hiding:
// - SQLite connection management hidden behind interfaces
// - Schema and migration details encapsulated
// - Thread-safe via sql.DB's built-in connection pooling

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteStorage implements JobStore and CandidateStore using SQLite.
// Thread-safe: sql.DB handles connection pooling and concurrent access.
type SqliteStorage struct {
	db *sql.DB
}

// OpenSqlite opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func OpenSqlite(path string) (*SqliteStorage, error) {
	// Create parent directory if needed
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	storage := &SqliteStorage{db: db}
	if err := storage.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// NewSqliteInMemory creates an in-memory database (useful for testing).
func NewSqliteInMemory() (*SqliteStorage, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}

	storage := &SqliteStorage{db: db}
	if err := storage.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// Close closes the database connection.
func (s *SqliteStorage) Close() error {
	return s.db.Close()
}

func (s *SqliteStorage) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS jobs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE,
			jd_file TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS candidates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL UNIQUE,
			job_title TEXT NOT NULL,
			resume_file TEXT NOT NULL,
			processed_resume_path TEXT,
			result_file TEXT,
			score REAL NOT NULL DEFAULT 0,
			FOREIGN KEY (job_title) REFERENCES jobs(title)
		);

		CREATE INDEX IF NOT EXISTS idx_candidates_job
		ON candidates(job_title);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveJob inserts a job or updates the JD file of an existing title.
func (s *SqliteStorage) SaveJob(ctx context.Context, title, jdFile string) (Job, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (title, jd_file) VALUES (?, ?)
		ON CONFLICT(title) DO UPDATE SET jd_file = excluded.jd_file`,
		title, jdFile)
	if err != nil {
		return Job{}, fmt.Errorf("failed to save job: %w", err)
	}

	job, err := s.GetJobByTitle(ctx, title)
	if err != nil {
		return Job{}, err
	}
	if job == nil {
		return Job{}, fmt.Errorf("job %q missing after save", title)
	}
	return *job, nil
}

// GetJob returns a job by ID. Returns nil, nil if not found.
func (s *SqliteStorage) GetJob(ctx context.Context, id int64) (*Job, error) {
	return s.scanJob(s.db.QueryRowContext(ctx,
		"SELECT id, title, jd_file, created_at FROM jobs WHERE id = ?", id))
}

// GetJobByTitle returns a job by title. Returns nil, nil if not found.
func (s *SqliteStorage) GetJobByTitle(ctx context.Context, title string) (*Job, error) {
	return s.scanJob(s.db.QueryRowContext(ctx,
		"SELECT id, title, jd_file, created_at FROM jobs WHERE title = ?", title))
}

func (s *SqliteStorage) scanJob(row *sql.Row) (*Job, error) {
	var job Job
	var createdAt string
	err := row.Scan(&job.ID, &job.Title, &job.JDFile, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	t, err := time.Parse("2006-01-02 15:04:05", createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q in database: %w", createdAt, err)
	}
	job.CreatedAt = t
	return &job, nil
}

// ListJobs lists all jobs, newest first.
func (s *SqliteStorage) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, jd_file, created_at FROM jobs ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []Job{} // Start with empty slice, not nil
	for rows.Next() {
		var job Job
		var createdAt string
		if err := rows.Scan(&job.ID, &job.Title, &job.JDFile, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		t, err := time.Parse("2006-01-02 15:04:05", createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at %q in database: %w", createdAt, err)
		}
		job.CreatedAt = t
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}

	return jobs, nil
}

// UpdateJobTitle renames a job and moves its candidates to the new title.
func (s *SqliteStorage) UpdateJobTitle(ctx context.Context, id int64, title string) error {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %d not found", id)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "UPDATE jobs SET title = ? WHERE id = ?", title, id); err != nil {
		return fmt.Errorf("failed to update job title: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE candidates SET job_title = ? WHERE job_title = ?", title, job.Title); err != nil {
		return fmt.Errorf("failed to move candidates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteJob removes a job and its candidates.
func (s *SqliteStorage) DeleteJob(ctx context.Context, id int64) error {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// defer tx.Rollback() is safe even after Commit() - it becomes a no-op
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM candidates WHERE job_title = ?", job.Title); err != nil {
		return fmt.Errorf("failed to delete job candidates: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SaveCandidate inserts a candidate or updates the record matching the same
// phone number. A generated UUID is assigned when the candidate is new.
func (s *SqliteStorage) SaveCandidate(ctx context.Context, c Candidate) (Candidate, error) {
	existing, err := s.GetCandidateByPhone(ctx, c.Phone)
	if err != nil {
		return Candidate{}, err
	}

	if existing != nil {
		c.ID = existing.ID
		_, err := s.db.ExecContext(ctx, `
			UPDATE candidates
			SET name = ?, email = ?, job_title = ?, resume_file = ?, processed_resume_path = ?
			WHERE id = ?`,
			c.Name, c.Email, c.JobTitle, c.ResumeFile, nullIfEmpty(c.ProcessedResumePath), c.ID)
		if err != nil {
			return Candidate{}, fmt.Errorf("failed to update candidate: %w", err)
		}
		return c, nil
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO candidates (id, name, email, phone, job_title, resume_file, processed_resume_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.JobTitle, c.ResumeFile, nullIfEmpty(c.ProcessedResumePath))
	if err != nil {
		return Candidate{}, fmt.Errorf("failed to insert candidate: %w", err)
	}
	return c, nil
}

// GetCandidate returns a candidate by ID. Returns nil, nil if not found.
func (s *SqliteStorage) GetCandidate(ctx context.Context, id string) (*Candidate, error) {
	return s.scanCandidate(s.db.QueryRowContext(ctx,
		candidateColumns+" WHERE id = ?", id))
}

// GetCandidateByPhone returns a candidate by phone. Returns nil, nil if not found.
func (s *SqliteStorage) GetCandidateByPhone(ctx context.Context, phone string) (*Candidate, error) {
	return s.scanCandidate(s.db.QueryRowContext(ctx,
		candidateColumns+" WHERE phone = ?", phone))
}

const candidateColumns = `
	SELECT id, name, email, phone, job_title, resume_file, processed_resume_path, result_file, score
	FROM candidates`

func (s *SqliteStorage) scanCandidate(row *sql.Row) (*Candidate, error) {
	var c Candidate
	var processed, result sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.JobTitle,
		&c.ResumeFile, &processed, &result, &c.Score)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan candidate: %w", err)
	}

	if processed.Valid {
		c.ProcessedResumePath = processed.String
	}
	if result.Valid {
		c.ResultFile = result.String
	}
	return &c, nil
}

// ListCandidatesForJob lists candidates registered against a job title.
func (s *SqliteStorage) ListCandidatesForJob(ctx context.Context, jobTitle string) ([]Candidate, error) {
	rows, err := s.db.QueryContext(ctx,
		candidateColumns+" WHERE job_title = ? ORDER BY name ASC", jobTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []Candidate{} // Start with empty slice, not nil
	for rows.Next() {
		var c Candidate
		var processed, result sql.NullString
		err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.JobTitle,
			&c.ResumeFile, &processed, &result, &c.Score)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if processed.Valid {
			c.ProcessedResumePath = processed.String
		}
		if result.Valid {
			c.ResultFile = result.String
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}

	return candidates, nil
}

// SetCandidateResult records the interview report path and score.
func (s *SqliteStorage) SetCandidateResult(ctx context.Context, id, resultFile string, score float64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE candidates SET result_file = ?, score = ? WHERE id = ?",
		resultFile, score, id)
	if err != nil {
		return fmt.Errorf("failed to set candidate result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("candidate %s not found", id)
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Verify SqliteStorage implements all interfaces
var _ JobStore = (*SqliteStorage)(nil)
var _ CandidateStore = (*SqliteStorage)(nil)
