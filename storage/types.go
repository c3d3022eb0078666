package storage

import (
	"context"
	"time"
)

// Job is a job opening candidates interview for.
type Job struct {
	ID        int64
	Title     string
	JDFile    string
	CreatedAt time.Time
}

// Candidate is an applicant registered against a job.
type Candidate struct {
	ID                  string
	Name                string
	Email               string
	Phone               string
	JobTitle            string
	ResumeFile          string
	ProcessedResumePath string
	ResultFile          string
	Score               float64
}

// JobStore persists job openings.
type JobStore interface {
	// SaveJob inserts a job or updates the JD file of an existing title.
	SaveJob(ctx context.Context, title, jdFile string) (Job, error)
	// GetJob returns a job by ID. Returns nil, nil if not found.
	GetJob(ctx context.Context, id int64) (*Job, error)
	// GetJobByTitle returns a job by title. Returns nil, nil if not found.
	GetJobByTitle(ctx context.Context, title string) (*Job, error)
	// ListJobs lists all jobs, newest first.
	ListJobs(ctx context.Context) ([]Job, error)
	// UpdateJobTitle renames a job.
	UpdateJobTitle(ctx context.Context, id int64, title string) error
	// DeleteJob removes a job and its candidates.
	DeleteJob(ctx context.Context, id int64) error
}

// CandidateStore persists candidates and their interview artifacts.
type CandidateStore interface {
	// SaveCandidate inserts a candidate or updates the record matching the
	// same phone number.
	SaveCandidate(ctx context.Context, c Candidate) (Candidate, error)
	// GetCandidate returns a candidate by ID. Returns nil, nil if not found.
	GetCandidate(ctx context.Context, id string) (*Candidate, error)
	// GetCandidateByPhone returns a candidate by phone number. Returns
	// nil, nil if not found.
	GetCandidateByPhone(ctx context.Context, phone string) (*Candidate, error)
	// ListCandidatesForJob lists candidates registered against a job title.
	ListCandidatesForJob(ctx context.Context, jobTitle string) ([]Candidate, error)
	// SetCandidateResult records the interview report path and score.
	SetCandidateResult(ctx context.Context, id, resultFile string, score float64) error
}
