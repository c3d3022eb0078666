package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/prospector-hq/prospector/history"
	"github.com/prospector-hq/prospector/storage"
)

// AddJob registers a job title with its JD file without LLM processing.
func AddJob(ctx context.Context, title, jdPath string, opts Options) error {
	if _, err := os.Stat(jdPath); err != nil {
		return fmt.Errorf("job description file: %w", err)
	}

	store, err := storage.OpenSqlite(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	job, err := store.SaveJob(ctx, title, jdPath)
	if err != nil {
		return err
	}
	fmt.Printf("Job %q registered (id %d)\n", job.Title, job.ID)
	return nil
}

// ListJobs prints every registered job with its candidates.
func ListJobs(ctx context.Context, opts Options) error {
	store, err := storage.OpenSqlite(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	jobs, err := store.ListJobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs registered.")
		return nil
	}

	for _, job := range jobs {
		fmt.Printf("[%d] %s (%s)\n", job.ID, job.Title, job.JDFile)

		candidates, err := store.ListCandidatesForJob(ctx, job.Title)
		if err != nil {
			return err
		}
		for _, c := range candidates {
			status := "pending"
			if c.ResultFile != "" {
				status = fmt.Sprintf("scored %.1f", c.Score)
			}
			fmt.Printf("    %s <%s> - %s\n", c.Name, c.Email, status)
		}
	}
	return nil
}

// RemoveJob deletes a job and its candidates.
func RemoveJob(ctx context.Context, id int64, opts Options) error {
	store, err := storage.OpenSqlite(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.DeleteJob(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Job %d removed\n", id)
	return nil
}

// RenameJob changes a job's title, moving its candidates with it.
func RenameJob(ctx context.Context, id int64, title string, opts Options) error {
	store, err := storage.OpenSqlite(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.UpdateJobTitle(ctx, id, title); err != nil {
		return err
	}
	fmt.Printf("Job %d renamed to %q\n", id, title)
	return nil
}

// ListSessions prints the IDs of saved interview sessions.
func ListSessions(opts Options) error {
	hist, err := loadSessions(opts)
	if err != nil {
		return err
	}

	ids := hist.ListSessions()
	if len(ids) == 0 {
		fmt.Println("No saved sessions.")
		return nil
	}
	for _, id := range ids {
		fmt.Printf("%s (%d messages)\n", id, hist.MessageCount(id))
	}
	return nil
}

// ShowSession prints a saved session's conversation transcript.
func ShowSession(sessionID string, opts Options) error {
	hist, err := loadSessions(opts)
	if err != nil {
		return err
	}

	if _, ok := hist.GetSession(sessionID); !ok {
		return fmt.Errorf("session %q not found", sessionID)
	}

	// Large budget so the whole transcript prints.
	fmt.Print(hist.BuildContextString(sessionID, history.ContextOptions{
		IncludeMetadata: opts.Verbose,
		MaxLength:       1 << 30,
	}))
	return nil
}

// ExportSession writes a single saved session to a JSON file.
func ExportSession(sessionID, outPath string, opts Options) error {
	hist, err := loadSessions(opts)
	if err != nil {
		return err
	}

	session, ok := hist.ExportSession(sessionID)
	if !ok {
		return fmt.Errorf("session %q not found", sessionID)
	}

	single := history.NewManager()
	if !single.ImportSession(session) {
		return fmt.Errorf("session %q failed validation", sessionID)
	}
	if err := single.SaveToFile(outPath); err != nil {
		return err
	}

	fmt.Printf("Session %s exported to %s\n", sessionID, outPath)
	return nil
}

func loadSessions(opts Options) (*history.Manager, error) {
	files, err := storage.NewFileStore(opts.DataDir)
	if err != nil {
		return nil, err
	}

	hist := history.NewManager()
	if err := files.LoadSessionArchive(hist); err != nil {
		return nil, err
	}
	return hist, nil
}
