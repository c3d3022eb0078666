package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/prospector-hq/prospector/config"
	"github.com/prospector-hq/prospector/history"
	"github.com/prospector-hq/prospector/interview"
	"github.com/prospector-hq/prospector/llm"
	"github.com/prospector-hq/prospector/schema"
	"github.com/prospector-hq/prospector/storage"
)

// RunInterview conducts an interactive interview for a registered candidate:
// generates the question set, asks each question on stdin, evaluates every
// answer, and saves the report plus the full session history.
func RunInterview(ctx context.Context, candidatePhone string, opts Options) error {
	chat, reasoning, err := createProviders(opts.Provider)
	if err != nil {
		return err
	}

	settings, err := config.New(opts.Provider)
	if err != nil {
		return err
	}

	store, err := storage.OpenSqlite(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	candidate, err := store.GetCandidateByPhone(ctx, candidatePhone)
	if err != nil {
		return err
	}
	if candidate == nil {
		return fmt.Errorf("no candidate with phone %q - register one with 'prospector resume --job'", candidatePhone)
	}

	resume, jd, err := loadMaterial(ctx, chat, candidate.ResumeFile, candidate.JobTitle, opts)
	if err != nil {
		return err
	}

	generator := interview.NewQuestionGenerator(chat, settings.Interview.QuestionsPerSection)
	questions, err := generator.Generate(ctx, resume, jd)
	if err != nil {
		return err
	}

	fmt.Printf("Interview for %s - %s (%d questions). Type your answer and press Enter; 'skip' to pass.\n\n",
		candidate.Name, candidate.JobTitle, questions.Count())

	files, err := storage.NewFileStore(opts.DataDir)
	if err != nil {
		return err
	}

	hist := history.NewManager()
	if err := files.LoadSessionArchive(hist); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load prior sessions: %v\n", err)
	}
	hc := llm.NewHistoryClient(chat, hist, settings.Interview.HistoryWindow, settings.Interview.ContextMaxLength)
	engine := interview.NewEngine(hc, reasoning, settings.Interview.MaxFollowUps)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	report, err := engine.Run(ctx, candidate.JobTitle, candidate.Name, questions, func(q schema.QuestionItem) (string, error) {
		fmt.Printf("[Q%d, %s] %s\n> ", q.ID, q.Difficulty, q.Question)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("input closed")
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "skip" {
			answer = ""
		}
		fmt.Println()
		return answer, nil
	})
	if err != nil {
		return err
	}

	reportPath, err := files.SaveInterviewReport(candidate.JobTitle, candidate.Name, report)
	if err != nil {
		return err
	}
	if err := store.SetCandidateResult(ctx, candidate.ID, reportPath, report.OverallScore); err != nil {
		return err
	}

	if err := files.SaveSessionArchive(hist); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save session history: %v\n", err)
	}

	fmt.Printf("Interview complete. Overall score: %.1f/10\n", report.OverallScore)
	fmt.Printf("Report: %s\n", reportPath)
	return nil
}
