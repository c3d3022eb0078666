// Command execution for CLI commands.
//
// Information Hiding:
// - Provider and settings setup hidden
// - Pipeline wiring (extractor, processor, generator) hidden
// - Output formatting hidden

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/prospector-hq/prospector/config"
	"github.com/prospector-hq/prospector/interview"
	"github.com/prospector-hq/prospector/llm"
	"github.com/prospector-hq/prospector/schema"
	"github.com/prospector-hq/prospector/storage"
)

// Options holds CLI execution options.
type Options struct {
	Provider string
	DBPath   string
	DataDir  string
	Verbose  bool
}

// DefaultOptions returns default CLI options.
func DefaultOptions() Options {
	return Options{
		DBPath:  "prospector.db",
		DataDir: "data",
	}
}

// ProcessResume extracts structured data from a resume file, saves the
// processed form, and registers the candidate against a job when one is
// given.
func ProcessResume(ctx context.Context, resumePath, jobTitle string, opts Options) error {
	provider, _, err := createProviders(opts.Provider)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	extractor := interview.NewResumeExtractor(provider)
	resume, err := extractor.Extract(ctx, string(raw))
	if err != nil {
		return err
	}

	files, err := storage.NewFileStore(opts.DataDir)
	if err != nil {
		return err
	}
	processedPath, err := files.SaveProcessedResume(resume.PersonalDetails.Name, resume)
	if err != nil {
		return err
	}

	if jobTitle != "" {
		store, err := storage.OpenSqlite(opts.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		candidate, err := store.SaveCandidate(ctx, storage.Candidate{
			Name:                resume.PersonalDetails.Name,
			Email:               resume.PersonalDetails.Email,
			Phone:               resume.PersonalDetails.Phone,
			JobTitle:            jobTitle,
			ResumeFile:          resumePath,
			ProcessedResumePath: processedPath,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Registered candidate %s (%s) for %q\n", candidate.Name, candidate.ID, jobTitle)
	}

	printJSON(resume)
	fmt.Printf("\nProcessed resume saved to %s\n", processedPath)
	return nil
}

// ProcessJD summarizes a job description file and registers the job.
func ProcessJD(ctx context.Context, jdPath, title string, opts Options) error {
	provider, _, err := createProviders(opts.Provider)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(jdPath)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	processor := interview.NewJDProcessor(provider)
	jd, err := processor.Process(ctx, string(raw))
	if err != nil {
		return err
	}

	if title == "" {
		title = jd.Title
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

	printJSON(jd)
	fmt.Printf("\nJob %q registered (id %d)\n", job.Title, job.ID)
	return nil
}

// GenerateQuestions builds the question set for a resume and a registered
// job, printing it as JSON.
func GenerateQuestions(ctx context.Context, resumePath, jobTitle string, opts Options) error {
	provider, _, err := createProviders(opts.Provider)
	if err != nil {
		return err
	}

	settings, err := config.New(opts.Provider)
	if err != nil {
		return err
	}

	resume, jd, err := loadMaterial(ctx, provider, resumePath, jobTitle, opts)
	if err != nil {
		return err
	}

	generator := interview.NewQuestionGenerator(provider, settings.Interview.QuestionsPerSection)
	questions, err := generator.Generate(ctx, resume, jd)
	if err != nil {
		return err
	}

	printJSON(questions)
	return nil
}

// loadMaterial extracts the resume and looks up + processes the job's JD.
func loadMaterial(ctx context.Context, provider llm.Provider, resumePath, jobTitle string, opts Options) (schema.Resume, schema.JobDescription, error) {
	raw, err := os.ReadFile(resumePath)
	if err != nil {
		return schema.Resume{}, schema.JobDescription{}, fmt.Errorf("failed to read resume: %w", err)
	}

	resume, err := interview.NewResumeExtractor(provider).Extract(ctx, string(raw))
	if err != nil {
		return schema.Resume{}, schema.JobDescription{}, err
	}

	store, err := storage.OpenSqlite(opts.DBPath)
	if err != nil {
		return schema.Resume{}, schema.JobDescription{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	job, err := store.GetJobByTitle(ctx, jobTitle)
	if err != nil {
		return schema.Resume{}, schema.JobDescription{}, err
	}
	if job == nil {
		return schema.Resume{}, schema.JobDescription{}, fmt.Errorf("job %q not found - register it with 'prospector jd'", jobTitle)
	}

	jdText, err := os.ReadFile(job.JDFile)
	if err != nil {
		return schema.Resume{}, schema.JobDescription{}, fmt.Errorf("failed to read job description: %w", err)
	}

	jd, err := interview.NewJDProcessor(provider).Process(ctx, string(jdText))
	if err != nil {
		return schema.Resume{}, schema.JobDescription{}, err
	}

	return resume, jd, nil
}

// createProviders builds the chat provider and the reasoning provider used
// for answer evaluation.
func createProviders(providerName string) (llm.Provider, llm.Provider, error) {
	if providerName == "" {
		return nil, nil, fmt.Errorf("--provider is required for this command")
	}

	providerType, err := llm.ParseProviderType(providerName)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (supported: %s)", err, strings.Join(config.SupportedProviders(), ", "))
	}

	settings, err := config.New(providerName)
	if err != nil {
		return nil, nil, err
	}

	apiKey, err := config.APIKeyFor(providerName)
	if err != nil {
		return nil, nil, err
	}

	chat, err := providerType.
		Model(settings.LLM.Model).
		MaxTokens(settings.LLM.MaxTokens).
		Temperature(float32(settings.LLM.Temperature)).
		APIKey(apiKey)
	if err != nil {
		return nil, nil, err
	}

	reasoning, err := providerType.
		Model(settings.LLM.ReasoningModel).
		MaxTokens(settings.LLM.MaxTokens).
		APIKey(apiKey)
	if err != nil {
		return nil, nil, err
	}

	return chat, reasoning, nil
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
