// Package interview implements the interview pipeline: resume extraction,
// job description processing, question generation, answer evaluation with
// follow-up probing, and the engine that runs a full interview session.
//
// Information Hiding:
// - Prompt construction hidden behind each component
// - JSON response decoding hidden behind llm.AskStructured
// - Session bookkeeping hidden inside the engine

package interview

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/prospector-hq/prospector/llm"
	"github.com/prospector-hq/prospector/schema"
)

// ResumeExtractor converts raw resume text into a structured Resume.
type ResumeExtractor struct {
	provider llm.Provider
}

// NewResumeExtractor creates a resume extractor.
func NewResumeExtractor(provider llm.Provider) *ResumeExtractor {
	return &ResumeExtractor{provider: provider}
}

// Extract parses raw resume text. Returns an error when the text is empty or
// the provider produces no usable JSON.
func (e *ResumeExtractor) Extract(ctx context.Context, resumeText string) (schema.Resume, error) {
	if resumeText == "" {
		return schema.Resume{}, fmt.Errorf("resume text is empty")
	}

	resume, err := llm.AskStructured[schema.Resume](ctx, e.provider, resumeSystemPrompt, resumePrompt(resumeText))
	if err != nil {
		return schema.Resume{}, fmt.Errorf("resume extraction: %w", err)
	}

	log.Debug().
		Str("candidate", resume.PersonalDetails.Name).
		Int("skills", len(resume.Skills)).
		Msg("resume extracted")
	return resume, nil
}

// JDProcessor converts raw job description text into a structured summary.
type JDProcessor struct {
	provider llm.Provider
}

// NewJDProcessor creates a job description processor.
func NewJDProcessor(provider llm.Provider) *JDProcessor {
	return &JDProcessor{provider: provider}
}

// Process summarizes raw job description text, validating the result.
func (p *JDProcessor) Process(ctx context.Context, jdText string) (schema.JobDescription, error) {
	if jdText == "" {
		return schema.JobDescription{}, fmt.Errorf("job description text is empty")
	}

	jd, err := llm.AskStructured[schema.JobDescription](ctx, p.provider, jdSystemPrompt, jdPrompt(jdText))
	if err != nil {
		return schema.JobDescription{}, fmt.Errorf("job description processing: %w", err)
	}
	if err := jd.Validate(); err != nil {
		return schema.JobDescription{}, fmt.Errorf("job description processing: %w", err)
	}

	log.Debug().
		Str("title", jd.Title).
		Int("requirements", len(jd.Requirements)).
		Msg("job description processed")
	return jd, nil
}
