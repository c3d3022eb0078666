package interview

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/prospector-hq/prospector/llm"
	"github.com/prospector-hq/prospector/schema"
)

// QuestionGenerator produces the interview question set from a structured
// resume and job description.
type QuestionGenerator struct {
	provider   llm.Provider
	perSection int
}

// NewQuestionGenerator creates a generator producing perSection questions in
// each of the three sections. perSection <= 0 uses the default of 5.
func NewQuestionGenerator(provider llm.Provider, perSection int) *QuestionGenerator {
	if perSection <= 0 {
		perSection = 5
	}
	return &QuestionGenerator{provider: provider, perSection: perSection}
}

// Generate asks the provider for the full question set and validates it.
func (g *QuestionGenerator) Generate(ctx context.Context, resume schema.Resume, jd schema.JobDescription) (schema.InterviewQuestions, error) {
	questions, err := llm.AskStructured[schema.InterviewQuestions](
		ctx, g.provider, questionSystemPrompt, questionPrompt(resume, jd, g.perSection))
	if err != nil {
		return schema.InterviewQuestions{}, fmt.Errorf("question generation: %w", err)
	}
	if err := questions.Validate(); err != nil {
		return schema.InterviewQuestions{}, fmt.Errorf("question generation: %w", err)
	}

	log.Debug().
		Int("total", questions.Count()).
		Str("job", jd.Title).
		Msg("questions generated")
	return questions, nil
}

// FollowUpID derives the ID for the next follow-up to a question. A root
// question N gets follow-ups numbered N*100+1, N*100+2, ... so question 3
// yields 301, then 302. Passing an existing follow-up ID yields its
// successor (301 yields 302).
func FollowUpID(parentID int) int {
	if parentID >= 100 {
		return parentID + 1
	}
	return parentID*100 + 1
}

// RootQuestionID returns the root question a follow-up ID descends from.
// Root IDs return themselves.
func RootQuestionID(id int) int {
	if id >= 100 {
		return id / 100
	}
	return id
}

// FollowUpGenerator produces a follow-up question probing a weak answer.
// Recent turns of the session are folded into the prompt so a follow-up can
// refer back to what the candidate already said.
type FollowUpGenerator struct {
	hc *llm.HistoryClient
}

// NewFollowUpGenerator creates a follow-up generator over a history-aware
// client.
func NewFollowUpGenerator(hc *llm.HistoryClient) *FollowUpGenerator {
	return &FollowUpGenerator{hc: hc}
}

// Generate writes one follow-up to parent given the candidate's answer and
// its evaluation. An empty or unknown sessionID produces a context-free
// prompt. The returned question carries the derived follow-up ID regardless
// of what the provider put in the id field.
func (g *FollowUpGenerator) Generate(ctx context.Context, sessionID string, parent schema.QuestionItem, answer string, eval schema.AnswerEvaluation) (schema.QuestionItem, error) {
	id := FollowUpID(parent.ID)

	question, err := llm.AskStructuredWithHistory[schema.QuestionItem](
		ctx, g.hc, sessionID, followUpSystemPrompt, followUpPrompt(parent, answer, eval, id))
	if err != nil {
		return schema.QuestionItem{}, fmt.Errorf("follow-up generation: %w", err)
	}

	question.ID = id
	if question.Difficulty == "" || !schema.ValidDifficulty(question.Difficulty) {
		question.Difficulty = parent.Difficulty
	}
	if err := question.Validate(); err != nil {
		return schema.QuestionItem{}, fmt.Errorf("follow-up generation: %w", err)
	}

	log.Debug().
		Int("parent", parent.ID).
		Int("id", id).
		Msg("follow-up generated")
	return question, nil
}
