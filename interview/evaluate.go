package interview

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/prospector-hq/prospector/llm"
	"github.com/prospector-hq/prospector/schema"
)

// Evaluator scores candidate answers. It is typically backed by the
// reasoning model rather than the chat model.
type Evaluator struct {
	provider llm.Provider
}

// NewEvaluator creates an answer evaluator.
func NewEvaluator(provider llm.Provider) *Evaluator {
	return &Evaluator{provider: provider}
}

// Evaluate scores one answer against its question. The question ID is pinned
// to the question asked regardless of what the provider returned.
func (e *Evaluator) Evaluate(ctx context.Context, question schema.QuestionItem, answer string) (schema.AnswerEvaluation, error) {
	eval, err := llm.AskStructured[schema.AnswerEvaluation](
		ctx, e.provider, evaluationSystemPrompt, evaluationPrompt(question, answer))
	if err != nil {
		return schema.AnswerEvaluation{}, fmt.Errorf("answer evaluation: %w", err)
	}

	eval.QuestionID = question.ID
	if err := eval.Validate(); err != nil {
		return schema.AnswerEvaluation{}, fmt.Errorf("answer evaluation: %w", err)
	}

	log.Debug().
		Int("question", question.ID).
		Float64("average", eval.Scores.Average()).
		Bool("follow_up", eval.FollowUpStatus).
		Msg("answer evaluated")
	return eval, nil
}
