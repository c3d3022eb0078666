package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/prospector-hq/prospector/history"
	"github.com/prospector-hq/prospector/llm"
	"github.com/prospector-hq/prospector/schema"
)

// AnswerFunc supplies the candidate's answer to one question. The CLI wires
// this to an interactive prompt; tests supply canned answers.
type AnswerFunc func(question schema.QuestionItem) (string, error)

// ReportItem is one question asked during the interview with its answer and
// evaluation. Follow-ups appear as separate items carrying follow-up IDs.
type ReportItem struct {
	Question   schema.QuestionItem     `json:"question"`
	Answer     string                  `json:"answer"`
	Evaluation schema.AnswerEvaluation `json:"evaluation"`
}

// Report is the outcome of a completed interview session.
type Report struct {
	SessionID    string       `json:"session_id"`
	JobTitle     string       `json:"job_title"`
	Candidate    string       `json:"candidate"`
	Items        []ReportItem `json:"items"`
	OverallScore float64      `json:"overall_score"`
	CompletedAt  time.Time    `json:"completed_at"`
}

// TypeName implements history.Structured.
func (Report) TypeName() string { return "Report" }

// Engine runs a full interview: asks each generated question, evaluates the
// answer, and probes weak answers with follow-ups up to a per-question limit.
// Every turn is recorded in the session history.
type Engine struct {
	followUps    *FollowUpGenerator
	evaluator    *Evaluator
	history      *history.Manager
	maxFollowUps int
}

// NewEngine creates an interview engine. chat drives follow-up generation
// with the session's recent turns threaded into each prompt and supplies the
// manager recording the interview; evalProvider drives scoring.
// maxFollowUps < 0 uses the default of 2.
func NewEngine(chat *llm.HistoryClient, evalProvider llm.Provider, maxFollowUps int) *Engine {
	if maxFollowUps < 0 {
		maxFollowUps = 2
	}
	return &Engine{
		followUps:    NewFollowUpGenerator(chat),
		evaluator:    NewEvaluator(evalProvider),
		history:      chat.History(),
		maxFollowUps: maxFollowUps,
	}
}

// History returns the session manager recording the interview.
func (e *Engine) History() *history.Manager {
	return e.history
}

// NewSessionID builds a unique session identifier from the job and candidate
// names.
func NewSessionID(jobTitle, candidateName string) string {
	return fmt.Sprintf("%s:%s:%s", slug(jobTitle), slug(candidateName), uuid.NewString())
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

// Run conducts the interview over the generated question set and returns the
// report. The session is created up front so an aborted interview still
// leaves its partial history behind.
func (e *Engine) Run(ctx context.Context, jobTitle, candidateName string, questions schema.InterviewQuestions, answer AnswerFunc) (Report, error) {
	if err := questions.Validate(); err != nil {
		return Report{}, fmt.Errorf("interview: %w", err)
	}

	sessionID := NewSessionID(jobTitle, candidateName)
	e.history.CreateSession(sessionID, history.Metadata{
		"job_title": jobTitle,
		"candidate": candidateName,
	})

	log.Info().
		Str("session", sessionID).
		Int("questions", questions.Count()).
		Msg("interview started")

	var items []ReportItem
	for _, root := range questions.Flatten() {
		rootItems, err := e.askWithFollowUps(ctx, sessionID, root, answer)
		if err != nil {
			return Report{}, err
		}
		items = append(items, rootItems...)
	}

	report := Report{
		SessionID:    sessionID,
		JobTitle:     jobTitle,
		Candidate:    candidateName,
		Items:        items,
		OverallScore: overallScore(items),
		CompletedAt:  time.Now().UTC(),
	}

	log.Info().
		Str("session", sessionID).
		Float64("score", report.OverallScore).
		Msg("interview completed")
	return report, nil
}

// askWithFollowUps asks one root question and any follow-ups it earns.
func (e *Engine) askWithFollowUps(ctx context.Context, sessionID string, root schema.QuestionItem, answer AnswerFunc) ([]ReportItem, error) {
	var items []ReportItem

	current := root
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("interview aborted: %w", err)
		}

		item, err := e.askOne(ctx, sessionID, current, answer)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if !item.Evaluation.FollowUpStatus {
			return items, nil
		}
		if followUpCount(current.ID) >= e.maxFollowUps {
			return items, nil
		}

		next, err := e.followUps.Generate(ctx, sessionID, current, item.Answer, item.Evaluation)
		if err != nil {
			return nil, err
		}
		current = next
	}
}

func (e *Engine) askOne(ctx context.Context, sessionID string, question schema.QuestionItem, answer AnswerFunc) (ReportItem, error) {
	meta := history.Metadata{"question_id": question.ID}
	if err := e.history.AddAssistantMessage(sessionID, question.Question, meta); err != nil {
		return ReportItem{}, fmt.Errorf("recording question %d: %w", question.ID, err)
	}

	ans, err := answer(question)
	if err != nil {
		return ReportItem{}, fmt.Errorf("answer to question %d: %w", question.ID, err)
	}
	if err := e.history.AddUserMessage(sessionID, ans, meta); err != nil {
		return ReportItem{}, fmt.Errorf("recording answer to question %d: %w", question.ID, err)
	}

	eval, err := e.evaluator.Evaluate(ctx, question, ans)
	if err != nil {
		return ReportItem{}, err
	}

	prompt := fmt.Sprintf("Evaluate the answer to question %d", question.ID)
	if err := e.history.AddStructuredExchange(sessionID, prompt, eval, nil, meta.Clone()); err != nil {
		return ReportItem{}, fmt.Errorf("recording evaluation of question %d: %w", question.ID, err)
	}

	return ReportItem{Question: question, Answer: ans, Evaluation: eval}, nil
}

// followUpCount returns how many follow-ups have already been asked on the
// chain id belongs to. Root questions have zero; follow-up N*100+k has k.
func followUpCount(id int) int {
	if id < 100 {
		return 0
	}
	return id % 100
}

// overallScore averages the per-answer category means across the interview.
func overallScore(items []ReportItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, item := range items {
		sum += item.Evaluation.Scores.Average()
	}
	return sum / float64(len(items))
}
