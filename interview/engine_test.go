package interview

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prospector-hq/prospector/history"
	"github.com/prospector-hq/prospector/llm"
	"github.com/prospector-hq/prospector/schema"
)

func newTestEngine(chat, eval llm.Provider, hist *history.Manager, maxFollowUps int) *Engine {
	return NewEngine(llm.NewHistoryClient(chat, hist, 0, 0), eval, maxFollowUps)
}

func minimalQuestionSet() schema.InterviewQuestions {
	return schema.InterviewQuestions{
		ResumeQuestions: []schema.QuestionItem{{ID: 1, Question: "Tell me about your Go project", TargetConcepts: []string{"Go"}, Difficulty: "Easy"}},
		JDQuestions:     []schema.QuestionItem{{ID: 2, Question: "How would you design the service?", TargetConcepts: []string{"design"}, Difficulty: "Medium"}},
		MixedQuestions:  []schema.QuestionItem{{ID: 3, Question: "Map your Kafka work to our pipeline", TargetConcepts: []string{"Kafka"}, Difficulty: "Hard"}},
	}
}

func evalJSON(followUp bool) string {
	return fmt.Sprintf(
		`{"question_id": 0, "overall_assessment": "reasonable answer", "scores": {"relevance": 8, "clarity": 7, "depth": 6, "accuracy": 8, "completeness": 6}, "follow_up_status": %v}`,
		followUp)
}

const followUpJSON = `{"id": 0, "question": "What exactly did you build?", "target_concepts": ["Go"], "difficulty": "Medium"}`

func cannedAnswers() AnswerFunc {
	return func(q schema.QuestionItem) (string, error) {
		return fmt.Sprintf("answer to %d", q.ID), nil
	}
}

func TestEngineRunNoFollowUps(t *testing.T) {
	chat := &scriptedProvider{replies: []string{followUpJSON}}
	eval := &scriptedProvider{replies: []string{evalJSON(false)}}
	engine := newTestEngine(chat, eval, history.NewManager(), 2)

	report, err := engine.Run(context.Background(), "Backend Engineer", "Ada Lovelace", minimalQuestionSet(), cannedAnswers())
	require.NoError(t, err)

	require.Len(t, report.Items, 3)
	assert.Equal(t, []int{1, 2, 3}, itemIDs(report.Items))
	assert.Equal(t, "Backend Engineer", report.JobTitle)
	assert.InDelta(t, 7.0, report.OverallScore, 0.001)
	assert.False(t, report.CompletedAt.IsZero())
	assert.Equal(t, 0, chat.calls, "no follow-ups should be generated")
}

func TestEngineRunSingleFollowUp(t *testing.T) {
	chat := &scriptedProvider{replies: []string{followUpJSON}}
	eval := &scriptedProvider{replies: []string{
		evalJSON(true),  // question 1 earns a follow-up
		evalJSON(false), // follow-up 101 settles it
		evalJSON(false), // question 2
		evalJSON(false), // question 3
	}}
	engine := newTestEngine(chat, eval, history.NewManager(), 2)

	report, err := engine.Run(context.Background(), "Backend Engineer", "Ada", minimalQuestionSet(), cannedAnswers())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 101, 2, 3}, itemIDs(report.Items))
	assert.Equal(t, 1, chat.calls)

	// The follow-up request carries the conversation so far.
	require.NotEmpty(t, chat.prompts)
	assert.Contains(t, chat.prompts[0], "=== Previous Conversation ===")
	assert.Contains(t, chat.prompts[0], "answer to 1")
}

func TestEngineRunFollowUpCap(t *testing.T) {
	chat := &scriptedProvider{replies: []string{followUpJSON}}
	eval := &scriptedProvider{replies: []string{evalJSON(true)}} // always wants more
	engine := newTestEngine(chat, eval, history.NewManager(), 1)

	report, err := engine.Run(context.Background(), "Backend Engineer", "Ada", minimalQuestionSet(), cannedAnswers())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 101, 2, 201, 3, 301}, itemIDs(report.Items))
}

func TestEngineRecordsSessionHistory(t *testing.T) {
	chat := &scriptedProvider{replies: []string{followUpJSON}}
	eval := &scriptedProvider{replies: []string{evalJSON(false)}}
	hist := history.NewManager()
	engine := newTestEngine(chat, eval, hist, 2)

	report, err := engine.Run(context.Background(), "Backend Engineer", "Ada", minimalQuestionSet(), cannedAnswers())
	require.NoError(t, err)

	session, ok := hist.GetSession(report.SessionID)
	require.True(t, ok)
	assert.Equal(t, "Backend Engineer", session.Metadata["job_title"])

	// Each question contributes four turns: question, answer, evaluation
	// request, evaluation response.
	msgs := hist.Messages(report.SessionID, 0)
	require.Len(t, msgs, 12)
	assert.Equal(t, history.RoleAssistant, msgs[0].Role)
	assert.Equal(t, "Tell me about your Go project", msgs[0].Content)
	assert.Equal(t, "answer to 1", msgs[1].Content)
	assert.Equal(t, true, msgs[3].Metadata["structured"])
	assert.Equal(t, "AnswerEvaluation", msgs[3].Metadata["response_type"])
}

func TestEngineAnswerErrorAborts(t *testing.T) {
	chat := &scriptedProvider{replies: []string{followUpJSON}}
	eval := &scriptedProvider{replies: []string{evalJSON(false)}}
	engine := newTestEngine(chat, eval, history.NewManager(), 2)

	boom := fmt.Errorf("stdin closed")
	_, err := engine.Run(context.Background(), "Backend Engineer", "Ada", minimalQuestionSet(),
		func(schema.QuestionItem) (string, error) { return "", boom })
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestEngineContextCancellation(t *testing.T) {
	chat := &scriptedProvider{replies: []string{followUpJSON}}
	eval := &scriptedProvider{replies: []string{evalJSON(false)}}
	engine := newTestEngine(chat, eval, history.NewManager(), 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx, "Backend Engineer", "Ada", minimalQuestionSet(), cannedAnswers())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineRejectsInvalidQuestionSet(t *testing.T) {
	engine := newTestEngine(&scriptedProvider{replies: []string{"{}"}}, &scriptedProvider{replies: []string{"{}"}}, history.NewManager(), 2)

	_, err := engine.Run(context.Background(), "Backend Engineer", "Ada", schema.InterviewQuestions{}, cannedAnswers())
	require.Error(t, err)
}

func TestNewSessionIDUnique(t *testing.T) {
	a := NewSessionID("Backend Engineer", "Ada Lovelace")
	b := NewSessionID("Backend Engineer", "Ada Lovelace")

	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "backend-engineer:ada-lovelace:")
}

func itemIDs(items []ReportItem) []int {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.Question.ID
	}
	return ids
}
