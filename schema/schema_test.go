package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidDifficulty(t *testing.T) {
	assert.True(t, ValidDifficulty(DifficultyEasy))
	assert.True(t, ValidDifficulty(DifficultyMedium))
	assert.True(t, ValidDifficulty(DifficultyHard))
	assert.False(t, ValidDifficulty("easy"))
	assert.False(t, ValidDifficulty(""))
	assert.False(t, ValidDifficulty("Extreme"))
}

func TestQuestionItemValidate(t *testing.T) {
	valid := QuestionItem{ID: 1, Question: "What is a goroutine?", Difficulty: DifficultyEasy}
	require.NoError(t, valid.Validate())

	empty := QuestionItem{ID: 2, Difficulty: DifficultyEasy}
	assert.Error(t, empty.Validate())

	badDifficulty := QuestionItem{ID: 3, Question: "q", Difficulty: "Impossible"}
	assert.Error(t, badDifficulty.Validate())
}

func TestInterviewQuestionsValidate(t *testing.T) {
	q := QuestionItem{ID: 1, Question: "q", Difficulty: DifficultyEasy}

	full := InterviewQuestions{
		ResumeQuestions: []QuestionItem{q},
		JDQuestions:     []QuestionItem{q},
		MixedQuestions:  []QuestionItem{q},
	}
	require.NoError(t, full.Validate())

	missing := InterviewQuestions{ResumeQuestions: []QuestionItem{q}}
	assert.Error(t, missing.Validate())
}

func TestInterviewQuestionsFlattenOrder(t *testing.T) {
	set := InterviewQuestions{
		ResumeQuestions: []QuestionItem{{ID: 1, Question: "r", Difficulty: DifficultyEasy}},
		JDQuestions:     []QuestionItem{{ID: 2, Question: "j", Difficulty: DifficultyEasy}},
		MixedQuestions:  []QuestionItem{{ID: 3, Question: "m", Difficulty: DifficultyEasy}},
	}

	flat := set.Flatten()
	require.Len(t, flat, 3)
	assert.Equal(t, "r", flat[0].Question)
	assert.Equal(t, "j", flat[1].Question)
	assert.Equal(t, "m", flat[2].Question)
	assert.Equal(t, 3, set.Count())
}

func TestEvaluationScoresValidate(t *testing.T) {
	good := EvaluationScores{Relevance: 10, Clarity: 0, Depth: 5, Accuracy: 7, Completeness: 3}
	require.NoError(t, good.Validate())

	tooHigh := EvaluationScores{Relevance: 11}
	assert.Error(t, tooHigh.Validate())

	negative := EvaluationScores{Depth: -1}
	assert.Error(t, negative.Validate())
}

func TestEvaluationScoresAverage(t *testing.T) {
	scores := EvaluationScores{Relevance: 8, Clarity: 7, Depth: 6, Accuracy: 8, Completeness: 6}
	assert.InDelta(t, 7.0, scores.Average(), 0.001)

	assert.InDelta(t, 0.0, EvaluationScores{}.Average(), 0.001)
}

func TestAnswerEvaluationValidate(t *testing.T) {
	good := AnswerEvaluation{
		QuestionID:        3,
		OverallAssessment: "solid answer",
		Scores:            EvaluationScores{Relevance: 8, Clarity: 8, Depth: 8, Accuracy: 8, Completeness: 8},
	}
	require.NoError(t, good.Validate())

	noAssessment := AnswerEvaluation{QuestionID: 3}
	assert.Error(t, noAssessment.Validate())

	badScores := good
	badScores.Scores.Depth = 99
	assert.Error(t, badScores.Validate())
}

func TestJobDescriptionValidate(t *testing.T) {
	good := JobDescription{Title: "Backend Engineer", Requirements: []string{"Go"}}
	require.NoError(t, good.Validate())

	assert.Error(t, JobDescription{Requirements: []string{"Go"}}.Validate())
	assert.Error(t, JobDescription{Title: "x"}.Validate())
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "Resume", Resume{}.TypeName())
	assert.Equal(t, "JobDescription", JobDescription{}.TypeName())
	assert.Equal(t, "QuestionItem", QuestionItem{}.TypeName())
	assert.Equal(t, "InterviewQuestions", InterviewQuestions{}.TypeName())
	assert.Equal(t, "AnswerEvaluation", AnswerEvaluation{}.TypeName())
}
