package schema

import "fmt"

// EvaluationScores rates one answer across five categories, each 0..10.
type EvaluationScores struct {
	Relevance    int `json:"relevance"`
	Clarity      int `json:"clarity"`
	Depth        int `json:"depth"`
	Accuracy     int `json:"accuracy"`
	Completeness int `json:"completeness"`
}

// Validate checks every score is within 0..10.
func (s EvaluationScores) Validate() error {
	scores := map[string]int{
		"relevance":    s.Relevance,
		"clarity":      s.Clarity,
		"depth":        s.Depth,
		"accuracy":     s.Accuracy,
		"completeness": s.Completeness,
	}
	for name, v := range scores {
		if v < 0 || v > 10 {
			return fmt.Errorf("score %s out of range: %d", name, v)
		}
	}
	return nil
}

// Average returns the mean of the five category scores.
func (s EvaluationScores) Average() float64 {
	return float64(s.Relevance+s.Clarity+s.Depth+s.Accuracy+s.Completeness) / 5.0
}

// AnswerEvaluation is the LLM's assessment of one interview answer.
// FollowUpStatus signals that the answer left enough ambiguity to warrant a
// follow-up question.
type AnswerEvaluation struct {
	QuestionID        int              `json:"question_id"`
	OverallAssessment string           `json:"overall_assessment"`
	Scores            EvaluationScores `json:"scores"`
	FollowUpStatus    bool             `json:"follow_up_status"`
}

// TypeName implements history.Structured.
func (AnswerEvaluation) TypeName() string { return "AnswerEvaluation" }

// Validate checks the evaluation is structurally sound.
func (e AnswerEvaluation) Validate() error {
	if e.OverallAssessment == "" {
		return fmt.Errorf("evaluation of question %d has no assessment", e.QuestionID)
	}
	if err := e.Scores.Validate(); err != nil {
		return fmt.Errorf("evaluation of question %d: %w", e.QuestionID, err)
	}
	return nil
}
