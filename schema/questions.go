package schema

import "fmt"

// Difficulty levels a generated question may carry.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// ValidDifficulty reports whether d is one of the three allowed levels.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// QuestionItem is one interview question. TargetConcepts name the exact
// skills or tools from the resume/JD text the question probes.
type QuestionItem struct {
	ID             int      `json:"id"`
	Question       string   `json:"question"`
	TargetConcepts []string `json:"target_concepts"`
	Difficulty     string   `json:"difficulty"`
}

// TypeName implements history.Structured.
func (QuestionItem) TypeName() string { return "QuestionItem" }

// Validate checks a single generated question.
func (q QuestionItem) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question %d has empty text", q.ID)
	}
	if !ValidDifficulty(q.Difficulty) {
		return fmt.Errorf("question %d has invalid difficulty %q", q.ID, q.Difficulty)
	}
	return nil
}

// InterviewQuestions is the full generated question set: three sections
// sourced from the resume, the job description, and both combined.
type InterviewQuestions struct {
	ResumeQuestions []QuestionItem `json:"resume_questions"`
	JDQuestions     []QuestionItem `json:"jd_questions"`
	MixedQuestions  []QuestionItem `json:"mixed_questions"`
}

// TypeName implements history.Structured.
func (InterviewQuestions) TypeName() string { return "InterviewQuestions" }

// Validate checks that every section is present and each question is sound.
func (q InterviewQuestions) Validate() error {
	sections := map[string][]QuestionItem{
		"resume_questions": q.ResumeQuestions,
		"jd_questions":     q.JDQuestions,
		"mixed_questions":  q.MixedQuestions,
	}
	for name, items := range sections {
		if len(items) == 0 {
			return fmt.Errorf("section %s is empty", name)
		}
		for _, item := range items {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("section %s: %w", name, err)
			}
		}
	}
	return nil
}

// Flatten returns all questions in interview order: resume section first,
// then job description, then mixed.
func (q InterviewQuestions) Flatten() []QuestionItem {
	out := make([]QuestionItem, 0, len(q.ResumeQuestions)+len(q.JDQuestions)+len(q.MixedQuestions))
	out = append(out, q.ResumeQuestions...)
	out = append(out, q.JDQuestions...)
	out = append(out, q.MixedQuestions...)
	return out
}

// Count returns the total number of questions across all sections.
func (q InterviewQuestions) Count() int {
	return len(q.ResumeQuestions) + len(q.JDQuestions) + len(q.MixedQuestions)
}
