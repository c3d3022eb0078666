package schema

import "fmt"

// JobDescription is the structured summary of a raw job description text.
type JobDescription struct {
	Title            string   `json:"title"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Qualifications   []string `json:"qualifications"`
}

// TypeName implements history.Structured.
func (JobDescription) TypeName() string { return "JobDescription" }

// Validate checks that the LLM produced a usable job description.
func (j JobDescription) Validate() error {
	if j.Title == "" {
		return fmt.Errorf("job description has no title")
	}
	if len(j.Requirements) == 0 {
		return fmt.Errorf("job description %q has no requirements", j.Title)
	}
	return nil
}
