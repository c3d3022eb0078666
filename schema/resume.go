// Package schema provides the typed structures exchanged with the LLM:
// structured resumes, job descriptions, interview question sets, and answer
// evaluations. Every top-level type implements history.Structured so it can
// be recorded as the assistant half of a conversation exchange.
package schema

// PersonalDetails holds contact information extracted from a resume.
// Fields the resume does not mention stay empty.
type PersonalDetails struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Project is one project entry from a resume.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WorkExperience is one employment entry from a resume.
type WorkExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Certification is one certification entry from a resume.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// Education is one education entry from a resume.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Others carries anything on the resume that fits no other section.
type Others struct {
	AdditionalInfo string `json:"additional_info"`
}

// Resume is the structured form of a candidate resume as extracted by the
// LLM from raw resume text.
type Resume struct {
	PersonalDetails PersonalDetails  `json:"personal_details"`
	Projects        []Project        `json:"projects"`
	WorkExperience  []WorkExperience `json:"work_experience"`
	Certifications  []Certification  `json:"certifications"`
	Education       []Education      `json:"education"`
	Skills          []string         `json:"skills"`
	Others          Others           `json:"others"`
}

// TypeName implements history.Structured.
func (Resume) TypeName() string { return "Resume" }
