package interview

import (
	"encoding/json"
	"fmt"

	"github.com/prospector-hq/prospector/schema"
)

// System prompts for each LLM task. Each one pins the model to a single
// responsibility and a strict JSON output contract.
const (
	resumeSystemPrompt = `You are a resume parser. Extract structured information from raw resume text.
Respond with a single JSON object with keys: personal_details (name, email, phone, address, linkedin, github), projects (title, description), work_experience (company, position, duration, description), certifications (name, issuer, year), education (degree, institution, year), skills (array of strings), others (additional_info).
Use empty strings or empty arrays for anything the resume does not mention. Never invent information.`

	jdSystemPrompt = `You are a job description analyst. Summarize raw job description text.
Respond with a single JSON object with keys: title, requirements (array of strings), responsibilities (array of strings), qualifications (array of strings).
Keep each entry short and concrete. Never invent requirements that are not in the text.`

	questionSystemPrompt = `You are a technical interviewer preparing questions for a candidate.
Every question must name specific skills, tools, or projects taken verbatim from the material you are given - no generic questions.
Respond with a single JSON object with keys: resume_questions, jd_questions, mixed_questions. Each section is an array of question objects with keys: id, question, target_concepts (array of strings), difficulty (one of "Easy", "Medium", "Hard").`

	evaluationSystemPrompt = `You are an interview evaluator. Assess one candidate answer against the question asked.
Respond with a single JSON object with keys: question_id, overall_assessment (2-3 sentences), scores (object with relevance, clarity, depth, accuracy, completeness, each an integer 0-10), follow_up_status (boolean: true when the answer is vague, incomplete, or worth probing deeper).
Score strictly. An empty or off-topic answer scores 0 across the board.`

	followUpSystemPrompt = `You are a technical interviewer. The candidate's answer left something worth probing.
Write one follow-up question that digs into the weakest or vaguest part of the answer. Stay on the same topic as the original question.
Respond with a single JSON object with keys: id, question, target_concepts (array of strings), difficulty (one of "Easy", "Medium", "Hard").`
)

func resumePrompt(resumeText string) string {
	return fmt.Sprintf("Extract structured information from this resume:\n\n%s", resumeText)
}

func jdPrompt(jdText string) string {
	return fmt.Sprintf("Summarize this job description:\n\n%s", jdText)
}

// questionPrompt asks for perSection questions in each of the three sections,
// ordered easy to hard, with sequential IDs across the whole set.
func questionPrompt(resume schema.Resume, jd schema.JobDescription, perSection int) string {
	total := perSection * 3
	resumeJSON := mustJSON(resume)
	jdJSON := mustJSON(jd)

	return fmt.Sprintf(`Generate %d interview questions for this candidate: %d from the resume alone (resume_questions), %d from the job description alone (jd_questions), and %d combining both (mixed_questions).

Within each section order the questions easiest first, hardest last. Number the questions with sequential ids from 1 to %d across all sections. For each question list the target_concepts: the exact skills, tools, or projects from the material the question probes.

Resume:
%s

Job description:
%s`,
		total, perSection, perSection, perSection, total, resumeJSON, jdJSON)
}

func evaluationPrompt(question schema.QuestionItem, answer string) string {
	return fmt.Sprintf(`Question %d (%s, targets: %s):
%s

Candidate answer:
%s`,
		question.ID, question.Difficulty, mustJSON(question.TargetConcepts),
		question.Question, answer)
}

func followUpPrompt(parent schema.QuestionItem, answer string, eval schema.AnswerEvaluation, followUpID int) string {
	return fmt.Sprintf(`Original question %d: %s

Candidate answer:
%s

Evaluator's assessment: %s

Write one follow-up question with id %d.`,
		parent.ID, parent.Question, answer, eval.OverallAssessment, followUpID)
}

// mustJSON renders v as compact JSON for prompt embedding. The schema types
// never fail to marshal.
func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
