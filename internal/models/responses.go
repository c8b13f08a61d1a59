package models

const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
)

type SelectJobRequest struct {
	JobID string `json:"job_id"`
}

type SelectSkillsRequest struct {
	Skills []string `json:"skills"`
}

type AnswerRequest struct {
	Text string `json:"text"`
}

type SessionResponse struct {
	ID              string            `json:"id"`
	State           string            `json:"state"`
	JobID           string            `json:"job_id,omitempty"`
	ApplicantID     string            `json:"applicant_id,omitempty"`
	ExtractedSkills []string          `json:"extracted_skills"`
	MissingSkills   []string          `json:"missing_skills"`
	SelectedSkills  []string          `json:"selected_skills"`
	Answers         map[string]string `json:"answers"`
	AllSkillsMatch  bool              `json:"all_skills_matched"`
	Level           string            `json:"level"`
	Message         string            `json:"message"`
}

type SubmitResponse struct {
	Application *ApplicationRecord `json:"application"`
	Session     SessionResponse    `json:"session"`
	Level       string             `json:"level"`
	Message     string             `json:"message"`
}

type PostingsResponse struct {
	Postings []PostingSummary `json:"postings"`
}

type ApplicantMatch struct {
	ApplicantID string  `json:"applicant_id"`
	JobID       string  `json:"job_id"`
	Score       float32 `json:"score"`
	Summary     string  `json:"summary"`
}
