package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LabelPositive = "POSITIVE"
	LabelNeutral  = "NEUTRAL"
	LabelNegative = "NEGATIVE"
)

// Validation is the outcome of running one free-text answer through the validator.
type Validation struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ApplicationRecord is the durable output of one upload-and-submit cycle.
type ApplicationRecord struct {
	ApplicantID      string                `json:"applicant_id"`
	JobID            string                `json:"job_id"`
	ExtractedSkills  []string              `json:"extracted_skills"`
	Answers          map[string]string     `json:"answers"`
	ValidatedAnswers map[string]Validation `json:"validated_answers"`
	MatchingScore    float64               `json:"matching_score"`
}

// Applicant is the row an ApplicationRecord is stored in.
type Applicant struct {
	ApplicantID uuid.UUID `gorm:"column:applicant_id;type:uuid;primaryKey" json:"applicant_id"`
	JobID       string    `gorm:"column:job_id;type:text;not null;index" json:"job_id"`
	Data        string    `gorm:"type:jsonb;not null" json:"data"`
	CreatedAt   time.Time `gorm:"type:timestamp" json:"created_at"`
}

func (Applicant) TableName() string {
	return "applicants"
}

// ResumeFile is an uploaded resume as handed to the skill extractor.
type ResumeFile struct {
	ApplicantID uuid.UUID
	Location    string
	Content     []byte
}
