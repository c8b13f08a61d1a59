package models

import (
	"fmt"
	"strings"
	"time"

	"alfredoptarigan/applicant-portal/internal/apperror"
)

type SessionState string

const (
	StateNoJobSelected     SessionState = "no_job_selected"
	StateJobSelected       SessionState = "job_selected"
	StateResumeUploaded    SessionState = "resume_uploaded"
	StateSkillsGapComputed SessionState = "skills_gap_computed"
	StateAnswersInProgress SessionState = "answers_in_progress"
	StateSubmitted         SessionState = "submitted"
)

// Session holds the transient state of one applicant's interaction.
type Session struct {
	ID              string            `json:"id"`
	State           SessionState      `json:"state"`
	JobID           string            `json:"job_id,omitempty"`
	ApplicantID     string            `json:"applicant_id,omitempty"`
	ResumeLocation  string            `json:"resume_location,omitempty"`
	ExtractedSkills []string          `json:"extracted_skills,omitempty"`
	MissingSkills   []string          `json:"missing_skills,omitempty"`
	SelectedSkills  []string          `json:"selected_skills,omitempty"`
	Drafts          map[string]string `json:"drafts,omitempty"`
	LastApplicantID string            `json:"last_applicant_id,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     StateNoJobSelected,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SelectJob switches the session to jobID and forgets everything derived from a previous job.
func (s *Session) SelectJob(jobID string) {
	s.JobID = jobID
	s.clearResume()
	s.State = StateJobSelected
}

// RecordResume stores the outcome of a resume intake. Any previous gap and drafts are discarded.
func (s *Session) RecordResume(applicantID, location string, extracted []string) error {
	if s.JobID == "" {
		return apperror.InvalidState("select a job offer before uploading a resume")
	}
	s.clearResume()
	s.ApplicantID = applicantID
	s.ResumeLocation = location
	s.ExtractedSkills = extracted
	s.State = StateResumeUploaded
	return nil
}

func (s *Session) RecordGap(missing []string) error {
	if s.State != StateResumeUploaded {
		return apperror.InvalidState("skill gap can only be computed right after a resume upload")
	}
	s.MissingSkills = missing
	s.State = StateSkillsGapComputed
	return nil
}

// SelectSkills replaces the set of skills the applicant wants to answer for.
func (s *Session) SelectSkills(skills []string) error {
	if err := s.requireGap(); err != nil {
		return err
	}
	for _, skill := range skills {
		if !s.HasMissingSkill(skill) {
			return apperror.InvalidRequest(fmt.Sprintf("%q is not a missing skill", skill))
		}
	}
	s.SelectedSkills = skills
	s.State = StateAnswersInProgress
	return nil
}

// SetAnswer stores draft text for a missing skill.
func (s *Session) SetAnswer(skill, text string) error {
	if err := s.requireGap(); err != nil {
		return err
	}
	if !s.HasMissingSkill(skill) {
		return apperror.InvalidRequest(fmt.Sprintf("%q is not a missing skill", skill))
	}
	if s.Drafts == nil {
		s.Drafts = make(map[string]string)
	}
	s.Drafts[skill] = text
	s.State = StateAnswersInProgress
	return nil
}

func (s *Session) CanSubmit() error {
	switch s.State {
	case StateSkillsGapComputed, StateAnswersInProgress:
		return nil
	case StateSubmitted:
		return apperror.InvalidState("application already submitted; upload a resume to apply again")
	case StateNoJobSelected:
		return apperror.InvalidState("no job offer selected")
	default:
		return apperror.InvalidState("please upload your resume to proceed")
	}
}

// MarkSubmitted purges the per-upload state. The selected job is kept.
func (s *Session) MarkSubmitted(applicantID string) {
	s.clearResume()
	s.LastApplicantID = applicantID
	s.State = StateSubmitted
}

func (s *Session) HasMissingSkill(skill string) bool {
	for _, missing := range s.MissingSkills {
		if missing == skill {
			return true
		}
	}
	return false
}

func (s *Session) AllSkillsMatched() bool {
	return s.gapKnown() && len(s.MissingSkills) == 0
}

func (s *Session) requireGap() error {
	if !s.gapKnown() {
		return apperror.InvalidState("please upload your resume to proceed")
	}
	return nil
}

func (s *Session) gapKnown() bool {
	return s.State == StateSkillsGapComputed || s.State == StateAnswersInProgress
}

func (s *Session) clearResume() {
	s.ApplicantID = ""
	s.ResumeLocation = ""
	s.ExtractedSkills = nil
	s.MissingSkills = nil
	s.SelectedSkills = nil
	s.Drafts = nil
}

// NormalizeSkillName trims the user-supplied skill name used as a draft key.
func NormalizeSkillName(skill string) string {
	return strings.TrimSpace(skill)
}
