package handlers

import "alfredoptarigan/applicant-portal/internal/models"

const (
	msgSelectJob    = "Please select a job offer to apply for."
	msgUploadResume = "Please upload your resume to proceed."
	msgAllMatched   = "Great! Your resume matches all the required skills."
	msgMissing      = "Your resume does not show some of the required skills. Tell us about your experience with them before submitting."
	msgAnswering    = "Answer the skills you have experience with, then submit your application."
	msgSubmitted    = "Your application has been submitted!"
	msgNoPostings   = "No job offers available at the moment."
)

func feedbackFor(s *models.Session) (level, message string) {
	switch s.State {
	case models.StateNoJobSelected:
		return models.LevelInfo, msgSelectJob
	case models.StateJobSelected:
		return models.LevelInfo, msgUploadResume
	case models.StateSubmitted:
		return models.LevelSuccess, msgSubmitted
	case models.StateAnswersInProgress:
		return models.LevelInfo, msgAnswering
	}
	if s.AllSkillsMatched() {
		return models.LevelSuccess, msgAllMatched
	}
	return models.LevelWarning, msgMissing
}

func toSessionResponse(s *models.Session) models.SessionResponse {
	level, message := feedbackFor(s)

	answers := make(map[string]string, len(s.Drafts))
	for skill, text := range s.Drafts {
		answers[skill] = text
	}

	return models.SessionResponse{
		ID:              s.ID,
		State:           string(s.State),
		JobID:           s.JobID,
		ApplicantID:     s.ApplicantID,
		ExtractedSkills: orEmpty(s.ExtractedSkills),
		MissingSkills:   orEmpty(s.MissingSkills),
		SelectedSkills:  orEmpty(s.SelectedSkills),
		Answers:         answers,
		AllSkillsMatch:  s.AllSkillsMatched(),
		Level:           level,
		Message:         message,
	}
}

func orEmpty(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
