package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
	"alfredoptarigan/applicant-portal/internal/repositories"
)

// SessionCoordinator drives one applicant through job selection, resume upload,
// answering missing skills and submission.
type SessionCoordinator interface {
	Start(ctx context.Context) (*models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	SelectJob(ctx context.Context, id, jobID string) (*models.Session, error)
	UploadResume(ctx context.Context, id string, content []byte) (*models.Session, error)
	SelectSkills(ctx context.Context, id string, skills []string) (*models.Session, error)
	SetAnswer(ctx context.Context, id, skill, text string) (*models.Session, error)
	Submit(ctx context.Context, id string) (*models.ApplicationRecord, *models.Session, error)
}

type sessionCoordinator struct {
	postings     repositories.PostingRepository
	applications repositories.ApplicationRepository
	sessions     SessionStore
	intake       IntakeService
	validator    AnswerValidator
	scorer       Scorer
	index        ApplicantIndex
	logger       *zap.Logger
	now          func() time.Time
}

// NewSessionCoordinator wires the coordinator. index may be nil.
func NewSessionCoordinator(
	postings repositories.PostingRepository,
	applications repositories.ApplicationRepository,
	sessions SessionStore,
	intake IntakeService,
	validator AnswerValidator,
	scorer Scorer,
	index ApplicantIndex,
	logger *zap.Logger,
) SessionCoordinator {
	return &sessionCoordinator{
		postings:     postings,
		applications: applications,
		sessions:     sessions,
		intake:       intake,
		validator:    validator,
		scorer:       scorer,
		index:        index,
		logger:       logger,
		now:          time.Now,
	}
}

// Start implements SessionCoordinator.
func (c *sessionCoordinator) Start(ctx context.Context) (*models.Session, error) {
	session := models.NewSession(uuid.NewString(), c.now())
	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get implements SessionCoordinator.
func (c *sessionCoordinator) Get(ctx context.Context, id string) (*models.Session, error) {
	return c.sessions.Get(ctx, id)
}

// SelectJob implements SessionCoordinator.
func (c *sessionCoordinator) SelectJob(ctx context.Context, id, jobID string) (*models.Session, error) {
	if jobID == "" {
		return nil, apperror.InvalidRequest("job_id is required")
	}

	session, err := c.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := c.postings.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	session.SelectJob(jobID)
	return c.save(ctx, session)
}

// UploadResume implements SessionCoordinator.
func (c *sessionCoordinator) UploadResume(ctx context.Context, id string, content []byte) (*models.Session, error) {
	session, err := c.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.JobID == "" {
		return nil, apperror.InvalidState("select a job offer before uploading a resume")
	}

	required, err := c.postings.RequiredSkills(ctx, session.JobID)
	if err != nil {
		return nil, err
	}

	intake, err := c.intake.Upload(ctx, content)
	if err != nil {
		return nil, err
	}

	if err := session.RecordResume(intake.ApplicantID.String(), intake.Location, intake.ExtractedSkills); err != nil {
		return nil, err
	}
	if err := session.RecordGap(MissingSkills(required, intake.ExtractedSkills)); err != nil {
		return nil, err
	}

	c.logger.Info("skill gap computed",
		zap.String("session_id", session.ID),
		zap.String("job_id", session.JobID),
		zap.Int("extracted", len(session.ExtractedSkills)),
		zap.Strings("missing", session.MissingSkills),
	)

	return c.save(ctx, session)
}

// SelectSkills implements SessionCoordinator.
func (c *sessionCoordinator) SelectSkills(ctx context.Context, id string, skills []string) (*models.Session, error) {
	session, err := c.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := session.SelectSkills(models.NormalizeSkills(skills)); err != nil {
		return nil, err
	}
	return c.save(ctx, session)
}

// SetAnswer implements SessionCoordinator.
func (c *sessionCoordinator) SetAnswer(ctx context.Context, id, skill, text string) (*models.Session, error) {
	session, err := c.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := session.SetAnswer(models.NormalizeSkillName(skill), text); err != nil {
		return nil, err
	}
	return c.save(ctx, session)
}

// Submit implements SessionCoordinator. Nothing is persisted unless every answer validates.
func (c *sessionCoordinator) Submit(ctx context.Context, id string) (*models.ApplicationRecord, *models.Session, error) {
	session, err := c.sessions.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := session.CanSubmit(); err != nil {
		return nil, nil, err
	}

	answers := CollectAnswers(session.MissingSkills, session.Drafts)

	validated, err := ValidateAnswers(ctx, c.validator, answers)
	if err != nil {
		submissions.WithLabelValues("validation_failed").Inc()
		return nil, nil, err
	}

	required, err := c.postings.RequiredSkills(ctx, session.JobID)
	if err != nil {
		return nil, nil, err
	}

	record := &models.ApplicationRecord{
		ApplicantID:      session.ApplicantID,
		JobID:            session.JobID,
		ExtractedSkills:  session.ExtractedSkills,
		Answers:          answers,
		ValidatedAnswers: validated,
		MatchingScore:    c.scorer.Score(session.ExtractedSkills, validated, required),
	}
	if record.ExtractedSkills == nil {
		record.ExtractedSkills = []string{}
	}

	if err := c.applications.Create(ctx, record); err != nil {
		submissions.WithLabelValues("storage_error").Inc()
		return nil, nil, err
	}

	submissions.WithLabelValues("ok").Inc()
	matchingScores.Observe(record.MatchingScore)
	c.logger.Info("application submitted",
		zap.String("applicant_id", record.ApplicantID),
		zap.String("job_id", record.JobID),
		zap.Float64("matching_score", record.MatchingScore),
		zap.Int("answers", len(record.Answers)),
	)

	if c.index != nil {
		if err := c.index.IndexApplication(ctx, record); err != nil {
			collaboratorFailures.WithLabelValues("indexing").Inc()
			c.logger.Warn("failed to index application", zap.String("applicant_id", record.ApplicantID), zap.Error(err))
		}
	}

	session.MarkSubmitted(record.ApplicantID)
	session.UpdatedAt = c.now()
	if err := c.sessions.Save(ctx, session); err != nil {
		// The record is already durable.
		c.logger.Error("failed to save session after submit", zap.String("session_id", session.ID), zap.Error(err))
	}

	return record, session, nil
}

func (c *sessionCoordinator) save(ctx context.Context, session *models.Session) (*models.Session, error) {
	session.UpdatedAt = c.now()
	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
