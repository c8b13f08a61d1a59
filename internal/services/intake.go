package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
)

// ResumeIntake is the outcome of one accepted upload.
type ResumeIntake struct {
	ApplicantID     uuid.UUID
	Location        string
	ExtractedSkills []string
}

// IntakeService stores an uploaded resume and extracts its skills.
type IntakeService interface {
	Upload(ctx context.Context, content []byte) (*ResumeIntake, error)
}

type intakeService struct {
	store     ResumeStore
	extractor SkillExtractor
	logger    *zap.Logger
}

func NewIntakeService(store ResumeStore, extractor SkillExtractor, logger *zap.Logger) IntakeService {
	return &intakeService{
		store:     store,
		extractor: extractor,
		logger:    logger,
	}
}

// Upload implements IntakeService. A stored file is left in place when extraction fails.
func (s *intakeService) Upload(ctx context.Context, content []byte) (*ResumeIntake, error) {
	applicantID := uuid.New()

	location, err := s.store.Save(ctx, applicantID, content)
	if err != nil {
		resumeUploads.WithLabelValues("storage_error").Inc()
		return nil, apperror.StorageError("failed to save resume", err)
	}

	s.logger.Info("resume stored",
		zap.String("applicant_id", applicantID.String()),
		zap.String("location", location),
		zap.Int("size", len(content)),
	)

	skills, err := s.extractor.ExtractSkills(ctx, &models.ResumeFile{
		ApplicantID: applicantID,
		Location:    location,
		Content:     content,
	})
	if err != nil {
		resumeUploads.WithLabelValues("extraction_failed").Inc()
		collaboratorFailures.WithLabelValues("extraction").Inc()
		return nil, apperror.ValidationFailure("failed to extract skills from resume", err)
	}

	resumeUploads.WithLabelValues("ok").Inc()

	return &ResumeIntake{
		ApplicantID:     applicantID,
		Location:        location,
		ExtractedSkills: models.NormalizeSkills(skills),
	}, nil
}
