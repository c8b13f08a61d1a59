package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
)

type PostingRepository interface {
	List(ctx context.Context) ([]models.PostingSummary, error)
	FindByID(ctx context.Context, jobID string) (*models.JobPosting, error)
	RequiredSkills(ctx context.Context, jobID string) ([]string, error)
	AllRequiredSkills(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, posting *models.JobPosting) error
}

type postingRepository struct {
	db *gorm.DB
}

func NewPostingRepository(db *gorm.DB) PostingRepository {
	return &postingRepository{db: db}
}

// List implements PostingRepository.
func (r *postingRepository) List(ctx context.Context) ([]models.PostingSummary, error) {
	var postings []models.PostingSummary
	err := r.db.WithContext(ctx).
		Model(&models.JobPosting{}).
		Select("job_id", "title").
		Order("job_id ASC").
		Find(&postings).Error
	if err != nil {
		return nil, apperror.StorageError("failed to list job offers", err)
	}

	return postings, nil
}

// FindByID implements PostingRepository.
func (r *postingRepository) FindByID(ctx context.Context, jobID string) (*models.JobPosting, error) {
	var posting models.JobPosting
	if err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&posting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("job offer %s not found", jobID), err)
		}
		return nil, apperror.StorageError("failed to find job offer", err)
	}

	return &posting, nil
}

// RequiredSkills implements PostingRepository.
func (r *postingRepository) RequiredSkills(ctx context.Context, jobID string) ([]string, error) {
	posting, err := r.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return models.NormalizeSkills(posting.RequiredSkills), nil
}

// AllRequiredSkills returns the union of required skills across every posting.
func (r *postingRepository) AllRequiredSkills(ctx context.Context) ([]string, error) {
	var lists []models.SkillList
	err := r.db.WithContext(ctx).
		Model(&models.JobPosting{}).
		Pluck("required_skills", &lists).Error
	if err != nil {
		return nil, apperror.StorageError("failed to load skill vocabulary", err)
	}

	var all []string
	for _, list := range lists {
		all = append(all, list...)
	}

	return models.NormalizeSkills(all), nil
}

// Upsert implements PostingRepository.
func (r *postingRepository) Upsert(ctx context.Context, posting *models.JobPosting) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "required_skills"}),
		}).
		Create(posting).Error
	if err != nil {
		return apperror.StorageError(fmt.Sprintf("failed to save job offer %s", posting.JobID), err)
	}

	return nil
}
