package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
)

// ApplicationRepository only ever inserts; records are immutable once written.
type ApplicationRepository interface {
	Create(ctx context.Context, record *models.ApplicationRecord) error
	FindByID(ctx context.Context, applicantID uuid.UUID) (*models.ApplicationRecord, error)
}

type applicationRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db, now: time.Now}
}

func (r *applicationRepository) Create(ctx context.Context, record *models.ApplicationRecord) error {
	applicantID, err := uuid.Parse(record.ApplicantID)
	if err != nil {
		return apperror.InvalidRequest(fmt.Sprintf("invalid applicant id %q", record.ApplicantID))
	}

	data, err := json.Marshal(record)
	if err != nil {
		return apperror.StorageError("failed to encode application", err)
	}

	row := &models.Applicant{
		ApplicantID: applicantID,
		JobID:       record.JobID,
		Data:        string(data),
		CreatedAt:   r.now(),
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return apperror.StorageError("failed to save application", err)
	}

	return nil
}

func (r *applicationRepository) FindByID(ctx context.Context, applicantID uuid.UUID) (*models.ApplicationRecord, error) {
	var row models.Applicant
	if err := r.db.WithContext(ctx).Where("applicant_id = ?", applicantID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("application not found", err)
		}
		return nil, apperror.StorageError("failed to find application", err)
	}

	var record models.ApplicationRecord
	if err := json.Unmarshal([]byte(row.Data), &record); err != nil {
		return nil, apperror.StorageError("failed to decode application", err)
	}

	return &record, nil
}
