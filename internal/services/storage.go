package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const resumeDir = "resumes"

// ResumeStore persists raw resume bytes at a location derived from the applicant id.
type ResumeStore interface {
	Save(ctx context.Context, applicantID uuid.UUID, content []byte) (string, error)
	Location(applicantID uuid.UUID) string
}

type localResumeStore struct {
	uploadPath string
}

func NewLocalResumeStore(uploadPath string) ResumeStore {
	return &localResumeStore{
		uploadPath: uploadPath,
	}
}

func (s *localResumeStore) Location(applicantID uuid.UUID) string {
	return filepath.Join(s.uploadPath, resumeDir, applicantID.String()+".pdf")
}

func (s *localResumeStore) Save(ctx context.Context, applicantID uuid.UUID, content []byte) (string, error) {
	filePath := s.Location(applicantID)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}
