package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
)

var (
	ctx       = context.Background()
	errRemote = errors.New("remote unavailable")
)

type fakePostings struct {
	postings map[string][]string
	err      error
}

func newFakePostings(postings map[string][]string) *fakePostings {
	return &fakePostings{postings: postings}
}

func (f *fakePostings) List(ctx context.Context) ([]models.PostingSummary, error) {
	var out []models.PostingSummary
	for _, id := range sortedKeys(f.postings) {
		out = append(out, models.PostingSummary{JobID: id, Title: "Title " + id})
	}
	return out, f.err
}

func (f *fakePostings) FindByID(ctx context.Context, jobID string) (*models.JobPosting, error) {
	if f.err != nil {
		return nil, f.err
	}
	skills, ok := f.postings[jobID]
	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("job offer %s not found", jobID), nil)
	}
	return &models.JobPosting{JobID: jobID, Title: "Title " + jobID, RequiredSkills: skills}, nil
}

func (f *fakePostings) RequiredSkills(ctx context.Context, jobID string) ([]string, error) {
	posting, err := f.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return models.NormalizeSkills(posting.RequiredSkills), nil
}

func (f *fakePostings) AllRequiredSkills(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var all []string
	for _, skills := range f.postings {
		all = append(all, skills...)
	}
	return models.NormalizeSkills(all), nil
}

func (f *fakePostings) Upsert(ctx context.Context, posting *models.JobPosting) error {
	f.postings[posting.JobID] = posting.RequiredSkills
	return nil
}

type fakeApplications struct {
	mu      sync.Mutex
	records map[string]*models.ApplicationRecord
	err     error
}

func newFakeApplications() *fakeApplications {
	return &fakeApplications{records: make(map[string]*models.ApplicationRecord)}
}

func (f *fakeApplications) Create(ctx context.Context, record *models.ApplicationRecord) error {
	if f.err != nil {
		return apperror.StorageError("failed to save application", f.err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.ApplicantID] = record
	return nil
}

func (f *fakeApplications) FindByID(ctx context.Context, applicantID uuid.UUID) (*models.ApplicationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[applicantID.String()]
	if !ok {
		return nil, apperror.NotFound("application not found", nil)
	}
	return record, nil
}

type fakeStore struct {
	saved map[uuid.UUID][]byte
	err   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[uuid.UUID][]byte)}
}

func (f *fakeStore) Location(applicantID uuid.UUID) string {
	return "mem://" + applicantID.String()
}

func (f *fakeStore) Save(ctx context.Context, applicantID uuid.UUID, content []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved[applicantID] = content
	return f.Location(applicantID), nil
}

// fakeExtractor returns skills for every resume, or err when set.
type fakeExtractor struct {
	skills []string
	err    error
	calls  int
}

func (f *fakeExtractor) ExtractSkills(ctx context.Context, resume *models.ResumeFile) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.skills, nil
}

type fakeValidator struct {
	results map[string]models.Validation
	err     error
	seen    []string
}

func (f *fakeValidator) Validate(ctx context.Context, text string) (models.Validation, error) {
	f.seen = append(f.seen, text)
	if f.err != nil {
		return models.Validation{}, f.err
	}
	if v, ok := f.results[text]; ok {
		return v, nil
	}
	return models.Validation{Label: models.LabelPositive, Score: 0.9}, nil
}

type fakeIndex struct {
	indexed []*models.ApplicationRecord
	err     error
}

func (f *fakeIndex) InitCollection(ctx context.Context) error { return nil }

func (f *fakeIndex) IndexApplication(ctx context.Context, record *models.ApplicationRecord) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, record)
	return nil
}

func (f *fakeIndex) SearchSimilar(ctx context.Context, query string, limit int) ([]models.ApplicantMatch, error) {
	return nil, nil
}

type fakeGemini struct {
	text      string
	err       error
	prompts   []string
	embedding []float32
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.embedding, nil
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakePDFParser struct {
	text string
	err  error
}

func (f *fakePDFParser) ExtractTextFromBytes(content []byte) (string, error) {
	return f.text, f.err
}
