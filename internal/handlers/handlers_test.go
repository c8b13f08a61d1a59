package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
	"alfredoptarigan/applicant-portal/internal/services"
)

type stubPostings struct {
	postings map[string][]string
}

func (s *stubPostings) List(ctx context.Context) ([]models.PostingSummary, error) {
	ids := make([]string, 0, len(s.postings))
	for id := range s.postings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []models.PostingSummary
	for _, id := range ids {
		out = append(out, models.PostingSummary{JobID: id, Title: "Role " + id})
	}
	return out, nil
}

func (s *stubPostings) FindByID(ctx context.Context, jobID string) (*models.JobPosting, error) {
	skills, ok := s.postings[jobID]
	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("job offer %s not found", jobID), nil)
	}
	return &models.JobPosting{JobID: jobID, Title: "Role " + jobID, RequiredSkills: skills}, nil
}

func (s *stubPostings) RequiredSkills(ctx context.Context, jobID string) ([]string, error) {
	posting, err := s.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return models.NormalizeSkills(posting.RequiredSkills), nil
}

func (s *stubPostings) AllRequiredSkills(ctx context.Context) ([]string, error) {
	var all []string
	for _, skills := range s.postings {
		all = append(all, skills...)
	}
	return models.NormalizeSkills(all), nil
}

func (s *stubPostings) Upsert(ctx context.Context, posting *models.JobPosting) error {
	return nil
}

type stubApplications struct {
	records map[string]*models.ApplicationRecord
}

func (s *stubApplications) Create(ctx context.Context, record *models.ApplicationRecord) error {
	s.records[record.ApplicantID] = record
	return nil
}

func (s *stubApplications) FindByID(ctx context.Context, applicantID uuid.UUID) (*models.ApplicationRecord, error) {
	record, ok := s.records[applicantID.String()]
	if !ok {
		return nil, apperror.NotFound("application not found", nil)
	}
	return record, nil
}

// stubExtractor reads the resume body as a comma-separated list of skills.
type stubExtractor struct{}

func (stubExtractor) ExtractSkills(ctx context.Context, resume *models.ResumeFile) ([]string, error) {
	return models.NormalizeSkills(strings.Split(string(resume.Content), ",")), nil
}

type testServer struct {
	app          *fiber.App
	applications *stubApplications
}

func newTestServer(t *testing.T, postings map[string][]string, index services.ApplicantIndex) *testServer {
	t.Helper()

	return newTestServerWithExtractor(t, postings, index, func(services.SkillVocabulary) services.SkillExtractor {
		return stubExtractor{}
	})
}

func newTestServerWithExtractor(
	t *testing.T,
	postings map[string][]string,
	index services.ApplicantIndex,
	newExtractor func(services.SkillVocabulary) services.SkillExtractor,
) *testServer {
	t.Helper()

	log := zap.NewNop()
	postingRepo := &stubPostings{postings: postings}
	applications := &stubApplications{records: make(map[string]*models.ApplicationRecord)}

	coordinator := services.NewSessionCoordinator(
		postingRepo,
		applications,
		services.NewMemorySessionStore(time.Hour),
		services.NewIntakeService(services.NewLocalResumeStore(t.TempDir()), newExtractor(postingRepo), log),
		services.NewLexiconAnswerValidator(),
		services.NewWeightedScorer(0.5),
		nil,
		log,
	)

	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(log)})
	app.Use(recover.New())
	RegisterRoutes(app.Group("/api/v1"),
		NewPostingHandler(postingRepo),
		NewSessionHandler(coordinator, 1024),
		NewApplicationHandler(applications, index),
	)

	return &testServer{app: app, applications: applications}
}

func (s *testServer) do(t *testing.T, req *http.Request, out any) int {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func resumeRequest(t *testing.T, path, filename, contentType, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// startSession creates a session with jobID selected and returns its id.
func (s *testServer) startSession(t *testing.T, jobID string) string {
	t.Helper()

	var session models.SessionResponse
	require.Equal(t, http.StatusCreated, s.do(t, jsonRequest(http.MethodPost, "/api/v1/sessions", nil), &session))

	require.Equal(t, http.StatusOK, s.do(t,
		jsonRequest(http.MethodPut, "/api/v1/sessions/"+session.ID+"/job", models.SelectJobRequest{JobID: jobID}),
		&session,
	))
	return session.ID
}

func (s *testServer) upload(t *testing.T, sessionID, skills string) models.SessionResponse {
	t.Helper()

	var session models.SessionResponse
	status := s.do(t, resumeRequest(t, "/api/v1/sessions/"+sessionID+"/resume", "cv.pdf", "application/pdf", skills), &session)
	require.Equal(t, http.StatusOK, status)
	return session
}
