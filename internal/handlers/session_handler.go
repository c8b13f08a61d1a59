package handlers

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
	"alfredoptarigan/applicant-portal/internal/services"
)

const resumeField = "resume"

type SessionHandler struct {
	coordinator services.SessionCoordinator
	maxFileSize int64
}

func NewSessionHandler(
	coordinator services.SessionCoordinator,
	maxFileSize int64,
) *SessionHandler {
	return &SessionHandler{
		coordinator: coordinator,
		maxFileSize: maxFileSize,
	}
}

func (h *SessionHandler) HandleStart(c *fiber.Ctx) error {
	session, err := h.coordinator.Start(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(session))
}

func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	session, err := h.coordinator.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(session))
}

func (h *SessionHandler) HandleSelectJob(c *fiber.Ctx) error {
	var req models.SelectJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.InvalidRequest("invalid request body")
	}

	session, err := h.coordinator.SelectJob(c.UserContext(), c.Params("id"), strings.TrimSpace(req.JobID))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(session))
}

func (h *SessionHandler) HandleUploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile(resumeField)
	if err != nil {
		return apperror.InvalidRequest(msgUploadResume)
	}

	if !isPDF(file.Filename, file.Header.Get("Content-Type")) {
		return apperror.InvalidRequest("only PDF resumes are accepted")
	}

	if file.Size > h.maxFileSize {
		return apperror.InvalidRequest(fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize))
	}

	f, err := file.Open()
	if err != nil {
		return apperror.InvalidRequest("failed to read uploaded resume")
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return apperror.InvalidRequest("failed to read uploaded resume")
	}

	session, err := h.coordinator.UploadResume(c.UserContext(), c.Params("id"), content)
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(session))
}

func (h *SessionHandler) HandleSelectSkills(c *fiber.Ctx) error {
	var req models.SelectSkillsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.InvalidRequest("invalid request body")
	}

	session, err := h.coordinator.SelectSkills(c.UserContext(), c.Params("id"), req.Skills)
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(session))
}

func (h *SessionHandler) HandleSetAnswer(c *fiber.Ctx) error {
	// Route params arrive still percent-encoded ("Machine%20Learning").
	skill, err := url.PathUnescape(c.Params("skill"))
	if err != nil {
		return apperror.InvalidRequest("invalid skill name")
	}

	var req models.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.InvalidRequest("invalid request body")
	}

	session, err := h.coordinator.SetAnswer(c.UserContext(), c.Params("id"), skill, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(session))
}

func (h *SessionHandler) HandleSubmit(c *fiber.Ctx) error {
	record, session, err := h.coordinator.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.SubmitResponse{
		Application: record,
		Session:     toSessionResponse(session),
		Level:       models.LevelSuccess,
		Message:     msgSubmitted,
	})
}

func isPDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(contentType), "application/pdf")
}
