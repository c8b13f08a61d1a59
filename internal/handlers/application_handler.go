package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/repositories"
	"alfredoptarigan/applicant-portal/internal/services"
)

const (
	defaultSearchLimit = 5
	maxSearchLimit     = 50
)

type ApplicationHandler struct {
	applicationRepo repositories.ApplicationRepository
	index           services.ApplicantIndex
}

// NewApplicationHandler builds the handler. index may be nil when search is disabled.
func NewApplicationHandler(applicationRepo repositories.ApplicationRepository, index services.ApplicantIndex) *ApplicationHandler {
	return &ApplicationHandler{
		applicationRepo: applicationRepo,
		index:           index,
	}
}

func (h *ApplicationHandler) HandleGet(c *fiber.Ctx) error {
	applicantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperror.InvalidRequest("invalid applicant ID format")
	}

	record, err := h.applicationRepo.FindByID(c.UserContext(), applicantID)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (h *ApplicationHandler) HandleSearch(c *fiber.Ctx) error {
	if h.index == nil {
		return apperror.NotFound("applicant search is not enabled", nil)
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return apperror.InvalidRequest("query parameter q is required")
	}

	limit := c.QueryInt("limit", defaultSearchLimit)
	if limit <= 0 || limit > maxSearchLimit {
		return apperror.InvalidRequest("limit must be between 1 and 50")
	}

	matches, err := h.index.SearchSimilar(c.UserContext(), query, limit)
	if err != nil {
		return apperror.StorageError("failed to search applicants", err)
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"matches": matches,
	})
}
