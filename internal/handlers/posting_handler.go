package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
	"alfredoptarigan/applicant-portal/internal/repositories"
)

type PostingHandler struct {
	postingRepo repositories.PostingRepository
}

func NewPostingHandler(postingRepo repositories.PostingRepository) *PostingHandler {
	return &PostingHandler{
		postingRepo: postingRepo,
	}
}

func (h *PostingHandler) HandleList(c *fiber.Ctx) error {
	postings, err := h.postingRepo.List(c.UserContext())
	if err != nil {
		return err
	}

	if len(postings) == 0 {
		return apperror.NotFound(msgNoPostings, nil)
	}

	return c.JSON(models.PostingsResponse{Postings: postings})
}

func (h *PostingHandler) HandleGet(c *fiber.Ctx) error {
	posting, err := h.postingRepo.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	posting.RequiredSkills = models.NormalizeSkills(posting.RequiredSkills)
	return c.JSON(posting)
}
