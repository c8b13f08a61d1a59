package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the portal API on api.
func RegisterRoutes(api fiber.Router, postings *PostingHandler, sessions *SessionHandler, applications *ApplicationHandler) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/postings", postings.HandleList)
	api.Get("/postings/:id", postings.HandleGet)

	api.Post("/sessions", sessions.HandleStart)
	api.Get("/sessions/:id", sessions.HandleGet)
	api.Put("/sessions/:id/job", sessions.HandleSelectJob)
	api.Post("/sessions/:id/resume", sessions.HandleUploadResume)
	api.Put("/sessions/:id/skills", sessions.HandleSelectSkills)
	api.Put("/sessions/:id/answers/:skill", sessions.HandleSetAnswer)
	api.Post("/sessions/:id/submit", sessions.HandleSubmit)

	// search before :id so it is not parsed as an applicant id
	api.Get("/applications/search", applications.HandleSearch)
	api.Get("/applications/:id", applications.HandleGet)
}
