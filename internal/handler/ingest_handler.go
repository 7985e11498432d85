package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"starscout/internal/ingest"
	"starscout/internal/models"
)

// IngestHandler wires HTTP → ingest.Service.
type IngestHandler struct {
	svc *ingest.Service
}

// NewIngestHandler returns a struct pointer so you can call Register on it.
func NewIngestHandler(svc *ingest.Service) *IngestHandler {
	return &IngestHandler{svc: svc}
}

// Register mounts the /ingest endpoint on the supplied router group.
func (h *IngestHandler) Register(r fiber.Router) {
	r.Post("/ingest", h.ingest)
}

// ingest handles POST /ingest  { "github_username": "..." }
func (h *IngestHandler) ingest(c *fiber.Ctx) error {
	var req models.IngestRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.GithubUsername == "" {
		log.Printf("No GitHub username provided in the request")
		return fiber.NewError(fiber.StatusBadRequest, "No GitHub username provided")
	}

	log.Printf("Processing stars for GitHub user: %s", req.GithubUsername)

	result, err := h.svc.Ingest(c.UserContext(), req.GithubUsername, ingest.Discard)
	if err != nil {
		log.Printf("Error processing user stars: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "GitHub user stars processed successfully",
		"result":  result,
	})
}
