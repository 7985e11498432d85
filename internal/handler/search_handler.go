package handler

import (
	"github.com/gofiber/fiber/v2"

	"starscout/internal/models"
	"starscout/internal/retrieval"
)

// SearchHandler exposes the format-only retrieval path: the rendered
// repository digest without an LLM round trip.
type SearchHandler struct {
	svc *retrieval.Service
}

// NewSearchHandler returns a struct pointer so you can call Register on it.
func NewSearchHandler(svc *retrieval.Service) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Register mounts the /search endpoint on the supplied router group.
func (h *SearchHandler) Register(r fiber.Router) {
	r.Get("/search", h.search)
}

// search handles GET /search?q=...
func (h *SearchHandler) search(c *fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}
	if req.Query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "q is required")
	}

	doc, err := h.svc.Answer(c.UserContext(), req.Query, true)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"query":   req.Query,
		"context": doc,
	})
}
