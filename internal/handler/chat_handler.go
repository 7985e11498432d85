package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"starscout/internal/models"
	"starscout/internal/retrieval"
)

// ChatHandler wires HTTP → retrieval.Service. Conversation history is scoped
// to the request payload; the server keeps no chat state between calls.
type ChatHandler struct {
	svc *retrieval.Service
}

// NewChatHandler returns a struct pointer so you can call Register on it.
func NewChatHandler(svc *retrieval.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Register mounts the /chat endpoint on the supplied router group.
func (h *ChatHandler) Register(r fiber.Router) {
	r.Post("/chat", h.chat)
}

// chat handles POST /chat  { "message": "...", "history": [...] }
func (h *ChatHandler) chat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.Message == "" {
		log.Printf("No message provided in the chat request")
		return fiber.NewError(fiber.StatusBadRequest, "No message provided")
	}

	log.Printf("Received user message: %s", req.Message)

	answer, err := h.svc.Answer(c.UserContext(), req.Message, false)
	if err != nil {
		log.Printf("Error generating response: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(models.ChatReply{
		Response:    answer,
		ChatHistory: append(req.History, models.ChatTurn{User: req.Message, Assistant: answer}),
	})
}
