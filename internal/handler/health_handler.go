package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthHandler struct {
	pool *pgxpool.Pool
}

func NewHealthHandler(pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"db":     h.checkDB(c),
	})
}

func (h *HealthHandler) checkDB(c *fiber.Ctx) string {
	if h.pool == nil {
		return "not_configured"
	}
	if err := h.pool.Ping(c.Context()); err != nil {
		return "error"
	}
	return "connected"
}
