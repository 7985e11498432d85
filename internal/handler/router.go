package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"starscout/internal/ingest"
	"starscout/internal/retrieval"
)

// RegisterRoutes mounts every endpoint on the app.
func RegisterRoutes(app *fiber.App,
	ingestSvc *ingest.Service,
	retrievalSvc *retrieval.Service,
	pool *pgxpool.Pool,
) {
	NewIngestHandler(ingestSvc).Register(app)
	NewChatHandler(retrievalSvc).Register(app)
	NewSearchHandler(retrievalSvc).Register(app)
	NewHealthHandler(pool).Register(app)

	// Websocket endpoint for streaming ingestion progress.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", StarsSocket(ingestSvc))
}
