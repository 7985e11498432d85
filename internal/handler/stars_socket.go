package handler

import (
	"context"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"starscout/internal/ingest"
	"starscout/internal/models"
)

// StarsSocket returns the websocket handler for streaming ingestion.
// Each connection is its own session: the client sends
// {"github_username": "..."} and receives one status frame per repository,
// then the final result. Connection state lives entirely in this closure;
// there is no process-wide connection registry.
func StarsSocket(svc *ingest.Service) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		for {
			var req models.IngestRequest
			if err := c.ReadJSON(&req); err != nil {
				// Client went away or sent garbage; end the session.
				return
			}
			if req.GithubUsername == "" {
				continue
			}

			// A disconnected client stops progress delivery but must not
			// kill the ingestion run mid-write, so the run gets its own
			// context rather than the connection's.
			ctx := context.Background()

			sink := ingest.SinkFunc(func(ev models.ProgressEvent) error {
				return c.WriteJSON(fiber.Map{"status": ev})
			})

			_ = c.WriteJSON(fiber.Map{"status": models.ProgressEvent{Status: "FETCHING_REPOS"}})

			result, err := svc.Ingest(ctx, req.GithubUsername, sink)
			if err != nil {
				log.Printf("Error processing user stars: %v", err)
				if werr := c.WriteJSON(fiber.Map{"error": err.Error()}); werr != nil {
					return
				}
				continue
			}

			if err := c.WriteJSON(result); err != nil {
				return
			}
		}
	})
}
