package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"starscout/internal/config"
	"starscout/internal/database"
	"starscout/internal/github"
	"starscout/internal/handler"
	"starscout/internal/ingest"
	"starscout/internal/provider"
	"starscout/internal/retrieval"
	"starscout/internal/store"
)

// main is the single entry-point for the REST API.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - AI provider: %s", cfg.AIProvider)

	// Connect to Postgres (repositories + embedding store)
	pool, err := database.NewPostgres(cfg.DBConnection)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pool.Close()
	log.Printf("Connected to Postgres")

	// Resolve the AI provider up front so a bad kind or missing credential
	// fails at startup, not on the first chat request.
	ai, err := provider.New(provider.Config{
		Kind:             cfg.AIProvider,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		OllamaBaseURL:    cfg.OllamaBaseURL,
		OllamaEmbedModel: cfg.OllamaEmbedModel,
		OllamaChatModel:  cfg.OllamaChatModel,
	})
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}

	// Initialize services
	repoStore := store.New(pool)
	gh := github.NewClient(cfg.GitHubToken)
	ingestSvc := ingest.NewService(gh, repoStore)
	retrievalSvc := retrieval.NewService(repoStore, ai)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Register routes
	handler.RegisterRoutes(app, ingestSvc, retrievalSvc, pool)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
