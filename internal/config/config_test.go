package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "8000")
	t.Setenv("DB_CONNECTION", "postgres://localhost/starscout")
	for _, key := range []string{"AI_PROVIDER", "OLLAMA_BASE_URL", "OLLAMA_EMBED_MODEL",
		"OLLAMA_CHAT_MODEL", "READ_TIMEOUT_SEC", "WRITE_TIMEOUT_SEC"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "postgres://localhost/starscout", cfg.DBConnection)
	assert.Equal(t, "ollama", cfg.AIProvider)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaBaseURL)
	assert.Equal(t, "nomic-embed-text", cfg.OllamaEmbedModel)
	assert.Equal(t, "llama3", cfg.OllamaChatModel)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_CONNECTION", "postgres://db/starscout")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://proxy:8080/v1")
	t.Setenv("OLLAMA_CHAT_MODEL", "mistral")
	t.Setenv("READ_TIMEOUT_SEC", "30")

	cfg := Load()

	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "http://proxy:8080/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "mistral", cfg.OllamaChatModel)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
}

func TestGetDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("READ_TIMEOUT_SEC", "not-a-number")
	assert.Equal(t, 5*time.Second, getDuration("READ_TIMEOUT_SEC", 5))
}
