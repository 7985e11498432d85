package provider

import (
	"fmt"
	"log"
	"strings"
)

// Provider kinds recognised by the factory.
const (
	KindOpenAI = "openai"
	KindOllama = "ollama"
)

// Config holds everything needed to construct any provider kind. Only the
// fields for the chosen kind are consulted.
type Config struct {
	Kind string

	// Hosted backend
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// Local backend
	OllamaBaseURL    string
	OllamaEmbedModel string
	OllamaChatModel  string
}

// New resolves cfg.Kind to a concrete provider. An unrecognised kind or a
// missing required credential fails here, before any network call is made.
// Instances are cheap and hold no teardown state; construct freely.
func New(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Kind) {
	case KindOpenAI:
		p, err := NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		log.Printf("Initialized OpenAI provider")
		return p, nil

	case KindOllama:
		p := NewOllama(cfg.OllamaBaseURL, cfg.OllamaEmbedModel, cfg.OllamaChatModel)
		log.Printf("Initialized Ollama provider with embedding model %s and chat model %s",
			p.embedModel, p.chatModel)
		return p, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Kind)
	}
}
