// Package provider unifies embedding generation and chat completion across
// interchangeable AI backends. Add a backend by implementing Provider and
// registering it in the factory switch, not by growing a hierarchy.
package provider

import (
	"context"
	"errors"
)

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrUnknownProvider is returned by the factory for an unrecognised kind.
var ErrUnknownProvider = errors.New("unknown provider kind")

// ErrInvalidResponse marks a backend reply whose structure matches neither of
// the shapes we know how to normalise.
var ErrInvalidResponse = errors.New("invalid response structure")

// ChatMessage is one role-tagged turn sent to a backend.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the normalised result of a chat completion. Message maps
// the produced role to its content (matching the frontend Message type); Raw
// keeps the backend's original payload for callers that want to log it.
type ChatResponse struct {
	Message map[string]string `json:"message"`
	Raw     any               `json:"-"`
}

// Provider is the capability set every AI backend must implement.
type Provider interface {
	// GenerateEmbeddings returns one vector per input text, in input order.
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	// ChatCompletion sends the message list and returns the produced message.
	ChatCompletion(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (*ChatResponse, error)
}
