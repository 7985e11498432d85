package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	ollamaDefaultBaseURL    = "http://localhost:11434"
	ollamaDefaultEmbedModel = "nomic-embed-text"
	ollamaDefaultChatModel  = "llama3"
)

// Ollama implements Provider against a local Ollama instance.
type Ollama struct {
	baseURL    string
	embedModel string
	chatModel  string
	http       *http.Client
}

// NewOllama creates the local-model provider. Empty arguments fall back to
// the usual local defaults.
func NewOllama(baseURL, embedModel, chatModel string) *Ollama {
	if baseURL == "" {
		baseURL = ollamaDefaultBaseURL
	}
	if embedModel == "" {
		embedModel = ollamaDefaultEmbedModel
	}
	if chatModel == "" {
		chatModel = ollamaDefaultChatModel
	}
	return &Ollama{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		embedModel: embedModel,
		chatModel:  chatModel,
		http:       &http.Client{Timeout: 300 * time.Second},
	}
}

// ollamaEmbedRequest is the /api/embeddings request format.
type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// ollamaEmbedResponse is the /api/embeddings response format.
type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// GenerateEmbeddings embeds texts one at a time—Ollama has no batch
// endpoint—and accumulates results in input order.
func (p *Ollama) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		jsonData, err := json.Marshal(ollamaEmbedRequest{Model: p.embedModel, Prompt: text})
		if err != nil {
			return nil, fmt.Errorf("ollama: marshaling embed request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/embeddings", bytes.NewReader(jsonData))
		if err != nil {
			return nil, fmt.Errorf("ollama: creating embed request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := p.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("ollama: embedding text %d: %w", i, err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("ollama: embeddings returned status %d", resp.StatusCode)
		}

		var embedResp ollamaEmbedResponse
		err = json.NewDecoder(resp.Body).Decode(&embedResp)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("ollama: decoding embedding %d: %w", i, err)
		}
		embeddings[i] = embedResp.Embedding
	}
	return embeddings, nil
}

// ollamaChatRequest is the non-streaming /api/chat request format.
type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []map[string]string `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  map[string]any      `json:"options,omitempty"`
}

// ChatCompletion sends the full message list in one non-streaming call and
// normalises the reply. Ollama usually nests the text under "message", but a
// degraded reply can carry "content" at the top level; both map onto the same
// ChatResponse. Anything else is ErrInvalidResponse.
func (p *Ollama) ChatCompletion(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (*ChatResponse, error) {
	reqBody := ollamaChatRequest{
		Model:    p.chatModel,
		Messages: formatOllamaMessages(messages),
		Stream:   false,
		Options: map[string]any{
			"num_predict": maxTokens,
			"temperature": temperature,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("ollama: marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("ollama: creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: calling chat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama: chat returned status %d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("ollama: decoding chat response: %w", err)
	}

	content, err := extractOllamaContent(raw)
	if err != nil {
		return nil, err
	}

	return &ChatResponse{
		Message: map[string]string{RoleAssistant: strings.TrimSpace(content)},
		Raw:     raw,
	}, nil
}

// formatOllamaMessages maps roles onto the three Ollama accepts; anything
// that is neither system nor user is sent as assistant.
func formatOllamaMessages(messages []ChatMessage) []map[string]string {
	formatted := make([]map[string]string, len(messages))
	for i, m := range messages {
		role := RoleAssistant
		switch m.Role {
		case RoleSystem:
			role = RoleSystem
		case RoleUser:
			role = RoleUser
		}
		formatted[i] = map[string]string{"role": role, "content": m.Content}
	}
	return formatted
}

// extractOllamaContent pulls the completion text out of either known
// response shape.
func extractOllamaContent(raw map[string]any) (string, error) {
	if msg, ok := raw["message"].(map[string]any); ok {
		content, _ := msg["content"].(string)
		if content == "" {
			// Fall back to top-level content when the nested field is empty.
			content, _ = raw["content"].(string)
		}
		return content, nil
	}
	if content, ok := raw["content"].(string); ok {
		return content, nil
	}
	return "", fmt.Errorf("ollama: %w", ErrInvalidResponse)
}
