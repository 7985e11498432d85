package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openaiDefaultBaseURL = "https://api.openai.com/v1"

	// Model names are fixed per operation for the hosted backend.
	openaiEmbedModel = "text-embedding-ada-002"
	openaiChatModel  = "gpt-3.5-turbo-16k"
)

// OpenAI implements Provider against an OpenAI-compatible hosted API.
type OpenAI struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewOpenAI creates the hosted-API provider. The key is required; baseURL may
// be empty to use the public endpoint.
func NewOpenAI(apiKey, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai provider requires an API key")
	}
	if baseURL == "" {
		baseURL = openaiDefaultBaseURL
	}
	return &OpenAI{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// GenerateEmbeddings embeds the whole batch in one network call.
func (p *OpenAI) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	body := map[string]any{
		"model": openaiEmbedModel,
		"input": texts,
	}

	respBody, err := p.post(ctx, "/embeddings", body)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("openai: decoding embeddings: %w", err)
	}

	embeddings := make([][]float32, len(result.Data))
	for i, d := range result.Data {
		embeddings[i] = d.Embedding
	}
	return embeddings, nil
}

// ChatCompletion sends the full message list in one call.
func (p *OpenAI) ChatCompletion(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (*ChatResponse, error) {
	msgs := make([]map[string]string, len(messages))
	for i, m := range messages {
		msgs[i] = map[string]string{"role": m.Role, "content": m.Content}
	}

	body := map[string]any{
		"model":       openaiChatModel,
		"messages":    msgs,
		"max_tokens":  maxTokens,
		"temperature": temperature,
		"n":           1,
	}

	respBody, err := p.post(ctx, "/chat/completions", body)
	if err != nil {
		return nil, err
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("openai: decoding chat completion: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("openai: %w: no choices", ErrInvalidResponse)
	}

	return &ChatResponse{
		Message: map[string]string{RoleAssistant: strings.TrimSpace(result.Choices[0].Message.Content)},
		Raw:     json.RawMessage(respBody),
	}, nil
}

// post marshals body, issues the request with bearer auth, and returns the
// response bytes. Non-200 statuses become errors carrying the response text.
func (p *OpenAI) post(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: reading %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: %s: %s", resp.Status, respBody)
	}
	return respBody, nil
}
