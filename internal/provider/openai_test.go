package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerateEmbeddingsBatches(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-ada-002", req.Model)
		assert.Equal(t, []string{"a", "b"}, req.Input)

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1}},
				{"embedding": []float32{0.2}},
			},
		})
	}))
	defer server.Close()

	p, err := NewOpenAI("sk-test", server.URL)
	require.NoError(t, err)

	embeddings, err := p.GenerateEmbeddings(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	// One network call for the whole batch.
	assert.Equal(t, 1, calls)
	require.Len(t, embeddings, 2)
	assert.Equal(t, []float32{0.1}, embeddings[0])
}

func TestOpenAIChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)

		var req struct {
			Model       string              `json:"model"`
			Messages    []map[string]string `json:"messages"`
			MaxTokens   int                 `json:"max_tokens"`
			Temperature float64             `json:"temperature"`
			N           int                 `json:"n"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo-16k", req.Model)
		assert.Equal(t, 1000, req.MaxTokens)
		assert.InDelta(t, 0.1, req.Temperature, 1e-9)
		assert.Equal(t, 1, req.N)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleSystem, req.Messages[0]["role"])

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  hello there  "}},
			},
		})
	}))
	defer server.Close()

	p, err := NewOpenAI("sk-test", server.URL)
	require.NoError(t, err)

	resp, err := p.ChatCompletion(context.Background(), []ChatMessage{
		{Role: RoleSystem, Content: "be helpful"},
		{Role: RoleUser, Content: "hi"},
	}, 1000, 0.1)
	require.NoError(t, err)

	assert.Equal(t, "hello there", resp.Message[RoleAssistant])
}

func TestOpenAIErrorPropagatesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "bad key"}`))
	}))
	defer server.Close()

	p, err := NewOpenAI("sk-bad", server.URL)
	require.NoError(t, err)

	_, err = p.GenerateEmbeddings(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestOpenAIChatCompletionNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	p, err := NewOpenAI("sk-test", server.URL)
	require.NoError(t, err)

	_, err = p.ChatCompletion(context.Background(), []ChatMessage{{Role: RoleUser, Content: "q"}}, 100, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
