// Package retrieval turns a free-text query into either a formatted
// repository digest or an AI-synthesised answer over the user's stars.
package retrieval

import (
	"context"
	"fmt"
	"log"
	"strings"

	"starscout/internal/models"
	"starscout/internal/provider"
)

const (
	defaultLimit      = 5
	answerMaxTokens   = 1000 // keep responses concise
	answerTemperature = 0.1  // keep low for factual responses
)

const systemPrompt = `You are a technical assistant specializing in analyzing GitHub repositories.
Provide concise, structured responses that:
1. Focus on how each repository specifically addresses the user's query
2. Highlight key technical features and capabilities
3. Keep explanations brief and to the point
4. Use markdown formatting appropriately`

// ---- Store contract --------------------------------------------------------

// Searcher exposes similarity search over the stored repositories.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

// ---- Service ---------------------------------------------------------------

// Service runs the read path: search, format, optionally ask the provider.
type Service struct {
	store Searcher
	ai    provider.Provider
}

// NewService wires the store and the AI provider.
func NewService(store Searcher, ai provider.Provider) *Service {
	return &Service{store: store, ai: ai}
}

// Answer generates a response for the user's query. If formatOnly is true it
// returns just the formatted repository list; otherwise the list is passed
// through the provider for an AI-enhanced analysis. Store and provider
// failures propagate unchanged.
func (s *Service) Answer(ctx context.Context, query string, formatOnly bool) (string, error) {
	log.Printf("Generating response based on similar repositories")

	results, err := s.store.Search(ctx, query, defaultLimit)
	if err != nil {
		return "", err
	}

	repoContext := formatContext(results, query)

	if formatOnly {
		return repoContext, nil
	}

	userPrompt := fmt.Sprintf(`Based on the following repository information, provide a structured response that helps the user understand the most relevant repositories for their query.

%s

Focus on concrete technical details rather than general statements.`, repoContext)

	messages := []provider.ChatMessage{
		{Role: provider.RoleSystem, Content: systemPrompt},
		{Role: provider.RoleUser, Content: userPrompt},
	}

	resp, err := s.ai.ChatCompletion(ctx, messages, answerMaxTokens, answerTemperature)
	if err != nil {
		return "", err
	}

	return resp.Message[provider.RoleAssistant], nil
}

// formatContext renders search results into a structured markdown context:
// a header naming the query, one line per repository, and a trailing note
// about what the score measures. Results missing a name or URL are skipped
// with a warning rather than failing the whole operation.
func formatContext(results []models.SearchResult, query string) string {
	lines := []string{fmt.Sprintf("# Your Starred Repositories Related to %q", query)}

	for _, r := range results {
		if r.Name == "" || r.URL == "" {
			log.Printf("Malformed repository entry: %+v", r)
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s](%s) - %s *Relevance: %.1f%%*",
			r.Name, r.URL, r.Description, r.Similarity*100))
	}

	lines = append(lines, "\nNote: The relevance scores are based on the similarity of the repository names and descriptions to the query.")

	return strings.Join(lines, "\n")
}
