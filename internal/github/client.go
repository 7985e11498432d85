// Package github is a minimal wrapper around GitHub's REST API v3.
// It is intentionally light—just the endpoints the ingestion pipeline needs:
// the paginated starred-repository listing and the README lookup.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// StarredRepo mirrors the fields we consume from GitHub's starred listing.
type StarredRepo struct {
	Name        string  `json:"name"`
	FullName    string  `json:"full_name"`
	Description *string `json:"description"`
	HTMLURL     string  `json:"html_url"`
	Language    *string `json:"language"`
	Stars       int     `json:"stargazers_count"`
}

// Client talks to the GitHub REST API.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient returns a ready-to-use GitHub API client.
// token may be an empty string, but you will be subject to very low rate-limits.
func NewClient(token string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: defaultBaseURL,
		token:   token,
	}
}

// SetBaseURL points the client at a different API root. Used by tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimSuffix(base, "/")
}

// TotalStarred reports how many repositories the user has starred, read from
// the rel="last" entry of the Link header on a one-item probe request.
// A missing or malformed header is a hard error; the ingestion pipeline must
// not guess a total.
func (c *Client) TotalStarred(ctx context.Context, username string) (int, error) {
	u := fmt.Sprintf("%s/users/%s/starred?per_page=1", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("github: fetching star count: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("github: unexpected status %s", resp.Status)
	}

	total, err := lastPageFromLink(resp.Header.Get("Link"))
	if err != nil {
		return 0, fmt.Errorf("github: star count for %s: %w", username, err)
	}
	return total, nil
}

// ListStarredPage fetches one page of the user's starred repositories.
// hasNext reports whether the API advertises a further page.
func (c *Client) ListStarredPage(ctx context.Context, username string, page, perPage int) (repos []StarredRepo, hasNext bool, err error) {
	u := fmt.Sprintf("%s/users/%s/starred?page=%d&per_page=%d",
		c.baseURL, url.PathEscape(username), page, perPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, err
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("github: fetching starred page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("github: unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, false, fmt.Errorf("github: decoding starred page %d: %w", page, err)
	}

	return repos, hasRel(resp.Header.Get("Link"), "next"), nil
}

// FetchReadme returns the decoded README text for "owner/name".
// A non-success status means the repository simply has no README; that is a
// normal condition and returns an empty string with no error.
func (c *Client) FetchReadme(ctx context.Context, fullName string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/readme", c.baseURL, fullName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("github: fetching README for %s: %w", fullName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("No README found for %s (status %s)", fullName, resp.Status)
		return "", nil
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("github: decoding README for %s: %w", fullName, err)
	}

	// GitHub delivers README content base64-encoded with embedded newlines.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(body.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("github: decoding README content for %s: %w", fullName, err)
	}
	return string(raw), nil
}

// addHeaders sets authentication and Accept headers.
func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", "starscout-api")
}

// lastPageFromLink extracts the page number of the rel="last" entry from a
// Link header, e.g.
//
//	<https://api.github.com/user/starred?per_page=1&page=2>; rel="next",
//	<https://api.github.com/user/starred?per_page=1&page=427>; rel="last"
func lastPageFromLink(link string) (int, error) {
	if link == "" {
		return 0, fmt.Errorf("missing Link header")
	}

	for _, part := range strings.Split(link, ",") {
		if !strings.Contains(part, `rel="last"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start < 0 || end < start {
			break
		}
		u, err := url.Parse(part[start+1 : end])
		if err != nil {
			return 0, fmt.Errorf("malformed Link header %q: %w", link, err)
		}
		page, err := strconv.Atoi(u.Query().Get("page"))
		if err != nil {
			return 0, fmt.Errorf("malformed Link header %q: %w", link, err)
		}
		return page, nil
	}
	return 0, fmt.Errorf("malformed Link header %q: no last page", link)
}

// hasRel reports whether the Link header advertises the given relation.
func hasRel(link, rel string) bool {
	return strings.Contains(link, `rel="`+rel+`"`)
}
