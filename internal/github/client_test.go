package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastPageFromLink(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		want    int
		wantErr bool
	}{
		{
			name: "next and last",
			link: `<https://api.github.com/user/starred?per_page=1&page=2>; rel="next", <https://api.github.com/user/starred?per_page=1&page=427>; rel="last"`,
			want: 427,
		},
		{
			name: "last only",
			link: `<https://api.github.com/user/starred?page=3&per_page=1>; rel="last"`,
			want: 3,
		},
		{
			name:    "empty header",
			link:    "",
			wantErr: true,
		},
		{
			name:    "no last relation",
			link:    `<https://api.github.com/user/starred?page=2>; rel="next"`,
			wantErr: true,
		},
		{
			name:    "non-numeric page",
			link:    `<https://api.github.com/user/starred?page=abc>; rel="last"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lastPageFromLink(tt.link)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalStarred(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/starred", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		w.Header().Set("Link", fmt.Sprintf(`<%s/users/alice/starred?per_page=1&page=2>; rel="next", <%s/users/alice/starred?per_page=1&page=42>; rel="last"`, "http://example", "http://example"))
		json.NewEncoder(w).Encode([]StarredRepo{{FullName: "a/b"}})
	}))
	defer server.Close()

	c := NewClient("")
	c.SetBaseURL(server.URL)

	total, err := c.TotalStarred(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 42, total)
}

func TestTotalStarredMissingLinkHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]StarredRepo{{FullName: "a/b"}})
	}))
	defer server.Close()

	c := NewClient("")
	c.SetBaseURL(server.URL)

	_, err := c.TotalStarred(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Link header")
}

func TestListStarredPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/starred", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Query().Get("page") {
		case "1":
			w.Header().Set("Link", `<http://example?page=2>; rel="next", <http://example?page=2>; rel="last"`)
			json.NewEncoder(w).Encode([]StarredRepo{{FullName: "a/one"}, {FullName: "a/two"}})
		case "2":
			w.Header().Set("Link", `<http://example?page=1>; rel="prev"`)
			json.NewEncoder(w).Encode([]StarredRepo{{FullName: "a/three"}})
		}
	}))
	defer server.Close()

	c := NewClient("tok")
	c.SetBaseURL(server.URL)

	repos, hasNext, err := c.ListStarredPage(context.Background(), "alice", 1, 2)
	require.NoError(t, err)
	assert.True(t, hasNext)
	require.Len(t, repos, 2)
	assert.Equal(t, "a/one", repos[0].FullName)

	repos, hasNext, err = c.ListStarredPage(context.Background(), "alice", 2, 2)
	require.NoError(t, err)
	assert.False(t, hasNext)
	require.Len(t, repos, 1)
	assert.Equal(t, "a/three", repos[0].FullName)
}

func TestListStarredPageServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient("")
	c.SetBaseURL(server.URL)

	_, _, err := c.ListStarredPage(context.Background(), "alice", 1, 100)
	require.Error(t, err)
}

func TestFetchReadme(t *testing.T) {
	// GitHub wraps base64 content across lines; the client must cope.
	content := base64.StdEncoding.EncodeToString([]byte("# Hello\nWorld"))
	wrapped := content[:4] + "\n" + content[4:]

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/alice/hello/readme", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"content": wrapped})
	}))
	defer server.Close()

	c := NewClient("")
	c.SetBaseURL(server.URL)

	readme, err := c.FetchReadme(context.Background(), "alice/hello")
	require.NoError(t, err)
	assert.Equal(t, "# Hello\nWorld", readme)
}

func TestFetchReadmeAbsentIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient("")
	c.SetBaseURL(server.URL)

	readme, err := c.FetchReadme(context.Background(), "alice/empty")
	require.NoError(t, err)
	assert.Empty(t, readme)
}

func TestFetchReadmeBadBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"content": "%%% not base64 %%%"})
	}))
	defer server.Close()

	c := NewClient("")
	c.SetBaseURL(server.URL)

	_, err := c.FetchReadme(context.Background(), "alice/bad")
	require.Error(t, err)
}
