package models

// RepoInfo carries one starred repository's metadata through the ingestion
// pipeline and into the store. Description and Language are nullable on
// GitHub's side, so they stay pointers here.
type RepoInfo struct {
	Name        string  `json:"name"`
	FullName    string  `json:"full_name"` // "owner/name", unique key
	Description *string `json:"description"`
	Readme      string  `json:"readme,omitempty"`
	URL         string  `json:"url"`
	Language    *string `json:"language"`
	Stars       int     `json:"stars"`
}

// SearchResult is one row of a similarity search: repository fields joined
// back from the store plus a similarity score in [0,1] (1 - vector distance).
type SearchResult struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Similarity  float64 `json:"similarity"`
}

// Ingestion run status values.
const (
	StatusComplete = "COMPLETE"
	StatusSuccess  = "success"
)

// ProgressEvent is a transient status notification emitted while an ingestion
// run walks the star list. Either the progress fields are set (one event per
// item, in API order) or Status/Error marks a terminal event. Never persisted.
type ProgressEvent struct {
	CurrentRepo    string `json:"current_repo,omitempty"`
	ProcessedCount int    `json:"processed_count,omitempty"`
	TotalCount     int    `json:"total_count,omitempty"`
	Status         string `json:"status,omitempty"`
	Error          string `json:"error,omitempty"`
}

// IngestResult is the aggregate returned after a full ingestion run.
type IngestResult struct {
	GithubUsername string     `json:"github_username"`
	ReposProcessed int        `json:"repos_processed"`
	Repositories   []RepoInfo `json:"repositories"`
	Status         string     `json:"status"`
}
