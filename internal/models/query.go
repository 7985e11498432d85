package models

// IngestRequest is the payload for POST /ingest and the websocket trigger.
type IngestRequest struct {
	GithubUsername string `json:"github_username"`
}

// ChatTurn is one completed user/assistant exchange. The history lives in the
// request payload, not in process state, so each call is self-contained.
type ChatTurn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// ChatRequest is the payload for POST /chat.
type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history,omitempty"`
}

// ChatReply echoes the updated history back so the client can carry it into
// the next request.
type ChatReply struct {
	Response    string     `json:"response"`
	ChatHistory []ChatTurn `json:"chat_history"`
}

// SearchRequest is the payload for GET /search (query parameters).
type SearchRequest struct {
	Query      string `json:"q"           query:"q"`
	FormatOnly bool   `json:"format_only" query:"format_only"`
}
