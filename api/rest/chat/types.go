package chat

import (
	"codeberg.org/papermind/server/api/rest/retrieve"
	"codeberg.org/papermind/server/internal/answerer"
	"codeberg.org/papermind/server/internal/hybrid"
)

// request body for the full question-answering flow
type QueryRequest struct {
	Query              string `json:"query" binding:"required"`
	UserID             string `json:"user_id"`
	DocumentID         string `json:"document_id"`
	SystemPrompt       string `json:"system_prompt"`
	WebMode            string `json:"web_mode"`
	TopK               int    `json:"top_k"`
	WebMaxResults      int    `json:"web_max_results"`
	InternalMaxResults int    `json:"internal_max_results"`
}

// response body for the full question-answering flow
type QueryResponse struct {
	Answer   string            `json:"answer"`
	Sources  []retrieve.Source `json:"sources"`
	Metadata answerer.Metadata `json:"metadata"`
}

// frontend-compatible chat request; field names follow the web client
type ChatRequest struct {
	Query      string `json:"query" binding:"required"`
	TopK       int    `json:"topK"`
	IncludeWeb bool   `json:"includeWeb"`
	DocumentID string `json:"documentId"`
}

// frontend-compatible source shape; Text duplicates Content because
// the web client reads either field depending on the view
type ChatSource struct {
	Text       string  `json:"text"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
	ChunkIndex int     `json:"chunk_index"`
	PageNumber *int    `json:"page_number"`
	Type       string  `json:"type"`
	URL        string  `json:"url,omitempty"`
	Title      string  `json:"title,omitempty"`
}

type ChatMetadata struct {
	hybrid.Metadata
	ChunkCount  int   `json:"chunk_count"`
	QueryTimeMS int64 `json:"query_time_ms"`
}

// the answer field stays empty: the web client runs generation itself
// and only needs the retrieved context
type ChatResponse struct {
	Answer   string       `json:"answer"`
	Sources  []ChatSource `json:"sources"`
	Metadata ChatMetadata `json:"metadata"`
}
