package retrieve

import "codeberg.org/papermind/server/internal/hybrid"

// request body for hybrid retrieval
type Request struct {
	Query              string `json:"query" binding:"required"`
	UserID             string `json:"user_id"`
	DocumentID         string `json:"document_id"`
	WebMode            string `json:"web_mode"`
	TopK               int    `json:"top_k"`
	WebMaxResults      int    `json:"web_max_results"`
	InternalMaxResults int    `json:"internal_max_results"`
}

// one serialized retrieved chunk
type Source struct {
	Content    string         `json:"content"`
	ChunkIndex int            `json:"chunk_index"`
	PageNumber *int           `json:"page_number"`
	Similarity float64        `json:"similarity"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	SourceType string         `json:"source_type"`
}

// response body for hybrid retrieval
type Response struct {
	Sources        []Source        `json:"sources"`
	ContextPreview string          `json:"context_preview"`
	Metadata       hybrid.Metadata `json:"metadata"`
}
