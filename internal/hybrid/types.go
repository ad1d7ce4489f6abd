package hybrid

import (
	"context"
	"errors"

	"codeberg.org/papermind/server/internal/retriever"
	"codeberg.org/papermind/server/internal/websearch"
)

// precondition violations; source failures never surface as errors
var (
	ErrEmptyQuery  = errors.New("query cannot be empty")
	ErrMissingUser = errors.New("user id cannot be empty")
)

// InternalSearcher is the vector search collaborator
type InternalSearcher interface {
	SearchByDocument(ctx context.Context, query, documentID string, limit int) ([]retriever.RetrievedChunk, error)
	SearchByOwner(ctx context.Context, query, ownerID string, limit int) ([]retriever.RetrievedChunk, error)
}

// WebSearcher is the external search collaborator; a nil WebSearcher
// means web search is not configured and is silently disabled
type WebSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]websearch.Result, error)
}

// Request is one retrieval invocation
type Request struct {
	Query  string
	UserID string
	// restrict internal search to one document when set
	DocumentID string
	// web search directive: auto, force-on or force-off (empty = auto)
	WebMode            string
	TopK               int
	WebMaxResults      int
	InternalMaxResults int
}

// Metadata describes how a result was produced, letting callers tell
// "nothing matched" apart from "a source failed or was disabled"
type Metadata struct {
	InternalResults int    `json:"internal_results"`
	WebResults      int    `json:"web_results"`
	TotalResults    int    `json:"total_results"`
	WebEnabled      bool   `json:"web_enabled"`
	WebMode         string `json:"web_mode"`
}

// Result is the merged, ranked, truncated output of one retrieval
type Result struct {
	Sources  []retriever.RetrievedChunk `json:"sources"`
	Metadata Metadata                   `json:"metadata"`
}
