package retriever

import (
	"codeberg.org/papermind/server/internal/llm"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Client performs vector similarity search over stored document chunks
type Client struct {
	pool     *pgxpool.Pool
	embedder llm.Embedder
}

// RetrievedChunk is the unit of retrieved evidence, shared by internal
// and web sources. Similarity is a true cosine similarity for internal
// chunks and a synthetic rank-based score for web chunks; the two are
// comparable by convention only.
type RetrievedChunk struct {
	Content    string         `json:"content"`
	ChunkIndex int            `json:"chunk_index"`
	PageNumber *int           `json:"page_number"`
	Similarity float64        `json:"similarity"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// SourceType reports where a chunk came from, defaulting to internal
func (c RetrievedChunk) SourceType() string {
	if c.Metadata != nil {
		if source, ok := c.Metadata["source"].(string); ok && source != "" {
			return source
		}
	}

	return "internal"
}
