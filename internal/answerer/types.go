package answerer

import (
	"context"

	"codeberg.org/papermind/server/internal/hybrid"
	"codeberg.org/papermind/server/internal/llm"
	"codeberg.org/papermind/server/internal/retriever"
)

// interface for hybrid context retrieval
type Retriever interface {
	Retrieve(ctx context.Context, req hybrid.Request) (*hybrid.Result, error)
}

// Answerer runs the full loop: retrieve context, build the prompt,
// generate the answer
type Answerer struct {
	retriever Retriever
	generator llm.TextGenerator
}

// contains all inputs for one answered question
type Request struct {
	Query              string
	UserID             string
	DocumentID         string
	WebMode            string
	TopK               int
	WebMaxResults      int
	InternalMaxResults int
	SystemPrompt       string
}

// Metadata extends the retrieval metadata with generation facts
type Metadata struct {
	hybrid.Metadata
	Model            string `json:"model"`
	QueryTimeMS      int64  `json:"query_time_ms"`
	GenerationTimeMS int64  `json:"generation_time_ms"`
}

// contains the generated answer plus the evidence behind it
type Response struct {
	Answer   string                     `json:"answer"`
	Sources  []retriever.RetrievedChunk `json:"sources"`
	Metadata Metadata                   `json:"metadata"`
}
