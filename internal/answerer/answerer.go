package answerer

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/papermind/server/internal/hybrid"
	"codeberg.org/papermind/server/internal/llm"
	"codeberg.org/papermind/server/internal/prompt"
)

func New(ret Retriever, generator llm.TextGenerator) *Answerer {
	return &Answerer{
		retriever: ret,
		generator: generator,
	}
}

// Answer runs one full question-answering round. Retrieval failures of
// individual sources are already absorbed by the retriever; an error
// here means a bad request or a broken generator.
func (a *Answerer) Answer(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	result, err := a.retriever.Retrieve(ctx, hybrid.Request{
		Query:              req.Query,
		UserID:             req.UserID,
		DocumentID:         req.DocumentID,
		WebMode:            req.WebMode,
		TopK:               req.TopK,
		WebMaxResults:      req.WebMaxResults,
		InternalMaxResults: req.InternalMaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve context: %w", err)
	}

	ragPrompt, err := prompt.Build(req.Query, result.Sources, req.SystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	generation, err := a.generator.GenerateText(ctx, ragPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	return &Response{
		Answer:  generation.Text,
		Sources: result.Sources,
		Metadata: Metadata{
			Metadata:         result.Metadata,
			Model:            generation.Model,
			QueryTimeMS:      time.Since(start).Milliseconds(),
			GenerationTimeMS: generation.DurationMS,
		},
	}, nil
}
