package answerer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/papermind/server/internal/hybrid"
	"codeberg.org/papermind/server/internal/llm"
	"codeberg.org/papermind/server/internal/retriever"
)

type mockRetriever struct {
	retrieveFn func(ctx context.Context, req hybrid.Request) (*hybrid.Result, error)
}

func (m *mockRetriever) Retrieve(ctx context.Context, req hybrid.Request) (*hybrid.Result, error) {
	return m.retrieveFn(ctx, req)
}

type mockGenerator struct {
	generateFn func(ctx context.Context, prompt string) (*llm.GenerationResult, error)
	lastPrompt string
}

func (m *mockGenerator) GenerateText(ctx context.Context, prompt string) (*llm.GenerationResult, error) {
	m.lastPrompt = prompt
	return m.generateFn(ctx, prompt)
}

func (m *mockGenerator) Model() string {
	return "test-model"
}

func TestAnswerHappyPath(t *testing.T) {
	sources := []retriever.RetrievedChunk{
		{Content: "The warranty covers two years.", Similarity: 0.9},
	}

	ret := &mockRetriever{
		retrieveFn: func(_ context.Context, req hybrid.Request) (*hybrid.Result, error) {
			if req.Query != "what is the warranty period?" || req.UserID != "user-1" {
				t.Errorf("retrieval request not forwarded: %+v", req)
			}

			return &hybrid.Result{
				Sources: sources,
				Metadata: hybrid.Metadata{
					InternalResults: 1,
					TotalResults:    1,
					WebMode:         "auto",
				},
			}, nil
		},
	}

	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string) (*llm.GenerationResult, error) {
			return &llm.GenerationResult{Text: "Two years.", Model: "llama3", DurationMS: 42}, nil
		},
	}

	resp, err := New(ret, gen).Answer(context.Background(), Request{
		Query:  "what is the warranty period?",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Answer != "Two years." {
		t.Errorf("answer = %q, want %q", resp.Answer, "Two years.")
	}

	if len(resp.Sources) != 1 || resp.Sources[0].Content != sources[0].Content {
		t.Error("sources should pass through unchanged")
	}

	if resp.Metadata.Model != "llama3" {
		t.Errorf("metadata model = %q, want llama3", resp.Metadata.Model)
	}

	if resp.Metadata.GenerationTimeMS != 42 {
		t.Errorf("generation time = %d, want 42", resp.Metadata.GenerationTimeMS)
	}

	if resp.Metadata.InternalResults != 1 {
		t.Error("retrieval metadata should be embedded in the response metadata")
	}

	if !strings.Contains(gen.lastPrompt, "The warranty covers two years.") {
		t.Error("retrieved context should appear in the generated prompt")
	}

	if !strings.Contains(gen.lastPrompt, "Question: what is the warranty period?") {
		t.Error("question should appear in the generated prompt")
	}
}

func TestAnswerForwardsSystemPrompt(t *testing.T) {
	ret := &mockRetriever{
		retrieveFn: func(_ context.Context, _ hybrid.Request) (*hybrid.Result, error) {
			return &hybrid.Result{Sources: []retriever.RetrievedChunk{}}, nil
		},
	}

	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string) (*llm.GenerationResult, error) {
			return &llm.GenerationResult{Text: "ok"}, nil
		},
	}

	_, err := New(ret, gen).Answer(context.Background(), Request{
		Query:        "hello",
		UserID:       "user-1",
		SystemPrompt: "Answer in Vietnamese.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(gen.lastPrompt, "Answer in Vietnamese.") {
		t.Error("custom system prompt should lead the generated prompt")
	}
}

func TestAnswerRetrievalError(t *testing.T) {
	ret := &mockRetriever{
		retrieveFn: func(_ context.Context, _ hybrid.Request) (*hybrid.Result, error) {
			return nil, hybrid.ErrEmptyQuery
		},
	}

	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string) (*llm.GenerationResult, error) {
			t.Fatal("generator must not run when retrieval fails")
			return nil, nil
		},
	}

	_, err := New(ret, gen).Answer(context.Background(), Request{Query: "", UserID: "user-1"})
	if !errors.Is(err, hybrid.ErrEmptyQuery) {
		t.Errorf("expected wrapped ErrEmptyQuery, got %v", err)
	}
}

func TestAnswerGenerationError(t *testing.T) {
	ret := &mockRetriever{
		retrieveFn: func(_ context.Context, _ hybrid.Request) (*hybrid.Result, error) {
			return &hybrid.Result{Sources: []retriever.RetrievedChunk{}}, nil
		},
	}

	genErr := errors.New("model unavailable")

	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string) (*llm.GenerationResult, error) {
			return nil, genErr
		},
	}

	_, err := New(ret, gen).Answer(context.Background(), Request{Query: "hello", UserID: "user-1"})
	if !errors.Is(err, genErr) {
		t.Errorf("expected wrapped generator error, got %v", err)
	}
}
