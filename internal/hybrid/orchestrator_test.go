package hybrid

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/papermind/server/internal/retriever"
	"codeberg.org/papermind/server/internal/websearch"
)

type mockInternal struct {
	searchByDocumentFn func(ctx context.Context, query, documentID string, limit int) ([]retriever.RetrievedChunk, error)
	searchByOwnerFn    func(ctx context.Context, query, ownerID string, limit int) ([]retriever.RetrievedChunk, error)

	documentCalls int
	ownerCalls    int
}

func (m *mockInternal) SearchByDocument(ctx context.Context, query, documentID string, limit int) ([]retriever.RetrievedChunk, error) {
	m.documentCalls++

	if m.searchByDocumentFn == nil {
		return nil, nil
	}

	return m.searchByDocumentFn(ctx, query, documentID, limit)
}

func (m *mockInternal) SearchByOwner(ctx context.Context, query, ownerID string, limit int) ([]retriever.RetrievedChunk, error) {
	m.ownerCalls++

	if m.searchByOwnerFn == nil {
		return nil, nil
	}

	return m.searchByOwnerFn(ctx, query, ownerID, limit)
}

type mockWeb struct {
	searchFn func(ctx context.Context, query string, limit int) ([]websearch.Result, error)
	calls    int
}

func (m *mockWeb) Search(ctx context.Context, query string, limit int) ([]websearch.Result, error) {
	m.calls++

	if m.searchFn == nil {
		return nil, nil
	}

	return m.searchFn(ctx, query, limit)
}

func internalChunks(similarities ...float64) []retriever.RetrievedChunk {
	chunks := make([]retriever.RetrievedChunk, 0, len(similarities))

	for i, s := range similarities {
		chunks = append(chunks, retriever.RetrievedChunk{
			Content:    "internal chunk",
			ChunkIndex: i + 1,
			Similarity: s,
		})
	}

	return chunks
}

func TestRetrievePreconditions(t *testing.T) {
	internal := &mockInternal{}
	web := &mockWeb{}
	orch := New(internal, web)

	_, err := orch.Retrieve(context.Background(), Request{Query: "  ", UserID: "user-1"})
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}

	_, err = orch.Retrieve(context.Background(), Request{Query: "hello", UserID: ""})
	if !errors.Is(err, ErrMissingUser) {
		t.Errorf("expected ErrMissingUser, got %v", err)
	}

	_, err = orch.Retrieve(context.Background(), Request{Query: "hello", UserID: "user-1", WebMode: "maybe"})
	if err == nil {
		t.Error("expected error for invalid web mode")
	}

	if internal.documentCalls+internal.ownerCalls != 0 || web.calls != 0 {
		t.Error("precondition failures must not reach the searchers")
	}
}

func TestRetrieveMergeRankTruncate(t *testing.T) {
	internal := &mockInternal{
		searchByOwnerFn: func(_ context.Context, _, _ string, _ int) ([]retriever.RetrievedChunk, error) {
			return internalChunks(0.9, 0.7), nil
		},
	}

	web := &mockWeb{
		searchFn: func(_ context.Context, _ string, _ int) ([]websearch.Result, error) {
			return []websearch.Result{
				{Title: "First", URL: "https://a.example", Content: "web one"},
				{Title: "Second", URL: "https://b.example", Content: "web two"},
			}, nil
		},
	}

	result, err := New(internal, web).Retrieve(context.Background(), Request{
		Query:   "latest news about Go generics",
		UserID:  "user-1",
		WebMode: "force-on",
		TopK:    3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSimilarities := []float64{0.9, 0.7, 0.45}

	if len(result.Sources) != len(wantSimilarities) {
		t.Fatalf("expected %d sources, got %d", len(wantSimilarities), len(result.Sources))
	}

	for i, want := range wantSimilarities {
		if result.Sources[i].Similarity != want {
			t.Errorf("sources[%d].Similarity = %v, want %v", i, result.Sources[i].Similarity, want)
		}
	}

	webChunk := result.Sources[2]

	if webChunk.Metadata["source"] != "web" {
		t.Errorf("web chunk missing source tag, got metadata %v", webChunk.Metadata)
	}

	if webChunk.Metadata["url"] != "https://a.example" || webChunk.Metadata["title"] != "First" {
		t.Errorf("web chunk carries wrong provenance: %v", webChunk.Metadata)
	}

	if webChunk.PageNumber != nil {
		t.Error("web chunk should have no page number")
	}

	meta := result.Metadata

	if meta.InternalResults != 2 || meta.WebResults != 2 || meta.TotalResults != 3 {
		t.Errorf("metadata counts = %d/%d/%d, want 2/2/3",
			meta.InternalResults, meta.WebResults, meta.TotalResults)
	}

	if !meta.WebEnabled {
		t.Error("metadata should report web search enabled")
	}
}

func TestRetrieveRankingSorted(t *testing.T) {
	internal := &mockInternal{
		searchByOwnerFn: func(_ context.Context, _, _ string, _ int) ([]retriever.RetrievedChunk, error) {
			return internalChunks(0.2, 0.95, 0.5), nil
		},
	}

	web := &mockWeb{
		searchFn: func(_ context.Context, _ string, _ int) ([]websearch.Result, error) {
			return []websearch.Result{
				{Title: "A", URL: "https://a.example", Content: "a"},
				{Title: "B", URL: "https://b.example", Content: "b"},
				{Title: "C", URL: "https://c.example", Content: "c"},
			}, nil
		},
	}

	result, err := New(internal, web).Retrieve(context.Background(), Request{
		Query:   "how do solar panels degrade over time?",
		UserID:  "user-1",
		WebMode: "force-on",
		TopK:    10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(result.Sources); i++ {
		if result.Sources[i-1].Similarity < result.Sources[i].Similarity {
			t.Fatalf("sources not sorted descending at index %d: %v < %v",
				i, result.Sources[i-1].Similarity, result.Sources[i].Similarity)
		}
	}
}

func TestRetrieveStableTieBreak(t *testing.T) {
	// an internal chunk tied with the best web score stays ahead of it
	internal := &mockInternal{
		searchByOwnerFn: func(_ context.Context, _, _ string, _ int) ([]retriever.RetrievedChunk, error) {
			return internalChunks(0.45), nil
		},
	}

	web := &mockWeb{
		searchFn: func(_ context.Context, _ string, _ int) ([]websearch.Result, error) {
			return []websearch.Result{
				{Title: "Tied", URL: "https://tie.example", Content: "web"},
			}, nil
		},
	}

	result, err := New(internal, web).Retrieve(context.Background(), Request{
		Query:   "anything recent on this topic?",
		UserID:  "user-1",
		WebMode: "force-on",
		TopK:    2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(result.Sources))
	}

	if result.Sources[0].Metadata["source"] == "web" {
		t.Error("tie should be broken in favor of the internal chunk")
	}
}

func TestRetrieveDocumentScope(t *testing.T) {
	internal := &mockInternal{
		searchByDocumentFn: func(_ context.Context, _, documentID string, _ int) ([]retriever.RetrievedChunk, error) {
			if documentID != "doc-42" {
				t.Errorf("expected document id doc-42, got %q", documentID)
			}

			return internalChunks(0.8), nil
		},
	}

	web := &mockWeb{}

	result, err := New(internal, web).Retrieve(context.Background(), Request{
		Query:      "what does figure 3 show?",
		UserID:     "user-1",
		DocumentID: "doc-42",
		WebMode:    "auto",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if internal.documentCalls != 1 || internal.ownerCalls != 0 {
		t.Errorf("expected one document-scoped search, got document=%d owner=%d",
			internal.documentCalls, internal.ownerCalls)
	}

	if web.calls != 0 {
		t.Error("web searcher must not be invoked for a document-scoped auto query")
	}

	if result.Metadata.WebEnabled {
		t.Error("metadata should report web search disabled")
	}

	if result.Metadata.WebResults != 0 {
		t.Errorf("expected 0 web results, got %d", result.Metadata.WebResults)
	}
}

func TestRetrieveForceModes(t *testing.T) {
	internal := &mockInternal{}
	web := &mockWeb{}
	orch := New(internal, web)

	// force-on runs web search even with a document scope
	result, err := orch.Retrieve(context.Background(), Request{
		Query:      "summarize this document",
		UserID:     "user-1",
		DocumentID: "doc-42",
		WebMode:    "force-on",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Metadata.WebEnabled {
		t.Error("force-on should enable web search despite the document scope")
	}

	if web.calls != 1 {
		t.Errorf("expected 1 web search call, got %d", web.calls)
	}

	// force-off skips web search even for an open-web query
	result, err = orch.Retrieve(context.Background(), Request{
		Query:   "latest advances in transformer models",
		UserID:  "user-1",
		WebMode: "force-off",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Metadata.WebEnabled {
		t.Error("force-off should disable web search")
	}

	if web.calls != 1 {
		t.Errorf("web searcher called under force-off, total calls %d", web.calls)
	}

	if result.Metadata.WebMode != "force-off" {
		t.Errorf("metadata web mode = %q, want force-off", result.Metadata.WebMode)
	}
}

func TestRetrieveKeywordDetection(t *testing.T) {
	internal := &mockInternal{}
	web := &mockWeb{}
	orch := New(internal, web)

	result, err := orch.Retrieve(context.Background(), Request{
		Query:   "What does figure 3 show?",
		UserID:  "user-1",
		WebMode: "auto",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Metadata.WebEnabled {
		t.Error("document-intent query should disable web search")
	}

	result, err = orch.Retrieve(context.Background(), Request{
		Query:   "What is the capital of France?",
		UserID:  "user-1",
		WebMode: "auto",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Metadata.WebEnabled {
		t.Error("general-knowledge query should keep web search enabled")
	}
}

func TestRetrieveWebFailureIsolated(t *testing.T) {
	internal := &mockInternal{
		searchByOwnerFn: func(_ context.Context, _, _ string, _ int) ([]retriever.RetrievedChunk, error) {
			return internalChunks(0.9, 0.7), nil
		},
	}

	web := &mockWeb{
		searchFn: func(_ context.Context, _ string, _ int) ([]websearch.Result, error) {
			return nil, errors.New("quota exceeded")
		},
	}

	result, err := New(internal, web).Retrieve(context.Background(), Request{
		Query:   "recent research on battery chemistry",
		UserID:  "user-1",
		WebMode: "force-on",
	})
	if err != nil {
		t.Fatalf("web failure must not fail the retrieval: %v", err)
	}

	if result.Metadata.WebResults != 0 {
		t.Errorf("expected 0 web results after provider failure, got %d", result.Metadata.WebResults)
	}

	if result.Metadata.InternalResults != 2 || len(result.Sources) != 2 {
		t.Errorf("internal results lost: metadata=%d sources=%d",
			result.Metadata.InternalResults, len(result.Sources))
	}

	for _, chunk := range result.Sources {
		if chunk.Metadata["source"] == "web" {
			t.Error("no web chunk should survive a provider failure")
		}
	}
}

func TestRetrieveInternalFailureIsolated(t *testing.T) {
	internal := &mockInternal{
		searchByOwnerFn: func(_ context.Context, _, _ string, _ int) ([]retriever.RetrievedChunk, error) {
			return nil, errors.New("connection refused")
		},
	}

	web := &mockWeb{
		searchFn: func(_ context.Context, _ string, _ int) ([]websearch.Result, error) {
			return []websearch.Result{
				{Title: "Only", URL: "https://only.example", Content: "web"},
			}, nil
		},
	}

	result, err := New(internal, web).Retrieve(context.Background(), Request{
		Query:   "recent research on battery chemistry",
		UserID:  "user-1",
		WebMode: "force-on",
	})
	if err != nil {
		t.Fatalf("internal failure must not fail the retrieval: %v", err)
	}

	if result.Metadata.InternalResults != 0 {
		t.Errorf("expected 0 internal results after store failure, got %d", result.Metadata.InternalResults)
	}

	if result.Metadata.WebResults != 1 || len(result.Sources) != 1 {
		t.Errorf("web results lost: metadata=%d sources=%d",
			result.Metadata.WebResults, len(result.Sources))
	}
}

func TestRetrieveBothSourcesFail(t *testing.T) {
	internal := &mockInternal{
		searchByOwnerFn: func(_ context.Context, _, _ string, _ int) ([]retriever.RetrievedChunk, error) {
			return nil, errors.New("connection refused")
		},
	}

	web := &mockWeb{
		searchFn: func(_ context.Context, _ string, _ int) ([]websearch.Result, error) {
			return nil, errors.New("timeout")
		},
	}

	result, err := New(internal, web).Retrieve(context.Background(), Request{
		Query:   "anything at all",
		UserID:  "user-1",
		WebMode: "force-on",
	})
	if err != nil {
		t.Fatalf("expected a well-formed empty result, got error: %v", err)
	}

	if result.Sources == nil {
		t.Error("sources should be an empty slice, not nil")
	}

	if len(result.Sources) != 0 || result.Metadata.TotalResults != 0 {
		t.Errorf("expected empty result, got %d sources", len(result.Sources))
	}
}

func TestRetrieveNilWebSearcher(t *testing.T) {
	internal := &mockInternal{
		searchByOwnerFn: func(_ context.Context, _, _ string, _ int) ([]retriever.RetrievedChunk, error) {
			return internalChunks(0.6), nil
		},
	}

	result, err := New(internal, nil).Retrieve(context.Background(), Request{
		Query:   "latest advances in transformer models",
		UserID:  "user-1",
		WebMode: "force-on",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Metadata.WebEnabled {
		t.Error("unconfigured web search should report disabled even under force-on")
	}

	if result.Metadata.InternalResults != 1 {
		t.Errorf("internal search should still run, got %d results", result.Metadata.InternalResults)
	}
}
