package prompt

import (
	"strings"
	"testing"

	"codeberg.org/papermind/server/internal/retriever"
)

func TestBuildEmptyQuery(t *testing.T) {
	if _, err := Build("   ", nil, ""); err == nil {
		t.Error("expected error for blank query")
	}
}

func TestBuildEmptyContext(t *testing.T) {
	result, err := Build("what is the warranty period?", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, emptyContextMarker) {
		t.Error("prompt should state that no context was found")
	}

	if !strings.Contains(result, DefaultSystemPrompt) {
		t.Error("prompt should fall back to the default system prompt")
	}

	if !strings.Contains(result, "Question: what is the warranty period?") {
		t.Error("prompt should carry the question")
	}
}

func TestBuildFormatsPassages(t *testing.T) {
	page := 12

	chunks := []retriever.RetrievedChunk{
		{Content: "  The warranty covers two years.  ", PageNumber: &page, Similarity: 0.8123},
		{
			Content:    "Consumer law extends coverage in some regions.",
			Similarity: 0.45,
			Metadata:   map[string]any{"source": "web", "url": "https://example.org/warranty", "title": "Warranty FAQ"},
		},
	}

	result, err := Build("what is the warranty period?", chunks, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, "Passage 1 | Page 12 | Score: 0.8123") {
		t.Errorf("internal passage header missing or wrong:\n%s", result)
	}

	if !strings.Contains(result, "Passage 2 | Web: https://example.org/warranty | Score: 0.4500") {
		t.Errorf("web passage header missing or wrong:\n%s", result)
	}

	if !strings.Contains(result, "The warranty covers two years.") {
		t.Error("passage content missing")
	}

	if strings.Contains(result, "  The warranty covers two years.  ") {
		t.Error("passage content should be trimmed")
	}
}

func TestBuildCustomSystemPrompt(t *testing.T) {
	custom := "Answer in Vietnamese."

	result, err := Build("hello", nil, custom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(result, custom) {
		t.Error("custom system prompt should replace the default")
	}

	if strings.Contains(result, DefaultSystemPrompt) {
		t.Error("default system prompt should not appear alongside a custom one")
	}
}
