package chunker

import (
	"strings"
	"testing"

	"codeberg.org/papermind/server/internal/extractor"
)

func TestSplitTextRespectsChunkSize(t *testing.T) {
	paragraphs := make([]string, 20)
	for i := range paragraphs {
		paragraphs[i] = strings.Repeat("lorem ipsum dolor sit amet ", 5)
	}

	text := strings.Join(paragraphs, "\n\n")

	opts := ChunkOptions{ChunkSize: 300, ChunkOverlap: 50, Separators: []string{"\n\n", "\n", " ", ""}}
	chunks := SplitText(text, opts)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if len(chunk) > opts.ChunkSize {
			t.Errorf("chunk %d exceeds size limit: %d > %d", i, len(chunk), opts.ChunkSize)
		}

		if strings.TrimSpace(chunk) == "" {
			t.Errorf("chunk %d is blank", i)
		}
	}
}

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("a short passage", DefaultOptions())

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	if chunks[0] != "a short passage" {
		t.Errorf("short input should pass through unchanged, got %q", chunks[0])
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	if chunks := SplitText("   \n\n  ", DefaultOptions()); len(chunks) != 0 {
		t.Errorf("expected no chunks for blank input, got %d", len(chunks))
	}
}

func TestSplitTextHardCutWithoutSeparators(t *testing.T) {
	// a single long token has no separators to split on
	text := strings.Repeat("x", 2500)

	chunks := SplitText(text, ChunkOptions{ChunkSize: 1000, ChunkOverlap: 0, Separators: []string{"\n\n", "\n", " ", ""}})

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}

	total := 0
	for i, chunk := range chunks {
		if len(chunk) > 1000 {
			t.Errorf("chunk %d exceeds size limit: %d", i, len(chunk))
		}

		total += len(chunk)
	}

	if total != 2500 {
		t.Errorf("hard cut should preserve all content, got %d of 2500 chars", total)
	}
}

func TestSplitTextOverlapCarriesContext(t *testing.T) {
	words := make([]string, 200)
	for i := range words {
		words[i] = "word"
	}

	text := strings.Join(words, " ")

	chunks := SplitText(text, ChunkOptions{ChunkSize: 120, ChunkOverlap: 30, Separators: []string{" ", ""}})

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// each chunk after the first should start with content from its predecessor
	for i := 1; i < len(chunks); i++ {
		prevTail := overlapTail(chunks[i-1], 30)
		if prevTail == "" {
			continue
		}

		if !strings.HasPrefix(chunks[i], prevTail) {
			t.Errorf("chunk %d does not start with overlap from chunk %d", i, i-1)
		}
	}
}

func TestSplitPagesNumbersChunksGlobally(t *testing.T) {
	long := strings.Repeat("sentence one. sentence two. ", 40)

	pages := []extractor.PageText{
		{Text: long, PageNumber: 1},
		{Text: long, PageNumber: 2},
		{Text: "short final page", PageNumber: 3},
	}

	chunks := SplitPages(pages, ChunkOptions{ChunkSize: 200, ChunkOverlap: 40, Separators: []string{"\n\n", "\n", " ", ""}})

	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}

	for i, chunk := range chunks {
		if chunk.ChunkIndex != i+1 {
			t.Errorf("chunk %d has index %d, want %d", i, chunk.ChunkIndex, i+1)
		}
	}

	last := chunks[len(chunks)-1]
	if last.PageNumber != 3 {
		t.Errorf("last chunk should come from page 3, got page %d", last.PageNumber)
	}

	if last.Text != "short final page" {
		t.Errorf("unexpected last chunk text: %q", last.Text)
	}
}
