package chunker

import (
	"strings"

	"codeberg.org/papermind/server/internal/extractor"
)

// TextChunk is one splitter output piece, carrying its origin page and a
// document-global chunk index (1-based)
type TextChunk struct {
	Text       string
	PageNumber int
	ChunkIndex int
}

// ChunkOptions controls the recursive character splitter
type ChunkOptions struct {
	ChunkSize    int // maximum chunk length in characters
	ChunkOverlap int // characters carried over between adjacent chunks
	Separators   []string
}

func DefaultOptions() ChunkOptions {
	return ChunkOptions{
		ChunkSize:    900,
		ChunkOverlap: 200,
		Separators:   []string{"\n\n", "\n", " ", ""},
	}
}

// splits each extracted page into chunks, numbering chunks across the
// whole document so chunk_index is stable regardless of page boundaries
func SplitPages(pages []extractor.PageText, opts ChunkOptions) []TextChunk {
	var chunks []TextChunk
	index := 0

	for _, page := range pages {
		for _, piece := range SplitText(page.Text, opts) {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}

			index++
			chunks = append(chunks, TextChunk{
				Text:       piece,
				PageNumber: page.PageNumber,
				ChunkIndex: index,
			})
		}
	}

	return chunks
}

// SplitText recursively splits text on the configured separators,
// preferring paragraph breaks over line breaks over word breaks, and
// merges the pieces back into chunks of at most ChunkSize characters
// with ChunkOverlap characters of context carried between neighbors.
func SplitText(text string, opts ChunkOptions) []string {
	if opts.ChunkSize <= 0 {
		opts = DefaultOptions()
	}

	if len(opts.Separators) == 0 {
		opts.Separators = DefaultOptions().Separators
	}

	pieces := splitRecursive(text, opts.Separators, opts.ChunkSize)

	return mergePieces(pieces, opts.ChunkSize, opts.ChunkOverlap)
}

// breaks text into fragments no longer than size, using the first
// separator that yields progress and recursing with the finer ones
func splitRecursive(text string, separators []string, size int) []string {
	if len(text) <= size {
		if strings.TrimSpace(text) == "" {
			return nil
		}

		return []string{text}
	}

	sep := separators[len(separators)-1]
	rest := separators

	for i, s := range separators {
		if s == "" || strings.Contains(text, s) {
			sep = s
			rest = separators[i+1:]
			break
		}
	}

	// last resort: hard cut at size boundaries
	if sep == "" {
		var out []string
		for len(text) > size {
			out = append(out, text[:size])
			text = text[size:]
		}

		if strings.TrimSpace(text) != "" {
			out = append(out, text)
		}

		return out
	}

	var fragments []string

	for _, part := range strings.Split(text, sep) {
		if strings.TrimSpace(part) == "" {
			continue
		}

		if len(part) <= size {
			fragments = append(fragments, part)
			continue
		}

		fragments = append(fragments, splitRecursive(part, rest, size)...)
	}

	return fragments
}

// greedily packs fragments into chunks up to size characters, seeding
// each chunk after the first with the overlap tail of its predecessor
func mergePieces(pieces []string, size, overlap int) []string {
	if len(pieces) == 0 {
		return nil
	}

	var chunks []string
	current := ""

	for _, piece := range pieces {
		if current == "" {
			current = piece
			continue
		}

		if len(current)+1+len(piece) <= size {
			current = current + " " + piece
			continue
		}

		chunks = append(chunks, current)

		// seed the next chunk with trailing context, unless that would
		// already overflow it
		tail := overlapTail(current, overlap)
		if tail != "" && len(tail)+1+len(piece) <= size {
			current = tail + " " + piece
		} else {
			current = piece
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, current)
	}

	return chunks
}

// returns the last overlap characters of s, aligned to a word boundary
func overlapTail(s string, overlap int) string {
	if overlap <= 0 || len(s) <= overlap {
		return ""
	}

	tail := s[len(s)-overlap:]

	if idx := strings.IndexAny(tail, " \n"); idx >= 0 {
		tail = tail[idx+1:]
	}

	return strings.TrimSpace(tail)
}
