// Package prompt assembles the final LLM prompt from a query and its
// retrieved context passages.
package prompt

import (
	"fmt"
	"strings"

	"codeberg.org/papermind/server/internal/retriever"
)

// DefaultSystemPrompt is used when the caller supplies none
const DefaultSystemPrompt = "You are an assistant that answers questions using only the passages in the Context section. " +
	"If the context is not sufficient, say you are not sure instead of guessing. " +
	"Answer concisely, using bullet points where they help."

const emptyContextMarker = "(No relevant context was found.)"

// Build joins the system prompt, numbered context passages and the
// question into a single prompt string
func Build(query string, chunks []retriever.RetrievedChunk, systemPrompt string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query cannot be empty")
	}

	system := strings.TrimSpace(systemPrompt)
	if system == "" {
		system = DefaultSystemPrompt
	}

	var builder strings.Builder

	builder.WriteString(system)
	builder.WriteString("\n\nContext:\n")
	builder.WriteString(formatChunks(chunks))
	builder.WriteString("\n\nQuestion: ")
	builder.WriteString(query)
	builder.WriteString("\nProvide a brief answer based only on the context above.")

	return builder.String(), nil
}

// each passage gets a one-line header so the model can cite pages and
// the reader can trace an answer back to its source
func formatChunks(chunks []retriever.RetrievedChunk) string {
	if len(chunks) == 0 {
		return emptyContextMarker
	}

	formatted := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		header := []string{fmt.Sprintf("Passage %d", i+1)}

		if chunk.PageNumber != nil {
			header = append(header, fmt.Sprintf("Page %d", *chunk.PageNumber))
		}

		if chunk.SourceType() == "web" {
			if url, ok := chunk.Metadata["url"].(string); ok && url != "" {
				header = append(header, fmt.Sprintf("Web: %s", url))
			} else {
				header = append(header, "Web")
			}
		}

		header = append(header, fmt.Sprintf("Score: %.4f", chunk.Similarity))

		formatted = append(formatted, strings.Join(header, " | ")+"\n"+strings.TrimSpace(chunk.Content))
	}

	return strings.Join(formatted, "\n\n")
}
