package llm

import "context"

// combines embedding generation and answer generation
type LLM interface {
	Embedder
	TextGenerator
}

// represents different LLM providers
type Provider string

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// generates free-form text from a prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (*GenerationResult, error)
	Model() string
}

// carries the generated answer plus provider bookkeeping
type GenerationResult struct {
	Text  string
	Model string
	// total generation time reported by the provider, in milliseconds
	DurationMS int64
}

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// holds configuration for LLM initialization
type Config struct {
	// embedder configuration
	EmbedderProvider Provider
	EmbedderAPIKey   string
	EmbedderModel    string // e.g., "text-embedding-3-small"

	// generator configuration
	GeneratorProvider Provider
	GeneratorURL      string // e.g., "http://localhost:11434"
	GeneratorModel    string // e.g., "llama3"
}
