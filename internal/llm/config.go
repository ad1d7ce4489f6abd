package llm

import (
	"fmt"
	"os"
)

// loadConfig loads LLM configuration from environment variables
func loadConfig() (*Config, error) {
	// embedder configuration
	embedderProvider := Provider(os.Getenv("EMBEDDER_PROVIDER"))
	if embedderProvider == "" {
		embedderProvider = ProviderOpenAI // default
	}

	embedderAPIKey := os.Getenv("OPENAI_API_KEY")
	if embedderAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	embedderModel := os.Getenv("EMBEDDER_MODEL")
	if embedderModel == "" {
		embedderModel = "text-embedding-3-small" // default
	}

	// generator configuration
	generatorProvider := Provider(os.Getenv("GENERATOR_PROVIDER"))
	if generatorProvider == "" {
		generatorProvider = ProviderOllama // default
	}

	generatorURL := os.Getenv("OLLAMA_URL")
	if generatorURL == "" {
		generatorURL = "http://localhost:11434" // default
	}

	generatorModel := os.Getenv("OLLAMA_MODEL")
	if generatorModel == "" {
		generatorModel = "llama3" // default
	}

	return &Config{
		EmbedderProvider:  embedderProvider,
		EmbedderAPIKey:    embedderAPIKey,
		EmbedderModel:     embedderModel,
		GeneratorProvider: generatorProvider,
		GeneratorURL:      generatorURL,
		GeneratorModel:    generatorModel,
	}, nil
}
