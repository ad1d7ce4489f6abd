package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{
		SupabaseConnString: os.Getenv("SUPABASE_CONNECTION_STRING"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		SupabaseBucket:     os.Getenv("SUPABASE_BUCKET"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		OllamaURL:          os.Getenv("OLLAMA_URL"),
		OllamaModel:        os.Getenv("OLLAMA_MODEL"),
		TavilyAPIKey:       os.Getenv("TAVILY_API_KEY"),
		RedisURL:           os.Getenv("REDIS_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Environment:        os.Getenv("ENVIRONMENT"),
	}

	if cfg.SupabaseConnString == "" {
		return nil, fmt.Errorf("SUPABASE_CONNECTION_STRING environment variable is required")
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	// optional values fall back to local defaults
	if cfg.SupabaseBucket == "" {
		cfg.SupabaseBucket = "documents"
	}

	if cfg.OllamaURL == "" {
		cfg.OllamaURL = "http://localhost:11434"
	}

	if cfg.OllamaModel == "" {
		cfg.OllamaModel = "llama3"
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}
