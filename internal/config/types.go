package config

// Config holds process-wide configuration loaded from the environment.
type Config struct {
	// Postgres connection string for the Supabase database
	SupabaseConnString string
	// Supabase project URL and service key, used for storage bucket downloads
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string

	// embedding provider
	OpenAIKey string

	// answer generation
	OllamaURL   string
	OllamaModel string

	// web search provider; empty means web search is disabled
	TavilyAPIKey string

	// optional Redis URL for the web search cache; empty disables caching
	RedisURL string

	JWTSecret   string
	Environment string
}
