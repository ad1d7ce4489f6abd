package websearch

import (
	"net/http"

	"golang.org/x/time/rate"
)

// Result is one external search hit with provenance metadata
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Client calls the Tavily search API
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *Cache // nil when caching is disabled
}

type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type searchResponse struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}
