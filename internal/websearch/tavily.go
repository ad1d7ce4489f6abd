package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/papermind/server/internal/logger"
	"golang.org/x/time/rate"
)

const (
	tavilySearchURL = "https://api.tavily.com/search"

	// "advanced" trades latency for better passage extraction
	tavilySearchDepth = "advanced"

	defaultMaxResults = 3
)

// shared HTTP client for Tavily calls
var tavilyHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// creates a Tavily client; fails when no API key is configured so the
// caller can run with web search disabled instead
func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("tavily api key is required")
	}

	return &Client{
		apiKey:     apiKey,
		endpoint:   tavilySearchURL,
		httpClient: tavilyHTTPClient,
		// provider free tier allows ~1 request/second sustained
		limiter: rate.NewLimiter(1, 3),
	}, nil
}

// attaches a read-through cache; returns the client for chaining
func (c *Client) WithCache(cache *Cache) *Client {
	c.cache = cache
	return c
}

// Search returns at most limit results for the query, best-first as
// ranked by the provider
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = defaultMaxResults
	}

	if c.cache != nil {
		if results, ok := c.cache.Get(ctx, query, limit); ok {
			logger.Debug("web search cache hit", "query", query)
			return results, nil
		}
	}

	results, err := c.search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(ctx, query, limit, results)
	}

	return results, nil
}

func (c *Client) search(ctx context.Context, query string, limit int) ([]Result, error) {
	reqBody := searchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		MaxResults:  limit,
		SearchDepth: tavilySearchDepth,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// rate limiting
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck
		return nil, fmt.Errorf("tavily request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(searchResp.Results) > limit {
		searchResp.Results = searchResp.Results[:limit]
	}

	return searchResp.Results, nil
}
