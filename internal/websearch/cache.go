package websearch

import (
	"context"
	"crypto/sha1" //nolint:gosec // G505: cache key, not security sensitive
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"codeberg.org/papermind/server/internal/logger"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "websearch:"

	// web results go stale quickly; keep them briefly
	cacheTTL = 15 * time.Minute
)

// Cache is a Redis-backed read-through cache for provider responses.
// All failures degrade to a cache miss; the cache never breaks a search.
type Cache struct {
	client *redis.Client
}

// connects to Redis and verifies the connection
func NewCache(redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("web search cache connected")

	return &Cache{client: client}, nil
}

// closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

func cacheKey(query string, limit int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%d", query, limit))) //nolint:gosec // G401
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns cached results for the query, reporting whether they were found
func (c *Cache) Get(ctx context.Context, query string, limit int) ([]Result, bool) {
	data, err := c.client.Get(ctx, cacheKey(query, limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("web search cache read failed", "error", err)
		}

		return nil, false
	}

	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		logger.Warn("web search cache entry corrupt, ignoring", "error", err)
		return nil, false
	}

	return results, true
}

// Set stores results for the query; failures are logged and ignored
func (c *Cache) Set(ctx context.Context, query string, limit int, results []Result) {
	data, err := json.Marshal(results)
	if err != nil {
		logger.Warn("failed to marshal web search results for cache", "error", err)
		return
	}

	if err := c.client.Set(ctx, cacheKey(query, limit), data, cacheTTL).Err(); err != nil {
		logger.Warn("web search cache write failed", "error", err)
	}
}
