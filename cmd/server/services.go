package main

import (
	"context"
	"fmt"

	"codeberg.org/papermind/server/internal/answerer"
	"codeberg.org/papermind/server/internal/config"
	"codeberg.org/papermind/server/internal/hybrid"
	"codeberg.org/papermind/server/internal/llm"
	"codeberg.org/papermind/server/internal/logger"
	"codeberg.org/papermind/server/internal/pipeline"
	"codeberg.org/papermind/server/internal/retriever"
	"codeberg.org/papermind/server/internal/storage"
	"codeberg.org/papermind/server/internal/websearch"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config, db *pgxpool.Pool) (*Services, error) {
	llmClient, err := llm.NewLLM(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	retrieverClient := retriever.New(db, llmClient)

	storageClient := storage.NewClient(db, storage.Config{
		BaseURL:    cfg.SupabaseURL,
		ServiceKey: cfg.SupabaseServiceKey,
		Bucket:     cfg.SupabaseBucket,
	})

	// web search is optional: without a key the orchestrator runs
	// internal-only and reports web_enabled=false
	var webClient *websearch.Client
	var webCache *websearch.Cache

	if cfg.TavilyAPIKey != "" {
		webClient, err = websearch.NewClient(cfg.TavilyAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create web search client: %w", err)
		}

		if cfg.RedisURL != "" {
			webCache, err = websearch.NewCache(cfg.RedisURL)
			if err != nil {
				logger.ErrorErr(err, "web search cache unavailable, continuing without caching")
			} else {
				webClient = webClient.WithCache(webCache)
			}
		}
	} else {
		logger.Warn("TAVILY_API_KEY not set, web search disabled")
	}

	// a nil *websearch.Client must become a nil interface, not a
	// non-nil interface wrapping a nil pointer
	var webSearcher hybrid.WebSearcher
	if webClient != nil {
		webSearcher = webClient
	}

	orchestrator := hybrid.New(retrieverClient, webSearcher)

	return &Services{
		LLM:       llmClient,
		Retriever: retrieverClient,
		WebSearch: webClient,
		WebCache:  webCache,
		Hybrid:    orchestrator,
		Answerer:  answerer.New(orchestrator, llmClient),
		Storage:   storageClient,
		Pipeline:  pipeline.New(storageClient, llmClient),
	}, nil
}
