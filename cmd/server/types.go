package main

import (
	"codeberg.org/papermind/server/internal/answerer"
	"codeberg.org/papermind/server/internal/config"
	"codeberg.org/papermind/server/internal/hybrid"
	"codeberg.org/papermind/server/internal/llm"
	"codeberg.org/papermind/server/internal/pipeline"
	"codeberg.org/papermind/server/internal/retriever"
	"codeberg.org/papermind/server/internal/storage"
	"codeberg.org/papermind/server/internal/websearch"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	services *Services
	router   *gin.Engine
}

// holds all service clients (LLM, retrieval, web search, ingest)
type Services struct {
	LLM       llm.LLM
	Retriever *retriever.Client
	WebSearch *websearch.Client // nil when no API key is configured
	WebCache  *websearch.Cache  // nil when Redis is not configured
	Hybrid    *hybrid.Orchestrator
	Answerer  *answerer.Answerer
	Storage   *storage.Client
	Pipeline  *pipeline.Pipeline
}

// reports whether hybrid retrieval can actually reach the web
func (s *Services) WebSearchEnabled() bool {
	return s.WebSearch != nil
}
