package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// embedding lifecycle states tracked on the documents table
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Client wraps the Supabase Postgres pool and the storage bucket API
type Client struct {
	pool *pgxpool.Pool

	// storage bucket access
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// DocumentMeta is the documents-table row needed to run an ingest
type DocumentMeta struct {
	ID        string
	Title     string
	FilePath  string
	CreatedBy string
	UpdatedAt time.Time
}

// EmbeddingRecord is one chunk ready to be persisted
type EmbeddingRecord struct {
	DocumentID string
	Content    string
	PageNumber int
	ChunkIndex int
	Embedding  []float32
}

type Config struct {
	// Supabase project URL, e.g. https://xyz.supabase.co
	BaseURL    string
	ServiceKey string
	Bucket     string
}

// creates a storage client on an existing connection pool
func NewClient(pool *pgxpool.Pool, cfg Config) *Client {
	if cfg.Bucket == "" {
		cfg.Bucket = "documents"
	}

	return &Client{
		pool:       pool,
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// verifies database connectivity
func (c *Client) Ping(ctx context.Context) error {
	if err := c.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
