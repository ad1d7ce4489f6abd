package main

import (
	"context"
	"fmt"

	"codeberg.org/papermind/server/internal/config"
	"codeberg.org/papermind/server/internal/llm"
	"codeberg.org/papermind/server/internal/logger"
	"codeberg.org/papermind/server/internal/pipeline"
	"codeberg.org/papermind/server/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

func newStorageClient(cfg *config.Config, db *pgxpool.Pool) *storage.Client {
	return storage.NewClient(db, storage.Config{
		BaseURL:    cfg.SupabaseURL,
		ServiceKey: cfg.SupabaseServiceKey,
		Bucket:     cfg.SupabaseBucket,
	})
}

// runs the full ingest pipeline for one stored document
func IngestDocument(ctx context.Context, cfg *config.Config, db *pgxpool.Pool, documentID string) error {
	llmClient, err := llm.NewLLM(ctx)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	store := newStorageClient(cfg, db)

	logger.Info("ingesting document", "document_id", documentID)

	if err := pipeline.New(store, llmClient).ProcessDocument(ctx, documentID); err != nil {
		return err
	}

	count, err := store.CountEmbeddings(ctx, documentID)
	if err != nil {
		return err
	}

	logger.Info("document ingested", "document_id", documentID, "chunks", count)

	return nil
}

// prints the embedding lifecycle state of one document
func ShowStatus(ctx context.Context, cfg *config.Config, db *pgxpool.Pool, documentID string) error {
	store := newStorageClient(cfg, db)

	status, errorMessage, err := store.FetchEmbeddingStatus(ctx, documentID)
	if err != nil {
		return err
	}

	count, err := store.CountEmbeddings(ctx, documentID)
	if err != nil {
		return err
	}

	fmt.Printf("document:  %s\n", documentID)
	fmt.Printf("status:    %s\n", status)
	fmt.Printf("chunks:    %d\n", count)

	if errorMessage != "" {
		fmt.Printf("error:     %s\n", errorMessage)
	}

	return nil
}
