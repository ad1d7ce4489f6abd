package storage

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/papermind/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// deletes all stored embeddings for a document
func (c *Client) DeleteEmbeddings(ctx context.Context, documentID string) error {
	_, err := c.pool.Exec(ctx, deleteEmbeddingsQuery, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete embeddings: %w", err)
	}

	return nil
}

// inserts embedding records in a single transaction
func (c *Client) InsertEmbeddingsBatch(ctx context.Context, records []EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for _, record := range records {
		batch.Queue(insertEmbeddingQuery,
			record.DocumentID,
			record.Content,
			record.PageNumber,
			record.ChunkIndex,
			pgvector.NewVector(record.Embedding),
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(records) {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to insert embedding %d: %w", i, err)
		}
	}

	// must close batch results before committing, otherwise connection is still "busy"
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// returns the number of stored embeddings for a document
func (c *Client) CountEmbeddings(ctx context.Context, documentID string) (int, error) {
	var count int

	err := c.pool.QueryRow(ctx, countEmbeddingsQuery, documentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}

	return count, nil
}
