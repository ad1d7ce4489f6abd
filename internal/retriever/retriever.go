package retriever

import (
	"context"
	"fmt"

	"codeberg.org/papermind/server/internal/llm"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// creates a retriever on an existing pool and embedder
func New(pool *pgxpool.Pool, embedder llm.Embedder) *Client {
	return &Client{
		pool:     pool,
		embedder: embedder,
	}
}

// SearchByDocument finds the chunks of one document closest to the query
func (c *Client) SearchByDocument(ctx context.Context, query, documentID string, limit int) ([]RetrievedChunk, error) {
	if limit <= 0 {
		return nil, nil
	}

	embedding, err := c.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	rows, err := c.pool.Query(ctx, searchByDocumentQuery, pgvector.NewVector(embedding), documentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}

	defer rows.Close()

	return scanChunks(rows)
}

// SearchByOwner finds the closest chunks across all documents owned by a user
func (c *Client) SearchByOwner(ctx context.Context, query, ownerID string, limit int) ([]RetrievedChunk, error) {
	if limit <= 0 {
		return nil, nil
	}

	embedding, err := c.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	rows, err := c.pool.Query(ctx, searchByOwnerQuery, pgvector.NewVector(embedding), ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}

	defer rows.Close()

	return scanChunks(rows)
}

func scanChunks(rows pgx.Rows) ([]RetrievedChunk, error) {
	var results []RetrievedChunk

	for rows.Next() {
		var chunk RetrievedChunk

		err := rows.Scan(
			&chunk.Content,
			&chunk.ChunkIndex,
			&chunk.PageNumber,
			&chunk.Similarity,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		results = append(results, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}
