// Package pipeline runs the document ingest lifecycle: download the
// original file, extract and chunk its text, embed the chunks and
// persist the vectors, tracking status on the documents table so the
// frontend can poll progress.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/papermind/server/internal/chunker"
	"codeberg.org/papermind/server/internal/extractor"
	"codeberg.org/papermind/server/internal/llm"
	"codeberg.org/papermind/server/internal/logger"
	"codeberg.org/papermind/server/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	// chunks sent to the embedder per request
	defaultBatchSize = 64

	// concurrent embedding requests in flight
	defaultWorkers = 4
)

// interface for the persistence side of an ingest
type Store interface {
	FetchDocument(ctx context.Context, documentID string) (*storage.DocumentMeta, error)
	UpdateEmbeddingStatus(ctx context.Context, documentID, status, errorMessage string) error
	DownloadFile(ctx context.Context, remotePath, destDir string) (string, error)
	DeleteEmbeddings(ctx context.Context, documentID string) error
	InsertEmbeddingsBatch(ctx context.Context, records []storage.EmbeddingRecord) error
}

// Pipeline ingests one document at a time
type Pipeline struct {
	store    Store
	embedder llm.Embedder

	chunking  chunker.ChunkOptions
	tempDir   string
	batchSize int
	workers   int

	// swappable for tests; extracting real PDFs needs fixture files
	extract func(path string) ([]extractor.PageText, error)
}

func New(store Store, embedder llm.Embedder) *Pipeline {
	return &Pipeline{
		store:     store,
		embedder:  embedder,
		chunking:  chunker.DefaultOptions(),
		tempDir:   os.TempDir(),
		batchSize: defaultBatchSize,
		workers:   defaultWorkers,
		extract:   extractor.ExtractPDFText,
	}
}

// ProcessDocument runs the full ingest for a stored document. The
// document ends in status completed or failed; a failed run keeps the
// previous embeddings untouched.
func (p *Pipeline) ProcessDocument(ctx context.Context, documentID string) error {
	meta, err := p.store.FetchDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to load document %s: %w", documentID, err)
	}

	if err := p.store.UpdateEmbeddingStatus(ctx, documentID, storage.StatusProcessing, ""); err != nil {
		return err
	}

	if err := p.run(ctx, meta); err != nil {
		if statusErr := p.store.UpdateEmbeddingStatus(ctx, documentID, storage.StatusFailed, err.Error()); statusErr != nil {
			logger.ErrorErr(statusErr, "failed to mark document failed", "document_id", documentID)
		}

		return fmt.Errorf("ingest failed for document %s: %w", documentID, err)
	}

	return p.store.UpdateEmbeddingStatus(ctx, documentID, storage.StatusCompleted, "")
}

func (p *Pipeline) run(ctx context.Context, meta *storage.DocumentMeta) error {
	if meta.FilePath == "" {
		return fmt.Errorf("document %s has no file path", meta.ID)
	}

	localPath, err := p.store.DownloadFile(ctx, meta.FilePath, p.tempDir)
	if err != nil {
		return err
	}

	defer func() {
		if err := os.Remove(localPath); err != nil {
			logger.Warn("failed to remove temp file", "path", localPath, "error", err)
		}
	}()

	pages, err := p.extract(localPath)
	if err != nil {
		return err
	}

	chunks := chunker.SplitPages(pages, p.chunking)
	if len(chunks) == 0 {
		return fmt.Errorf("document %s produced no chunks", meta.ID)
	}

	logger.Info("embedding document",
		"document_id", meta.ID,
		"pages", len(pages),
		"chunks", len(chunks),
	)

	records, err := p.embedChunks(ctx, meta.ID, chunks)
	if err != nil {
		return err
	}

	// re-ingest replaces previous vectors wholesale
	if err := p.store.DeleteEmbeddings(ctx, meta.ID); err != nil {
		return err
	}

	return p.store.InsertEmbeddingsBatch(ctx, records)
}

// embeds chunks in concurrent batches; each batch writes into its own
// disjoint slice range, so no locking is needed
func (p *Pipeline) embedChunks(ctx context.Context, documentID string, chunks []chunker.TextChunk) ([]storage.EmbeddingRecord, error) {
	records := make([]storage.EmbeddingRecord, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for start := 0; start < len(chunks); start += p.batchSize {
		end := min(start+p.batchSize, len(chunks))
		batch := chunks[start:end]
		offset := start

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, chunk := range batch {
				texts[i] = chunk.Text
			}

			vectors, err := p.embedder.GenerateEmbeddings(ctx, texts)
			if err != nil {
				return fmt.Errorf("failed to embed batch at chunk %d: %w", offset, err)
			}

			if len(vectors) != len(batch) {
				return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(batch))
			}

			for i, chunk := range batch {
				records[offset+i] = storage.EmbeddingRecord{
					DocumentID: documentID,
					Content:    chunk.Text,
					PageNumber: chunk.PageNumber,
					ChunkIndex: chunk.ChunkIndex,
					Embedding:  vectors[i],
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}
