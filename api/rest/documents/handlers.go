package documents

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"codeberg.org/papermind/server/internal/auth"
	"codeberg.org/papermind/server/internal/errors"
	"codeberg.org/papermind/server/internal/logger"
	"codeberg.org/papermind/server/internal/storage"
	"github.com/gin-gonic/gin"
)

// a full ingest downloads, chunks and embeds the document; generous
// budget for large PDFs on slow embedding quota
const ingestTimeout = 10 * time.Minute

// interface for document metadata and embedding status lookups
type Store interface {
	FetchDocument(ctx context.Context, documentID string) (*storage.DocumentMeta, error)
	FetchEmbeddingStatus(ctx context.Context, documentID string) (status, errorMessage string, err error)
	CountEmbeddings(ctx context.Context, documentID string) (int, error)
}

// interface for running the ingest pipeline
type Ingester interface {
	ProcessDocument(ctx context.Context, documentID string) error
}

// creates a handler that starts an ingest in the background and
// returns immediately; clients poll the status endpoint for progress
func IngestHandler(store Store, ingester Ingester) gin.HandlerFunc {
	return func(c *gin.Context) {
		documentID := c.Param("id")

		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		meta, err := store.FetchDocument(c.Request.Context(), documentID)
		if err != nil {
			if stderrors.Is(err, storage.ErrDocumentNotFound) {
				errors.NotFound(c, "document")
				return
			}

			errors.InternalError(c, err, "failed to load document")
			return
		}

		// hide other users' documents behind the same 404
		if meta.CreatedBy != userID {
			errors.NotFound(c, "document")
			return
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
			defer cancel()

			if err := ingester.ProcessDocument(ctx, documentID); err != nil {
				logger.ErrorErr(err, "background ingest failed", "document_id", documentID)
			}
		}()

		c.JSON(http.StatusAccepted, IngestResponse{
			DocumentID: documentID,
			Status:     storage.StatusProcessing,
		})
	}
}

// creates a handler that reports a document's embedding status
func StatusHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		documentID := c.Param("id")

		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		meta, err := store.FetchDocument(c.Request.Context(), documentID)
		if err != nil {
			if stderrors.Is(err, storage.ErrDocumentNotFound) {
				errors.NotFound(c, "document")
				return
			}

			errors.InternalError(c, err, "failed to load document")
			return
		}

		if meta.CreatedBy != userID {
			errors.NotFound(c, "document")
			return
		}

		status, errorMessage, err := store.FetchEmbeddingStatus(c.Request.Context(), documentID)
		if err != nil {
			errors.InternalError(c, err, "failed to load embedding status")
			return
		}

		count, err := store.CountEmbeddings(c.Request.Context(), documentID)
		if err != nil {
			errors.InternalError(c, err, "failed to count embeddings")
			return
		}

		c.JSON(http.StatusOK, StatusResponse{
			DocumentID:   documentID,
			Status:       status,
			ErrorMessage: errorMessage,
			ChunkCount:   count,
		})
	}
}
