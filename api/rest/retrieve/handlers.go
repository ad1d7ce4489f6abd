package retrieve

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"codeberg.org/papermind/server/internal/auth"
	"codeberg.org/papermind/server/internal/errors"
	"codeberg.org/papermind/server/internal/hybrid"
	"codeberg.org/papermind/server/internal/intent"
	"codeberg.org/papermind/server/internal/retriever"
	"github.com/gin-gonic/gin"
)

// MaxTopK is the upper bound on requested result counts, mirrored by
// the frontend slider; zero means "use the server default"
const MaxTopK = 20

// interface for hybrid context retrieval
type Retriever interface {
	Retrieve(ctx context.Context, req hybrid.Request) (*hybrid.Result, error)
}

// creates a handler for retrieval-only requests, used by clients that
// want the context but run their own generation
func Handler(ret Retriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err.Error())
			return
		}

		userID := auth.ResolveUserID(c, req.UserID)
		if userID == "" {
			errors.BadRequest(c, "user identity required", "provide a bearer token or user_id")
			return
		}

		if req.TopK < 0 || req.TopK > MaxTopK {
			errors.ValidationError(c, "top_k must be between 0 and 20")
			return
		}

		if _, err := intent.ParseMode(req.WebMode); err != nil {
			errors.ValidationError(c, err.Error())
			return
		}

		result, err := ret.Retrieve(c.Request.Context(), hybrid.Request{
			Query:              req.Query,
			UserID:             userID,
			DocumentID:         req.DocumentID,
			WebMode:            req.WebMode,
			TopK:               req.TopK,
			WebMaxResults:      req.WebMaxResults,
			InternalMaxResults: req.InternalMaxResults,
		})
		if err != nil {
			if stderrors.Is(err, hybrid.ErrEmptyQuery) || stderrors.Is(err, hybrid.ErrMissingUser) {
				errors.BadRequest(c, err.Error(), "")
				return
			}

			errors.InternalError(c, err, "retrieval failed")
			return
		}

		c.JSON(http.StatusOK, Response{
			Sources:        SerializeChunks(result.Sources),
			ContextPreview: buildPreview(result.Sources),
			Metadata:       result.Metadata,
		})
	}
}

// SerializeChunks maps retrieved chunks to their wire shape
func SerializeChunks(chunks []retriever.RetrievedChunk) []Source {
	sources := make([]Source, 0, len(chunks))

	for _, chunk := range chunks {
		sources = append(sources, Source{
			Content:    chunk.Content,
			ChunkIndex: chunk.ChunkIndex,
			PageNumber: chunk.PageNumber,
			Similarity: chunk.Similarity,
			Metadata:   chunk.Metadata,
			SourceType: chunk.SourceType(),
		})
	}

	return sources
}

// short excerpt of each source, for debugging retrieval quality
func buildPreview(chunks []retriever.RetrievedChunk) string {
	previews := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		excerpt := chunk.Content
		if len(excerpt) > 200 {
			excerpt = strings.ToValidUTF8(excerpt[:200], "") + "..."
		}

		previews = append(previews, excerpt)
	}

	return strings.Join(previews, "\n\n")
}
