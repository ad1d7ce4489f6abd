package chat

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"codeberg.org/papermind/server/api/rest/retrieve"
	"codeberg.org/papermind/server/internal/answerer"
	"codeberg.org/papermind/server/internal/auth"
	"codeberg.org/papermind/server/internal/errors"
	"codeberg.org/papermind/server/internal/hybrid"
	"codeberg.org/papermind/server/internal/intent"
	"codeberg.org/papermind/server/internal/logger"
	"codeberg.org/papermind/server/internal/retriever"
	"github.com/gin-gonic/gin"
)

// interface for the full retrieve-prompt-generate flow
type Answerer interface {
	Answer(ctx context.Context, req answerer.Request) (*answerer.Response, error)
}

// creates a handler that answers a question end to end
func QueryHandler(ans Answerer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QueryRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err.Error())
			return
		}

		userID := auth.ResolveUserID(c, req.UserID)
		if userID == "" {
			errors.BadRequest(c, "user identity required", "provide a bearer token or user_id")
			return
		}

		if req.TopK < 0 || req.TopK > retrieve.MaxTopK {
			errors.ValidationError(c, "top_k must be between 0 and 20")
			return
		}

		if _, err := intent.ParseMode(req.WebMode); err != nil {
			errors.ValidationError(c, err.Error())
			return
		}

		resp, err := ans.Answer(c.Request.Context(), answerer.Request{
			Query:              req.Query,
			UserID:             userID,
			DocumentID:         req.DocumentID,
			WebMode:            req.WebMode,
			TopK:               req.TopK,
			WebMaxResults:      req.WebMaxResults,
			InternalMaxResults: req.InternalMaxResults,
			SystemPrompt:       req.SystemPrompt,
		})
		if err != nil {
			if stderrors.Is(err, hybrid.ErrEmptyQuery) || stderrors.Is(err, hybrid.ErrMissingUser) {
				errors.BadRequest(c, err.Error(), "")
				return
			}

			errors.InternalError(c, err, "failed to answer query")
			return
		}

		c.JSON(http.StatusOK, QueryResponse{
			Answer:   resp.Answer,
			Sources:  retrieve.SerializeChunks(resp.Sources),
			Metadata: resp.Metadata,
		})
	}
}

// creates the retrieval-only handler behind the web client's chat view
func ChatHandler(ret retrieve.Retriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err.Error())
			return
		}

		userID := auth.ResolveUserID(c, "")
		if userID == "" {
			errors.BadRequest(c, "user identity required", "provide a bearer token")
			return
		}

		if req.TopK < 0 || req.TopK > retrieve.MaxTopK {
			errors.ValidationError(c, "topK must be between 0 and 20")
			return
		}

		// the toggle maps to modes: off is a hard stop, on still lets the
		// heuristics skip the web for document-bound questions
		webMode := string(intent.ModeForceOff)
		if req.IncludeWeb {
			webMode = string(intent.ModeAuto)
		}

		start := time.Now()

		result, err := ret.Retrieve(c.Request.Context(), hybrid.Request{
			Query:              req.Query,
			UserID:             userID,
			DocumentID:         req.DocumentID,
			WebMode:            webMode,
			TopK:               req.TopK,
			InternalMaxResults: req.TopK,
		})
		if err != nil {
			if stderrors.Is(err, hybrid.ErrEmptyQuery) || stderrors.Is(err, hybrid.ErrMissingUser) {
				errors.BadRequest(c, err.Error(), "")
				return
			}

			errors.InternalError(c, err, "retrieval failed")
			return
		}

		logger.Debug("chat retrieval served",
			"user_id", userID,
			"sources", len(result.Sources),
			"web_results", result.Metadata.WebResults,
		)

		c.JSON(http.StatusOK, ChatResponse{
			Sources: toChatSources(result.Sources),
			Metadata: ChatMetadata{
				Metadata:    result.Metadata,
				ChunkCount:  len(result.Sources),
				QueryTimeMS: time.Since(start).Milliseconds(),
			},
		})
	}
}

func toChatSources(chunks []retriever.RetrievedChunk) []ChatSource {
	sources := make([]ChatSource, 0, len(chunks))

	for _, chunk := range chunks {
		source := ChatSource{
			Text:       chunk.Content,
			Content:    chunk.Content,
			Similarity: chunk.Similarity,
			ChunkIndex: chunk.ChunkIndex,
			PageNumber: chunk.PageNumber,
			Type:       chunk.SourceType(),
		}

		if source.Type == "web" {
			source.URL, _ = chunk.Metadata["url"].(string)
			source.Title, _ = chunk.Metadata["title"].(string)
		}

		sources = append(sources, source)
	}

	return sources
}
