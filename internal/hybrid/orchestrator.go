// Package hybrid combines internal vector search over the user's own
// documents with external web search into a single ranked result set.
// The two sources run concurrently and fail independently: a broken
// web provider never takes down document retrieval, and vice versa.
package hybrid

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"codeberg.org/papermind/server/internal/intent"
	"codeberg.org/papermind/server/internal/logger"
	"codeberg.org/papermind/server/internal/retriever"
	"codeberg.org/papermind/server/internal/websearch"
)

const (
	// defaults applied when the request leaves a knob unset
	DefaultTopK               = 5
	DefaultInternalMaxResults = 5
	DefaultWebMaxResults      = 3

	// web results carry no cosine similarity, so they get a synthetic
	// score: the provider's best result lands at webScoreBase and each
	// following one drops by webScoreStep. The base sits below typical
	// internal cosine scores on purpose: internal knowledge wins,
	// web results fill the gaps. Tuning values, no derivation.
	webScoreBase = 0.45
	webScoreStep = 0.05

	internalSearchTimeout = 15 * time.Second
	webSearchTimeout      = 20 * time.Second
)

// Orchestrator fans a query out to both sources and merges the results
type Orchestrator struct {
	internal InternalSearcher
	web      WebSearcher
}

// New creates an orchestrator; pass a nil web searcher to run with
// web search disabled
func New(internal InternalSearcher, web WebSearcher) *Orchestrator {
	return &Orchestrator{internal: internal, web: web}
}

// Retrieve runs one hybrid retrieval. It only errors on a bad request;
// source failures are logged and surface as zero results from that
// source in the metadata.
func (o *Orchestrator) Retrieve(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrMissingUser
	}

	if req.TopK <= 0 {
		req.TopK = DefaultTopK
	}

	if req.InternalMaxResults <= 0 {
		req.InternalMaxResults = DefaultInternalMaxResults
	}

	if req.WebMaxResults <= 0 {
		req.WebMaxResults = DefaultWebMaxResults
	}

	mode, err := intent.ParseMode(req.WebMode)
	if err != nil {
		return nil, err
	}

	decision := intent.Resolve(mode, req.Query, req.DocumentID)
	webEnabled := decision.Enabled && o.web != nil

	logger.Debug("web search decision",
		"enabled", webEnabled,
		"rule", decision.Rule,
		"mode", mode,
	)

	var (
		wg             sync.WaitGroup
		internalChunks []retriever.RetrievedChunk
		webChunks      []retriever.RetrievedChunk
		internalErr    error
		webErr         error
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		searchCtx, cancel := context.WithTimeout(ctx, internalSearchTimeout)
		defer cancel()

		if req.DocumentID != "" {
			internalChunks, internalErr = o.internal.SearchByDocument(searchCtx, req.Query, req.DocumentID, req.InternalMaxResults)
		} else {
			internalChunks, internalErr = o.internal.SearchByOwner(searchCtx, req.Query, req.UserID, req.InternalMaxResults)
		}
	}()

	if webEnabled {
		wg.Add(1)

		go func() {
			defer wg.Done()

			searchCtx, cancel := context.WithTimeout(ctx, webSearchTimeout)
			defer cancel()

			var results []websearch.Result

			results, webErr = o.web.Search(searchCtx, req.Query, req.WebMaxResults)
			if webErr == nil {
				webChunks = webResultsToChunks(results)
			}
		}()
	}

	wg.Wait()

	// don't fail the whole retrieval when one source breaks, just log
	if internalErr != nil {
		logger.ErrorErr(internalErr, "internal search failed", "user_id", req.UserID)
		internalChunks = nil
	}

	if webErr != nil {
		logger.ErrorErr(webErr, "web search failed", "query", req.Query)
		webChunks = nil
	}

	merged := make([]retriever.RetrievedChunk, 0, len(internalChunks)+len(webChunks))
	merged = append(merged, internalChunks...)
	merged = append(merged, webChunks...)

	// stable sort keeps internal results ahead of web results on ties
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Similarity > merged[j].Similarity
	})

	if len(merged) > req.TopK {
		merged = merged[:req.TopK]
	}

	return &Result{
		Sources: merged,
		Metadata: Metadata{
			InternalResults: len(internalChunks),
			WebResults:      len(webChunks),
			TotalResults:    len(merged),
			WebEnabled:      webEnabled,
			WebMode:         string(mode),
		},
	}, nil
}

// webResultsToChunks converts provider results into the chunk shape
// internal retrieval uses, so downstream code handles one type
func webResultsToChunks(results []websearch.Result) []retriever.RetrievedChunk {
	chunks := make([]retriever.RetrievedChunk, 0, len(results))

	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "Web Result"
		}

		chunks = append(chunks, retriever.RetrievedChunk{
			Content:    r.Content,
			ChunkIndex: i,
			Similarity: webScoreBase - float64(i)*webScoreStep,
			Metadata: map[string]any{
				"source": "web",
				"url":    r.URL,
				"title":  title,
			},
		})
	}

	return chunks
}
