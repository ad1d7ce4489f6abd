package retrieve

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/papermind/server/internal/hybrid"
	"codeberg.org/papermind/server/internal/retriever"
	"github.com/gin-gonic/gin"
)

type mockRetriever struct {
	retrieveFn func(ctx context.Context, req hybrid.Request) (*hybrid.Result, error)
}

func (m *mockRetriever) Retrieve(ctx context.Context, req hybrid.Request) (*hybrid.Result, error) {
	return m.retrieveFn(ctx, req)
}

func setupRouter(ret Retriever) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router.Group(""), ret)

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestHandlerServesSources(t *testing.T) {
	page := 3

	ret := &mockRetriever{
		retrieveFn: func(_ context.Context, req hybrid.Request) (*hybrid.Result, error) {
			if req.UserID != "user-1" {
				t.Errorf("user id not forwarded, got %q", req.UserID)
			}

			return &hybrid.Result{
				Sources: []retriever.RetrievedChunk{
					{Content: "internal passage", ChunkIndex: 1, PageNumber: &page, Similarity: 0.9},
					{
						Content:    "web passage",
						Similarity: 0.45,
						Metadata:   map[string]any{"source": "web", "url": "https://a.example", "title": "A"},
					},
				},
				Metadata: hybrid.Metadata{
					InternalResults: 1,
					WebResults:      1,
					TotalResults:    2,
					WebEnabled:      true,
					WebMode:         "auto",
				},
			}, nil
		},
	}

	w := postJSON(t, setupRouter(ret), "/hybrid/retrieve", Request{
		Query:  "what does the report say?",
		UserID: "user-1",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(resp.Sources))
	}

	if resp.Sources[0].SourceType != "internal" || resp.Sources[1].SourceType != "web" {
		t.Errorf("source types wrong: %q / %q", resp.Sources[0].SourceType, resp.Sources[1].SourceType)
	}

	if resp.Sources[0].PageNumber == nil || *resp.Sources[0].PageNumber != 3 {
		t.Error("internal source lost its page number")
	}

	if resp.Metadata.TotalResults != 2 || !resp.Metadata.WebEnabled {
		t.Errorf("metadata not forwarded: %+v", resp.Metadata)
	}

	if resp.ContextPreview == "" {
		t.Error("context preview should not be empty")
	}
}

func TestHandlerRejectsBadInput(t *testing.T) {
	ret := &mockRetriever{
		retrieveFn: func(_ context.Context, _ hybrid.Request) (*hybrid.Result, error) {
			t.Fatal("retriever must not run for invalid requests")
			return nil, nil
		},
	}

	router := setupRouter(ret)

	// missing query
	if w := postJSON(t, router, "/hybrid/retrieve", Request{UserID: "user-1"}); w.Code != http.StatusBadRequest {
		t.Errorf("missing query: status = %d", w.Code)
	}

	// missing user identity
	if w := postJSON(t, router, "/hybrid/retrieve", Request{Query: "hello"}); w.Code != http.StatusBadRequest {
		t.Errorf("missing user: status = %d", w.Code)
	}

	// invalid web mode
	w := postJSON(t, router, "/hybrid/retrieve", Request{Query: "hello", UserID: "user-1", WebMode: "sometimes"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid web mode: status = %d", w.Code)
	}

	// top_k out of range
	w = postJSON(t, router, "/hybrid/retrieve", Request{Query: "hello", UserID: "user-1", TopK: 50})
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range top_k: status = %d", w.Code)
	}
}

func TestHandlerWhitespaceQueryIsClientError(t *testing.T) {
	// a whitespace query survives binding and only fails inside the
	// retriever; that failure is still the client's fault, not a 500
	ret := &mockRetriever{
		retrieveFn: func(_ context.Context, _ hybrid.Request) (*hybrid.Result, error) {
			return nil, hybrid.ErrEmptyQuery
		},
	}

	w := postJSON(t, setupRouter(ret), "/hybrid/retrieve", Request{Query: "   ", UserID: "user-1"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusBadRequest, w.Body.String())
	}

	var resp struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad_request" {
		t.Errorf("error code = %q, want %q", resp.Error, "bad_request")
	}
}
