package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timeout for answer requests; generation dominates
const queryRequestTimeout = 90 * time.Second

// manages HTTP requests to the question-answering REST API
type APIClient struct {
	endpoint   string
	token      string
	userID     string
	httpClient *http.Client
}

// creates a new REST client from environment settings
func NewAPIClient() *APIClient {
	endpoint := os.Getenv("PAPERMIND_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &APIClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    os.Getenv("PAPERMIND_API_TOKEN"),
		userID:   os.Getenv("PAPERMIND_USER_ID"),
		httpClient: &http.Client{
			Timeout: queryRequestTimeout,
		},
	}
}

// sends one question through the full answer flow
func (c *APIClient) Query(ctx context.Context, query, webMode, documentID string) (*AnswerMsg, error) {
	payload := queryRequest{
		Query:      query,
		UserID:     c.userID,
		DocumentID: documentID,
		WebMode:    webMode,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/hybrid/query", c.endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}

		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result queryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &AnswerMsg{
		query:  query,
		answer: result.Answer,
		meta:   formatMeta(result),
	}, nil
}

// returns a tea.Cmd that sends a query in the background
func (c *APIClient) QueryCmd(query, webMode, documentID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryRequestTimeout)
		defer cancel()

		resp, err := c.Query(ctx, query, webMode, documentID)
		if err != nil {
			return AnswerErrorMsg{query: query, err: err}
		}

		return *resp
	}
}

// REST API request/response types

type queryRequest struct {
	Query      string `json:"query"`
	UserID     string `json:"user_id,omitempty"`
	DocumentID string `json:"document_id,omitempty"`
	WebMode    string `json:"web_mode,omitempty"`
}

type queryResponse struct {
	Answer   string `json:"answer"`
	Sources  []struct {
		SourceType string `json:"source_type"`
	} `json:"sources"`
	Metadata struct {
		Model           string `json:"model"`
		InternalResults int    `json:"internal_results"`
		WebResults      int    `json:"web_results"`
		QueryTimeMS     int64  `json:"query_time_ms"`
	} `json:"metadata"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func formatMeta(result queryResponse) string {
	return fmt.Sprintf("model: %s | sources: %d internal, %d web | %dms",
		result.Metadata.Model,
		result.Metadata.InternalResults,
		result.Metadata.WebResults,
		result.Metadata.QueryTimeMS)
}
