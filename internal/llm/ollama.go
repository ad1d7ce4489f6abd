package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3"
)

// shared HTTP client for Ollama calls; generation can take a while on CPU
var ollamaHTTPClient = &http.Client{
	Timeout: 120 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	},
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model         string `json:"model"`
	Response      string `json:"response"`
	Done          bool   `json:"done"`
	TotalDuration int64  `json:"total_duration"` // nanoseconds
}

type OllamaConfig struct {
	BaseURL string
	Model   string
}

type OllamaGenerator struct {
	config     OllamaConfig
	httpClient *http.Client
}

func NewOllamaGenerator(config OllamaConfig) *OllamaGenerator {
	if config.BaseURL == "" {
		config.BaseURL = defaultOllamaURL
	}

	if config.Model == "" {
		config.Model = defaultOllamaModel
	}

	return &OllamaGenerator{
		config:     config,
		httpClient: ollamaHTTPClient,
	}
}

// Model returns the configured model name
func (g *OllamaGenerator) Model() string {
	return g.config.Model
}

// generates an answer for the prompt via the Ollama generate API
func (g *OllamaGenerator) GenerateText(ctx context.Context, prompt string) (*GenerationResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	reqBody := generateRequest{
		Model:  g.config.Model,
		Prompt: prompt,
		Stream: false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(g.config.BaseURL, "/") + "/api/generate"

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach ollama at %s: %w", url, err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, truncate(string(body), 500))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if genResp.Response == "" {
		return nil, fmt.Errorf("invalid ollama response: missing 'response' field")
	}

	return &GenerationResult{
		Text:       strings.TrimSpace(genResp.Response),
		Model:      g.config.Model,
		DurationMS: genResp.TotalDuration / int64(time.Millisecond),
	}, nil
}
