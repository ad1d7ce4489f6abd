package health

// health check response
type Response struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	Version          string `json:"version,omitempty"`
	WebSearchEnabled bool   `json:"web_search_enabled"`
}

type PingResponse struct {
	Message string `json:"message"`
}
