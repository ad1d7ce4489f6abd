package documents

// response for an accepted ingest request
type IngestResponse struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
}

// response for an embedding status poll
type StatusResponse struct {
	DocumentID   string `json:"document_id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	ChunkCount   int    `json:"chunk_count"`
}
