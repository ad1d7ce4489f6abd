package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
)

// returned when a document id does not exist
var ErrDocumentNotFound = errors.New("document not found")

// fetches the documents-table metadata for one document
func (c *Client) FetchDocument(ctx context.Context, documentID string) (*DocumentMeta, error) {
	var meta DocumentMeta

	err := c.pool.QueryRow(ctx, fetchDocumentQuery, documentID).Scan(
		&meta.ID,
		&meta.Title,
		&meta.FilePath,
		&meta.CreatedBy,
		&meta.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", documentID, err)
	}

	return &meta, nil
}

// records the embedding lifecycle state for a document; errorMessage is
// only meaningful for StatusFailed
func (c *Client) UpdateEmbeddingStatus(ctx context.Context, documentID, status, errorMessage string) error {
	var errValue any
	if errorMessage != "" {
		errValue = errorMessage
	}

	_, err := c.pool.Exec(ctx, updateStatusQuery, documentID, status, errValue)
	if err != nil {
		return fmt.Errorf("failed to update embedding status: %w", err)
	}

	return nil
}

// returns the current embedding status and error message for a document
func (c *Client) FetchEmbeddingStatus(ctx context.Context, documentID string) (status, errorMessage string, err error) {
	err = c.pool.QueryRow(ctx, fetchStatusQuery, documentID).Scan(&status, &errorMessage)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrDocumentNotFound
	}

	if err != nil {
		return "", "", fmt.Errorf("failed to fetch embedding status: %w", err)
	}

	return status, errorMessage, nil
}

// downloads a file from the Supabase storage bucket to destDir and
// returns the local path
func (c *Client) DownloadFile(ctx context.Context, remotePath, destDir string) (string, error) {
	if c.baseURL == "" || c.serviceKey == "" {
		return "", fmt.Errorf("storage bucket access is not configured")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		c.baseURL, c.bucket, url.PathEscape(remotePath))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", remotePath, err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck
		return "", fmt.Errorf("bucket download failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	name := filepath.Base(remotePath)
	if name == "." || name == "/" {
		name = "document.pdf"
	}

	localPath := filepath.Join(destDir, name)

	out, err := os.Create(localPath) //nolint:gosec // G304: path is derived from trusted metadata
	if err != nil {
		return "", fmt.Errorf("failed to create local file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close() //nolint:errcheck,gosec
		return "", fmt.Errorf("failed to write local file: %w", err)
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close local file: %w", err)
	}

	return localPath, nil
}
