package storage

const (
	fetchDocumentQuery = `
		SELECT
			id::text,
			title,
			file_path,
			created_by::text,
			updated_at
		FROM documents
		WHERE id = $1
	`

	updateStatusQuery = `
		UPDATE documents
		SET embedding_status = $2, embedding_error = $3
		WHERE id = $1
	`

	fetchStatusQuery = `
		SELECT
			embedding_status,
			COALESCE(embedding_error, '')
		FROM documents
		WHERE id = $1
	`

	deleteEmbeddingsQuery = `
		DELETE FROM document_embeddings
		WHERE document_id = $1
	`

	insertEmbeddingQuery = `
		INSERT INTO document_embeddings (document_id, content, page_number, chunk_index, embedding)
		VALUES ($1, $2, $3, $4, $5)
	`

	countEmbeddingsQuery = `
		SELECT COUNT(*)
		FROM document_embeddings
		WHERE document_id = $1
	`
)
