package retriever

const (
	searchByDocumentQuery = `
		SELECT
			content,
			chunk_index,
			page_number,
			1 - (embedding <=> $1) AS similarity
		FROM document_embeddings
		WHERE document_id = $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`

	searchByOwnerQuery = `
		SELECT
			de.content,
			de.chunk_index,
			de.page_number,
			1 - (de.embedding <=> $1) AS similarity
		FROM document_embeddings de
		JOIN documents d ON d.id = de.document_id
		WHERE d.created_by = $2
		ORDER BY de.embedding <=> $1
		LIMIT $3
	`
)
