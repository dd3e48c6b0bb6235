package domain

// PageText is one page of extracted document text, in document order.
type PageText struct {
	// Number is the 1-based page number.
	Number int

	// Text is the plain page text.
	Text string
}

// ChunkMetadata carries provenance for a chunk. It is sufficient both to
// attribute retrieved text to a document for citation and to filter a
// similarity search to a single document.
type ChunkMetadata struct {
	// DocumentID is the owning document.
	DocumentID uint

	// DocumentTitle is the owning document's title at ingestion time.
	DocumentTitle string

	// WorkspaceID is the owning workspace.
	WorkspaceID uint

	// PageNumber is the page the chunk text came from.
	PageNumber int
}

// Chunk is a bounded span of document text with attached provenance.
// It is the unit of embedding and retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Content is the chunk text, prefixed with a source banner naming the
	// owning document.
	Content string

	// Metadata is the chunk provenance.
	Metadata ChunkMetadata
}

// ScoredChunk is a chunk returned by a similarity search.
type ScoredChunk struct {
	Chunk Chunk

	// Similarity is the cosine similarity to the query (0-1).
	Similarity float64
}
