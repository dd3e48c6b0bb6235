package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrLLMUnavailable indicates the LLM backend is not configured.
	// Ingestion fails fast without it; answering degrades to fixed messages.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding backend is not
	// configured. No index can be built or queried without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrNoPages indicates extraction produced no text at all.
	ErrNoPages = errors.New("no text could be extracted from the document")

	// ErrNoChunks indicates chunking produced no chunks.
	ErrNoChunks = errors.New("failed to create chunks from document pages")

	// ErrIndexPathMissing indicates a READY workspace has no index location.
	// This is a data-integrity error, not an empty-workspace condition.
	ErrIndexPathMissing = errors.New("workspace index path is missing")
)
