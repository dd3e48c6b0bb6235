package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: this is separate from the vector index, which stores and searches
// vectors. EmbeddingService generates vectors; the index stores them.
//
// Implementations may include:
//   - Cohere (embed-english-v3.0)
//   - OpenAI (text-embedding-3-small)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates an embedding for a search query.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for document texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 1024, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
