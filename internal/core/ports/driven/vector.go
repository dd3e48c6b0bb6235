package driven

import (
	"context"

	"github.com/genscholar/scholar-engine/internal/core/domain"
)

// Index is a loaded vector-index handle for one workspace.
// Handles loaded from disk are snapshots: after AddChunks and Save, any
// cached handle for the same path must be invalidated so readers do not keep
// serving the pre-merge snapshot.
type Index interface {
	// AddChunks embeds and appends chunks to the in-memory index.
	AddChunks(ctx context.Context, chunks []domain.Chunk) error

	// Search embeds the query and returns the k most similar chunks,
	// optionally restricted by filter.
	Search(ctx context.Context, query string, k int, filter *SearchFilter) ([]domain.ScoredChunk, error)

	// Save persists the index to the given location.
	Save(ctx context.Context, path string) error

	// Len returns the number of indexed chunks.
	Len() int
}

// SearchFilter restricts a similarity search by chunk metadata.
type SearchFilter struct {
	// DocumentID limits results to chunks of one document.
	DocumentID uint
}

// IndexProvider creates and loads workspace vector indexes.
// The on-disk artifact format is owned entirely by the implementation.
type IndexProvider interface {
	// Create builds a new index from chunks.
	Create(ctx context.Context, chunks []domain.Chunk) (Index, error)

	// Load reads a previously saved index from the given location.
	Load(ctx context.Context, path string) (Index, error)

	// Exists reports whether an index artifact is present at the location.
	Exists(path string) bool
}
