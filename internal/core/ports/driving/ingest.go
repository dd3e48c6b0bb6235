package driving

import (
	"context"

	"github.com/genscholar/scholar-engine/internal/core/domain"
)

// Ingestor runs the document ingestion pipeline.
type Ingestor interface {
	// Ingest processes one uploaded document end to end: extraction,
	// summarisation, chunking, embedding and index merge, driving the
	// workspace's processing state machine. It never panics; all failures
	// are reported through the result and the persisted workspace status.
	Ingest(ctx context.Context, documentID uint) domain.IngestResult
}
