package driven

import (
	"context"

	"github.com/genscholar/scholar-engine/internal/core/domain"
)

// Extractor turns raw document bytes into ordered page-level text.
// Leaf dependency, swappable per document format.
type Extractor interface {
	// Extract parses the document and returns its pages in order.
	// An unparseable document returns an error; a parseable document with
	// no text returns an empty slice.
	Extract(ctx context.Context, content []byte) ([]domain.PageText, error)
}
