package driven

import (
	"context"

	"github.com/genscholar/scholar-engine/internal/core/domain"
)

// DocumentStore persists documents and their cached summary fields.
type DocumentStore interface {
	// Get retrieves a document by ID, including its raw content bytes.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id uint) (*domain.Document, error)

	// Save stores or updates a document.
	Save(ctx context.Context, doc *domain.Document) error

	// ListByWorkspace returns all documents belonging to a workspace.
	ListByWorkspace(ctx context.Context, workspaceID uint) ([]domain.Document, error)
}
