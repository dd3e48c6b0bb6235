package driven

import (
	"context"

	"github.com/genscholar/scholar-engine/internal/core/domain"
)

// WorkspaceStore persists workspaces and their index state.
// Writes are last-writer-wins at the row level; there is no optimistic
// concurrency control.
type WorkspaceStore interface {
	// Get retrieves a workspace by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id uint) (*domain.Workspace, error)

	// Save stores or updates a workspace.
	Save(ctx context.Context, ws *domain.Workspace) error
}
