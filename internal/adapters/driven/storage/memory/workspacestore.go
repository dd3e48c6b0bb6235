package memory

import (
	"context"
	"sync"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
)

// Ensure WorkspaceStore implements the interface.
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// WorkspaceStore is an in-memory implementation of driven.WorkspaceStore.
type WorkspaceStore struct {
	mu         sync.RWMutex
	workspaces map[uint]domain.Workspace
	nextID     uint
}

// NewWorkspaceStore creates a new in-memory workspace store.
func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{
		workspaces: make(map[uint]domain.Workspace),
		nextID:     1,
	}
}

// Get retrieves a workspace by ID.
func (s *WorkspaceStore) Get(_ context.Context, id uint) (*domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ws, nil
}

// Save stores or updates a workspace, assigning an ID when unset.
func (s *WorkspaceStore) Save(_ context.Context, ws *domain.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ws.ID == 0 {
		ws.ID = s.nextID
		s.nextID++
	}
	s.workspaces[ws.ID] = *ws
	return nil
}
