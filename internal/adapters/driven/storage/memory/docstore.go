package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[uint]domain.Document
	nextID    uint
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[uint]domain.Document),
		nextID:    1,
	}
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id uint) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// Save stores or updates a document, assigning an ID when unset.
func (s *DocumentStore) Save(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID == 0 {
		doc.ID = s.nextID
		s.nextID++
	}
	s.documents[doc.ID] = *doc
	return nil
}

// ListByWorkspace returns all documents belonging to a workspace, ordered
// by ID for deterministic iteration.
func (s *DocumentStore) ListByWorkspace(_ context.Context, workspaceID uint) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []domain.Document
	for _, doc := range s.documents {
		if doc.WorkspaceID == workspaceID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}
