// Package sqlite provides GORM-backed workspace and document stores
// using the CGO-free glebarez SQLite driver.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
)

// Ensure interfaces are implemented.
var (
	_ driven.WorkspaceStore = (*WorkspaceStore)(nil)
	_ driven.DocumentStore  = (*DocumentStore)(nil)
)

// workspaceEntity is the workspaces table row.
type workspaceEntity struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	ProcessingStatus string `gorm:"not null;default:NONE"`
	IndexPath        *string
	CreatedAt        time.Time
}

func (workspaceEntity) TableName() string { return "workspaces" }

// documentEntity is the documents table row.
type documentEntity struct {
	ID          uint `gorm:"primaryKey"`
	WorkspaceID uint `gorm:"index;not null"`
	Title       string
	Content     []byte
	Summary     string
	Abstract    string
	IsIndexed   bool `gorm:"not null;default:false"`
	UploadedAt  time.Time
}

func (documentEntity) TableName() string { return "documents" }

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&workspaceEntity{}, &documentEntity{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// WorkspaceStore persists workspaces in SQLite.
type WorkspaceStore struct {
	db *gorm.DB
}

// NewWorkspaceStore creates a SQLite-backed workspace store.
func NewWorkspaceStore(db *gorm.DB) *WorkspaceStore {
	return &WorkspaceStore{db: db}
}

// Get retrieves a workspace by ID.
func (s *WorkspaceStore) Get(ctx context.Context, id uint) (*domain.Workspace, error) {
	var ent workspaceEntity
	err := s.db.WithContext(ctx).First(&ent, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace %d: %w", id, err)
	}
	return workspaceFromEntity(ent), nil
}

// Save stores or updates a workspace.
func (s *WorkspaceStore) Save(ctx context.Context, ws *domain.Workspace) error {
	ent := workspaceEntity{
		ID:               ws.ID,
		Name:             ws.Name,
		ProcessingStatus: string(ws.ProcessingStatus),
		IndexPath:        ws.IndexPath,
		CreatedAt:        ws.CreatedAt,
	}
	if ent.CreatedAt.IsZero() {
		ent.CreatedAt = time.Now()
	}

	if err := s.db.WithContext(ctx).Save(&ent).Error; err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}

	ws.ID = ent.ID
	ws.CreatedAt = ent.CreatedAt
	return nil
}

func workspaceFromEntity(ent workspaceEntity) *domain.Workspace {
	return &domain.Workspace{
		ID:               ent.ID,
		Name:             ent.Name,
		ProcessingStatus: domain.ProcessingStatus(ent.ProcessingStatus),
		IndexPath:        ent.IndexPath,
		CreatedAt:        ent.CreatedAt,
	}
}

// DocumentStore persists documents in SQLite.
type DocumentStore struct {
	db *gorm.DB
}

// NewDocumentStore creates a SQLite-backed document store.
func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Get retrieves a document by ID, including content bytes.
func (s *DocumentStore) Get(ctx context.Context, id uint) (*domain.Document, error) {
	var ent documentEntity
	err := s.db.WithContext(ctx).First(&ent, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	doc := documentFromEntity(ent)
	return &doc, nil
}

// Save stores or updates a document.
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	ent := documentEntity{
		ID:          doc.ID,
		WorkspaceID: doc.WorkspaceID,
		Title:       doc.Title,
		Content:     doc.Content,
		Summary:     doc.Summary,
		Abstract:    doc.Abstract,
		IsIndexed:   doc.IsIndexed,
		UploadedAt:  doc.UploadedAt,
	}
	if ent.UploadedAt.IsZero() {
		ent.UploadedAt = time.Now()
	}

	if err := s.db.WithContext(ctx).Save(&ent).Error; err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	doc.ID = ent.ID
	doc.UploadedAt = ent.UploadedAt
	return nil
}

// ListByWorkspace returns all documents in a workspace ordered by ID.
func (s *DocumentStore) ListByWorkspace(ctx context.Context, workspaceID uint) ([]domain.Document, error) {
	var ents []documentEntity
	err := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("id").
		Find(&ents).Error
	if err != nil {
		return nil, fmt.Errorf("list documents for workspace %d: %w", workspaceID, err)
	}

	docs := make([]domain.Document, len(ents))
	for i, ent := range ents {
		docs[i] = documentFromEntity(ent)
	}
	return docs, nil
}

func documentFromEntity(ent documentEntity) domain.Document {
	return domain.Document{
		ID:          ent.ID,
		WorkspaceID: ent.WorkspaceID,
		Title:       ent.Title,
		Content:     ent.Content,
		Summary:     ent.Summary,
		Abstract:    ent.Abstract,
		IsIndexed:   ent.IsIndexed,
		UploadedAt:  ent.UploadedAt,
	}
}
