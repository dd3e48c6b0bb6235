package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/genscholar/scholar-engine/internal/core/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func TestWorkspaceStoreRoundTrip(t *testing.T) {
	store := NewWorkspaceStore(testDB(t))
	ctx := context.Background()

	ws := &domain.Workspace{Name: "thesis", ProcessingStatus: domain.StatusNone}
	require.NoError(t, store.Save(ctx, ws))
	require.NotZero(t, ws.ID)

	got, err := store.Get(ctx, ws.ID)
	require.NoError(t, err)
	assert.Equal(t, "thesis", got.Name)
	assert.Equal(t, domain.StatusNone, got.ProcessingStatus)
	assert.Nil(t, got.IndexPath)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestWorkspaceStoreUpdate(t *testing.T) {
	store := NewWorkspaceStore(testDB(t))
	ctx := context.Background()

	ws := &domain.Workspace{Name: "thesis", ProcessingStatus: domain.StatusNone}
	require.NoError(t, store.Save(ctx, ws))

	path := "/tmp/index/workspace_index_1"
	ws.ProcessingStatus = domain.StatusReady
	ws.IndexPath = &path
	require.NoError(t, store.Save(ctx, ws))

	got, err := store.Get(ctx, ws.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, got.ProcessingStatus)
	require.NotNil(t, got.IndexPath)
	assert.Equal(t, path, *got.IndexPath)
}

func TestWorkspaceStoreGetMissing(t *testing.T) {
	store := NewWorkspaceStore(testDB(t))
	_, err := store.Get(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	db := testDB(t)
	store := NewDocumentStore(db)
	ctx := context.Background()

	doc := &domain.Document{
		WorkspaceID: 1,
		Title:       "attention is all you need",
		Content:     []byte("%PDF-1.4 fake"),
	}
	require.NoError(t, store.Save(ctx, doc))
	require.NotZero(t, doc.ID)

	got, err := store.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Content, got.Content)
	assert.False(t, got.IsIndexed)
}

func TestDocumentStoreListByWorkspace(t *testing.T) {
	db := testDB(t)
	store := NewDocumentStore(db)
	ctx := context.Background()

	for _, title := range []string{"paper one", "paper two"} {
		require.NoError(t, store.Save(ctx, &domain.Document{WorkspaceID: 7, Title: title}))
	}
	require.NoError(t, store.Save(ctx, &domain.Document{WorkspaceID: 8, Title: "other workspace"}))

	docs, err := store.ListByWorkspace(ctx, 7)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "paper one", docs[0].Title)
	assert.Equal(t, "paper two", docs[1].Title)
}

func TestDocumentStoreGetMissing(t *testing.T) {
	store := NewDocumentStore(testDB(t))
	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
