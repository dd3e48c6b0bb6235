package vectorcache

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
)

// stubIndex is a minimal driven.Index for cache tests.
type stubIndex struct{ name string }

func (s *stubIndex) AddChunks(context.Context, []domain.Chunk) error { return nil }
func (s *stubIndex) Search(context.Context, string, int, *driven.SearchFilter) ([]domain.ScoredChunk, error) {
	return nil, nil
}
func (s *stubIndex) Save(context.Context, string) error { return nil }
func (s *stubIndex) Len() int                           { return 0 }

func TestCache_GetMiss(t *testing.T) {
	c := New(2)
	_, ok := c.Get("/tmp/ws-1")
	assert.False(t, ok)
}

func TestCache_AddGet(t *testing.T) {
	c := New(2)
	idx := &stubIndex{name: "a"}

	c.Add("/tmp/ws-1", idx)

	got, ok := c.Get("/tmp/ws-1")
	require.True(t, ok)
	assert.Same(t, idx, got)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	c.Add("a", &stubIndex{name: "a"})
	c.Add("b", &stubIndex{name: "b"})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Add("c", &stubIndex{name: "c"})

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCache_ReplaceExisting(t *testing.T) {
	c := New(2)
	c.Add("a", &stubIndex{name: "old"})
	replacement := &stubIndex{name: "new"}
	c.Add("a", replacement)

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Invalidate(t *testing.T) {
	c := New(2)
	c.Add("a", &stubIndex{})

	c.Invalidate("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	// Invalidating a missing key is a no-op.
	c.Invalidate("missing")
}

func TestCache_DefaultCapacity(t *testing.T) {
	c := New(0)
	for i := 0; i < DefaultCapacity+5; i++ {
		c.Add(fmt.Sprintf("ws-%d", i), &stubIndex{})
	}
	assert.Equal(t, DefaultCapacity, c.Len())
}
