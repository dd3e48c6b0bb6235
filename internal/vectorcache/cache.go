// Package vectorcache provides a bounded cache of loaded vector-index
// handles keyed by index location, so repeated questions do not pay the
// deserialisation cost of a large index on every call.
package vectorcache

import (
	"container/list"
	"sync"

	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
	"github.com/genscholar/scholar-engine/internal/logger"
)

// DefaultCapacity matches the bound used by the original engine.
const DefaultCapacity = 10

// Cache is a size-bounded LRU mapping index path to loaded handle, shared
// process-wide. Entries are immutable snapshots; after an ingestion merges
// and re-saves an index, the writer must call Invalidate for that path so
// readers are not served the stale pre-merge snapshot.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

type entry struct {
	path  string
	index driven.Index
}

// New creates a cache with the given capacity.
// A non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the cached handle for path, marking it recently used.
func (c *Cache) Get(path string) (driven.Index, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[path]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).index, true
}

// Add stores a handle for path, evicting the least recently used entry when
// the cache is full. An existing entry for the same path is replaced.
func (c *Cache) Add(path string, index driven.Index) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[path]; ok {
		el.Value.(*entry).index = index
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			evicted := oldest.Value.(*entry)
			logger.Debug("Index cache: evicting %s", evicted.path)
			c.order.Remove(oldest)
			delete(c.entries, evicted.path)
		}
	}

	c.entries[path] = c.order.PushFront(&entry{path: path, index: index})
}

// Invalidate drops the entry for path, if present. Issued by the ingestion
// pipeline immediately after a successful index merge-and-save.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[path]; ok {
		logger.Debug("Index cache: invalidating %s", path)
		c.order.Remove(el)
		delete(c.entries, path)
	}
}

// Len returns the number of cached handles.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
