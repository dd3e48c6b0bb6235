// Package flat provides a brute-force cosine-similarity vector index
// persisted as a single gob artifact per workspace. Indexes are small
// enough per tenant that exact search beats the operational cost of an
// approximate-nearest-neighbour structure.
package flat

import (
	"context"
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
)

// indexFileName is the artifact name inside a workspace's index directory.
const indexFileName = "index.gob"

// Ensure interfaces are implemented.
var (
	_ driven.IndexProvider = (*Provider)(nil)
	_ driven.Index         = (*Index)(nil)
)

// Provider creates and loads flat indexes, embedding chunk content through
// the configured embedding service.
type Provider struct {
	embedder driven.EmbeddingService
}

// NewProvider creates a flat index provider.
func NewProvider(embedder driven.EmbeddingService) *Provider {
	return &Provider{embedder: embedder}
}

// Index is a flat in-memory vector index. Loaded handles are snapshots;
// AddChunks mutates only the in-process copy until Save persists it.
type Index struct {
	embedder driven.EmbeddingService

	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	chunks    []domain.Chunk
}

// persistedIndex is the gob payload written to disk.
type persistedIndex struct {
	Dimension int
	Vectors   [][]float32
	Chunks    []domain.Chunk
}

// Create builds a new index from chunks.
func (p *Provider) Create(ctx context.Context, chunks []domain.Chunk) (driven.Index, error) {
	if p.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	idx := &Index{embedder: p.embedder}
	if err := idx.AddChunks(ctx, chunks); err != nil {
		return nil, err
	}
	return idx, nil
}

// Load reads a previously saved index from the given directory.
func (p *Provider) Load(_ context.Context, path string) (driven.Index, error) {
	if p.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	f, err := os.Open(filepath.Join(path, indexFileName))
	if err != nil {
		return nil, fmt.Errorf("open index artifact: %w", err)
	}
	defer f.Close()

	var payload persistedIndex
	if err := gob.NewDecoder(f).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode index artifact: %w", err)
	}

	return &Index{
		embedder:  p.embedder,
		dimension: payload.Dimension,
		vectors:   payload.Vectors,
		chunks:    payload.Chunks,
	}, nil
}

// Exists reports whether an index artifact is present at the location.
func (p *Provider) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(path, indexFileName))
	return err == nil
}

// AddChunks embeds and appends chunks to the in-memory index.
func (idx *Index) AddChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	for i, v := range vectors {
		if idx.dimension == 0 {
			idx.dimension = len(v)
		}
		if len(v) != idx.dimension {
			return fmt.Errorf("vector dimension mismatch: %d != %d", len(v), idx.dimension)
		}
		idx.vectors = append(idx.vectors, v)
		idx.chunks = append(idx.chunks, chunks[i])
	}
	return nil
}

// Search embeds the query and returns the k most similar chunks, optionally
// restricted to one document's chunks.
func (idx *Index) Search(ctx context.Context, query string, k int, filter *driven.SearchFilter) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		k = 5
	}

	queryVec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := make([]domain.ScoredChunk, 0, k)
	for i := range idx.vectors {
		if filter != nil && idx.chunks[i].Metadata.DocumentID != filter.DocumentID {
			continue
		}
		sim, err := cosineSimilarity(queryVec, idx.vectors[i])
		if err != nil {
			return nil, err
		}
		results = append(results, domain.ScoredChunk{Chunk: idx.chunks[i], Similarity: sim})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Similarity > results[j].Similarity })
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Save persists the index atomically into the given directory.
func (idx *Index) Save(_ context.Context, path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	idx.mu.RLock()
	payload := persistedIndex{
		Dimension: idx.dimension,
		Vectors:   idx.vectors,
		Chunks:    idx.chunks,
	}
	idx.mu.RUnlock()

	tmp, err := os.CreateTemp(path, indexFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("encode index artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(path, indexFileName)); err != nil {
		return fmt.Errorf("replace index artifact: %w", err)
	}
	return nil
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.chunks)
}

// cosineSimilarity computes the cosine similarity of two vectors,
// clamped to [0,1]. Zero vectors score 0.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimension mismatch: %d != %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		sim = 0
	} else if sim > 1 {
		sim = 1
	}
	return sim, nil
}
