package flat

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
)

// hashEmbedder produces deterministic 4-dim vectors keyed on which of a
// few marker words the text contains, so similarity ordering is predictable.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := []float32{0.1, 0.1, 0.1, 0.1}
	if strings.Contains(text, "quantum") {
		v[0] = 1
	}
	if strings.Contains(text, "biology") {
		v[1] = 1
	}
	if strings.Contains(text, "history") {
		v[2] = 1
	}
	return v, nil
}

func (h hashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := h.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (hashEmbedder) Dimensions() int    { return 4 }
func (hashEmbedder) ModelName() string  { return "hash-test" }
func (hashEmbedder) Ping(ctx context.Context) error { return nil }
func (hashEmbedder) Close() error       { return nil }

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: "c1", Content: "quantum entanglement basics", Metadata: domain.ChunkMetadata{DocumentID: 1, DocumentTitle: "physics"}},
		{ID: "c2", Content: "cell biology overview", Metadata: domain.ChunkMetadata{DocumentID: 2, DocumentTitle: "bio"}},
		{ID: "c3", Content: "history of rome", Metadata: domain.ChunkMetadata{DocumentID: 3, DocumentTitle: "rome"}},
	}
}

func TestCreateAndSearch(t *testing.T) {
	p := NewProvider(hashEmbedder{})

	idx, err := p.Create(context.Background(), testChunks())
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	hits, err := idx.Search(context.Background(), "quantum physics question", 2, nil)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "c1", hits[0].Chunk.ID)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
}

func TestSearchFilterByDocument(t *testing.T) {
	p := NewProvider(hashEmbedder{})

	idx, err := p.Create(context.Background(), testChunks())
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), "quantum", 5, &driven.SearchFilter{DocumentID: 2})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c2", hits[0].Chunk.ID)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := NewProvider(hashEmbedder{})

	idx, err := p.Create(context.Background(), testChunks())
	require.NoError(t, err)
	require.NoError(t, idx.Save(context.Background(), dir))
	assert.True(t, p.Exists(dir))

	loaded, err := p.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Len())

	hits, err := loaded.Search(context.Background(), "history question", 1, nil)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c3", hits[0].Chunk.ID)
}

func TestAddChunksMerges(t *testing.T) {
	p := NewProvider(hashEmbedder{})

	idx, err := p.Create(context.Background(), testChunks()[:2])
	require.NoError(t, err)
	require.NoError(t, idx.AddChunks(context.Background(), testChunks()[2:]))
	assert.Equal(t, 3, idx.Len())
}

func TestExistsMissing(t *testing.T) {
	p := NewProvider(hashEmbedder{})
	assert.False(t, p.Exists(t.TempDir()))
}

func TestCreateWithoutEmbedder(t *testing.T) {
	p := NewProvider(nil)
	_, err := p.Create(context.Background(), testChunks())
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestCosineSimilarity(t *testing.T) {
	sim, err := cosineSimilarity([]float32{1, 0}, []float32{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)

	sim, err = cosineSimilarity([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-9)

	sim, err = cosineSimilarity([]float32{0, 0}, []float32{1, 1})
	require.NoError(t, err)
	assert.Zero(t, sim)

	_, err = cosineSimilarity([]float32{1}, []float32{1, 2})
	assert.Error(t, err)
}
