// Package chunker provides a fixed-size text chunking splitter.
package chunker

import (
	"github.com/google/uuid"

	"github.com/genscholar/scholar-engine/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Splitter splits page text into fixed-size overlapping chunks, carrying
// the page's provenance metadata onto every chunk.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Split cuts content into chunks of up to chunkSize characters with the
// configured overlap. Every chunk carries meta. Empty content produces no
// chunks.
func (s *Splitter) Split(content string, meta domain.ChunkMetadata) []domain.Chunk {
	if content == "" {
		return nil
	}

	// Index by rune so boundaries never land mid-codepoint.
	runes := []rune(content)
	contentLen := len(runes)
	step := s.chunkSize - s.overlap

	chunks := make([]domain.Chunk, 0, contentLen/step+1)

	for start := 0; start < contentLen; start += step {
		end := start + s.chunkSize
		if end > contentLen {
			end = contentLen
		}

		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			Content:  string(runes[start:end]),
			Metadata: meta,
		})

		if end == contentLen {
			break
		}
	}

	return chunks
}
