// Package pdf extracts per-page plain text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
	"github.com/genscholar/scholar-engine/internal/logger"
)

var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads PDF bytes and returns the plain text of each page.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the PDF and returns one PageText per readable page.
// Pages that fail text extraction are skipped, matching how partially
// corrupt scans behave in practice.
func (e *Extractor) Extract(ctx context.Context, content []byte) ([]domain.PageText, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages := make([]domain.PageText, 0, total)
	fonts := make(map[string]*pdf.Font)

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			logger.Warn("skipping unreadable page %d: %v", i, err)
			continue
		}

		pages = append(pages, domain.PageText{Number: i, Text: text})
	}

	return pages, nil
}
