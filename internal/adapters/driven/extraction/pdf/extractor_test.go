package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmptyContent(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(context.Background(), nil)
	assert.Error(t, err)
}

func TestExtractInvalidPDF(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(context.Background(), []byte("this is not a pdf"))
	assert.Error(t, err)
}
