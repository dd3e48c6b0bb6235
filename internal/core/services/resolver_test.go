package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genscholar/scholar-engine/internal/adapters/driven/storage/memory"
	"github.com/genscholar/scholar-engine/internal/core/domain"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"  EJ1172284.pdf  ", "ej1172284 pdf"},
		{"Query---Optimizers", "query optimizers"},
		{"", ""},
		{"***", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeText(tt.in), "normalizeText(%q)", tt.in)
	}
}

func TestMatchRatio(t *testing.T) {
	assert.Equal(t, 1.0, matchRatio("", ""))
	assert.Equal(t, 1.0, matchRatio("abc", "abc"))
	assert.Equal(t, 0.0, matchRatio("abc", "xyz"))

	// Symmetric
	assert.Equal(t, matchRatio("optimizer", "query optimizer"), matchRatio("query optimizer", "optimizer"))

	// Near match scores high
	assert.Greater(t, matchRatio("attention is all you need", "attention is all u need"), 0.9)
}

func TestLCSLength(t *testing.T) {
	assert.Equal(t, 0, lcsLength("", "abc"))
	assert.Equal(t, 3, lcsLength("abc", "abc"))
	assert.Equal(t, 2, lcsLength("abcd", "bd"))
	assert.Equal(t, 4, lcsLength("abcbdab", "bdcaba"))
}

func TestExtractHint(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"give summary of pdf1 in very very short", "pdf1 in very very short"},
		{"summary of the attention paper pdf", "the attention paper"},
		{"abstract for EJ1172284", "EJ1172284"},
		{"summarize of both documents", "both"},
		{"what is a query optimizer?", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractHint(tt.query), "ExtractHint(%q)", tt.query)
	}
}

func resolverFixture(t *testing.T, titles ...string) (*Resolver, []uint) {
	t.Helper()
	docs := memory.NewDocumentStore()
	ids := make([]uint, len(titles))
	for i, title := range titles {
		doc := &domain.Document{WorkspaceID: 1, Title: title}
		require.NoError(t, docs.Save(context.Background(), doc))
		ids[i] = doc.ID
	}
	return NewResolver(docs), ids
}

func TestMatchTitleSubstringShortCircuit(t *testing.T) {
	r, ids := resolverFixture(t, "EJ1172284", "Query Optimizers Survey")

	doc, ratio, err := r.MatchTitle(context.Background(), 1, "ej1172284.pdf")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, ids[0], doc.ID)
	assert.Equal(t, 1.0, ratio)
}

func TestMatchTitleFuzzy(t *testing.T) {
	r, ids := resolverFixture(t, "Query Optimizers Survey")

	doc, ratio, err := r.MatchTitle(context.Background(), 1, "optimizerss survay queery")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, ids[0], doc.ID)
	assert.Less(t, ratio, 1.0)
	assert.Greater(t, ratio, 0.5)
}

func TestValidateSpecificRequestSentinels(t *testing.T) {
	r, _ := resolverFixture(t, "Some Paper")

	for _, name := range []string{"", domain.DocNameAll, domain.DocNameNone} {
		doc, err := r.ValidateSpecificRequest(context.Background(), 1, name)
		require.NoError(t, err)
		assert.Nil(t, doc, "name %q must not resolve", name)
	}
}

func TestValidateSpecificRequestGuardrail(t *testing.T) {
	r, _ := resolverFixture(t, "Deep Residual Learning")

	// A completely unrelated request must not resolve to the only document.
	doc, err := r.ValidateSpecificRequest(context.Background(), 1, "zzzqqq")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestValidateSpecificRequestAcceptsCloseMatch(t *testing.T) {
	r, ids := resolverFixture(t, "Deep Residual Learning")

	doc, err := r.ValidateSpecificRequest(context.Background(), 1, "residual learning")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, ids[0], doc.ID)
}

func TestDetectFromQuerySubstring(t *testing.T) {
	r, ids := resolverFixture(t, "pdf1", "pdf2")

	doc, err := r.DetectFromQuery(context.Background(), 1, "what does pdf2 say about caching?")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, ids[1], doc.ID)
}

func TestDetectFromQueryNoMatch(t *testing.T) {
	r, _ := resolverFixture(t, "Deep Residual Learning")

	doc, err := r.DetectFromQuery(context.Background(), 1, "what is the training objective?")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestResolveTargetPrefersHint(t *testing.T) {
	r, ids := resolverFixture(t, "pdf1", "pdf2")

	doc, err := r.ResolveTarget(context.Background(), 1, "pdf1", "tell me about pdf2")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, ids[0], doc.ID)
}

func TestResolveTargetFallsBackToQuery(t *testing.T) {
	r, ids := resolverFixture(t, "pdf1", "pdf2")

	doc, err := r.ResolveTarget(context.Background(), 1, "", "tell me about pdf2")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, ids[1], doc.ID)
}
