package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
	"github.com/genscholar/scholar-engine/internal/logger"
)

// MatchRatioThreshold is the precision guardrail for specific-document
// requests: a best match scoring below this is treated as "no document
// found" rather than a weak match, so the engine never silently answers
// about the wrong paper.
const MatchRatioThreshold = 0.65

// docHintPattern extracts an explicit document name from phrasings like
// "summary of X" or "abstract for X pdf".
var docHintPattern = regexp.MustCompile(
	`(?i)(?:summary|summaries|summarize|summarise|abstract|abstracts)\s+(?:of|for)\s+(.+?)(?:\s+(?:pdf|file|document)s?\b|$)`,
)

// genericWordPattern strips generic carrier words from an extracted hint.
var genericWordPattern = regexp.MustCompile(`(?i)\b(?:pdf|file|document)s?\b`)

// nonAlnumPattern collapses runs of non-alphanumerics during normalisation.
var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Resolver decides which specific document, if any, a question or hint
// refers to, via fuzzy title matching with a precision guardrail.
type Resolver struct {
	docs driven.DocumentStore
}

// NewResolver creates a resolver over the given document store.
func NewResolver(docs driven.DocumentStore) *Resolver {
	return &Resolver{docs: docs}
}

// normalizeText lowercases, collapses all non-alphanumeric runs to single
// spaces, and trims.
func normalizeText(s string) string {
	lowered := strings.ToLower(s)
	cleaned := nonAlnumPattern.ReplaceAllString(lowered, " ")
	return strings.TrimSpace(cleaned)
}

// matchRatio computes a symmetric character-level similarity in [0,1]
// between two normalised strings, based on the longest common subsequence.
func matchRatio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(lcsLength(a, b)) / float64(total)
}

// lcsLength computes the longest-common-subsequence length with a rolling
// two-row table.
func lcsLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// ExtractHint scans a raw question for an explicit document-name hint
// ("summary of X", "abstract for Y file") and returns it stripped of
// generic words, or "" when the question carries no hint.
func ExtractHint(query string) string {
	if query == "" {
		return ""
	}

	m := docHintPattern.FindStringSubmatch(query)
	if m == nil {
		return ""
	}

	hint := strings.TrimSpace(m[1])
	hint = strings.TrimSpace(genericWordPattern.ReplaceAllString(hint, ""))
	return hint
}

// MatchTitle returns the best-matching document and its similarity ratio
// for the provided name. Exact or substring matches on normalised strings
// short-circuit with ratio 1.0.
func (r *Resolver) MatchTitle(ctx context.Context, workspaceID uint, name string) (*domain.Document, float64, error) {
	target := normalizeText(name)
	if target == "" {
		return nil, 0, nil
	}

	docs, err := r.docs.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, 0, fmt.Errorf("list workspace documents: %w", err)
	}

	var best *domain.Document
	bestRatio := 0.0

	for i := range docs {
		title := normalizeText(docs[i].Title)
		if title == "" {
			continue
		}

		if title == target || strings.Contains(title, target) || strings.Contains(target, title) {
			return &docs[i], 1.0, nil
		}

		if ratio := matchRatio(target, title); ratio > bestRatio {
			bestRatio = ratio
			best = &docs[i]
		}
	}

	return best, bestRatio, nil
}

// ValidateSpecificRequest resolves a specific-document request, applying
// the guardrail threshold. Returns nil when the name is empty or a
// sentinel, and nil when the best match is too weak; a miss is a business
// outcome, not an error.
func (r *Resolver) ValidateSpecificRequest(ctx context.Context, workspaceID uint, name string) (*domain.Document, error) {
	if name == "" || name == domain.DocNameAll || name == domain.DocNameNone {
		return nil, nil
	}

	doc, ratio, err := r.MatchTitle(ctx, workspaceID, name)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		logger.Debug("Guardrail: no matching title found for %q", name)
		return nil, nil
	}
	if ratio < MatchRatioThreshold {
		logger.Debug("Guardrail: best match %q too weak (%.2f)", doc.Title, ratio)
		return nil, nil
	}

	logger.Debug("Guardrail: %q resolved to %q (ratio=%.2f)", name, doc.Title, ratio)
	return doc, nil
}

// DetectFromQuery fuzzy-matches the raw question text against every title
// in the workspace. Substring containment wins immediately; otherwise the
// best ratio must clear the guardrail threshold.
func (r *Resolver) DetectFromQuery(ctx context.Context, workspaceID uint, query string) (*domain.Document, error) {
	normalized := normalizeText(query)
	if normalized == "" {
		return nil, nil
	}

	docs, err := r.docs.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list workspace documents: %w", err)
	}

	var best *domain.Document
	bestRatio := 0.0

	for i := range docs {
		title := normalizeText(docs[i].Title)
		if title == "" {
			continue
		}

		if strings.Contains(normalized, title) || strings.Contains(title, normalized) {
			logger.Debug("Fuzzy match: substring match %q for query %q", docs[i].Title, query)
			return &docs[i], nil
		}

		if ratio := matchRatio(normalized, title); ratio > bestRatio {
			bestRatio = ratio
			best = &docs[i]
		}
	}

	if bestRatio >= MatchRatioThreshold {
		logger.Debug("Fuzzy match: ratio %.2f for %q", bestRatio, best.Title)
		return best, nil
	}

	return nil, nil
}

// ResolveTarget picks a target document for retrieval filtering: an explicit
// hint first, then a fuzzy match of the whole question. Returns nil when no
// document can be identified.
func (r *Resolver) ResolveTarget(ctx context.Context, workspaceID uint, hint, query string) (*domain.Document, error) {
	if hint != "" && hint != domain.DocNameAll && hint != domain.DocNameNone {
		doc, ratio, err := r.MatchTitle(ctx, workspaceID, hint)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			logger.Debug("Resolver: hint matched %q (ratio=%.2f)", doc.Title, ratio)
			return doc, nil
		}
	}

	return r.DetectFromQuery(ctx, workspaceID, query)
}
