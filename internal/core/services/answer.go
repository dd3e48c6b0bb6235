package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
	"github.com/genscholar/scholar-engine/internal/core/ports/driving"
	"github.com/genscholar/scholar-engine/internal/logger"
	"github.com/genscholar/scholar-engine/internal/vectorcache"
)

// Ensure AnswerService implements the interface.
var _ driving.Answerer = (*AnswerService)(nil)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// defaultAnswerPrompt synthesises an answer from retrieved context.
const defaultAnswerPrompt = `You are a helpful research assistant. Use the provided context to answer the user's question. If the answer is not in the context, say so instead of guessing.

Context:
%s

Question:
%s`

// defaultCombinePrompt merges per-document summary sections into one.
const defaultCombinePrompt = `Please create a single, cohesive %s based on the following individual document sections:

%s`

// AnswerService answers questions over a workspace's documents. It is a
// state machine over the workspace's processing status: classification,
// resolution and retrieval run only in the READY state. Answer never
// returns an error; every failure converges on a fixed message.
type AnswerService struct {
	workspaces driven.WorkspaceStore
	docs       driven.DocumentStore
	classifier *Classifier
	resolver   *Resolver
	llm        driven.LLMService
	prompts    driven.PromptStore
	provider   driven.IndexProvider
	cache      *vectorcache.Cache
	topK       int
}

// NewAnswerService creates the answer engine. The llm parameter is optional
// (can be nil); without it classification falls back and synthesis routes
// return a fixed not-initialised message.
func NewAnswerService(
	workspaces driven.WorkspaceStore,
	docs driven.DocumentStore,
	classifier *Classifier,
	resolver *Resolver,
	llm driven.LLMService,
	prompts driven.PromptStore,
	provider driven.IndexProvider,
	cache *vectorcache.Cache,
) *AnswerService {
	return &AnswerService{
		workspaces: workspaces,
		docs:       docs,
		classifier: classifier,
		resolver:   resolver,
		llm:        llm,
		prompts:    prompts,
		provider:   provider,
		cache:      cache,
		topK:       DefaultTopK,
	}
}

// SetTopK overrides the retrieval depth.
func (s *AnswerService) SetTopK(k int) {
	if k > 0 {
		s.topK = k
	}
}

// Answer routes a question and returns a human-readable reply.
func (s *AnswerService) Answer(ctx context.Context, question string, workspaceID uint) string {
	logger.Section("Answer")
	logger.Debug("Workspace %d, question: %q", workspaceID, question)

	ws, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.MsgWorkspaceNotFound
		}
		logger.Warn("Answer: workspace lookup failed: %v", err)
		return domain.MsgInternalError
	}

	switch ws.ProcessingStatus {
	case domain.StatusNone:
		return domain.MsgNotProcessed
	case domain.StatusProcessing:
		return domain.MsgProcessing
	case domain.StatusFailed:
		return domain.MsgProcessingFailed
	case domain.StatusReady:
		return s.route(ctx, ws, question)
	default:
		return domain.MsgUnknownState
	}
}

// route handles the READY state: classification, resolution, and either a
// cached-summary reply or retrieval-augmented generation.
func (s *AnswerService) route(ctx context.Context, ws *domain.Workspace, question string) string {
	cls := s.classifier.Classify(ctx, question)
	logger.Debug("Router: intent=%s doc_name=%s", cls.Intent, cls.DocName)

	// An explicit hint in the question text outranks the classifier's.
	specific := ExtractHint(question)
	if specific == "" {
		specific = cls.SpecificDocName()
	}

	switch cls.Intent {
	case domain.IntentOffTopic:
		return domain.MsgOffTopic
	case domain.IntentSummary, domain.IntentAbstract:
		return s.answerSummary(ctx, ws, cls, specific)
	default:
		return s.answerQuestion(ctx, ws, question, specific)
	}
}

// answerSummary serves summary/abstract requests from the cached
// per-document fields, synthesising only when multiple documents respond.
func (s *AnswerService) answerSummary(ctx context.Context, ws *domain.Workspace, cls domain.Classification, specific string) string {
	if specific != "" {
		doc, err := s.resolver.ValidateSpecificRequest(ctx, ws.ID, specific)
		if err != nil {
			logger.Warn("Answer: resolve %q failed: %v", specific, err)
			return domain.MsgDocumentLookupFailed
		}
		if doc == nil {
			return domain.MsgPDFNotAvailable
		}

		content, ok := summaryField(doc, cls.Intent)
		if !ok {
			return domain.MsgFieldNotReady(cls.Intent, doc.Title)
		}
		return content
	}

	if cls.DocName == domain.DocNameAll {
		return s.aggregateSummaries(ctx, ws, cls.Intent)
	}

	return domain.MsgClarifyDocument
}

// aggregateSummaries gathers the requested field across the workspace.
// One usable field is returned verbatim; several are combined by the LLM.
func (s *AnswerService) aggregateSummaries(ctx context.Context, ws *domain.Workspace, intent domain.Intent) string {
	docs, err := s.docs.ListByWorkspace(ctx, ws.ID)
	if err != nil {
		logger.Warn("Answer: list documents failed: %v", err)
		return domain.MsgInternalError
	}
	if len(docs) == 0 {
		return domain.MsgNoWorkspaceDocuments
	}

	var contents, sections []string
	for i := range docs {
		content, ok := summaryField(&docs[i], intent)
		if !ok {
			continue
		}
		contents = append(contents, content)
		sections = append(sections, fmt.Sprintf("Document: %s\n\n%s", docs[i].Title, content))
	}

	switch len(contents) {
	case 0:
		return domain.MsgNoFieldsGenerated(intent)
	case 1:
		return contents[0]
	}

	if s.llm == nil {
		return domain.MsgLLMNotInitialized
	}

	template := loadPrompt(s.prompts, driven.PromptCombineSections, defaultCombinePrompt)
	prompt := fmt.Sprintf(template, intent, strings.Join(sections, "\n\n---\n\n"))

	combined, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0.2})
	if err != nil {
		logger.Warn("Answer: combine %ss failed: %v", intent, err)
		return domain.MsgAnswerError(err)
	}
	return strings.TrimSpace(combined)
}

// answerQuestion runs retrieval-augmented generation over the workspace
// index, optionally filtered to a resolved document.
func (s *AnswerService) answerQuestion(ctx context.Context, ws *domain.Workspace, question, specific string) string {
	var requested *domain.Document
	if specific != "" {
		var err error
		requested, err = s.resolver.ValidateSpecificRequest(ctx, ws.ID, specific)
		if err != nil {
			logger.Warn("Answer: resolve %q failed: %v", specific, err)
			return domain.MsgDocumentLookupFailed
		}
		if requested == nil {
			// A requested-but-unresolved document must not silently fall
			// back to searching everything.
			return domain.MsgPDFNotAvailable
		}
	}

	if ws.IndexPath == nil || *ws.IndexPath == "" {
		logger.Warn("Answer: workspace %d READY without index path", ws.ID)
		return domain.MsgIndexPathMissing
	}

	idx, err := s.loadIndex(ctx, *ws.IndexPath)
	if err != nil {
		logger.Warn("Answer: load index: %v", err)
		return domain.MsgInternalError
	}

	target := requested
	if target == nil {
		target, err = s.resolver.ResolveTarget(ctx, ws.ID, "", question)
		if err != nil {
			logger.Warn("Answer: target resolution failed: %v", err)
			target = nil
		}
	}

	var filter *driven.SearchFilter
	if target != nil {
		logger.Debug("RAG: filtering context to %q (ID %d)", target.Title, target.ID)
		filter = &driven.SearchFilter{DocumentID: target.ID}
	}

	hits, err := idx.Search(ctx, question, s.topK, filter)
	if err != nil {
		logger.Warn("Answer: similarity search failed: %v", err)
		return domain.MsgInternalError
	}

	if len(hits) == 0 {
		if target != nil {
			return domain.MsgNoRelevantContentIn(target.Title)
		}
		return domain.MsgNoRelevantContent
	}

	contextText := buildContext(hits)
	logger.Debug("RAG: %d chunks, context length %d chars", len(hits), len(contextText))

	if s.llm == nil {
		return domain.MsgLLMNotInitialized
	}

	template := loadPrompt(s.prompts, driven.PromptAnswerQuestion, defaultAnswerPrompt)
	prompt := fmt.Sprintf(template, contextText, question)

	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0.2})
	if err != nil {
		logger.Warn("Answer: synthesis failed: %v", err)
		return domain.MsgAnswerError(err)
	}
	return strings.TrimSpace(answer)
}

// loadIndex returns the workspace's index handle, via the bounded cache.
func (s *AnswerService) loadIndex(ctx context.Context, path string) (driven.Index, error) {
	if idx, ok := s.cache.Get(path); ok {
		return idx, nil
	}

	logger.Debug("Loading index from disk: %s", path)
	idx, err := s.provider.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	s.cache.Add(path, idx)
	return idx, nil
}

// buildContext assembles the retrieval context, each chunk prefixed with
// its source document label for citation.
func buildContext(hits []domain.ScoredChunk) string {
	lines := make([]string, len(hits))
	for i, hit := range hits {
		label := hit.Chunk.Metadata.DocumentTitle
		if label == "" {
			label = "Unknown Document"
		}
		lines[i] = fmt.Sprintf("[%s] %s", label, hit.Chunk.Content)
	}
	return strings.Join(lines, "\n\n")
}

// summaryField selects the cached field for the intent and reports whether
// it is usable (non-empty, not a placeholder).
func summaryField(doc *domain.Document, intent domain.Intent) (string, bool) {
	if intent == domain.IntentAbstract {
		return doc.Abstract, doc.HasAbstract()
	}
	return doc.Summary, doc.HasSummary()
}
