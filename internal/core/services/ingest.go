package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/genscholar/scholar-engine/internal/chunker"
	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
	"github.com/genscholar/scholar-engine/internal/core/ports/driving"
	"github.com/genscholar/scholar-engine/internal/logger"
	"github.com/genscholar/scholar-engine/internal/vectorcache"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// defaultSummarisePrompt produces the cached per-document summary.
const defaultSummarisePrompt = `Provide a concise, 3-4 line summary of the following research paper text: %s`

// defaultAbstractPrompt extracts the abstract section of a document.
const defaultAbstractPrompt = `Extract the 'abstract' section from this research paper text. Return only the abstract's text. If no abstract is found, just return 'N/A'.: %s`

// IngestService orchestrates the ingestion pipeline for one document:
// extraction, summarisation, chunking, embedding, index merge and status
// update, driving the workspace's processing state machine.
//
// Ingestion is best-effort, not transactional: a summary saved before a
// later index failure stays saved. The returned IngestResult records how
// far the run progressed.
type IngestService struct {
	workspaces driven.WorkspaceStore
	docs       driven.DocumentStore
	extractor  driven.Extractor
	llm        driven.LLMService
	embedder   driven.EmbeddingService
	prompts    driven.PromptStore
	splitter   *chunker.Splitter
	provider   driven.IndexProvider
	cache      *vectorcache.Cache
	indexRoot  string

	// mu guards wsLocks; each workspace gets an exclusive section around
	// the load-merge-save sequence so concurrent ingestions cannot race on
	// the same index artifact.
	mu      sync.Mutex
	wsLocks map[uint]*sync.Mutex
}

// NewIngestService creates the ingestion pipeline.
// The llm and embedder parameters may be nil, in which case every run fails
// fast with a FAILED workspace status.
func NewIngestService(
	workspaces driven.WorkspaceStore,
	docs driven.DocumentStore,
	extractor driven.Extractor,
	llm driven.LLMService,
	embedder driven.EmbeddingService,
	prompts driven.PromptStore,
	splitter *chunker.Splitter,
	provider driven.IndexProvider,
	cache *vectorcache.Cache,
	indexRoot string,
) *IngestService {
	return &IngestService{
		workspaces: workspaces,
		docs:       docs,
		extractor:  extractor,
		llm:        llm,
		embedder:   embedder,
		prompts:    prompts,
		splitter:   splitter,
		provider:   provider,
		cache:      cache,
		indexRoot:  indexRoot,
		wsLocks:    make(map[uint]*sync.Mutex),
	}
}

// Ingest processes one uploaded document end to end.
func (s *IngestService) Ingest(ctx context.Context, documentID uint) domain.IngestResult {
	logger.Section("Ingestion")
	logger.Debug("Document ID: %d", documentID)

	doc, err := s.docs.Get(ctx, documentID)
	if err != nil {
		logger.Warn("Ingest: document %d not found: %v", documentID, err)
		return domain.IngestResult{Step: domain.StepNone, Err: fmt.Errorf("get document %d: %w", documentID, err)}
	}

	ws, err := s.workspaces.Get(ctx, doc.WorkspaceID)
	if err != nil {
		logger.Warn("Ingest: workspace %d not found: %v", doc.WorkspaceID, err)
		return domain.IngestResult{Step: domain.StepNone, Err: fmt.Errorf("get workspace %d: %w", doc.WorkspaceID, err)}
	}

	// Backends are required before any heavy work.
	if s.llm == nil {
		return s.fail(ctx, ws, domain.StepNone, domain.ErrLLMUnavailable)
	}
	if s.embedder == nil {
		return s.fail(ctx, ws, domain.StepNone, domain.ErrEmbeddingUnavailable)
	}

	// Visible to concurrent readers immediately.
	ws.ProcessingStatus = domain.StatusProcessing
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return domain.IngestResult{Step: domain.StepNone, Err: fmt.Errorf("mark workspace processing: %w", err)}
	}

	pages, err := s.extractor.Extract(ctx, doc.Content)
	if err != nil {
		return s.fail(ctx, ws, domain.StepNone, fmt.Errorf("extract text: %w", err))
	}
	if len(pages) == 0 {
		return s.fail(ctx, ws, domain.StepNone, domain.ErrNoPages)
	}
	logger.Debug("Extracted %d pages", len(pages))

	if err := s.summarise(ctx, doc, pages); err != nil {
		return s.fail(ctx, ws, domain.StepExtracted, err)
	}

	chunks := s.chunkPages(doc, ws, pages)
	if len(chunks) == 0 {
		return s.fail(ctx, ws, domain.StepSummarised, domain.ErrNoChunks)
	}
	logger.Debug("Split into %d chunks", len(chunks))

	indexPath, err := s.resolveIndexPath(ctx, ws)
	if err != nil {
		return s.fail(ctx, ws, domain.StepChunked, err)
	}

	if err := s.mergeAndSave(ctx, ws.ID, indexPath, chunks); err != nil {
		return s.fail(ctx, ws, domain.StepChunked, err)
	}

	// The index merge already succeeded, so the result reports StepIndexed
	// even when recording that fact on the document row fails.
	doc.IsIndexed = true
	if err := s.docs.Save(ctx, doc); err != nil {
		return s.fail(ctx, ws, domain.StepIndexed, fmt.Errorf("mark document indexed: %w", err))
	}

	ws.ProcessingStatus = domain.StatusReady
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return domain.IngestResult{Step: domain.StepIndexed, Err: fmt.Errorf("mark workspace ready: %w", err)}
	}

	logger.Info("Ingest: document %d indexed, workspace %d READY", doc.ID, ws.ID)
	return domain.IngestResult{Step: domain.StepIndexed}
}

// summarise generates and persists the cached summary and abstract.
// The document is saved but not yet marked indexed.
func (s *IngestService) summarise(ctx context.Context, doc *domain.Document, pages []domain.PageText) error {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	fullText := strings.Join(texts, "\n\n")

	summaryTemplate := loadPrompt(s.prompts, driven.PromptSummariseDocument, defaultSummarisePrompt)
	summary, err := s.llm.Generate(ctx, fmt.Sprintf(summaryTemplate, fullText), driven.GenerateOptions{Temperature: 0.2})
	if err != nil {
		return fmt.Errorf("generate summary: %w", err)
	}
	doc.Summary = strings.TrimSpace(summary)

	abstractTemplate := loadPrompt(s.prompts, driven.PromptExtractAbstract, defaultAbstractPrompt)
	abstract, err := s.llm.Generate(ctx, fmt.Sprintf(abstractTemplate, fullText), driven.GenerateOptions{Temperature: 0.2})
	if err != nil {
		return fmt.Errorf("extract abstract: %w", err)
	}
	doc.Abstract = strings.TrimSpace(abstract)

	if err := s.docs.Save(ctx, doc); err != nil {
		return fmt.Errorf("save summary fields: %w", err)
	}
	return nil
}

// chunkPages prefixes each page with a source banner, attaches provenance
// metadata, and splits into overlapping chunks.
func (s *IngestService) chunkPages(doc *domain.Document, ws *domain.Workspace, pages []domain.PageText) []domain.Chunk {
	banner := fmt.Sprintf("Source Document: %s (filename: %s.pdf)\n\nContent follows:\n", doc.Title, doc.Title)

	var chunks []domain.Chunk
	for _, page := range pages {
		cleaned := strings.Join(strings.Fields(page.Text), " ")
		if cleaned == "" {
			continue
		}

		meta := domain.ChunkMetadata{
			DocumentID:    doc.ID,
			DocumentTitle: doc.Title,
			WorkspaceID:   ws.ID,
			PageNumber:    page.Number,
		}
		chunks = append(chunks, s.splitter.Split(banner+cleaned, meta)...)
	}

	return chunks
}

// resolveIndexPath returns the workspace's index location, allocating and
// persisting a new per-workspace directory on first ingestion.
func (s *IngestService) resolveIndexPath(ctx context.Context, ws *domain.Workspace) (string, error) {
	if ws.IndexPath != nil && *ws.IndexPath != "" {
		return *ws.IndexPath, nil
	}

	path := filepath.Join(s.indexRoot, fmt.Sprintf("workspace_index_%d", ws.ID))
	if err := os.MkdirAll(path, 0o700); err != nil {
		return "", fmt.Errorf("create index directory: %w", err)
	}

	ws.IndexPath = &path
	if err := s.workspaces.Save(ctx, ws); err != nil {
		return "", fmt.Errorf("save index path: %w", err)
	}

	logger.Debug("Allocated index path %s", path)
	return path, nil
}

// mergeAndSave appends the chunks to the existing index (or creates a new
// one), persists it, and invalidates the cached handle. The whole sequence
// holds the workspace's exclusive lock.
func (s *IngestService) mergeAndSave(ctx context.Context, workspaceID uint, indexPath string, chunks []domain.Chunk) error {
	lock := s.workspaceLock(workspaceID)
	lock.Lock()
	defer lock.Unlock()

	var (
		idx driven.Index
		err error
	)

	if s.provider.Exists(indexPath) {
		logger.Debug("Loading existing index from %s", indexPath)
		idx, err = s.provider.Load(ctx, indexPath)
		if err != nil {
			return fmt.Errorf("load index: %w", err)
		}
		if err := idx.AddChunks(ctx, chunks); err != nil {
			return fmt.Errorf("merge chunks: %w", err)
		}
	} else {
		logger.Debug("Creating new index at %s", indexPath)
		idx, err = s.provider.Create(ctx, chunks)
		if err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	if err := idx.Save(ctx, indexPath); err != nil {
		return fmt.Errorf("save index: %w", err)
	}

	// Readers must not keep serving the pre-merge snapshot.
	s.cache.Invalidate(indexPath)
	return nil
}

// fail records a FAILED status and converts the error into a step result.
// The underlying error is logged but never surfaced to end users.
func (s *IngestService) fail(ctx context.Context, ws *domain.Workspace, step domain.IngestStep, err error) domain.IngestResult {
	logger.Warn("Ingest failed (workspace %d, after %s): %v", ws.ID, step, err)

	ws.ProcessingStatus = domain.StatusFailed
	if saveErr := s.workspaces.Save(ctx, ws); saveErr != nil {
		logger.Warn("Ingest: could not record FAILED status: %v", saveErr)
	}

	return domain.IngestResult{Step: step, Err: err}
}

func (s *IngestService) workspaceLock(workspaceID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.wsLocks[workspaceID]
	if !ok {
		lock = &sync.Mutex{}
		s.wsLocks[workspaceID] = lock
	}
	return lock
}
