package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptClassifyIntent: `You are a router. Analyze the user query and return a JSON object with two keys: "intent" and "doc_name".

Possible "intent" values:
- "summary": User wants a summary.
- "abstract": User wants an abstract.
- "pdf_question": User wants to ask a Q&A question about the content.
- "off_topic": User is asking a general knowledge question.

For "doc_name":
- If the user specifies a document (e.g., "pdf1", "the paper on optimizers", "EJ1172284"), extract that name or title.
- If the user asks about "both", "all", or "all documents", return "all".
- If the user doesn't specify (e.g., "explain in short"), return "all".

Examples:
Query: "give summary of pdf1 in very very short"
{"intent": "summary", "doc_name": "pdf1"}

Query: "give summary of both pdfs"
{"intent": "summary", "doc_name": "all"}

Query: "what is a query optimizer?"
{"intent": "pdf_question", "doc_name": "all"}

Query: "explain pdf in short"
{"intent": "summary", "doc_name": "all"}

Query: "what is the capital of France?"
{"intent": "off_topic", "doc_name": "none"}

User Query: "%s"
JSON Output:`,

	driven.PromptAnswerQuestion: `You are a helpful research assistant. Use the provided context to answer the user's question. If the answer is not in the context, say so instead of guessing.

Context:
%s

Question:
%s`,

	driven.PromptSummariseDocument: `Provide a concise, 3-4 line summary of the following research paper text: %s`,

	driven.PromptExtractAbstract: `Extract the 'abstract' section from this research paper text. Return only the abstract's text. If no abstract is found, just return 'N/A'.: %s`,

	driven.PromptCombineSections: `Please create a single, cohesive %s based on the following individual document sections:

%s`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.scholar-engine/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".scholar-engine", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Scholar Engine Prompts

This directory contains customisable prompts used by the engine's LLM features.

## Files

- ` + "`classify_intent.txt`" + ` - Routes a question to an intent and document hint
- ` + "`answer_question.txt`" + ` - Synthesises an answer from retrieved context
- ` + "`summarise_document.txt`" + ` - Produces the cached per-document summary
- ` + "`extract_abstract.txt`" + ` - Extracts the abstract section of a document
- ` + "`combine_sections.txt`" + ` - Merges per-document sections into one response

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
command.

## Format Placeholders

Prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the question, document text, or context)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
