package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/genscholar/scholar-engine/internal/core/domain"
	"github.com/genscholar/scholar-engine/internal/core/ports/driven"
	"github.com/genscholar/scholar-engine/internal/logger"
)

// defaultClassifyPrompt is the fallback router prompt when no PromptStore
// entry is available.
const defaultClassifyPrompt = `You are a router. Analyze the user query and return a JSON object with two keys: "intent" and "doc_name".

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
JSON Output:`

// Classifier routes a free-text question to an intent and an optional
// document-name hint via an LLM with a fixed instruction template.
// All failure modes fall back deterministically; Classify never errors.
type Classifier struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewClassifier creates a classifier. The llm and prompts parameters are
// optional (can be nil); without an LLM every question classifies to the
// default.
func NewClassifier(llm driven.LLMService, prompts driven.PromptStore) *Classifier {
	return &Classifier{llm: llm, prompts: prompts}
}

// Classify maps a question to {intent, doc_name}. When classification is
// unavailable, the LLM fails, or its output is not parseable, the result is
// the fail-open default {pdf_question, all}.
func (c *Classifier) Classify(ctx context.Context, question string) domain.Classification {
	if c.llm == nil {
		logger.Debug("Classifier: LLM unavailable, using default classification")
		return domain.DefaultClassification()
	}

	template := loadPrompt(c.prompts, driven.PromptClassifyIntent, defaultClassifyPrompt)
	prompt := fmt.Sprintf(template, question)

	raw, err := c.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   200,
		Temperature: 0.2,
	})
	if err != nil {
		logger.Warn("Classifier: LLM error: %v (using default classification)", err)
		return domain.DefaultClassification()
	}

	cls, err := parseClassification(raw)
	if err != nil {
		logger.Warn("Classifier: unparseable output %q: %v (using default classification)", raw, err)
		return domain.DefaultClassification()
	}

	logger.Debug("Classifier: intent=%s doc_name=%s", cls.Intent, cls.DocName)
	return cls
}

// parseClassification extracts the JSON object from the model output,
// tolerating markdown code fences and surrounding prose.
func parseClassification(raw string) (domain.Classification, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return domain.Classification{}, fmt.Errorf("no JSON object in output")
	}

	var parsed struct {
		Intent  string `json:"intent"`
		DocName string `json:"doc_name"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return domain.Classification{}, fmt.Errorf("decode classification: %w", err)
	}

	intent := domain.Intent(strings.ToLower(strings.TrimSpace(parsed.Intent)))
	switch intent {
	case domain.IntentSummary, domain.IntentAbstract, domain.IntentPDFQuestion, domain.IntentOffTopic:
	default:
		return domain.Classification{}, fmt.Errorf("unknown intent %q", parsed.Intent)
	}

	return domain.Classification{
		Intent:  intent,
		DocName: strings.TrimSpace(parsed.DocName),
	}, nil
}

// loadPrompt loads a prompt from the store, falling back to the default if
// unavailable.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
