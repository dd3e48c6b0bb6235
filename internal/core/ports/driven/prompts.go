package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the engine.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptClassifyIntent routes a question to an intent and document hint.
	// The template expects a %s placeholder for the question.
	PromptClassifyIntent = "classify_intent"

	// PromptAnswerQuestion synthesises an answer from retrieved context.
	// The template expects %s (context) and %s (question) placeholders.
	PromptAnswerQuestion = "answer_question"

	// PromptSummariseDocument produces the cached per-document summary.
	// The template expects a %s placeholder for the full document text.
	PromptSummariseDocument = "summarise_document"

	// PromptExtractAbstract extracts the abstract section of a document.
	// The template expects a %s placeholder for the full document text.
	PromptExtractAbstract = "extract_abstract"

	// PromptCombineSections merges per-document summary sections into one.
	// The template expects %s (summary or abstract) and %s (sections).
	PromptCombineSections = "combine_sections"
)
