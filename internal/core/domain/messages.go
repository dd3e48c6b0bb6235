package domain

import "fmt"

// User-facing answer strings. The answer engine never surfaces a raw error;
// every distinguishable failure converges on one of these so the caller can
// react differently (retry prompt, wait indicator, rephrase hint).
const (
	// MsgWorkspaceNotFound is returned for an unknown workspace id.
	MsgWorkspaceNotFound = "Error: This workspace does not exist."

	// MsgNotProcessed is returned while the workspace has no index yet.
	MsgNotProcessed = "No documents have been processed in this workspace yet. Upload a PDF to get started."

	// MsgProcessing is returned while an ingestion is in flight.
	MsgProcessing = "The chatbot is currently processing new documents. Please try again in a moment."

	// MsgProcessingFailed is returned after a failed ingestion.
	MsgProcessingFailed = "Processing failed for one or more documents. Please re-upload the document or try again later."

	// MsgOffTopic is the fixed refusal for general-knowledge questions.
	MsgOffTopic = "I cannot find that information in the provided documents."

	// MsgPDFNotAvailable is returned when a specific document was requested
	// but could not be resolved. Distinct from the empty-workspace case.
	MsgPDFNotAvailable = "PDF not available"

	// MsgNoWorkspaceDocuments is returned when the workspace has no documents.
	MsgNoWorkspaceDocuments = "There are no documents in this workspace."

	// MsgClarifyDocument asks which document a summary request refers to.
	MsgClarifyDocument = "Please clarify which document you want summarized."

	// MsgDocumentLookupFailed is returned when resolving a specific document
	// fails unexpectedly.
	MsgDocumentLookupFailed = "I had trouble finding that specific document."

	// MsgIndexPathMissing flags the READY-but-no-index data-integrity error.
	MsgIndexPathMissing = "Error: This workspace is ready but its index path is missing."

	// MsgNoRelevantContent is returned when retrieval finds nothing.
	MsgNoRelevantContent = "I could not find any relevant information about that in the workspace documents."

	// MsgLLMNotInitialized is returned when synthesis is needed but no LLM
	// backend is configured.
	MsgLLMNotInitialized = "Error: The chatbot LLM is not initialized."

	// MsgInternalError is the catch-all for unexpected retrieval failures.
	MsgInternalError = "An internal error occurred."

	// MsgUnknownState is returned for an unrecognised processing status.
	MsgUnknownState = "Error: Workspace is in an unknown state."

	// MsgAnswerTimeout is substituted by callers that abandon a slow answer.
	MsgAnswerTimeout = "The assistant took too long to respond. Please try asking again."
)

// MsgFieldNotReady says a summary or abstract has not been generated yet for
// a named document. Not an error condition; prompts a retry.
func MsgFieldNotReady(intent Intent, title string) string {
	return fmt.Sprintf("A %s is not yet available for '%s'. Please try again shortly.", intent, title)
}

// MsgNoFieldsGenerated says no document in the workspace has the requested
// field yet.
func MsgNoFieldsGenerated(intent Intent) string {
	return fmt.Sprintf("No %ss have been generated for the documents in this workspace.", intent)
}

// MsgNoRelevantContentIn scopes the no-hits message to a resolved document.
func MsgNoRelevantContentIn(title string) string {
	return fmt.Sprintf("I could not find relevant information within '%s'. Please try another question.", title)
}

// MsgAnswerError converts a synthesis failure into a user-facing string.
func MsgAnswerError(err error) string {
	return fmt.Sprintf("Error generating answer: %v", err)
}
