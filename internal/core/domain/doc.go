// Package domain contains the core business entities for the workspace
// document-indexing and conversational-retrieval engine: workspaces with
// their index state machine, documents with cached summaries, chunks with
// retrieval provenance, and the classifier/ingestion value types.
//
// The domain layer has no dependencies on adapters or external services.
package domain
