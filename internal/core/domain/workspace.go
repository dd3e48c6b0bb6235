package domain

import "time"

// ProcessingStatus tracks the state of a workspace's shared vector index.
// It is a workspace-level state machine: any document ingestion moves the
// whole workspace through PROCESSING and into READY or FAILED.
type ProcessingStatus string

const (
	// StatusNone means no index exists yet (no documents processed).
	StatusNone ProcessingStatus = "NONE"

	// StatusProcessing means a document is currently being ingested.
	StatusProcessing ProcessingStatus = "PROCESSING"

	// StatusReady means the index is ready to be queried.
	StatusReady ProcessingStatus = "READY"

	// StatusFailed means the most recent ingestion failed.
	StatusFailed ProcessingStatus = "FAILED"
)

// Workspace is a tenant-scoped collection of documents sharing one merged
// vector index on disk.
type Workspace struct {
	// ID is the unique identifier for the workspace.
	ID uint

	// Name is the human-readable workspace name.
	Name string

	// ProcessingStatus is the state of the workspace index.
	ProcessingStatus ProcessingStatus

	// IndexPath points at the on-disk vector index directory.
	// Nil until the first ingestion allocates a location. Once set it is
	// never cleared, even when a later ingestion fails.
	IndexPath *string

	// CreatedAt is when the workspace was created.
	CreatedAt time.Time
}
