package domain

import "time"

// SummaryPlaceholder is a known bad cached value produced when the LLM was
// asked to summarise before any text reached it. Treated the same as an
// absent summary.
const SummaryPlaceholder = "Please provide the research paper text you would like me to summarize."

// AbstractNotFound is stored by the abstract-extraction step when the
// source document has no abstract section.
const AbstractNotFound = "N/A"

// Document represents one uploaded document owned by a workspace.
type Document struct {
	// ID is the unique identifier for the document.
	ID uint

	// WorkspaceID links to the owning Workspace.
	WorkspaceID uint

	// Title is the human-readable title.
	Title string

	// Content is the raw uploaded bytes (opaque; parsed by the extractor).
	Content []byte

	// Summary is the cached LLM summary, produced once per ingestion.
	// Empty until ingestion has run.
	Summary string

	// Abstract is the cached abstract extract, or AbstractNotFound when the
	// document has none.
	Abstract string

	// IsIndexed is true once the document's chunks have been merged into
	// the workspace index.
	IsIndexed bool

	// UploadedAt is when the document was uploaded.
	UploadedAt time.Time
}

// HasSummary reports whether the cached summary is usable.
func (d *Document) HasSummary() bool {
	return usableField(d.Summary)
}

// HasAbstract reports whether the cached abstract is usable.
func (d *Document) HasAbstract() bool {
	return usableField(d.Abstract)
}

func usableField(v string) bool {
	return v != "" && v != AbstractNotFound && v != SummaryPlaceholder
}
