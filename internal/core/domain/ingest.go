package domain

// IngestStep identifies how far an ingestion run progressed.
// Ingestion is deliberately best-effort rather than transactional, so the
// step lets callers and tests assert exactly which stage was reached instead
// of inferring it from which document fields happen to be set.
type IngestStep string

const (
	// StepNone means the run failed before any pipeline work (missing
	// document, backends not initialised).
	StepNone IngestStep = "none"

	// StepExtracted means page text was extracted.
	StepExtracted IngestStep = "extracted"

	// StepSummarised means summary and abstract were generated and saved.
	StepSummarised IngestStep = "summarised"

	// StepChunked means page text was split into chunks.
	StepChunked IngestStep = "chunked"

	// StepIndexed means the chunks were merged into the workspace index and
	// the document marked indexed. This is the terminal success step.
	StepIndexed IngestStep = "indexed"
)

// IngestResult reports the outcome of one ingestion run.
type IngestResult struct {
	// Step is the furthest stage that completed successfully.
	Step IngestStep

	// Err is the failure that stopped the run, or nil on success.
	Err error
}

// Failed reports whether the run stopped before indexing completed.
func (r IngestResult) Failed() bool {
	return r.Err != nil
}
