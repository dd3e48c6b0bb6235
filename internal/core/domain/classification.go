package domain

// Intent is the handling strategy a question is routed to.
type Intent string

const (
	// IntentSummary means the user wants a document summary.
	IntentSummary Intent = "summary"

	// IntentAbstract means the user wants a document abstract.
	IntentAbstract Intent = "abstract"

	// IntentPDFQuestion means the user is asking about document content.
	IntentPDFQuestion Intent = "pdf_question"

	// IntentOffTopic means the user is asking a general knowledge question.
	IntentOffTopic Intent = "off_topic"
)

// Document-name sentinels used in classifier output.
const (
	// DocNameAll means the question targets every document in the workspace.
	DocNameAll = "all"

	// DocNameNone means the question targets no document at all.
	DocNameNone = "none"
)

// Classification is the classifier's routing decision for a question.
type Classification struct {
	// Intent is the handling strategy.
	Intent Intent

	// DocName is a literal document-name hint, DocNameAll, or DocNameNone.
	DocName string
}

// DefaultClassification is the deterministic fallback used whenever
// classification is unavailable or fails: route to Q&A over all documents,
// the most general and least destructive behaviour.
func DefaultClassification() Classification {
	return Classification{Intent: IntentPDFQuestion, DocName: DocNameAll}
}

// SpecificDocName returns the classifier's document hint when it names a
// specific document, or "" for the all/none sentinels.
func (c Classification) SpecificDocName() string {
	if c.DocName == "" || c.DocName == DocNameAll || c.DocName == DocNameNone {
		return ""
	}
	return c.DocName
}
