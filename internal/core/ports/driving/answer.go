package driving

import "context"

// Answerer answers free-text questions over a workspace's documents.
type Answerer interface {
	// Answer always returns a human-readable string and never an error;
	// every failure path converges on a distinguishable fixed message.
	// LLM calls block, so callers are expected to wrap the call in their
	// own timeout and substitute a timeout message when it fires.
	Answer(ctx context.Context, question string, workspaceID uint) string
}
