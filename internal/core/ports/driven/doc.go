// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): persistent stores, the text extractor, the
// embedding and LLM backends, and the vector index.
package driven
