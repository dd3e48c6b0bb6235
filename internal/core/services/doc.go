// Package services implements the engine's core behaviour: the ingestion
// pipeline and its background queue, the intent classifier, the fuzzy
// document resolver, and the answer engine's routing state machine.
//
// Services depend only on the driven ports, so every backend (stores,
// extractor, LLM, embeddings, vector index) can be substituted in tests.
package services
