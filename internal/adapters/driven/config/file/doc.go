// Package file provides file-based configuration and prompt storage.
// Configuration lives in a TOML file; prompts are plain-text files the
// user can edit to tune the engine's LLM behaviour.
package file
