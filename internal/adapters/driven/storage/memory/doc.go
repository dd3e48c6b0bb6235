// Package memory provides in-memory store implementations used by tests
// and by ephemeral setups that don't need persistence.
package memory
