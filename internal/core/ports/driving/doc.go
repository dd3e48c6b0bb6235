// Package driving provides interfaces for application entry points
// (primary/inbound ports) consumed by the CLI and by external collaborators
// such as upload handlers and chat relays.
package driving
