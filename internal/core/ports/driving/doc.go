// Package driving defines the interfaces through which external
// actors (CLI, TUI) drive the core services.
package driving
