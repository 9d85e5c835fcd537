package domain

import "time"

// SearchIndex is an ordered sequence of indexed documents plus builder
// metadata. It is immutable once produced: a rebuild always replaces
// the artifact wholesale, there are no partial updates.
type SearchIndex struct {
	// Documents are in encounter order from the build run.
	Documents []IndexedDocument

	// Metadata describes the build run that produced the index.
	Metadata IndexMetadata
}

// IndexMetadata describes one builder run. It may legitimately vary
// between otherwise identical runs; document fields never do.
type IndexMetadata struct {
	// BuildID uniquely identifies the build run.
	BuildID string

	// GeneratedAt is when the build ran.
	GeneratedAt time.Time

	// DocumentCount is the number of documents in the index.
	DocumentCount int

	// SchemaVersion is the artifact schema version. An artifact without
	// a version marker is treated as version 1.
	SchemaVersion int
}

// EngineState is the query engine lifecycle state.
type EngineState string

const (
	// StateUnloaded means no load has been attempted yet.
	StateUnloaded EngineState = "unloaded"

	// StateLoading means an index fetch/decode is in progress.
	StateLoading EngineState = "loading"

	// StateReady means the engine can answer queries. A zero-document
	// index is Ready; it just returns no results.
	StateReady EngineState = "ready"

	// StateFailed means the last load attempt failed. Terminal until a
	// new load is explicitly requested.
	StateFailed EngineState = "failed"
)

// IsValid returns true if the state is recognised.
func (s EngineState) IsValid() bool {
	switch s {
	case StateUnloaded, StateLoading, StateReady, StateFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s EngineState) String() string {
	return string(s)
}
