// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm
// architecture.
package messages

import (
	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

// DebounceElapsed fires when the input quiescence window for a query
// generation expires. Only the latest generation triggers a search;
// superseded generations are discarded.
type DebounceElapsed struct {
	Generation int
}

// SearchCompleted carries fresh results; the visible result set is
// replaced wholesale.
type SearchCompleted struct {
	Query   string
	Results []domain.QueryResult
}

// IndexLoaded signals that an engine load attempt finished.
type IndexLoaded struct {
	State domain.EngineState
	Err   error
}

// ArtifactChanged signals that the artifact file was replaced on disk
// and the engine should reload.
type ArtifactChanged struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
