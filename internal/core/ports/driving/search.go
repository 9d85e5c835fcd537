package driving

import (
	"context"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

// SearchService is the query engine surface consumed by the UI.
type SearchService interface {
	// Load fetches and decodes the index artifact, moving the engine
	// through Loading to Ready, or to Failed on error. It may be called
	// again after a failure or when the artifact is replaced.
	Load(ctx context.Context) error

	// Search returns ranked, deduplicated results. Synchronous and pure
	// given the loaded index. Queries below the minimum length, an
	// unloaded engine or a failed engine all yield an empty slice,
	// never an error.
	Search(query string) []domain.QueryResult

	// Ready reports whether the engine is in the Ready state.
	Ready() bool

	// State returns the current lifecycle state.
	State() domain.EngineState
}
