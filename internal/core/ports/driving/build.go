package driving

import (
	"context"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

// BuildService turns already-filtered source documents into a search
// index and publishes the artifact.
type BuildService interface {
	// Build normalises each document in encounter order. Documents
	// missing required fields are logged and skipped; the batch never
	// aborts. Rerunning with the same input produces identical document
	// ordering and field values.
	Build(ctx context.Context, docs []domain.SourceDocument) (*domain.SearchIndex, error)

	// Publish serialises the index and writes artifact plus manifest
	// atomically. A write failure is fatal to the build run and leaves
	// no partial artifact in place.
	Publish(ctx context.Context, index *domain.SearchIndex) error
}
