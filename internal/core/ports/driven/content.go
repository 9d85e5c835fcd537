package driven

import (
	"context"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

// ContentSource supplies source documents to the index builder.
// Implementations own the publication filter: only documents admitted
// by the injected domain.PublicationPolicy are returned, so the
// builder never re-implements draft or future-date filtering.
type ContentSource interface {
	// Documents returns the publishable documents in a stable
	// encounter order.
	Documents(ctx context.Context) ([]domain.SourceDocument, error)
}
