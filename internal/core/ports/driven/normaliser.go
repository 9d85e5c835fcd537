package driven

import (
	"context"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

// Normaliser transforms a raw source document into its indexed form.
// Normalisation is a pure transform with no side effects.
type Normaliser interface {
	// Normalise strips markup from the body, derives the canonical URL
	// from the document ID and formats the publication date. It returns
	// domain.ErrMissingRequiredField (wrapped) when ID or Title is
	// absent or empty; the caller skips such a document and continues.
	Normalise(ctx context.Context, src *domain.SourceDocument) (*domain.IndexedDocument, error)
}
