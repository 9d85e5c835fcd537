package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aqz-saito/blogsearch/internal/artifact"
	"github.com/aqz-saito/blogsearch/internal/core/domain"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driven"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driving"
	"github.com/aqz-saito/blogsearch/internal/logger"
)

// Ensure BuildService implements the interface.
var _ driving.BuildService = (*BuildService)(nil)

// BuildService runs the offline index build: normalise every already-
// filtered source document, accumulate in encounter order, publish
// the artifact atomically. Publication filtering (drafts, future
// dates) happens upstream in the content source; the builder only
// consumes filtered input so that policy can never diverge between
// call sites.
type BuildService struct {
	normaliser driven.Normaliser
	store      driven.ArtifactStore
}

// NewBuildService creates a build service. The store may be nil when
// only Build (no Publish) is needed.
func NewBuildService(normaliser driven.Normaliser, store driven.ArtifactStore) *BuildService {
	return &BuildService{
		normaliser: normaliser,
		store:      store,
	}
}

// Build normalises documents in encounter order. Failures are logged
// and skipped, never fatal to the batch. Identical input yields an
// identical document sequence; only the build metadata varies per
// run.
func (s *BuildService) Build(ctx context.Context, docs []domain.SourceDocument) (*domain.SearchIndex, error) {
	logger.Section("Index Build")

	if s.normaliser == nil {
		return nil, errors.New("normaliser not configured")
	}

	out := make([]domain.IndexedDocument, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	skipped := 0

	for i := range docs {
		normalised, err := s.normaliser.Normalise(ctx, &docs[i])
		if err != nil {
			skipped++
			logger.Warn("Skipping document %q: %v", docs[i].ID, err)
			continue
		}

		if _, dup := seen[normalised.ID]; dup {
			skipped++
			logger.Warn("Skipping document %q: %v", docs[i].ID, domain.ErrDuplicateID)
			continue
		}
		seen[normalised.ID] = struct{}{}

		out = append(out, *normalised)
	}

	logger.Info("Indexed %d documents (%d skipped)", len(out), skipped)

	return &domain.SearchIndex{
		Documents: out,
		Metadata:  artifact.NewMetadata(len(out)),
	}, nil
}

// Publish serialises the index and writes artifact plus manifest.
// A write failure is fatal and returns without leaving a partial
// artifact in place; atomic replacement is the store's contract.
func (s *BuildService) Publish(ctx context.Context, index *domain.SearchIndex) error {
	if index == nil {
		return domain.ErrInvalidInput
	}
	if s.store == nil {
		return errors.New("artifact store not configured")
	}

	data, err := artifact.Encode(index.Documents)
	if err != nil {
		return fmt.Errorf("publish index: %w", err)
	}

	manifest, err := artifact.EncodeManifest(index.Metadata)
	if err != nil {
		return fmt.Errorf("publish index: %w", err)
	}

	if err := s.store.Write(ctx, data, manifest); err != nil {
		return fmt.Errorf("publish index: %w", err)
	}

	logger.Info("Published artifact: %d documents, build %s",
		index.Metadata.DocumentCount, index.Metadata.BuildID)
	return nil
}
