package artifact

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

// SchemaVersion is the current artifact schema version. Manifests
// without a version marker decode as version 1.
const SchemaVersion = 1

// manifestWire is the on-disk manifest shape.
type manifestWire struct {
	BuildID       string    `json:"buildId"`
	GeneratedAt   time.Time `json:"generatedAt"`
	DocumentCount int       `json:"documentCount"`
	SchemaVersion int       `json:"schemaVersion,omitempty"`
}

// NewMetadata stamps a fresh build. This is the only place machine-
// local time enters a build; document fields stay deterministic.
func NewMetadata(documentCount int) domain.IndexMetadata {
	return domain.IndexMetadata{
		BuildID:       uuid.New().String(),
		GeneratedAt:   time.Now().UTC(),
		DocumentCount: documentCount,
		SchemaVersion: SchemaVersion,
	}
}

// EncodeManifest serialises build metadata to the sidecar manifest.
func EncodeManifest(meta domain.IndexMetadata) ([]byte, error) {
	data, err := json.MarshalIndent(manifestWire{
		BuildID:       meta.BuildID,
		GeneratedAt:   meta.GeneratedAt,
		DocumentCount: meta.DocumentCount,
		SchemaVersion: meta.SchemaVersion,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return data, nil
}

// DecodeManifest parses a sidecar manifest. An absent schemaVersion
// implies version 1; no migration semantics are attached.
func DecodeManifest(data []byte) (domain.IndexMetadata, error) {
	var w manifestWire
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.IndexMetadata{}, fmt.Errorf("%w: %v", domain.ErrMalformedArtifact, err)
	}

	if w.SchemaVersion == 0 {
		w.SchemaVersion = 1
	}

	return domain.IndexMetadata{
		BuildID:       w.BuildID,
		GeneratedAt:   w.GeneratedAt,
		DocumentCount: w.DocumentCount,
		SchemaVersion: w.SchemaVersion,
	}, nil
}
