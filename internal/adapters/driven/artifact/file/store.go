// Package file persists and reads the search index artifact on the
// local filesystem. Writes are atomic: the artifact is staged to a
// temporary file and renamed into place, so a reader never observes a
// partial index.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aqz-saito/blogsearch/internal/core/ports/driven"
	"github.com/aqz-saito/blogsearch/internal/logger"
)

// Ensure Store implements both artifact ports.
var (
	_ driven.ArtifactStore   = (*Store)(nil)
	_ driven.ArtifactFetcher = (*Store)(nil)
)

// Store reads and writes the artifact at a fixed path. The build
// manifest sits next to it with a ".manifest.json" suffix.
type Store struct {
	path string
}

// New creates a store for the artifact at path.
func New(path string) *Store {
	return &Store{path: path}
}

// ManifestPath returns the sidecar manifest location for an artifact
// path.
func ManifestPath(artifactPath string) string {
	ext := filepath.Ext(artifactPath)
	return strings.TrimSuffix(artifactPath, ext) + ".manifest.json"
}

// Write replaces the artifact and manifest wholesale. On any failure
// the previous artifact stays in place untouched.
func (s *Store) Write(_ context.Context, artifact, manifest []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	if err := writeAtomic(s.path, artifact); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := writeAtomic(ManifestPath(s.path), manifest); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	logger.Debug("Wrote artifact to %s (%d bytes)", s.path, len(artifact))
	return nil
}

// Fetch reads the artifact in a single read.
func (s *Store) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return data, nil
}

// writeAtomic stages data in a temp file in the target directory and
// renames it over the destination. Rename within one filesystem is
// atomic on POSIX systems.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
