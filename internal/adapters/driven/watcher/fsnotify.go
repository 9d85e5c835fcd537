// Package watcher monitors the index artifact on disk and signals
// when a rebuild replaces it, so a long-running session can hot
// reload the query engine.
package watcher

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/aqz-saito/blogsearch/internal/logger"
)

// ArtifactWatcher emits a signal whenever the watched artifact file is
// replaced or rewritten.
type ArtifactWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// New creates a watcher for the artifact at path. The parent
// directory is watched because atomic rebuilds rename a temp file
// over the artifact rather than writing it in place.
func New(path string) (*ArtifactWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}

	return &ArtifactWatcher{watcher: w, path: abs}, nil
}

// Watch starts monitoring and returns a channel that receives one
// signal per observed replacement. The channel closes when ctx ends
// or the watcher stops.
func (w *ArtifactWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return nil, err
	}

	changes := make(chan struct{}, 1)

	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.isArtifactReplacement(event) {
					continue
				}
				logger.Debug("Artifact changed: %s", event.Op)

				// Coalesce bursts: one pending signal is enough.
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Artifact watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

func (w *ArtifactWatcher) isArtifactReplacement(event fsnotify.Event) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename)
}

// Stop stops the watcher.
func (w *ArtifactWatcher) Stop() error {
	return w.watcher.Close()
}
