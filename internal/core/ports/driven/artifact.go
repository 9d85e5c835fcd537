package driven

import "context"

// ArtifactFetcher retrieves the serialised index artifact in a single
// read. A non-success response or I/O failure must surface as an
// error, never as an empty artifact.
type ArtifactFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// ArtifactStore persists the artifact and its build manifest. Write
// must be atomic: readers never observe a partial or corrupt artifact.
type ArtifactStore interface {
	Write(ctx context.Context, artifact, manifest []byte) error
}
