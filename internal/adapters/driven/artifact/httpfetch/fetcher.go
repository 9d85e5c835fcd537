// Package httpfetch retrieves the search index artifact over HTTP.
// The artifact lives at a fixed well-known path; a non-success
// response surfaces as a load failure, never as an empty index.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/aqz-saito/blogsearch/internal/core/ports/driven"
	"github.com/aqz-saito/blogsearch/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.ArtifactFetcher = (*Fetcher)(nil)

// Fetcher fetches the artifact from a fixed URL. Reload polling (for
// example from the watch loop) goes through a token bucket so a busy
// rebuild cycle cannot hammer the origin.
type Fetcher struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a fetcher for the artifact at url.
func New(url string) *Fetcher {
	return &Fetcher{
		url:     url,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// WithClient overrides the HTTP client. Useful for testing.
func (f *Fetcher) WithClient(client *http.Client) *Fetcher {
	f.client = client
	return f
}

// Fetch performs a single GET of the artifact.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch artifact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch artifact: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact: %w", err)
	}

	logger.Debug("Fetched %s: %d bytes", f.url, len(data))
	return data, nil
}
