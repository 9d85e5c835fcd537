// Package artifact implements the wire format of the search index:
// a UTF-8 JSON array of document objects, plus a sidecar build
// manifest. The array has no envelope, so builder metadata lives in
// the manifest and never in the artifact itself.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

// entry is one document on the wire. Required keys: title, url,
// content, date. Optional: category, tags, description. Unknown keys
// are ignored on decode so the schema can grow without breaking older
// loaders.
type entry struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Content     string   `json:"content"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Date        string   `json:"date"`
	Description string   `json:"description,omitempty"`
}

// Encode serialises documents in order to the artifact format.
// Output is deterministic: identical documents yield identical bytes.
func Encode(docs []domain.IndexedDocument) ([]byte, error) {
	entries := make([]entry, len(docs))
	for i, doc := range docs {
		entries[i] = entry{
			Title:       doc.Title,
			URL:         doc.URL,
			Content:     doc.Content,
			Category:    doc.Category,
			Tags:        doc.Tags,
			Date:        doc.Date,
			Description: doc.Description,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return data, nil
}

// Decode parses an artifact into indexed documents. Structural
// violations return domain.ErrMalformedArtifact (wrapped); a valid
// artifact with zero documents returns domain.ErrEmptyArtifact
// alongside the empty slice, which callers may treat as non-fatal.
func Decode(data []byte) ([]domain.IndexedDocument, error) {
	var entries []entry

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedArtifact, err)
	}

	docs := make([]domain.IndexedDocument, 0, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Title) == "" {
			return nil, fmt.Errorf("%w: entry %d has no title", domain.ErrMalformedArtifact, i)
		}
		if strings.TrimSpace(e.URL) == "" {
			return nil, fmt.Errorf("%w: entry %d has no url", domain.ErrMalformedArtifact, i)
		}
		if strings.TrimSpace(e.Date) == "" {
			return nil, fmt.Errorf("%w: entry %d has no date", domain.ErrMalformedArtifact, i)
		}

		docs = append(docs, domain.IndexedDocument{
			ID:          slugFromURL(e.URL),
			URL:         e.URL,
			Title:       e.Title,
			Description: e.Description,
			Content:     e.Content,
			Category:    e.Category,
			Tags:        e.Tags,
			Date:        e.Date,
		})
	}

	if len(docs) == 0 {
		return docs, domain.ErrEmptyArtifact
	}
	return docs, nil
}

// slugFromURL recovers the document slug from its canonical URL.
// The artifact format does not carry IDs; the URL is derived
// deterministically from the ID, so the slug is stable.
func slugFromURL(url string) string {
	return path.Base(strings.TrimSuffix(url, "/"))
}
