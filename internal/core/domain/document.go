package domain

import "time"

// SourceDocument is a raw content record supplied by the content
// collaborator. It is read-only to the search subsystem.
type SourceDocument struct {
	// ID is the unique identifier, typically the content file name
	// (e.g. "intro-to-go.md").
	ID string

	// Title is the human-readable title.
	Title string

	// Description is the short summary from the frontmatter.
	Description string

	// Body is the raw article body, markdown included.
	Body string

	// Category is an optional single label.
	Category string

	// Tags are display labels. Order is preserved for display, it is
	// irrelevant for matching.
	Tags []string

	// PubDate is the publication timestamp.
	PubDate time.Time

	// Draft marks unpublished documents.
	Draft bool
}

// IndexedDocument is the normalised, immutable record stored in the
// search index.
type IndexedDocument struct {
	// ID is stable and unique across the index.
	ID string

	// URL is the canonical resource path, derived from ID by stripping
	// any file extension and prefixing the article route.
	URL string

	// Title is required and non-empty.
	Title string

	// Description is the short summary, searched alongside Content.
	Description string

	// Content is the plain-text body with markup stripped. Used for
	// matching, not necessarily displayed in full.
	Content string

	// Category is an optional single label.
	Category string

	// Tags are display labels.
	Tags []string

	// Date is the publication timestamp as an ISO-8601 string
	// (UTC, millisecond precision, Z suffix).
	Date string
}

// PublicationPolicy decides whether a source document may enter the
// index. It is supplied once by the surrounding application so that
// build-time filtering cannot drift from any other filtering path.
type PublicationPolicy func(SourceDocument) bool

// ProductionPolicy admits only non-draft documents whose publication
// date is not in the future. The clock is injected for testability.
func ProductionPolicy(now func() time.Time) PublicationPolicy {
	return func(doc SourceDocument) bool {
		return !doc.Draft && !doc.PubDate.After(now())
	}
}

// DevelopmentPolicy admits every document, drafts and future posts
// included.
func DevelopmentPolicy() PublicationPolicy {
	return func(SourceDocument) bool { return true }
}
