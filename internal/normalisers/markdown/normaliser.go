// Package markdown normalises raw blog articles into indexed
// documents: markup stripped, canonical URL derived, publication date
// formatted as ISO-8601.
package markdown

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driven"
)

// DefaultRoutePrefix is the article route the canonical URL is rooted
// at.
const DefaultRoutePrefix = "/blog/"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles markdown article bodies.
type Normaliser struct {
	routePrefix string
}

// New creates a markdown normaliser rooted at the default article
// route.
func New() *Normaliser {
	return NewWithRoute(DefaultRoutePrefix)
}

// NewWithRoute creates a normaliser with a custom route prefix.
func NewWithRoute(routePrefix string) *Normaliser {
	if routePrefix == "" {
		routePrefix = DefaultRoutePrefix
	}
	if !strings.HasSuffix(routePrefix, "/") {
		routePrefix += "/"
	}
	return &Normaliser{routePrefix: routePrefix}
}

// Normalise converts a source document to its indexed form. It is a
// pure transform: the same input always yields the same output, and
// no machine-local state leaks into document fields.
func (n *Normaliser) Normalise(_ context.Context, src *domain.SourceDocument) (*domain.IndexedDocument, error) {
	if src == nil {
		return nil, domain.ErrInvalidInput
	}

	id := strings.TrimSpace(src.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: id", domain.ErrMissingRequiredField)
	}
	title := strings.TrimSpace(src.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title (document %q)", domain.ErrMissingRequiredField, id)
	}

	doc := domain.IndexedDocument{
		ID:          stripExtension(id),
		URL:         n.routePrefix + stripExtension(id),
		Title:       title,
		Description: strings.TrimSpace(src.Description),
		Content:     stripMarkdown(src.Body),
		Category:    src.Category,
		Tags:        copyTags(src.Tags),
		Date:        src.PubDate.UTC().Format("2006-01-02T15:04:05.000Z"),
	}

	return &doc, nil
}

// extension matches a trailing file-extension suffix without crossing
// a path separator.
var extension = regexp.MustCompile(`\.[^/.]+$`)

// stripExtension removes a trailing file extension from a document ID.
func stripExtension(id string) string {
	return extension.ReplaceAllString(id, "")
}

// Markdown stripping patterns, compiled once.
var (
	codeBlocks   = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode   = regexp.MustCompile("`[^`]+`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	headings     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquotes  = regexp.MustCompile(`(?m)^>\s*`)
	rules        = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedList = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markdown formatting to produce plain
// text content. Handles the constructs that actually occur in the
// article corpus; it is not a full CommonMark renderer.
func stripMarkdown(content string) string {
	content = codeBlocks.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = blockquotes.ReplaceAllString(content, "")
	content = rules.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")
	content = strings.ReplaceAll(content, "_", " ")

	content = multiNewline.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// copyTags copies the tag slice so the indexed document never aliases
// collaborator-owned memory.
func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
