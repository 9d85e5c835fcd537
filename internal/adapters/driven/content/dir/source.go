// Package dir reads blog articles from a content directory of
// markdown files with YAML frontmatter. It owns the publication
// filter: the injected policy runs here, once, so the builder never
// re-implements draft or future-date handling.
package dir

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driven"
	"github.com/aqz-saito/blogsearch/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Source is a content-directory document source.
type Source struct {
	dir    string
	policy domain.PublicationPolicy
}

// New creates a content source rooted at dir. A nil policy admits
// every document.
func New(dir string, policy domain.PublicationPolicy) *Source {
	if policy == nil {
		policy = domain.DevelopmentPolicy()
	}
	return &Source{dir: dir, policy: policy}
}

// frontmatter is the YAML header of an article file.
type frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	PubDate     string   `yaml:"pubDate"`
	Draft       bool     `yaml:"draft"`
}

// Documents walks the content directory and returns the publishable
// documents sorted by file name, which keeps the build encounter
// order stable across runs and machines.
func (s *Source) Documents(ctx context.Context) ([]domain.SourceDocument, error) {
	var paths []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".md" || ext == ".mdx" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content dir: %w", err)
	}
	sort.Strings(paths)

	docs := make([]domain.SourceDocument, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := s.readArticle(path)
		if err != nil {
			logger.Warn("Skipping article %s: %v", path, err)
			continue
		}

		if !s.policy(*doc) {
			logger.Debug("Filtered out %s (draft or future-dated)", path)
			continue
		}

		docs = append(docs, *doc)
	}

	logger.Info("Content source: %d publishable documents", len(docs))
	return docs, nil
}

// readArticle parses one markdown file into a source document. The
// document ID is the file name relative to the content root, so
// nested articles keep unique IDs.
func (s *Source) readArticle(path string) (*domain.SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fm, body, err := splitFrontmatter(string(data))
	if err != nil {
		return nil, err
	}

	var meta frontmatter
	if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	pubDate, err := parseDate(meta.PubDate)
	if err != nil {
		return nil, fmt.Errorf("parse pubDate: %w", err)
	}

	id, err := filepath.Rel(s.dir, path)
	if err != nil {
		id = filepath.Base(path)
	}
	id = filepath.ToSlash(id)

	return &domain.SourceDocument{
		ID:          id,
		Title:       meta.Title,
		Description: meta.Description,
		Body:        body,
		Category:    meta.Category,
		Tags:        meta.Tags,
		PubDate:     pubDate,
		Draft:       meta.Draft,
	}, nil
}

const frontmatterDelim = "---"

// splitFrontmatter separates the YAML header from the article body.
// Files without a frontmatter block are rejected: every article needs
// at least a title to be indexable.
func splitFrontmatter(content string) (meta, body string, err error) {
	trimmed := strings.TrimLeft(content, "\ufeff\n\r ")
	if !strings.HasPrefix(trimmed, frontmatterDelim) {
		return "", "", fmt.Errorf("no frontmatter block")
	}

	rest := trimmed[len(frontmatterDelim):]
	idx := strings.Index(rest, "\n"+frontmatterDelim)
	if idx < 0 {
		return "", "", fmt.Errorf("unterminated frontmatter block")
	}

	meta = rest[:idx]
	body = rest[idx+len(frontmatterDelim)+1:]
	body = strings.TrimPrefix(body, "\r\n")
	body = strings.TrimPrefix(body, "\n")
	return meta, body, nil
}

// dateLayouts are the pubDate formats seen in the article corpus.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2 2006",
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}
