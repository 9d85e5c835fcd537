package dir

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

func writeArticle(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const publishedArticle = `---
title: Intro to Go
description: A first look
category: programming
tags:
  - go
pubDate: "2024-01-01"
draft: false
---
# Intro

Welcome to Go.
`

const draftArticle = `---
title: Draft Post
pubDate: "2099-01-01"
draft: true
---
Unfinished.
`

func TestDocuments_ParsesFrontmatterAndBody(t *testing.T) {
	tmp := t.TempDir()
	writeArticle(t, tmp, "a.md", publishedArticle)

	src := New(tmp, domain.DevelopmentPolicy())
	docs, err := src.Documents(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Equal(t, "a.md", doc.ID)
	assert.Equal(t, "Intro to Go", doc.Title)
	assert.Equal(t, "A first look", doc.Description)
	assert.Equal(t, "programming", doc.Category)
	assert.Equal(t, []string{"go"}, doc.Tags)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), doc.PubDate)
	assert.False(t, doc.Draft)
	assert.Contains(t, doc.Body, "# Intro")
	assert.NotContains(t, doc.Body, "pubDate")
}

func TestDocuments_ProductionFilteringScenario(t *testing.T) {
	tmp := t.TempDir()
	writeArticle(t, tmp, "a.md", publishedArticle)
	writeArticle(t, tmp, "b.md", draftArticle)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	src := New(tmp, domain.ProductionPolicy(func() time.Time { return now }))

	docs, err := src.Documents(context.Background())

	require.NoError(t, err)
	// Drafts and future-dated posts never reach the builder.
	require.Len(t, docs, 1)
	assert.Equal(t, "a.md", docs[0].ID)
}

func TestDocuments_DevelopmentPolicyKeepsDrafts(t *testing.T) {
	tmp := t.TempDir()
	writeArticle(t, tmp, "a.md", publishedArticle)
	writeArticle(t, tmp, "b.md", draftArticle)

	src := New(tmp, domain.DevelopmentPolicy())
	docs, err := src.Documents(context.Background())

	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestDocuments_StableOrderByFileName(t *testing.T) {
	tmp := t.TempDir()
	writeArticle(t, tmp, "c.md", publishedArticle)
	writeArticle(t, tmp, "a.md", publishedArticle)
	writeArticle(t, tmp, "b.md", publishedArticle)

	src := New(tmp, domain.DevelopmentPolicy())
	docs, err := src.Documents(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a.md", docs[0].ID)
	assert.Equal(t, "b.md", docs[1].ID)
	assert.Equal(t, "c.md", docs[2].ID)
}

func TestDocuments_NestedFilesKeepRelativeIDs(t *testing.T) {
	tmp := t.TempDir()
	writeArticle(t, tmp, filepath.Join("2024", "a.md"), publishedArticle)

	src := New(tmp, domain.DevelopmentPolicy())
	docs, err := src.Documents(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "2024/a.md", docs[0].ID)
}

func TestDocuments_SkipsFilesWithoutFrontmatter(t *testing.T) {
	tmp := t.TempDir()
	writeArticle(t, tmp, "a.md", publishedArticle)
	writeArticle(t, tmp, "broken.md", "just a body, no header")

	src := New(tmp, domain.DevelopmentPolicy())
	docs, err := src.Documents(context.Background())

	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocuments_IgnoresNonMarkdown(t *testing.T) {
	tmp := t.TempDir()
	writeArticle(t, tmp, "a.md", publishedArticle)
	writeArticle(t, tmp, "image.png", "binary-ish")

	src := New(tmp, domain.DevelopmentPolicy())
	docs, err := src.Documents(context.Background())

	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestSplitFrontmatter_Unterminated(t *testing.T) {
	_, _, err := splitFrontmatter("---\ntitle: X\nno closing fence")

	assert.Error(t, err)
}

func TestParseDate_Layouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-15T09:30:00Z", time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)},
		{"Jan 2 2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), tt.in)
	}

	_, err := parseDate("not a date")
	assert.Error(t, err)
}
