package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqz-saito/blogsearch/internal/artifact"
	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

// mockBuildService records its inputs and returns a fixed index.
type mockBuildService struct {
	built     []domain.SourceDocument
	published *domain.SearchIndex
	buildErr  error
}

func (m *mockBuildService) Build(_ context.Context, docs []domain.SourceDocument) (*domain.SearchIndex, error) {
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	m.built = docs
	return &domain.SearchIndex{
		Documents: make([]domain.IndexedDocument, len(docs)),
		Metadata:  artifact.NewMetadata(len(docs)),
	}, nil
}

func (m *mockBuildService) Publish(_ context.Context, index *domain.SearchIndex) error {
	m.published = index
	return nil
}

func writeArticle(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestBuildCmd_Use(t *testing.T) {
	assert.Equal(t, "build", buildCmd.Use)
}

func TestBuildCmd_BuildsAndPublishes(t *testing.T) {
	contentDir := t.TempDir()
	writeArticle(t, contentDir, "go-intro.md", `---
title: Intro to Go
pubDate: 2024-03-01
---
Go basics.`)

	mock := &mockBuildService{}
	SetBuildService(mock)
	defer SetBuildService(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"build",
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--content", contentDir,
		"--drafts",
	})
	defer func() {
		rootCmd.SetArgs(nil)
		buildContentDir = ""
		buildDrafts = false
		flagConfig = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.Len(t, mock.built, 1)
	assert.Equal(t, "Intro to Go", mock.built[0].Title)
	require.NotNil(t, mock.published)
	assert.Contains(t, buf.String(), "Indexed 1 documents")
}

func TestBuildCmd_MissingContentDir(t *testing.T) {
	mock := &mockBuildService{}
	SetBuildService(mock)
	defer SetBuildService(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{
		"build",
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--content", filepath.Join(t.TempDir(), "does-not-exist"),
	})
	defer func() {
		rootCmd.SetArgs(nil)
		buildContentDir = ""
		flagConfig = ""
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read content")
}
