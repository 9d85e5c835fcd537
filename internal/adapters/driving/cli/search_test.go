package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

// mockSearchService returns canned results without touching disk.
type mockSearchService struct {
	state   domain.EngineState
	results []domain.QueryResult
	loadErr error
}

func (m *mockSearchService) Load(_ context.Context) error {
	if m.loadErr != nil {
		m.state = domain.StateFailed
		return m.loadErr
	}
	m.state = domain.StateReady
	return nil
}

func (m *mockSearchService) Search(_ string) []domain.QueryResult {
	return m.results
}

func (m *mockSearchService) Ready() bool { return m.state == domain.StateReady }

func (m *mockSearchService) State() domain.EngineState { return m.state }

func setupSearchService(results []domain.QueryResult) func() {
	SetSearchService(&mockSearchService{results: results})
	return func() { SetSearchService(nil) }
}

func mockResults() []domain.QueryResult {
	return []domain.QueryResult{
		{
			Document: domain.IndexedDocument{
				ID:    "kubernetes-networking",
				URL:   "/blog/kubernetes-networking",
				Title: "Kubernetes Networking Deep Dive",
			},
			Score:         0.105,
			MatchedFields: []domain.Field{domain.FieldTitle, domain.FieldContent},
		},
	}
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_PrintsRankedTable(t *testing.T) {
	cleanup := setupSearchService(mockResults())
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "kubernets netwrking"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Kubernetes Networking Deep Dive")
	assert.Contains(t, out, "/blog/kubernetes-networking")
	assert.Contains(t, out, "matched: title, content")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupSearchService(mockResults())
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "kubernetes"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Score": 0.105`)
}

func TestSearchCmd_NoMatches(t *testing.T) {
	cleanup := setupSearchService([]domain.QueryResult{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "zzzzzz"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No matching articles.")
}

func TestSearchCmd_LoadFailure(t *testing.T) {
	SetSearchService(&mockSearchService{loadErr: domain.ErrMalformedArtifact})
	defer SetSearchService(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "kubernetes"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load index")
}

func TestSearchCmd_LimitTruncatesResults(t *testing.T) {
	many := make([]domain.QueryResult, 5)
	for i := range many {
		many[i] = mockResults()[0]
	}
	cleanup := setupSearchService(many)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--limit", "2", "kubernetes"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchLimit = 10
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[2]")
	assert.NotContains(t, buf.String(), "[3]")
}
