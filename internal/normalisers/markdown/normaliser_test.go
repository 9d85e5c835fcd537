package markdown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

func TestNormalise_DerivesURLFromID(t *testing.T) {
	n := New()

	doc, err := n.Normalise(context.Background(), &domain.SourceDocument{
		ID:      "a.md",
		Title:   "Intro to Go",
		PubDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "/blog/a", doc.URL)
	assert.Equal(t, "a", doc.ID)
}

func TestNormalise_StripsOnlyTrailingExtension(t *testing.T) {
	n := New()

	tests := []struct {
		id   string
		want string
	}{
		{"intro-to-go.md", "/blog/intro-to-go"},
		{"intro-to-go.mdx", "/blog/intro-to-go"},
		{"no-extension", "/blog/no-extension"},
		{"v1.2-release.md", "/blog/v1.2-release"},
	}

	for _, tt := range tests {
		doc, err := n.Normalise(context.Background(), &domain.SourceDocument{
			ID:    tt.id,
			Title: "T",
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, doc.URL, tt.id)
	}
}

func TestNormalise_FormatsDateAsISO8601(t *testing.T) {
	n := New()
	jst := time.FixedZone("JST", 9*3600)

	doc, err := n.Normalise(context.Background(), &domain.SourceDocument{
		ID:      "dates.md",
		Title:   "Dates",
		PubDate: time.Date(2024, 3, 15, 9, 0, 0, 0, jst),
	})

	require.NoError(t, err)
	// UTC, millisecond precision, Z suffix.
	assert.Equal(t, "2024-03-15T00:00:00.000Z", doc.Date)
}

func TestNormalise_MissingID(t *testing.T) {
	n := New()

	_, err := n.Normalise(context.Background(), &domain.SourceDocument{
		ID:    "   ",
		Title: "Has Title",
	})

	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
}

func TestNormalise_MissingTitle(t *testing.T) {
	n := New()

	_, err := n.Normalise(context.Background(), &domain.SourceDocument{
		ID:    "a.md",
		Title: "",
	})

	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
}

func TestNormalise_NilDocument(t *testing.T) {
	n := New()

	_, err := n.Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_CopiesTags(t *testing.T) {
	n := New()
	tags := []string{"go", "networking"}

	doc, err := n.Normalise(context.Background(), &domain.SourceDocument{
		ID:    "a.md",
		Title: "T",
		Tags:  tags,
	})

	require.NoError(t, err)
	tags[0] = "mutated"
	assert.Equal(t, []string{"go", "networking"}, doc.Tags)
}

func TestNormalise_CustomRoutePrefix(t *testing.T) {
	n := NewWithRoute("/articles")

	doc, err := n.Normalise(context.Background(), &domain.SourceDocument{
		ID:    "a.md",
		Title: "T",
	})

	require.NoError(t, err)
	assert.Equal(t, "/articles/a", doc.URL)
}

func TestNormalise_Deterministic(t *testing.T) {
	n := New()
	src := &domain.SourceDocument{
		ID:      "a.md",
		Title:   "Stable",
		Body:    "# Heading\n\nSome **bold** text.",
		PubDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	first, err := n.Normalise(context.Background(), src)
	require.NoError(t, err)
	second, err := n.Normalise(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "headings",
			input: "# Title\n\nBody text.",
			want:  "Title\n\nBody text.",
		},
		{
			name:  "bold and italic",
			input: "Some **bold** and *italic* text.",
			want:  "Some bold and italic text.",
		},
		{
			name:  "links keep text",
			input: "See [the docs](https://example.com) for more.",
			want:  "See the docs for more.",
		},
		{
			name:  "images removed",
			input: "Before ![diagram](/img/d.png) after.",
			want:  "Before  after.",
		},
		{
			name:  "code blocks removed",
			input: "Intro.\n```go\nfunc main() {}\n```\nOutro.",
			want:  "Intro.\n\nOutro.",
		},
		{
			name:  "inline code removed",
			input: "Run `go build` first.",
			want:  "Run  first.",
		},
		{
			name:  "list markers removed",
			input: "- first\n- second\n1. third",
			want:  "first\nsecond\nthird",
		},
		{
			name:  "blockquotes unwrapped",
			input: "> quoted line",
			want:  "quoted line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMarkdown(tt.input))
		})
	}
}
