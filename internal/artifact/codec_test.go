package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

func sampleDocs() []domain.IndexedDocument {
	return []domain.IndexedDocument{
		{
			ID:          "intro-to-go",
			URL:         "/blog/intro-to-go",
			Title:       "Intro to Go",
			Description: "A first look at Go",
			Content:     "Go is a statically typed language.",
			Category:    "programming",
			Tags:        []string{"go", "tutorial"},
			Date:        "2024-01-01T00:00:00.000Z",
		},
		{
			ID:      "kubernetes-networking",
			URL:     "/blog/kubernetes-networking",
			Title:   "Kubernetes Networking Deep Dive",
			Content: "Services, endpoints and CNI plugins.",
			Date:    "2024-02-15T09:30:00.000Z",
		},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	docs := sampleDocs()

	data, err := Encode(docs)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, docs, decoded)

	// Round-trip law: re-encoding the decoded documents yields
	// byte-identical output.
	again, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestEncode_Deterministic(t *testing.T) {
	docs := sampleDocs()

	a, err := Encode(docs)
	require.NoError(t, err)
	b, err := Encode(docs)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDecode_IgnoresUnknownKeys(t *testing.T) {
	data := []byte(`[
  {
    "title": "Future Schema",
    "url": "/blog/future-schema",
    "content": "body",
    "date": "2024-01-01T00:00:00.000Z",
    "readingTime": 4,
    "heroImage": "/img/x.png"
  }
]`)

	docs, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Future Schema", docs[0].Title)
	assert.Equal(t, "future-schema", docs[0].ID)
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`[{"title": "broken"`))

	assert.ErrorIs(t, err, domain.ErrMalformedArtifact)
}

func TestDecode_WrongType(t *testing.T) {
	data := []byte(`[{"title": "x", "url": "/blog/x", "content": "c", "date": "d", "tags": "not-an-array"}]`)

	_, err := Decode(data)

	assert.ErrorIs(t, err, domain.ErrMalformedArtifact)
}

func TestDecode_MissingRequiredKey(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no title", `[{"url": "/blog/x", "content": "c", "date": "2024-01-01T00:00:00.000Z"}]`},
		{"no url", `[{"title": "x", "content": "c", "date": "2024-01-01T00:00:00.000Z"}]`},
		{"no date", `[{"title": "x", "url": "/blog/x", "content": "c"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrMalformedArtifact)
		})
	}
}

func TestDecode_EmptyArray(t *testing.T) {
	docs, err := Decode([]byte(`[]`))

	assert.ErrorIs(t, err, domain.ErrEmptyArtifact)
	assert.Empty(t, docs)
}

func TestDecodeManifest_DefaultsVersionOne(t *testing.T) {
	meta, err := DecodeManifest([]byte(`{"buildId": "b-1", "documentCount": 3}`))

	require.NoError(t, err)
	assert.Equal(t, 1, meta.SchemaVersion)
	assert.Equal(t, "b-1", meta.BuildID)
	assert.Equal(t, 3, meta.DocumentCount)
}

func TestManifest_RoundTrip(t *testing.T) {
	meta := NewMetadata(7)

	data, err := EncodeManifest(meta)
	require.NoError(t, err)

	decoded, err := DecodeManifest(data)
	require.NoError(t, err)
	assert.Equal(t, meta.BuildID, decoded.BuildID)
	assert.Equal(t, 7, decoded.DocumentCount)
	assert.Equal(t, SchemaVersion, decoded.SchemaVersion)
	assert.True(t, meta.GeneratedAt.Equal(decoded.GeneratedAt))
}

func TestNewMetadata_UniqueBuildIDs(t *testing.T) {
	a := NewMetadata(1)
	b := NewMetadata(1)

	assert.NotEqual(t, a.BuildID, b.BuildID)
}
