package domain

// Field identifies a searchable document field.
type Field string

// Searchable fields, in descending relevance order.
const (
	FieldTitle   Field = "title"
	FieldTags    Field = "tags"
	FieldContent Field = "content"
)

// SearchFields lists the fields the engine matches against, in
// relevance order.
func SearchFields() []Field {
	return []Field{FieldTitle, FieldTags, FieldContent}
}

// FieldWeights holds per-field relevance multipliers. A match in a
// heavier field outranks an equally fuzzy match in a lighter one.
type FieldWeights struct {
	Title   float64
	Tags    float64
	Content float64
}

// Weight returns the weight for a field, 0 for unknown fields.
func (w FieldWeights) Weight(f Field) float64 {
	switch f {
	case FieldTitle:
		return w.Title
	case FieldTags:
		return w.Tags
	case FieldContent:
		return w.Content
	default:
		return 0
	}
}

// MatchOptions are the tunable parameters of the fuzzy query engine.
type MatchOptions struct {
	// Threshold is the normalised edit-distance cutoff on a 0.0-1.0
	// scale where 0.0 is exact. Matches scoring above it are rejected.
	Threshold float64

	// MinQueryLength is the minimum query length in runes. Shorter
	// queries return an empty result set, not an error.
	MinQueryLength int

	// Limit caps the number of results. Zero means no cap.
	Limit int

	// Weights are the per-field relevance multipliers.
	Weights FieldWeights
}

// DefaultMatchOptions mirrors the behaviour of the original site
// search: threshold 0.3, two-character minimum, title-heavy weighting.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		Threshold:      0.3,
		MinQueryLength: 2,
		Limit:          0,
		Weights:        FieldWeights{Title: 10, Tags: 5, Content: 1},
	}
}

// QueryResult is a single ranked hit. Ephemeral: recomputed per query,
// never persisted.
type QueryResult struct {
	// Document is the matched document.
	Document IndexedDocument

	// Score is the normalised fuzziness distance of the best matching
	// field. Lower is better, 0 is an exact match.
	Score float64

	// MatchedFields lists the fields that matched within the threshold,
	// for result-list highlighting.
	MatchedFields []Field
}
