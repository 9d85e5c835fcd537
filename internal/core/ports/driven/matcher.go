package driven

// Matcher is the replaceable fuzzy-matching strategy behind the query
// engine. Any implementation meeting the location-agnostic,
// threshold-bounded contract is conforming; the exact scoring formula
// is an implementation detail.
type Matcher interface {
	// Compile prepares a pattern for repeated scoring. The pattern is
	// lowercased by the implementation; texts passed to Score must
	// already be lowercased.
	Compile(pattern string, threshold float64) CompiledPattern
}

// CompiledPattern scores candidate texts against one query pattern.
type CompiledPattern interface {
	// Score returns the normalised distance (0.0 exact .. 1.0 nothing
	// shared) of the best-aligned occurrence and whether it is within
	// the compiled threshold. Match location never affects the score.
	Score(text string) (float64, bool)
}
