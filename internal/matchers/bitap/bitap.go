// Package bitap implements approximate string matching with the
// Wu-Manber bitap algorithm. Matching is location-agnostic: a pattern
// occurrence scores by edit distance alone, no matter where in the
// text it sits. Patterns longer than the machine word are split into
// chunks and their scores averaged.
package bitap

import (
	"strings"

	"github.com/aqz-saito/blogsearch/internal/core/ports/driven"
)

// maxChunkLen is the longest pattern a single bit-parallel pass can
// handle: one bit per pattern rune in a uint64, with the top bit left
// for the match test.
const maxChunkLen = 31

// Ensure Matcher implements the strategy interface.
var _ driven.Matcher = (*Matcher)(nil)

// Matcher compiles query patterns for repeated scoring.
type Matcher struct{}

// New creates a bitap matcher.
func New() *Matcher {
	return &Matcher{}
}

// Compile lowercases the pattern and precomputes the alphabet bit
// masks for each chunk. Texts handed to Score must be lowercased by
// the caller.
func (m *Matcher) Compile(pattern string, threshold float64) driven.CompiledPattern {
	runes := []rune(strings.ToLower(pattern))

	var chunks []chunk
	for start := 0; start < len(runes); start += maxChunkLen {
		end := start + maxChunkLen
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, newChunk(runes[start:end], threshold))
	}

	return &compiled{chunks: chunks, threshold: threshold}
}

type compiled struct {
	chunks    []chunk
	threshold float64
}

// Score returns the average best chunk distance and whether it is
// within the threshold. A chunk with no occurrence inside its error
// budget contributes the worst score of 1.0.
func (c *compiled) Score(text string) (float64, bool) {
	if len(c.chunks) == 0 {
		return 1, false
	}

	runes := []rune(text)

	var total float64
	for _, ch := range c.chunks {
		score, ok := ch.search(runes)
		if !ok {
			score = 1
		}
		total += score
	}

	score := total / float64(len(c.chunks))
	return score, score <= c.threshold
}

// chunk is one bit-parallel unit of the pattern.
type chunk struct {
	masks     map[rune]uint64
	length    int
	maxErrors int
}

func newChunk(runes []rune, threshold float64) chunk {
	masks := make(map[rune]uint64, len(runes))
	for i, r := range runes {
		masks[r] |= 1 << i
	}

	maxErrors := int(threshold * float64(len(runes)))
	if maxErrors >= len(runes) {
		maxErrors = len(runes) - 1
	}
	if maxErrors < 0 {
		maxErrors = 0
	}

	return chunk{masks: masks, length: len(runes), maxErrors: maxErrors}
}

// search runs the Wu-Manber scan over the text and returns the
// normalised distance of the closest occurrence. The `| 1` seeding on
// every step lets a match begin at any position, which is what makes
// the scan location-agnostic.
func (c chunk) search(text []rune) (float64, bool) {
	if c.length == 0 {
		return 1, false
	}

	matchBit := uint64(1) << (c.length - 1)
	state := make([]uint64, c.maxErrors+1)
	best := -1

	for _, r := range text {
		mask := c.masks[r]

		prev := state[0]
		state[0] = ((state[0] << 1) | 1) & mask

		for e := 1; e <= c.maxErrors; e++ {
			old := state[e]
			// substitution | insertion | deletion, on top of the
			// exact-extension term.
			state[e] = (((old << 1) | 1) & mask) |
				prev | (prev << 1) | (state[e-1] << 1) | 1
			prev = old
		}

		for e := 0; e <= c.maxErrors; e++ {
			if state[e]&matchBit != 0 {
				if best < 0 || e < best {
					best = e
				}
				break
			}
		}
		if best == 0 {
			break
		}
	}

	if best < 0 {
		return 1, false
	}
	return float64(best) / float64(c.length), true
}
