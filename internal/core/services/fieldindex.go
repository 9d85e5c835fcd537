package services

// fieldIndex holds one searchable field for every document: the
// lowercased text, plus a trigram posting index used to prefilter
// candidates so repeated queries avoid rescanning the whole corpus.
type fieldIndex struct {
	texts    []string
	trigrams map[string][]int
}

// trigramPrefilterMin is the shortest query the prefilter applies to.
// Below it, a single typo can invalidate every query trigram, so the
// engine scans all documents instead.
const trigramPrefilterMin = 6

func newFieldIndex(texts []string) *fieldIndex {
	idx := &fieldIndex{
		texts:    texts,
		trigrams: make(map[string][]int),
	}

	for ord, text := range texts {
		seen := make(map[string]struct{})
		for _, tri := range trigramsOf(text) {
			if _, dup := seen[tri]; dup {
				continue
			}
			seen[tri] = struct{}{}
			idx.trigrams[tri] = append(idx.trigrams[tri], ord)
		}
	}

	return idx
}

// candidates returns the ordinals worth scoring for a query, in
// ascending order. Short queries scan everything; longer ones are
// restricted to documents sharing at least one query trigram.
func (f *fieldIndex) candidates(query string) []int {
	runes := []rune(query)
	if len(runes) < trigramPrefilterMin {
		return f.all()
	}

	seen := make(map[int]struct{})
	for _, tri := range trigramsOf(query) {
		for _, ord := range f.trigrams[tri] {
			seen[ord] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for ord := range f.texts {
		if _, ok := seen[ord]; ok {
			out = append(out, ord)
		}
	}
	return out
}

func (f *fieldIndex) all() []int {
	out := make([]int, len(f.texts))
	for i := range out {
		out[i] = i
	}
	return out
}

// trigramsOf slides a three-rune window over the text. The input is
// expected to be lowercased already.
func trigramsOf(text string) []string {
	runes := []rune(text)
	if len(runes) < 3 {
		return nil
	}

	out := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, string(runes[i:i+3]))
	}
	return out
}
