package grading

import (
	"regexp"
	"strings"
)

var wordRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {},
	"by": {}, "from": {}, "it": {}, "as": {}, "that": {}, "this": {}, "which": {}, "who": {},
}

const (
	keywordWeight  = 0.6
	sequenceWeight = 0.4
)

// Similarity scores a free-text answer against the reference answer in [0,1].
// It blends keyword overlap (Jaccard over stop-word-filtered tokens) with a
// character sequence ratio.
func Similarity(user, correct string) float64 {
	if user == "" || correct == "" {
		if user == correct {
			return 1.0
		}
		return 0.0
	}
	u := normalize(user)
	c := normalize(correct)
	if u == c {
		return 1.0
	}
	kw := jaccard(keywords(u), keywords(c))
	seq := SequenceRatio(u, c)
	return kw*keywordWeight + seq*sequenceWeight
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func keywords(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range wordRE.FindAllString(s, -1) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

// jaccard is 0 when either set is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
