package exam

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// answerMarker delimits question blocks. The trailing \s* also swallows a
// newline, so "Answer:\nB" yields the answer "B".
var answerMarker = regexp.MustCompile(`(?i)Answer\s*[:\-]\s*`)

const minBlockLen = 3

// Extractor turns loosely formatted text into question records.
type Extractor struct {
	Classifiers []Classifier
}

var defaultExtractor = Extractor{Classifiers: DefaultClassifiers}

// Extract runs the default classifier chain over text.
func Extract(text string) []Question { return defaultExtractor.Extract(text) }

// Extract never fails: text without answer markers yields an empty slice.
// Question ids are the marker position + 1, so skipped blocks leave gaps.
func (x Extractor) Extract(text string) []Question {
	text = normalizeText(text)
	locs := answerMarker.FindAllStringIndex(text, -1)
	out := make([]Question, 0, len(locs))

	for i, loc := range locs {
		next := len(text)
		if i+1 < len(locs) {
			next = locs[i+1][0]
		}
		answer := text[loc[1]:next]
		if nl := strings.IndexByte(answer, '\n'); nl >= 0 {
			answer = answer[:nl]
		}
		answer = strings.TrimSpace(answer)

		block := strings.TrimSpace(text[blockStart(text, locs, i):loc[0]])
		if utf8.RuneCountInString(block) < minBlockLen {
			log.Debug().Int("marker", i+1).Msg("extract: block too short, skipped")
			continue
		}

		c, ok := x.classify(block, answer)
		if !ok {
			continue
		}
		q := Question{
			ID:            i + 1,
			Question:      block,
			Type:          c.Type,
			Options:       c.Options,
			CorrectAnswer: c.CorrectAnswer,
		}
		log.Debug().
			Int("id", q.ID).
			Str("type", string(q.Type)).
			Int("options", len(q.Options)).
			Str("preview", preview(block, 70)).
			Msg("extract: question")
		out = append(out, q)
	}

	log.Info().Int("markers", len(locs)).Int("questions", len(out)).Msg("extract: done")
	return out
}

func (x Extractor) classify(block, answer string) (Classification, bool) {
	for _, c := range x.Classifiers {
		if res, ok := c.Classify(block, answer); ok {
			return res, true
		}
	}
	return Classification{}, false
}

// blockStart is the first byte after the line holding the previous marker.
// When that line runs past marker i the block is empty.
func blockStart(text string, locs [][]int, i int) int {
	if i == 0 {
		return 0
	}
	prevEnd := locs[i-1][1]
	nl := strings.IndexByte(text[prevEnd:], '\n')
	if nl < 0 {
		return locs[i][0]
	}
	start := prevEnd + nl + 1
	if start > locs[i][0] {
		return locs[i][0]
	}
	return start
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}

func preview(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
