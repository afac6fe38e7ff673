package grading

import (
	"strconv"
	"strings"

	"github.com/mind-engage/docexam/internal/exam"
)

// Result is the outcome of grading a single question response.
type Result struct {
	Similarity float64 `json:"similarity"`
	Threshold  float64 `json:"threshold"`
	Passed     bool    `json:"passed"`
}

// Strategy grades a single question.
type Strategy interface {
	Grade(q exam.Question, response string) Result
}

// Grader routes by question type to the correct Strategy.
type Grader interface {
	Grade(q exam.Question, response string) Result
}

type defaultGrader struct {
	strategies map[exam.QuestionType]Strategy
	fallback   Strategy
}

func (g *defaultGrader) Grade(q exam.Question, response string) Result {
	s, ok := g.strategies[q.Type]
	if !ok {
		s = g.fallback
	}
	return s.Grade(q, response)
}

// Engine options

type Option func(*config)

type config struct {
	MCQThreshold         float64
	FillBlankThreshold   float64
	DescriptiveThreshold float64
	MaxAnswerRunes       int // free-text answers are cut to this length
}

// Threshold options ignore values outside (0,1] and WithMaxAnswerRunes
// ignores n <= 0, so unset configuration keeps the defaults.
func WithMCQThreshold(v float64) Option         { return ratio(v, func(c *config) { c.MCQThreshold = v }) }
func WithFillBlankThreshold(v float64) Option   { return ratio(v, func(c *config) { c.FillBlankThreshold = v }) }
func WithDescriptiveThreshold(v float64) Option { return ratio(v, func(c *config) { c.DescriptiveThreshold = v }) }

func WithMaxAnswerRunes(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.MaxAnswerRunes = n
		}
	}
}

func ratio(v float64, set Option) Option {
	if v <= 0 || v > 1 {
		return func(*config) {}
	}
	return set
}

const (
	DefaultMCQThreshold         = 0.95
	DefaultFillBlankThreshold   = 0.85
	DefaultDescriptiveThreshold = 0.70
	DefaultMaxAnswerRunes       = 5000
)

// NewDefaultGrader installs the built-in threshold strategies. Unknown types
// are graded as descriptive; a missing type is graded as mcq.
func NewDefaultGrader(opts ...Option) Grader {
	cfg := &config{
		MCQThreshold:         DefaultMCQThreshold,
		FillBlankThreshold:   DefaultFillBlankThreshold,
		DescriptiveThreshold: DefaultDescriptiveThreshold,
		MaxAnswerRunes:       DefaultMaxAnswerRunes,
	}
	for _, o := range opts {
		o(cfg)
	}
	choice := fuzzyStrategy{threshold: cfg.MCQThreshold}
	descriptive := fuzzyStrategy{threshold: cfg.DescriptiveThreshold, maxRunes: cfg.MaxAnswerRunes}
	return &defaultGrader{
		strategies: map[exam.QuestionType]Strategy{
			"":                   choice,
			exam.TypeMCQ:         choice,
			exam.TypeTrueFalse:   choice,
			exam.TypeFillBlank:   fuzzyStrategy{threshold: cfg.FillBlankThreshold, maxRunes: cfg.MaxAnswerRunes},
			exam.TypeDescriptive: descriptive,
		},
		fallback: descriptive,
	}
}

var std = NewDefaultGrader()

// Threshold reports the pass mark the default grader applies to t.
func Threshold(t exam.QuestionType) float64 {
	return std.Grade(exam.Question{Type: t}, "").Threshold
}

// Passes grades one answer with the default grader.
func Passes(q exam.Question, answer string) bool {
	return std.Grade(q, answer).Passed
}

// --- Strategies ---

type fuzzyStrategy struct {
	threshold float64
	maxRunes  int // 0 = no limit
}

func (s fuzzyStrategy) Grade(q exam.Question, response string) Result {
	res := Result{Threshold: s.threshold}
	answer := Truncate(strings.TrimSpace(response), s.maxRunes)
	if answer == "" {
		return res
	}
	res.Similarity = Similarity(answer, strings.TrimSpace(q.CorrectAnswer))
	res.Passed = res.Similarity >= s.threshold
	return res
}

// Truncate cuts s to at most n runes. n <= 0 leaves s unchanged.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Outcome aggregates a graded submission.
type Outcome struct {
	Score      int               `json:"score"`
	Total      int               `json:"total"`
	Percentage float64           `json:"percentage"`
	Items      map[string]Result `json:"items"` // keyed like the answer set
}

// ScoreExam grades every question against answers keyed "q<id>".
func ScoreExam(g Grader, questions []exam.Question, answers exam.AnswerSet) Outcome {
	if g == nil {
		g = std
	}
	out := Outcome{Total: len(questions), Items: make(map[string]Result, len(questions))}
	for _, q := range questions {
		key := q.AnswerKey()
		res := g.Grade(q, answers[key])
		out.Items[key] = res
		if res.Passed {
			out.Score++
		}
	}
	out.Percentage = Percentage(out.Score, out.Total)
	return out
}

// Percentage is 100*score/total rounded to two decimals, 0 when total is 0.
// Rounding works on the exact decimal value of the float and breaks ties to
// even, so 100*1/32 = 3.125 becomes 3.12.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	p, _ := strconv.ParseFloat(strconv.FormatFloat(float64(score)*100/float64(total), 'f', 2, 64), 64)
	return p
}
