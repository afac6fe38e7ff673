package grading

import (
	"math"
	"strings"
	"testing"

	"github.com/mind-engage/docexam/internal/exam"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSimilarity_Identities(t *testing.T) {
	if got := Similarity("", ""); got != 1.0 {
		t.Fatalf(`Similarity("", "") = %v`, got)
	}
	if got := Similarity("", "x"); got != 0.0 {
		t.Fatalf(`Similarity("", "x") = %v`, got)
	}
	if got := Similarity("x", ""); got != 0.0 {
		t.Fatalf(`Similarity("x", "") = %v`, got)
	}
	for _, s := range []string{"4", "Paris", "the", "  Mixed Case  ", "über straße"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Fatalf("Similarity(%q, %q) = %v", s, s, got)
		}
	}
	if got := Similarity(" PARIS ", "paris"); got != 1.0 {
		t.Fatalf("case/space-insensitive equality, got %v", got)
	}
}

func TestSimilarity_Blend(t *testing.T) {
	// keywords {paris} vs {paris, france} = 0.5; sequence 2*5/17
	want := 0.6*0.5 + 0.4*(10.0/17.0)
	if got := Similarity("Paris", "Paris France"); !approx(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	// only stop words: keyword part is 0
	want = 0.4 * SequenceRatio("the a", "the an")
	if got := Similarity("the a", "the an"); !approx(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestSequenceRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "", 0},
		{"abcd", "bcde", 0.75},
		{"abc", "abd", 4.0 / 6.0},
		{"abxcd", "abcd", 8.0 / 9.0},
		{"qabxcd", "abycdf", 2 * 4.0 / 12.0},
	}
	for _, tc := range tests {
		if got := SequenceRatio(tc.a, tc.b); !approx(got, tc.want) {
			t.Errorf("SequenceRatio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSequenceRatio_PopularRunes(t *testing.T) {
	// b >= 200 runes: 'a' is popular and dropped from the index, but blocks
	// still grow across it.
	b := strings.Repeat("a", 199) + "b"
	a := "ab"
	if got := SequenceRatio(a, b); !approx(got, 2*2.0/202.0) {
		t.Fatalf("got %v", got)
	}
}

func TestThresholds(t *testing.T) {
	tests := map[exam.QuestionType]float64{
		exam.TypeMCQ:         0.95,
		exam.TypeTrueFalse:   0.95,
		exam.TypeFillBlank:   0.85,
		exam.TypeDescriptive: 0.70,
		"essay":              0.70,
	}
	for typ, want := range tests {
		if got := Threshold(typ); got != want {
			t.Errorf("Threshold(%s) = %v, want %v", typ, got, want)
		}
	}
}

func TestPasses(t *testing.T) {
	mcq := exam.Question{ID: 1, Type: exam.TypeMCQ, CorrectAnswer: "4"}
	if !Passes(mcq, "4") {
		t.Fatalf("exact mcq answer should pass")
	}
	if Passes(mcq, "5") {
		t.Fatalf("wrong mcq answer should fail")
	}

	for _, typ := range []exam.QuestionType{exam.TypeMCQ, exam.TypeTrueFalse, exam.TypeFillBlank, exam.TypeDescriptive} {
		q := exam.Question{Type: typ, CorrectAnswer: ""}
		if Passes(q, "") || Passes(q, "   ") {
			t.Fatalf("empty answer must fail for %s", typ)
		}
	}

	desc := exam.Question{Type: exam.TypeDescriptive, CorrectAnswer: "Goroutines are lightweight threads managed by the Go runtime"}
	if !Passes(desc, "goroutines are lightweight threads managed by the go runtime.") {
		t.Fatalf("near-identical descriptive answer should pass")
	}
	if Passes(desc, "a database index") {
		t.Fatalf("unrelated descriptive answer should fail")
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", 6000)
	once := Truncate(long, DefaultMaxAnswerRunes)
	if n := len([]rune(once)); n != 5000 {
		t.Fatalf("expected 5000 runes, got %d", n)
	}
	if Truncate(once, DefaultMaxAnswerRunes) != once {
		t.Fatalf("truncation must be idempotent")
	}
	if Truncate("abc", 0) != "abc" {
		t.Fatalf("n=0 must not truncate")
	}
}

func TestGrade_TruncatesFreeText(t *testing.T) {
	ref := strings.Repeat("x", 5000)
	q := exam.Question{Type: exam.TypeFillBlank, CorrectAnswer: ref}
	if !Passes(q, ref+strings.Repeat("y", 100)) {
		t.Fatalf("answer should be truncated to the reference length and pass")
	}
	mcq := exam.Question{Type: exam.TypeMCQ, CorrectAnswer: ref}
	if Passes(mcq, ref+strings.Repeat("y", 1000)) {
		t.Fatalf("mcq answers are not truncated")
	}
}

func TestScoreExam(t *testing.T) {
	qs := []exam.Question{
		{ID: 1, Type: exam.TypeMCQ, CorrectAnswer: "4"},
		{ID: 2, Type: exam.TypeTrueFalse, CorrectAnswer: "True"},
		{ID: 4, Type: exam.TypeFillBlank, CorrectAnswer: "Paris"},
	}
	out := ScoreExam(nil, qs, exam.AnswerSet{"q1": "4", "q2": "False", "q4": " paris "})
	if out.Score != 2 || out.Total != 3 {
		t.Fatalf("score/total: %d/%d", out.Score, out.Total)
	}
	if out.Percentage != 66.67 {
		t.Fatalf("percentage: %v", out.Percentage)
	}
	if !out.Items["q4"].Passed || out.Items["q2"].Passed {
		t.Fatalf("items: %+v", out.Items)
	}

	empty := ScoreExam(nil, nil, nil)
	if empty.Score != 0 || empty.Total != 0 || empty.Percentage != 0 {
		t.Fatalf("empty exam: %+v", empty)
	}
}

func TestPercentage(t *testing.T) {
	for _, tc := range []struct {
		score, total int
		want         float64
	}{
		{0, 0, 0}, {1, 3, 33.33}, {2, 3, 66.67}, {3, 3, 100}, {1, 8, 12.5},
		// exact ties go to the even digit
		{1, 32, 3.12}, {3, 32, 9.38}, {5, 32, 15.62},
	} {
		if got := Percentage(tc.score, tc.total); got != tc.want {
			t.Errorf("Percentage(%d,%d) = %v, want %v", tc.score, tc.total, got, tc.want)
		}
	}
}

func TestCustomThresholds(t *testing.T) {
	g := NewDefaultGrader(WithDescriptiveThreshold(0.1))
	q := exam.Question{Type: exam.TypeDescriptive, CorrectAnswer: "Paris France"}
	if !g.Grade(q, "Paris").Passed {
		t.Fatalf("lowered threshold should pass")
	}
}

func TestUnsetOptionsKeepDefaults(t *testing.T) {
	g := NewDefaultGrader(WithMCQThreshold(0), WithFillBlankThreshold(1.2), WithDescriptiveThreshold(-1), WithMaxAnswerRunes(0))
	for typ, want := range map[exam.QuestionType]float64{
		exam.TypeMCQ:         DefaultMCQThreshold,
		exam.TypeFillBlank:   DefaultFillBlankThreshold,
		exam.TypeDescriptive: DefaultDescriptiveThreshold,
	} {
		if got := g.Grade(exam.Question{Type: typ}, "").Threshold; got != want {
			t.Errorf("%s threshold = %v, want %v", typ, got, want)
		}
	}

	g = NewDefaultGrader(WithMCQThreshold(0.5), WithMaxAnswerRunes(5))
	if got := g.Grade(exam.Question{Type: exam.TypeMCQ}, "").Threshold; got != 0.5 {
		t.Fatalf("mcq threshold = %v, want 0.5", got)
	}
	q := exam.Question{Type: exam.TypeDescriptive, CorrectAnswer: "Paris"}
	if !g.Grade(q, "Paris and a lot of trailing text").Passed {
		t.Fatalf("answer should be cut to 5 runes before comparison")
	}
}
