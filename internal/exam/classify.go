package exam

import (
	"regexp"
	"strings"
)

// Classification is the tagged outcome of a classifier: Type selects which of
// the remaining fields are meaningful.
type Classification struct {
	Type          QuestionType
	Options       []string
	CorrectAnswer string
}

// Classifier inspects a question block and its answer line. ok=false passes
// the block on to the next classifier in the chain.
type Classifier interface {
	Classify(block, answer string) (c Classification, ok bool)
}

type ClassifierFunc func(block, answer string) (Classification, bool)

func (f ClassifierFunc) Classify(block, answer string) (Classification, bool) {
	return f(block, answer)
}

// DefaultClassifiers is evaluated in order; the first match wins.
var DefaultClassifiers = []Classifier{
	ClassifierFunc(ClassifyMCQ),
	ClassifierFunc(ClassifyTrueFalse),
	ClassifierFunc(ClassifyFillBlank),
	ClassifierFunc(ClassifyDescriptive),
}

var (
	optionLine     = regexp.MustCompile(`(?m)^([A-D][.)]\s+.+?)$`)
	optionPrefix   = regexp.MustCompile(`^[A-D][.)]\s+`)
	inlineOption   = regexp.MustCompile(`(?:^|\s)([A-D])[.)]\s+`)
	questionNumber = regexp.MustCompile(`^\d+[.)]$`)
	answerLetter   = regexp.MustCompile(`(?i)^([A-D])`)
	trueOrFalse    = regexp.MustCompile(`(?i)True or False`)
)

// ClassifyMCQ matches blocks with at least two "A. text" / "B) text" lines.
// A single line carrying consecutive inline options ("A. 3 B. 4 C. 5") is
// accepted as well when no option lines are present.
func ClassifyMCQ(block, answer string) (Classification, bool) {
	opts := lineOptions(block)
	if len(opts) < 2 {
		opts = inlineOptions(block)
	}
	if len(opts) < 2 {
		return Classification{}, false
	}

	correct := ""
	if m := answerLetter.FindStringSubmatch(answer); m != nil {
		letter := strings.ToUpper(m[1])
		correct = letter
		if idx := int(letter[0] - 'A'); idx >= 0 && idx < len(opts) {
			correct = opts[idx]
		}
	}
	return Classification{Type: TypeMCQ, Options: opts, CorrectAnswer: correct}, true
}

func lineOptions(block string) []string {
	lines := optionLine.FindAllString(block, -1)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.TrimSpace(optionPrefix.ReplaceAllString(l, "")))
	}
	return out
}

// inlineOptions finds one line of the form "<stem>? A. x B. y C. z". The run
// must open right after the stem (line start, question number, "?" or ":")
// so initials inside a sentence ("John A. Smith and Mary B. Jones") do not
// count as options.
func inlineOptions(block string) []string {
	for _, line := range strings.Split(block, "\n") {
		locs := inlineOption.FindAllStringSubmatchIndex(line, -1)
		var run [][]int
		for _, loc := range locs {
			letter := line[loc[2]]
			if len(run) == 0 {
				if letter == 'A' && opensOptions(line[:loc[2]]) {
					run = append(run, loc)
				}
				continue
			}
			if letter != byte('A'+len(run)) {
				break
			}
			run = append(run, loc)
		}
		if len(run) < 2 {
			continue
		}
		opts := make([]string, 0, len(run))
		for i, loc := range run {
			end := len(line)
			if i+1 < len(run) {
				end = run[i+1][0]
			}
			opts = append(opts, strings.TrimSpace(line[loc[1]:end]))
		}
		return opts
	}
	return nil
}

func opensOptions(stem string) bool {
	stem = strings.TrimSpace(stem)
	return stem == "" || strings.HasSuffix(stem, "?") || strings.HasSuffix(stem, ":") || questionNumber.MatchString(stem)
}

func ClassifyTrueFalse(block, answer string) (Classification, bool) {
	if !trueOrFalse.MatchString(block) {
		return Classification{}, false
	}
	correct := "True"
	if answer == "True" || answer == "False" {
		correct = answer
	}
	return Classification{Type: TypeTrueFalse, CorrectAnswer: correct}, true
}

func ClassifyFillBlank(block, answer string) (Classification, bool) {
	if !strings.Contains(block, "_") {
		return Classification{}, false
	}
	return Classification{Type: TypeFillBlank, CorrectAnswer: answer}, true
}

func ClassifyDescriptive(_, answer string) (Classification, bool) {
	return Classification{Type: TypeDescriptive, CorrectAnswer: answer}, true
}
