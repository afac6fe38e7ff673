package exam

import (
	"reflect"
	"testing"
)

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name    string
		block   string
		answer  string
		want    QuestionType
		correct string
		options []string
	}{
		{name: "mcq lines", block: "Q\nA. red\nB. blue", answer: "b", want: TypeMCQ, correct: "blue", options: []string{"red", "blue"}},
		{name: "mcq inline", block: "Colour? A) red B) blue C) green", answer: "C.", want: TypeMCQ, correct: "green", options: []string{"red", "blue", "green"}},
		{name: "single option is not mcq", block: "Plan A. go home", answer: "x", want: TypeDescriptive, correct: "x"},
		{name: "inline letters must start at A", block: "see B. one C. two", answer: "B", want: TypeDescriptive, correct: "B"},
		{name: "inline after question number", block: "1) A. 3 B. 4", answer: "A", want: TypeMCQ, correct: "3", options: []string{"3", "4"}},
		{name: "inline after colon", block: "Pick one: A. up B. down", answer: "b", want: TypeMCQ, correct: "down", options: []string{"up", "down"}},
		{name: "initials are not options", block: "Who were John A. Smith and Mary B. Jones?", answer: "Authors of the report", want: TypeDescriptive, correct: "Authors of the report"},
		{name: "initials before the stem", block: "Did Mary A. Smith write it? B. yes C. no", answer: "B", want: TypeDescriptive, correct: "B"},
		{name: "initials in a blank", block: "John A. Smith met Mary B. ____", answer: "Jones", want: TypeFillBlank, correct: "Jones"},
		{name: "mcq beats true/false", block: "True or False?\nA. True\nB. False", answer: "A", want: TypeMCQ, correct: "True", options: []string{"True", "False"}},
		{name: "true/false exact", block: "true OR false: ice is cold", answer: "False", want: TypeTrueFalse, correct: "False"},
		{name: "true/false lower-case answer defaults", block: "True or False: ice is cold", answer: "false", want: TypeTrueFalse, correct: "True"},
		{name: "true/false beats blank", block: "True or False: ___ is cold", answer: "True", want: TypeTrueFalse, correct: "True"},
		{name: "single underscore", block: "Go was made at _", answer: "Google", want: TypeFillBlank, correct: "Google"},
		{name: "descriptive", block: "Explain goroutines.", answer: "lightweight threads", want: TypeDescriptive, correct: "lightweight threads"},
	}

	x := Extractor{Classifiers: DefaultClassifiers}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := x.classify(tc.block, tc.answer)
			if !ok {
				t.Fatalf("no classifier matched")
			}
			if got.Type != tc.want {
				t.Fatalf("type: want %s, got %s", tc.want, got.Type)
			}
			if got.CorrectAnswer != tc.correct {
				t.Fatalf("correct answer: want %q, got %q", tc.correct, got.CorrectAnswer)
			}
			if len(tc.options) > 0 && !reflect.DeepEqual(got.Options, tc.options) {
				t.Fatalf("options: want %#v, got %#v", tc.options, got.Options)
			}
		})
	}
}

func TestStudentViewStripsAnswers(t *testing.T) {
	qs := []Question{{ID: 1, Type: TypeMCQ, Options: []string{"a", "b"}, CorrectAnswer: "a"}}
	view := StudentView(qs)
	if view[0].CorrectAnswer != "" {
		t.Fatalf("answer not stripped")
	}
	if qs[0].CorrectAnswer != "a" {
		t.Fatalf("original slice modified")
	}
}
