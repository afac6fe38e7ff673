package exam

import (
	"reflect"
	"testing"
)

func TestExtract_MixedDocument(t *testing.T) {
	text := "1. 2+2=? A. 3 B. 4 C. 5 D. 6\nAnswer: B\n\nTrue or False: sky is blue\nAnswer: True\n"
	qs := Extract(text)
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d: %+v", len(qs), qs)
	}

	mcq := qs[0]
	if mcq.ID != 1 || mcq.Type != TypeMCQ {
		t.Fatalf("q1: unexpected id/type %d/%s", mcq.ID, mcq.Type)
	}
	if !reflect.DeepEqual(mcq.Options, []string{"3", "4", "5", "6"}) {
		t.Fatalf("q1 options: %#v", mcq.Options)
	}
	if mcq.CorrectAnswer != "4" {
		t.Fatalf("q1 correct answer: %q", mcq.CorrectAnswer)
	}

	tf := qs[1]
	if tf.ID != 2 || tf.Type != TypeTrueFalse || tf.CorrectAnswer != "True" {
		t.Fatalf("q2: %+v", tf)
	}
	if tf.Question != "True or False: sky is blue" {
		t.Fatalf("q2 block: %q", tf.Question)
	}
}

func TestExtract_NoMarkers(t *testing.T) {
	qs := Extract("What is the capital of France?\nParis\n")
	if qs == nil || len(qs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", qs)
	}
}

func TestExtract_OptionLines(t *testing.T) {
	text := "Which is a prime?\nA. 4\nB) 6\nC. 7\nD. 9\nAnswer - c"
	qs := Extract(text)
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	q := qs[0]
	if q.Type != TypeMCQ {
		t.Fatalf("type: %s", q.Type)
	}
	if !reflect.DeepEqual(q.Options, []string{"4", "6", "7", "9"}) {
		t.Fatalf("options: %#v", q.Options)
	}
	if q.CorrectAnswer != "7" {
		t.Fatalf("correct answer: %q", q.CorrectAnswer)
	}
	if q.Question != "Which is a prime?\nA. 4\nB) 6\nC. 7\nD. 9" {
		t.Fatalf("question should keep option lines, got %q", q.Question)
	}
}

func TestExtract_MCQLetterOutOfRange(t *testing.T) {
	qs := Extract("Pick one\nA. yes\nB. no\nAnswer: D")
	if len(qs) != 1 || qs[0].CorrectAnswer != "D" {
		t.Fatalf("expected raw letter D, got %+v", qs)
	}
	qs = Extract("Pick one\nA. yes\nB. no\nAnswer: none")
	if len(qs) != 1 || qs[0].CorrectAnswer != "" {
		t.Fatalf("expected empty answer without a letter, got %+v", qs)
	}
}

func TestExtract_IDsFollowMarkerPosition(t *testing.T) {
	text := "Describe photosynthesis.\nAnswer: plants make food\nab\nAnswer: x\nThe capital of France is ____.\nAnswer: Paris"
	qs := Extract(text)
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d: %+v", len(qs), qs)
	}
	if qs[0].ID != 1 || qs[1].ID != 3 {
		t.Fatalf("expected ids 1 and 3, got %d and %d", qs[0].ID, qs[1].ID)
	}
	if qs[0].Type != TypeDescriptive || qs[0].CorrectAnswer != "plants make food" {
		t.Fatalf("q1: %+v", qs[0])
	}
	if qs[1].Type != TypeFillBlank || qs[1].CorrectAnswer != "Paris" {
		t.Fatalf("q3: %+v", qs[1])
	}
}

func TestExtract_LineEndingsAndMarkerForms(t *testing.T) {
	text := "\r\n  Explain TCP.\r\nANSWER :\r\nreliable transport\r\nTrue or False: water is dry\rAnswer: no\r"
	qs := Extract(text)
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d: %+v", len(qs), qs)
	}
	if qs[0].CorrectAnswer != "reliable transport" {
		t.Fatalf("answer after marker newline: %q", qs[0].CorrectAnswer)
	}
	if qs[1].Type != TypeTrueFalse || qs[1].CorrectAnswer != "True" {
		t.Fatalf("true/false default: %+v", qs[1])
	}
}

func TestExtract_SameLineMarkersSkipped(t *testing.T) {
	// the second block has no newline after the first answer, so it is empty
	qs := Extract("What is Go? Answer: a language What is Rust? Answer: another one")
	if len(qs) != 1 || qs[0].ID != 1 {
		t.Fatalf("expected only q1, got %+v", qs)
	}
	if qs[0].CorrectAnswer != "a language What is Rust?" {
		t.Fatalf("answer runs to next marker: %q", qs[0].CorrectAnswer)
	}
}

func TestExtract_CustomClassifierChain(t *testing.T) {
	x := Extractor{Classifiers: []Classifier{ClassifierFunc(ClassifyDescriptive)}}
	qs := x.Extract("True or False: 1 = 1\nAnswer: True")
	if len(qs) != 1 || qs[0].Type != TypeDescriptive {
		t.Fatalf("expected descriptive from custom chain, got %+v", qs)
	}
}

func TestExtract_NamesWithInitialsStayDescriptive(t *testing.T) {
	qs := Extract("Who were John A. Smith and Mary B. Jones?\nAnswer: Authors of the report")
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %+v", qs)
	}
	if qs[0].Type != TypeDescriptive || qs[0].CorrectAnswer != "Authors of the report" || qs[0].Options != nil {
		t.Fatalf("misclassified: %+v", qs[0])
	}
}
