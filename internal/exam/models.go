package exam

type QuestionType string

const (
	TypeMCQ         QuestionType = "mcq"
	TypeTrueFalse   QuestionType = "true_false"
	TypeFillBlank   QuestionType = "fill_blank"
	TypeDescriptive QuestionType = "descriptive"
)

// Question is one record carved out of an uploaded document.
type Question struct {
	ID            int          `json:"id"` // answer-marker position + 1, may have gaps
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"` // mcq only
	CorrectAnswer string       `json:"correct_answer"`
}

// AnswerKey returns the answer-map key used by clients ("q<id>").
func (q Question) AnswerKey() string { return AnswerKeyFor(q.ID) }

// AnswerSet maps "q<id>" to the submitted free text.
type AnswerSet map[string]string

// Result is one scored submission. Append-only.
type Result struct {
	ID          string     `json:"id"`
	Score       int        `json:"score"`
	Total       int        `json:"total"`
	Percentage  float64    `json:"percentage"`
	Timestamp   string     `json:"timestamp"`
	StudentName string     `json:"student_name"`
	StartedAt   *string    `json:"started_at"`
	SubmittedAt *string    `json:"submitted_at"`
	Questions   []Question `json:"questions"`
	Answers     AnswerSet  `json:"answers"`
}

// StudentView strips answer keys before questions are served to a test-taker.
func StudentView(qs []Question) []Question {
	out := make([]Question, len(qs))
	copy(out, qs)
	for i := range out {
		out[i].CorrectAnswer = ""
	}
	return out
}
