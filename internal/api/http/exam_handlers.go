package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	authmw "github.com/mind-engage/docexam/internal/auth/middleware"
	"github.com/mind-engage/docexam/internal/exam"
	"github.com/mind-engage/docexam/internal/grading"
	"github.com/mind-engage/docexam/internal/session"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// sessionFor returns the caller's session. A token that outlived the process
// gets a fresh, empty session under the same id.
func (d *Deps) sessionFor(r *http.Request) *session.Session {
	ctx := r.Context()
	return d.Sessions.Ensure(authmw.SessionIDFromContext(ctx), authmw.SubjectFromContext(ctx), authmw.RoleFromContext(ctx))
}

// GET /exam/data → {questions, answers:{}}. Students never see answer keys.
func ExamDataHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs, err := d.sessionFor(r).Exam()
		if err != nil {
			writeExamError(w, err)
			return
		}
		if authmw.RoleFromContext(r.Context()) != authmw.RoleInstructor {
			qs = exam.StudentView(qs)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"questions": qs,
			"answers":   exam.AnswerSet{},
		})
	}
}

type submitRequest struct {
	StudentName string         `json:"student_name" validate:"max=200"`
	StartedAt   *string        `json:"started_at" validate:"omitempty,max=64"`
	SubmittedAt *string        `json:"submitted_at" validate:"omitempty,max=64"`
	Answers     exam.AnswerSet `json:"answers"`
}

type submitResponse struct {
	exam.Result
	Items map[string]grading.Result `json:"items"`
}

// POST /exam/submit scores the answers against the caller's active exam.
// The result is returned even when it could not be persisted.
func SubmitHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := decodeBody(r, &req); err != nil {
			writeExamError(w, err)
			return
		}
		s := d.sessionFor(r)
		qs, err := s.Exam()
		if err != nil {
			writeExamError(w, err)
			return
		}
		if req.Answers == nil {
			req.Answers = exam.AnswerSet{}
		}

		out := grading.ScoreExam(d.Grader, qs, req.Answers)
		res := exam.Result{
			ID:          uuid.NewString(),
			Score:       out.Score,
			Total:       out.Total,
			Percentage:  out.Percentage,
			Timestamp:   d.now().Format(timestampLayout),
			StudentName: studentName(req.StudentName, s.StudentName),
			StartedAt:   req.StartedAt,
			SubmittedAt: req.SubmittedAt,
			Questions:   qs,
			Answers:     req.Answers,
		}

		if err := d.Results.Append(r.Context(), res); err != nil {
			log.Error().Err(err).Str("result_id", res.ID).Msg("submit: saving result failed")
		}
		log.Info().
			Str("result_id", res.ID).
			Str("session_id", s.ID).
			Str("subject", s.Subject).
			Int("score", res.Score).
			Int("total", res.Total).
			Float64("percentage", res.Percentage).
			Msg("exam submitted")
		writeJSON(w, http.StatusOK, submitResponse{Result: res, Items: out.Items})
	}
}

func studentName(fromBody, fromSession string) string {
	if n := strings.TrimSpace(fromBody); n != "" {
		return n
	}
	if fromSession != "" {
		return fromSession
	}
	return "Unknown"
}
