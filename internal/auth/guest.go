package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	authmw "github.com/mind-engage/docexam/internal/auth/middleware"
	"github.com/mind-engage/docexam/internal/library"
	"github.com/mind-engage/docexam/internal/session"
)

// GuestLoginHandler opens a test-taker session. When a library filename is
// given its questions become the session's exam right away.
//
// POST /auth/guest  { "student_name": "...", "library": "file.docx" }
func GuestLoginHandler(a *authmw.AuthService, sessions *session.Manager, lib library.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StudentName string `json:"student_name" validate:"max=200"`
			Library     string `json:"library" validate:"max=255"`
		}
		// an empty body is a plain anonymous guest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "invalid guest request", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(req.StudentName)

		sfx := strconv.FormatInt(time.Now().UnixNano(), 36)
		sub := "guest|" + sfx
		s := sessions.Create(sub, authmw.RoleStudent, name)

		if req.Library != "" {
			if lib == nil {
				sessions.Drop(s.ID)
				http.Error(w, "library disabled", http.StatusNotFound)
				return
			}
			doc, err := lib.Get(r.Context(), req.Library)
			if err != nil {
				sessions.Drop(s.ID)
				if errors.Is(err, library.ErrNotFound) {
					http.Error(w, "library document not found", http.StatusNotFound)
					return
				}
				log.Error().Err(err).Str("filename", req.Library).Msg("guest: library lookup failed")
				http.Error(w, "library lookup failed", http.StatusInternalServerError)
				return
			}
			s.SetExam(doc.Questions)
		}

		tok, err := a.IssueJWT(sub, authmw.RoleStudent, s.ID)
		if err != nil {
			sessions.Drop(s.ID)
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		log.Info().Str("session_id", s.ID).Str("student_name", name).Str("library", req.Library).Msg("guest session opened")
		writeJSON(w, tokenOut{AccessToken: tok, SessionID: s.ID, Role: authmw.RoleStudent, Username: name})
	}
}
