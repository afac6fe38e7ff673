package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	authmw "github.com/mind-engage/docexam/internal/auth/middleware"
	"github.com/mind-engage/docexam/internal/config"
	"github.com/mind-engage/docexam/internal/session"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type tokenOut struct {
	AccessToken string `json:"access_token"`
	SessionID   string `json:"session_id"`
	Role        string `json:"role"`
	Username    string `json:"username,omitempty"`
}

// POST /auth/login  { "username": "...", "password": "..." }
// Only the configured instructor account can log in.
func LoginHandler(a *authmw.AuthService, sessions *session.Manager, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username" validate:"required"`
			Password string `json:"password" validate:"required"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "username and password required", http.StatusBadRequest)
			return
		}
		if req.Username != cfg.AdminUser ||
			bcrypt.CompareHashAndPassword([]byte(cfg.AdminPassHash), []byte(req.Password)) != nil {
			log.Info().Str("username", req.Username).Msg("login rejected")
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		s := sessions.Create(req.Username, authmw.RoleInstructor, "")
		tok, err := a.IssueJWT(req.Username, authmw.RoleInstructor, s.ID)
		if err != nil {
			sessions.Drop(s.ID)
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		log.Info().Str("username", req.Username).Str("session_id", s.ID).Msg("instructor logged in")
		writeJSON(w, tokenOut{AccessToken: tok, SessionID: s.ID, Role: authmw.RoleInstructor, Username: req.Username})
	}
}

// POST /auth/logout drops the caller's session and revokes its token so a
// later request cannot resurrect the session. Runs behind JWTMiddleware.
func LogoutHandler(a *authmw.AuthService, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := authmw.SessionIDFromContext(r.Context())
		a.Revoke(sid)
		sessions.Drop(sid)
		writeJSON(w, map[string]string{"status": "logged_out"})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
