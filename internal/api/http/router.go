package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mind-engage/docexam/internal/auth"
	authmw "github.com/mind-engage/docexam/internal/auth/middleware"
	"github.com/mind-engage/docexam/internal/config"
	"github.com/mind-engage/docexam/internal/grading"
	"github.com/mind-engage/docexam/internal/library"
	"github.com/mind-engage/docexam/internal/rbac"
	"github.com/mind-engage/docexam/internal/results"
	"github.com/mind-engage/docexam/internal/session"
	"github.com/mind-engage/docexam/internal/storage"
)

// Deps is everything the handlers need. Library and Blobs may be nil, which
// disables the library routes and upload archiving respectively.
type Deps struct {
	Config   config.Config
	Auth     *authmw.AuthService
	Sessions *session.Manager
	Results  results.Store
	Library  library.Store
	Blobs    storage.BlobStore
	Grader   grading.Grader
	Now      func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) maxUploadBytes() int64 {
	if d.Config.MaxUploadMB <= 0 {
		return 16 << 20
	}
	return d.Config.MaxUploadMB << 20
}

func NewRouter(d *Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(d.Auth, d.Sessions, d.Config))
	r.Post("/auth/guest", auth.GuestLoginHandler(d.Auth, d.Sessions, d.Library))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(d.Auth))

		pr.Post("/auth/logout", auth.LogoutHandler(d.Auth, d.Sessions))

		pr.With(rbac.Require("exam:create")).
			Post("/upload", UploadHandler(d))
		pr.With(rbac.Require("exam:view")).
			Get("/exam/data", ExamDataHandler(d))
		pr.With(rbac.Require("exam:submit")).
			Post("/exam/submit", SubmitHandler(d))

		pr.With(rbac.Require("results:view")).
			Get("/results", ListResultsHandler(d))
		pr.With(rbac.Require("results:export")).
			Get("/download/results", DownloadResultsHandler(d))
		pr.With(rbac.Require("results:clear")).
			Post("/results/clear", ClearResultsHandler(d))

		if d.Library != nil {
			pr.With(rbac.Require("library:write")).
				Post("/library/upload", LibraryUploadHandler(d))
			pr.With(rbac.Require("library:view")).
				Get("/library/list", LibraryListHandler(d))
			pr.With(rbac.Require("library:view")).
				Get("/library/file/{filename}", LibraryFileHandler(d))
			pr.With(rbac.Require("library:view")).
				Post("/library/set-exam", SetExamHandler(d))
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	return r
}
