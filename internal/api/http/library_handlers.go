package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mind-engage/docexam/internal/exam"
	"github.com/mind-engage/docexam/internal/library"
)

// GET /library/list
func LibraryListHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := d.Library.List(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("library: list failed")
			docs = []library.Document{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"library": docs})
	}
}

type setExamRequest struct {
	Filename  string          `json:"filename" validate:"required_without=Questions,max=255"`
	Questions []exam.Question `json:"questions" validate:"required_without=Filename"`
}

// POST /library/set-exam {filename} or {questions} → caller's active exam
func SetExamHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setExamRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid data")
			return
		}
		qs := req.Questions
		if req.Filename != "" {
			doc, err := d.Library.Get(r.Context(), req.Filename)
			if errors.Is(err, library.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Library document not found")
				return
			}
			if err != nil {
				log.Error().Err(err).Str("filename", req.Filename).Msg("library: get failed")
				writeError(w, http.StatusInternalServerError, "library read failed")
				return
			}
			qs = doc.Questions
		}
		s := d.sessionFor(r)
		s.SetExam(qs)
		log.Info().Str("session_id", s.ID).Str("filename", req.Filename).Int("questions", len(qs)).Msg("exam loaded from library")
		writeJSON(w, http.StatusOK, map[string]any{"message": "Exam loaded from library", "count": len(qs)})
	}
}

// GET /library/file/{filename} streams the original document a library
// entry was extracted from.
func LibraryFileHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")
		doc, err := d.Library.Get(r.Context(), name)
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Library document not found")
			return
		}
		if err != nil {
			log.Error().Err(err).Str("filename", name).Msg("library: get failed")
			writeError(w, http.StatusInternalServerError, "library read failed")
			return
		}
		if d.Blobs == nil || doc.BlobKey == "" {
			writeError(w, http.StatusNotFound, "Original file not archived")
			return
		}
		rc, err := d.Blobs.Get(doc.BlobKey)
		if err != nil {
			log.Error().Err(err).Str("blob_key", doc.BlobKey).Msg("library: blob read failed")
			writeError(w, http.StatusNotFound, "Original file not archived")
			return
		}
		defer rc.Close()
		ctype := mime.TypeByExtension(path.Ext(doc.Filename))
		if ctype == "" {
			ctype = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ctype)
		w.Header().Set("Content-Disposition", "attachment; filename="+doc.Filename)
		if _, err := io.Copy(w, rc); err != nil {
			log.Warn().Err(err).Str("filename", doc.Filename).Msg("library: file stream interrupted")
		}
	}
}
