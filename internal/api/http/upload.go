package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mind-engage/docexam/internal/exam"
	"github.com/mind-engage/docexam/internal/formats"
	"github.com/mind-engage/docexam/internal/library"
	"github.com/mind-engage/docexam/internal/storage"
)

type upload struct {
	name string // sanitized
	data []byte
	src  formats.TextSource
}

// readUpload pulls the multipart "file" field and resolves its text source.
// On failure it has already written the response.
func readUpload(w http.ResponseWriter, r *http.Request, limit int64) (upload, bool) {
	if r.ContentLength > limit {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		return upload{}, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return upload{}, false
		}
		writeError(w, http.StatusBadRequest, "No file part")
		return upload{}, false
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file part")
		return upload{}, false
	}
	defer f.Close()
	if hdr.Filename == "" {
		writeError(w, http.StatusBadRequest, "No selected file")
		return upload{}, false
	}
	name := storage.SafeName(hdr.Filename)
	src, err := formats.ForFilename(name)
	if err != nil || name == "" {
		writeError(w, http.StatusBadRequest, "Invalid file type")
		return upload{}, false
	}
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file part")
		return upload{}, false
	}
	return upload{name: name, data: data, src: src}, true
}

// archive keeps a copy of the original upload when a blob store is set.
func (d *Deps) archive(key string, data []byte) (string, error) {
	if d.Blobs == nil {
		return "", nil
	}
	return d.Blobs.Put(key, bytes.NewReader(data))
}

func extractQuestions(ctx context.Context, u upload) ([]exam.Question, error) {
	text, err := u.src.Text(ctx, bytes.NewReader(u.data))
	if err != nil {
		return nil, exam.ExtractionFailed(err)
	}
	return exam.Extract(text), nil
}

// POST /upload  multipart "file" → caller's active exam
func UploadHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := readUpload(w, r, d.maxUploadBytes())
		if !ok {
			return
		}
		qs, err := extractQuestions(r.Context(), u)
		if err != nil {
			log.Error().Err(err).Str("filename", u.name).Msg("upload: extraction failed")
			writeExamError(w, err)
			return
		}
		if _, err := d.archive("uploads/"+u.name, u.data); err != nil {
			log.Error().Err(err).Str("filename", u.name).Msg("upload: store failed")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		s := d.sessionFor(r)
		s.SetExam(qs)
		log.Info().Str("filename", u.name).Int("questions", len(qs)).Str("session_id", s.ID).Msg("exam loaded from upload")
		writeJSON(w, http.StatusOK, map[string]any{
			"message":   "File uploaded successfully",
			"filename":  u.name,
			"questions": qs,
		})
	}
}

// discard removes a blob, logging instead of failing the request.
func (d *Deps) discard(key string) {
	if d.Blobs == nil || key == "" {
		return
	}
	if err := d.Blobs.Delete(key); err != nil {
		log.Warn().Err(err).Str("blob_key", key).Msg("blob cleanup failed")
	}
}

// POST /library/upload  multipart "file" → stored library document.
// Each upload gets its own blob key so a failed save never touches the
// original behind the document it would have replaced.
func LibraryUploadHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := readUpload(w, r, d.maxUploadBytes())
		if !ok {
			return
		}
		qs, err := extractQuestions(r.Context(), u)
		if err != nil {
			log.Error().Err(err).Str("filename", u.name).Msg("library: extraction failed")
			writeExamError(w, err)
			return
		}
		var previous string
		if old, err := d.Library.Get(r.Context(), u.name); err == nil {
			previous = old.BlobKey
		}
		key, err := d.archive("library/"+uuid.NewString()+"/"+u.name, u.data)
		if err != nil {
			log.Error().Err(err).Str("filename", u.name).Msg("library: store failed")
			writeError(w, http.StatusInternalServerError, "store error")
			return
		}
		doc := library.Document{
			Filename:   u.name,
			BlobKey:    key,
			Questions:  qs,
			UploadedAt: d.now().Format(timestampLayout),
		}
		if err := d.Library.Put(r.Context(), doc); err != nil {
			d.discard(key)
			log.Error().Err(err).Str("filename", u.name).Msg("library: save failed")
			writeError(w, http.StatusInternalServerError, "library save failed")
			return
		}
		if previous != key {
			d.discard(previous)
		}
		log.Info().Str("filename", u.name).Int("questions", len(qs)).Msg("library document stored")
		writeJSON(w, http.StatusOK, map[string]any{
			"message":   "Library file uploaded",
			"filename":  u.name,
			"questions": qs,
		})
	}
}
