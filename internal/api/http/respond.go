package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/mind-engage/docexam/internal/exam"
	"github.com/mind-engage/docexam/internal/formats"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody decodes JSON into dst and validates its struct tags. Failures
// are reported as exam.ErrInvalidInput.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(exam.ErrInvalidInput, err)
	}
	if err := validate.Struct(dst); err != nil {
		return errors.Join(exam.ErrInvalidInput, err)
	}
	return nil
}

// writeExamError maps domain errors onto HTTP statuses.
func writeExamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, formats.ErrUnsupported):
		writeError(w, http.StatusBadRequest, "Invalid file type")
	case errors.Is(err, exam.ErrExtraction):
		cause := strings.TrimPrefix(err.Error(), exam.ErrExtraction.Error()+": ")
		writeError(w, http.StatusInternalServerError, "Extraction failed: "+cause)
	case errors.Is(err, exam.ErrNoExam):
		writeError(w, http.StatusBadRequest, "No exam data available")
	case errors.Is(err, exam.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid exam data")
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
