package http

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mind-engage/docexam/internal/exam"
	"github.com/mind-engage/docexam/internal/export"
)

// GET /results. A log that cannot be read is reported as empty.
func ListResultsHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs, err := d.Results.List(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("results: read failed")
			rs = []exam.Result{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": rs})
	}
}

// GET /download/results?format=json|csv
func DownloadResultsHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs, err := d.Results.List(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("download: read failed")
			writeError(w, http.StatusInternalServerError, "Error reading results")
			return
		}
		if len(rs) == 0 {
			writeError(w, http.StatusNotFound, "No results available")
			return
		}

		ext, ctype, write := "json", "application/json", export.JSON
		if strings.EqualFold(r.URL.Query().Get("format"), "csv") {
			ext, ctype, write = "csv", "text/csv", export.CSV
		}
		var buf bytes.Buffer
		if err := write(&buf, rs); err != nil {
			log.Error().Err(err).Str("format", ext).Msg("download: render failed")
			writeError(w, http.StatusInternalServerError, "Error exporting results")
			return
		}
		w.Header().Set("Content-Type", ctype)
		w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(d.now(), ext))
		_, _ = w.Write(buf.Bytes())
	}
}

// POST /results/clear truncates the whole log.
func ClearResultsHandler(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Results.Clear(r.Context()); err != nil {
			log.Error().Err(err).Msg("results: clear failed")
			writeError(w, http.StatusInternalServerError, "clear failed")
			return
		}
		log.Info().Msg("results cleared")
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
