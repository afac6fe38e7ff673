package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	api "github.com/mind-engage/docexam/internal/api/http"
	auth "github.com/mind-engage/docexam/internal/auth/middleware"
	"github.com/mind-engage/docexam/internal/config"
	"github.com/mind-engage/docexam/internal/db"
	"github.com/mind-engage/docexam/internal/formats"
	"github.com/mind-engage/docexam/internal/grading"
	"github.com/mind-engage/docexam/internal/library"
	"github.com/mind-engage/docexam/internal/logger"
	"github.com/mind-engage/docexam/internal/results"
	"github.com/mind-engage/docexam/internal/session"
	"github.com/mind-engage/docexam/internal/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.Mode == config.ModeOffline)

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("db open failed")
	}

	var rs results.Store
	switch cfg.ResultsDriver {
	case "file":
		fs, err := results.NewFileStore(cfg.ResultsFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ResultsFile).Msg("results file store")
		}
		rs = fs
	default:
		rs = results.NewSQLStore(dbh)
	}

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("blob store")
	}

	if cfg.EnablePDF {
		if formats.PDFAvailable(cfg.PDFToTextPath) {
			formats.Register(".pdf", formats.PDF{Bin: cfg.PDFToTextPath})
		} else {
			log.Warn().Str("bin", cfg.PDFToTextPath).Msg("pdftotext not found; .pdf uploads disabled")
		}
	}

	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)
	grader := grading.NewDefaultGrader(
		grading.WithMCQThreshold(cfg.GradeMCQThreshold),
		grading.WithFillBlankThreshold(cfg.GradeFillBlankThreshold),
		grading.WithDescriptiveThreshold(cfg.GradeDescriptiveThreshold),
		grading.WithMaxAnswerRunes(int(cfg.MaxAnswerChars)),
	)
	deps := &api.Deps{
		Config:   cfg,
		Auth:     authSvc,
		Sessions: session.NewManager(authSvc.TTL()),
		Results:  rs,
		Library:  library.NewSQLStore(dbh),
		Blobs:    bs,
		Grader:   grader,
	}

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("mode", string(cfg.Mode)).
		Str("db", cfg.DBDriver).
		Str("results", cfg.ResultsDriver).
		Strs("formats", formats.Extensions()).
		Msg("listening")
	if err := s.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
