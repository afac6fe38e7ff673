package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string
	LogLevel string

	DBDriver string
	DBDSN    string

	ResultsDriver string // sql|file
	ResultsFile   string

	BlobBasePath string

	AdminUser      string
	AdminPassHash  string // bcrypt
	AuthHMACSecret string

	CORSOrigins []string

	MaxUploadMB int64

	// Pass marks in (0,1]; zero keeps the grader's built-in value.
	GradeMCQThreshold         float64
	GradeFillBlankThreshold   float64
	GradeDescriptiveThreshold float64
	MaxAnswerChars            int64 // 0 keeps the grader's default

	EnablePDF     bool
	PDFToTextPath string
}

// Load reads an optional .env file and then the process environment.
// Values already set in the environment win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file, using process environment")
	}
	return FromEnv()
}

func FromEnv() Config {
	mode := Mode(envOr("MODE", string(ModeOffline)))
	defOrigins := "http://localhost:3000"
	if mode == ModeOnline {
		defOrigins = ""
	}
	return Config{
		Mode:           mode,
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		ResultsDriver:  envOr("RESULTS_DRIVER", "sql"),
		ResultsFile:    envOr("RESULTS_FILE", "./data/exam_results.json"),
		BlobBasePath:   envOr("BLOB_BASE_PATH", "./data"),
		AdminUser:      envOr("ADMIN_USER", "admin"),
		AdminPassHash:  envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		CORSOrigins:    csvOr("CORS_ORIGINS", defOrigins),
		MaxUploadMB:    envInt("MAX_UPLOAD_MB", 16),

		GradeMCQThreshold:         envRatio("GRADE_MCQ_THRESHOLD"),
		GradeFillBlankThreshold:   envRatio("GRADE_FILL_BLANK_THRESHOLD"),
		GradeDescriptiveThreshold: envRatio("GRADE_DESCRIPTIVE_THRESHOLD"),
		MaxAnswerChars:            envInt("MAX_ANSWER_CHARS", 0),

		EnablePDF:      envBool("ENABLE_PDF", true),
		PDFToTextPath:  envOr("PDFTOTEXT_PATH", "pdftotext"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int64) int64 {
	n, err := strconv.ParseInt(os.Getenv(k), 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
// envRatio reads a value in (0,1]; anything else yields 0.
func envRatio(k string) float64 {
	f, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil || f <= 0 || f > 1 {
		return 0
	}
	return f
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
