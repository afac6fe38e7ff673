package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/mind-engage/docexam/internal/exam"
)

var ErrNotFound = errors.New("library document not found")

// Document is one uploaded file and the questions extracted from it.
// Filename is the sanitized upload name and doubles as the key.
type Document struct {
	Filename   string          `json:"filename"`
	BlobKey    string          `json:"-"`
	Questions  []exam.Question `json:"questions"`
	UploadedAt string          `json:"uploaded_at"`
}

type Store interface {
	Put(ctx context.Context, d Document) error
	Get(ctx context.Context, filename string) (Document, error)
	List(ctx context.Context) ([]Document, error)
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Put stores d, replacing any document with the same filename.
func (s *SQLStore) Put(ctx context.Context, d Document) error {
	qj, err := json.Marshal(d.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO library_docs (filename,blob_key,questions_json,uploaded_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (filename) DO UPDATE SET blob_key=EXCLUDED.blob_key, questions_json=EXCLUDED.questions_json, uploaded_at=EXCLUDED.uploaded_at`,
		d.Filename, d.BlobKey, string(qj), d.UploadedAt)
	return err
}

func (s *SQLStore) Get(ctx context.Context, filename string) (Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT filename,blob_key,questions_json,uploaded_at FROM library_docs WHERE filename=$1`, filename)
	d, err := scanDoc(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return d, err
}

// List returns documents ordered by filename.
func (s *SQLStore) List(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filename,blob_key,questions_json,uploaded_at FROM library_docs ORDER BY filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Document{}
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDoc(sc scanner) (Document, error) {
	var d Document
	var qjson string
	if err := sc.Scan(&d.Filename, &d.BlobKey, &qjson, &d.UploadedAt); err != nil {
		return Document{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &d.Questions); err != nil {
		return Document{}, err
	}
	if d.Questions == nil {
		d.Questions = []exam.Question{}
	}
	return d, nil
}
