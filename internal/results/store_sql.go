package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mind-engage/docexam/internal/exam"
)

type SQLStore struct {
	db *sql.DB
	mu sync.Mutex // single writer
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Append(ctx context.Context, r exam.Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (id, student_name, score, total, percentage, data, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.StudentName, r.Score, r.Total, r.Percentage, string(data), time.Now().Unix())
	return err
}

// List returns results in submission order. Rows that no longer decode are
// logged and skipped.
func (s *SQLStore) List(ctx context.Context) ([]exam.Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, data FROM results ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []exam.Result{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var r exam.Result
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			log.Warn().Err(err).Str("result_id", id).Msg("results: skipping undecodable row")
			continue
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `DELETE FROM results`)
	return err
}
