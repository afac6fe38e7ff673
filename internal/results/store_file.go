package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mind-engage/docexam/internal/exam"
)

// FileStore keeps the log as one JSON array on disk. Every append is a
// read-modify-write, serialized by mu and published with an atomic rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = "exam_results.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Append(_ context.Context, r exam.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.read()
	if err != nil {
		// keep the unreadable file for inspection instead of overwriting it
		return err
	}
	return s.write(append(all, r))
}

func (s *FileStore) List(_ context.Context) ([]exam.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write([]exam.Result{})
}

func (s *FileStore) read() ([]exam.Result, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []exam.Result{}, nil
	}
	if err != nil {
		return nil, err
	}
	var out []exam.Result
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if out == nil {
		out = []exam.Result{}
	}
	return out, nil
}

func (s *FileStore) write(all []exam.Result) error {
	b, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".results-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
