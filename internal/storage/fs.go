package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrBadKey = errors.New("invalid blob key")

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// path resolves key under base and rejects keys escaping it. rel is the
// cleaned key.
func (s *FSStore) path(key string) (full, rel string, err error) {
	if key == "" {
		return "", "", ErrBadKey
	}
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	rel = strings.TrimPrefix(clean, string(filepath.Separator))
	if rel == "" || rel == "." {
		return "", "", ErrBadKey
	}
	return filepath.Join(s.base, rel), rel, nil
}

// Put writes to a temp file in the target directory and renames it into
// place, so readers never observe a partial upload.
func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	dst, rel, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(filepath.Dir(dst), ".put-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(f.Name(), dst); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	p, _, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (s *FSStore) Delete(key string) error {
	p, _, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
