package formats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// TextSource turns one uploaded document format into plain text. The question
// extractor only ever sees the returned string.
type TextSource interface {
	Text(ctx context.Context, r io.Reader) (string, error)
}

var ErrUnsupported = errors.New("unsupported file type")

// Registry of text sources by lower-case file extension (".txt", ".docx").
var (
	mu       sync.RWMutex
	registry = map[string]TextSource{}
)

// Register a text source. Built-in formats register from init(); optional
// ones (pdf) are registered by the server when configured.
func Register(ext string, s TextSource) {
	mu.Lock()
	defer mu.Unlock()
	registry[normExt(ext)] = s
}

// Lookup returns the registered source for an extension.
func Lookup(ext string) (TextSource, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[normExt(ext)]
	return s, ok
}

// ForFilename picks the source by the filename's extension.
func ForFilename(name string) (TextSource, error) {
	ext := filepath.Ext(name)
	if s, ok := Lookup(ext); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
}

// Extensions lists registered extensions, sorted.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
