package formats

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

func init() {
	Register(".txt", PlainText{})
	Register(".docx", Docx{})
}

// PlainText reads UTF-8 text as-is.
type PlainText struct{}

func (PlainText) Text(_ context.Context, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("text file is not valid UTF-8")
	}
	return strings.TrimPrefix(string(b), "\ufeff"), nil
}
