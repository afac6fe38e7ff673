package exam

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrNoExam       = errors.New("no exam data available")
	ErrInvalidInput = errors.New("invalid exam data")
	ErrExtraction   = errors.New("extraction failed")
)

// ExtractionFailed wraps a text-source or parser error as ErrExtraction.
func ExtractionFailed(cause error) error {
	return fmt.Errorf("%w: %w", ErrExtraction, cause)
}

func AnswerKeyFor(id int) string { return "q" + strconv.Itoa(id) }
