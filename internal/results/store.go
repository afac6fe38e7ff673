package results

import (
	"context"

	"github.com/mind-engage/docexam/internal/exam"
)

// Store is the append-only results log. Clear is the only way to remove
// entries and it removes all of them.
type Store interface {
	Append(ctx context.Context, r exam.Result) error
	List(ctx context.Context) ([]exam.Result, error)
	Clear(ctx context.Context) error
}
