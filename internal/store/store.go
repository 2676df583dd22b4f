// Package store holds the Book repository adapters and the factory that
// selects one from a connection URI.
package store

import (
	"context"
	"fmt"
	"time"

	"bookshelf/internal/book"
)

// DefaultTimeout bounds a single store operation when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Store is a book.Repository that owns a connection.
type Store interface {
	book.Repository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", book.ErrStoreUnavailable, op, err)
}

type assignment struct {
	column string
	value  any
}

// patchAssignments lists the columns a patch writes, in a fixed order.
// Null year/genre become SQL NULL; null title/author become "".
func patchAssignments(p book.Patch) []assignment {
	var out []assignment
	if p.Title.Present {
		out = append(out, assignment{"title", p.Title.ValueOr("")})
	}
	if p.Author.Present {
		out = append(out, assignment{"author", p.Author.ValueOr("")})
	}
	if p.Year.Present {
		out = append(out, assignment{"year", nullable(p.Year.Value)})
	}
	if p.Genre.Present {
		out = append(out, assignment{"genre", nullable(p.Genre.Value)})
	}
	return out
}

func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
