package repository

import (
	"context"
	"fmt"

	"github.com/yooku98/sales-dashboard/internal/domain"
)

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// SnapshotRepository persists the canonical record set. It is the single
// writer target for every mutation path: uploads replace, validated manual
// entries append, clear empties. The snapshot survives process restarts.
type SnapshotRepository interface {
	// Replace swaps the entire record set for a new one
	Replace(ctx context.Context, records []domain.Record) error

	// Append adds a single record to the end of the set
	Append(ctx context.Context, record domain.Record) error

	// Clear empties the record set unconditionally
	Clear(ctx context.Context) error

	// Read returns the current record set in stored order
	Read(ctx context.Context) ([]domain.Record, error)

	// Exists reports whether a persisted snapshot has ever been written.
	// An empty set written by Clear still counts as existing, so a cleared
	// store is not re-seeded on the next startup.
	Exists(ctx context.Context) (bool, error)
}
