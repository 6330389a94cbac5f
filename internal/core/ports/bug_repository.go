package ports

import (
	"context"

	"github.com/99minutos/bug-tracker/internal/core/domain"
)

// BugLister returns a full snapshot of the bug collection in stored order.
type BugLister interface {
	List(ctx context.Context) ([]domain.Bug, error)
}

// BugRepository defines persistence operations for bugs. Every call re-reads
// the whole collection; mutations write it back whole.
type BugRepository interface {
	BugLister
	Get(ctx context.Context, id string) (*domain.Bug, error)
	// Add appends b. It fails with domain.ErrDuplicateBug when the id is taken.
	Add(ctx context.Context, b domain.Bug) error
	// Update replaces the bug with the same id, or fails with domain.ErrBugNotFound.
	Update(ctx context.Context, b domain.Bug) error
	// Delete removes the bug with the given id, or fails with domain.ErrBugNotFound.
	Delete(ctx context.Context, id string) error
}
