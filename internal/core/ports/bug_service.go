package ports

import (
	"context"

	"github.com/99minutos/bug-tracker/internal/core/domain"
)

// ReportBugInput is the DTO passed from the transport layer to BugService.
type ReportBugInput struct {
	Title          string
	Description    string
	Steps          string
	Priority       string
	IdempotencyKey string
}

// ReportBugResult is returned after a report is accepted.
type ReportBugResult struct {
	Bug domain.Bug
	// AlreadyExisted is true when the idempotency key matched an earlier report.
	AlreadyExisted bool
}

// ListBugsInput carries the query parameters of a bug view.
type ListBugsInput struct {
	Search   string
	Status   string
	Priority string
}

// BugService defines the bug lifecycle use cases.
type BugService interface {
	ReportBug(ctx context.Context, reporter domain.User, input ReportBugInput) (*ReportBugResult, error)
	TransitionBug(ctx context.Context, actor domain.User, id, status string) (*domain.Bug, error)
	DeleteBug(ctx context.Context, actor domain.User, id string) error
	ListBugs(ctx context.Context, viewer domain.User, input ListBugsInput) ([]domain.Bug, error)
	// Board groups a snapshot from source into status columns.
	Board(ctx context.Context, source BugLister, viewer domain.User, input ListBugsInput) (domain.Board, error)
}
