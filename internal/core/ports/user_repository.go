package ports

import (
	"context"

	"github.com/99minutos/bug-tracker/internal/core/domain"
)

// UserRepository persists the append-only users collection.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Add(ctx context.Context, u domain.User) error
}

// SessionStore persists the current-session pointer.
type SessionStore interface {
	// Current returns nil without error when nobody is logged in.
	Current(ctx context.Context) (*domain.User, error)
	SetCurrent(ctx context.Context, u domain.User) error
	Clear(ctx context.Context) error
}
