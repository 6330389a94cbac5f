package ports

import (
	"context"

	"github.com/99minutos/bug-tracker/internal/core/domain"
)

// SessionService resolves identities and manages the active session.
type SessionService interface {
	Login(ctx context.Context, name, role string) (*domain.User, error)
	Logout(ctx context.Context) error
	Resume(ctx context.Context) (*domain.User, error)
}
