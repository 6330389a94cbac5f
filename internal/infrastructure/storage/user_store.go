package storage

import (
	"context"
	"sync"

	"github.com/99minutos/bug-tracker/internal/core/domain"
)

// UserStore keeps the append-only users collection and the current-session
// pointer.
type UserStore struct {
	adapter *Adapter
	mu      sync.Mutex
}

func NewUserStore(adapter *Adapter) *UserStore {
	return &UserStore{adapter: adapter}
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	return s.adapter.LoadUsers(ctx)
}

func (s *UserStore) Add(ctx context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.adapter.LoadUsers(ctx)
	if err != nil {
		return err
	}
	return s.adapter.SaveUsers(ctx, append(users, u))
}

func (s *UserStore) Current(ctx context.Context) (*domain.User, error) {
	return s.adapter.LoadCurrentUser(ctx)
}

func (s *UserStore) SetCurrent(ctx context.Context, u domain.User) error {
	return s.adapter.SaveCurrentUser(ctx, u)
}

func (s *UserStore) Clear(ctx context.Context) error {
	return s.adapter.ClearCurrentUser(ctx)
}
