package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/bug-tracker/internal/core/domain"
	"github.com/99minutos/bug-tracker/internal/core/ports"
	"github.com/99minutos/bug-tracker/pkg/idx"
)

// SessionService resolves a (name, role) pair to a user and keeps track of
// the active session.
type SessionService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	newID    func() string
	log      zerolog.Logger

	// serialises the lookup-or-create in Login
	mu sync.Mutex
}

func NewSessionService(users ports.UserRepository, sessions ports.SessionStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		users:    users,
		sessions: sessions,
		newID:    idx.New,
		log:      log,
	}
}

// Login validates the form input, reuses the user whose name matches
// case-insensitively with the same role, or creates one. The resolved user
// becomes the current session.
func (s *SessionService) Login(ctx context.Context, name, role string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.resolve(ctx, name, r)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.sessions.SetCurrent(ctx, *user); err != nil {
		return nil, fmt.Errorf("login: set session: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return user, nil
}

func (s *SessionService) resolve(ctx context.Context, name string, role domain.Role) (*domain.User, error) {
	existing, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range existing {
		if u.Matches(name, role) {
			found := u
			return &found, nil
		}
	}

	user := domain.User{ID: s.newID(), Name: name, Role: role}
	if err := s.users.Add(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user created")
	return &user, nil
}

// Logout clears the current session. Users and bugs are left untouched.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Resume returns the persisted session user, or domain.ErrNoSession.
func (s *SessionService) Resume(ctx context.Context) (*domain.User, error) {
	u, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	if u == nil {
		return nil, domain.ErrNoSession
	}
	return u, nil
}
