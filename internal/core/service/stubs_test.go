package service

import (
	"context"
	"fmt"
	"time"

	"github.com/99minutos/bug-tracker/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubBugRepo struct {
	bugs    []domain.Bug
	addErr  error // if set, Add returns this error
	listErr error // if set, List and Get return this error
	adds    int
	updates int
}

func (r *stubBugRepo) List(_ context.Context) ([]domain.Bug, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Bug, len(r.bugs))
	copy(out, r.bugs)
	return out, nil
}

func (r *stubBugRepo) Get(_ context.Context, id string) (*domain.Bug, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	for _, b := range r.bugs {
		if b.ID == id {
			clone := b
			return &clone, nil
		}
	}
	return nil, domain.ErrBugNotFound
}

func (r *stubBugRepo) Add(_ context.Context, b domain.Bug) error {
	if r.addErr != nil {
		return r.addErr
	}
	for _, existing := range r.bugs {
		if existing.ID == b.ID {
			return domain.ErrDuplicateBug
		}
	}
	r.adds++
	r.bugs = append(r.bugs, b)
	return nil
}

func (r *stubBugRepo) Update(_ context.Context, b domain.Bug) error {
	for i := range r.bugs {
		if r.bugs[i].ID == b.ID {
			r.updates++
			r.bugs[i] = b
			return nil
		}
	}
	return domain.ErrBugNotFound
}

func (r *stubBugRepo) Delete(_ context.Context, id string) error {
	for i := range r.bugs {
		if r.bugs[i].ID == id {
			r.bugs = append(r.bugs[:i], r.bugs[i+1:]...)
			return nil
		}
	}
	return domain.ErrBugNotFound
}

type stubUserRepo struct {
	users  []domain.User
	addErr error
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), r.users...), nil
}

func (r *stubUserRepo) Add(_ context.Context, u domain.User) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.users = append(r.users, u)
	return nil
}

type stubSessions struct {
	current *domain.User
	setErr  error
}

func (s *stubSessions) Current(_ context.Context) (*domain.User, error) {
	if s.current == nil {
		return nil, nil
	}
	u := *s.current
	return &u, nil
}

func (s *stubSessions) SetCurrent(_ context.Context, u domain.User) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.current = &u
	return nil
}

func (s *stubSessions) Clear(_ context.Context) error {
	s.current = nil
	return nil
}

type stubLedger struct {
	entries   map[string]string
	lookupErr error
	ttls      []time.Duration
}

func newStubLedger() *stubLedger {
	return &stubLedger{entries: make(map[string]string)}
}

func (l *stubLedger) Lookup(_ context.Context, key string) (string, error) {
	if l.lookupErr != nil {
		return "", l.lookupErr
	}
	return l.entries[key], nil
}

func (l *stubLedger) Remember(_ context.Context, key, bugID string, ttl time.Duration) error {
	l.entries[key] = bugID
	l.ttls = append(l.ttls, ttl)
	return nil
}

// sequentialIDs returns an id generator yielding "id-1", "id-2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
