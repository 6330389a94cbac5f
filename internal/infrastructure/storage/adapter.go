// Package storage maps the users, bugs and current-session collections onto
// fixed keys of a ports.KVStore. Every value is a JSON document rewritten
// whole on each save.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/bug-tracker/internal/core/domain"
	"github.com/99minutos/bug-tracker/internal/core/ports"
)

// Fixed storage keys.
const (
	KeyUsers       = "bug_tracker_users"
	KeyBugs        = "bug_tracker_bugs"
	KeyCurrentUser = "bug_tracker_current_user"
)

// Adapter is the typed load/save layer over a KVStore.
type Adapter struct {
	kv  ports.KVStore
	now func() time.Time
	log zerolog.Logger
}

func NewAdapter(kv ports.KVStore, log zerolog.Logger) *Adapter {
	return &Adapter{
		kv:  kv,
		now: func() time.Time { return time.Now().UTC() },
		log: log,
	}
}

// LoadUsers returns the stored users, or an empty slice when none are stored.
func (a *Adapter) LoadUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if _, err := a.load(ctx, KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (a *Adapter) SaveUsers(ctx context.Context, users []domain.User) error {
	return a.save(ctx, KeyUsers, nonNil(users))
}

// LoadBugs returns the stored bugs in stored order, or an empty slice.
func (a *Adapter) LoadBugs(ctx context.Context) ([]domain.Bug, error) {
	bugs := []domain.Bug{}
	if _, err := a.load(ctx, KeyBugs, &bugs); err != nil {
		return nil, err
	}
	return bugs, nil
}

func (a *Adapter) SaveBugs(ctx context.Context, bugs []domain.Bug) error {
	return a.save(ctx, KeyBugs, nonNil(bugs))
}

// LoadCurrentUser returns nil when no session is stored.
func (a *Adapter) LoadCurrentUser(ctx context.Context) (*domain.User, error) {
	var u domain.User
	found, err := a.load(ctx, KeyCurrentUser, &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (a *Adapter) SaveCurrentUser(ctx context.Context, u domain.User) error {
	return a.save(ctx, KeyCurrentUser, u)
}

func (a *Adapter) ClearCurrentUser(ctx context.Context) error {
	if err := a.kv.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("delete %s: %w: %w", KeyCurrentUser, domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Ping checks the underlying store.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.kv.Ping(ctx)
}

func (a *Adapter) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, found, err := a.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w: %w", key, domain.ErrStorageUnavailable, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		a.log.Error().Err(err).Str("key", key).Msg("stored content is not valid JSON")
		return false, fmt.Errorf("load %s: %w: %w", key, domain.ErrStorageCorrupt, err)
	}
	return true, nil
}

func (a *Adapter) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w: %w", key, domain.ErrStorageUnavailable, err)
	}
	return nil
}

// nonNil keeps an empty collection stored as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
