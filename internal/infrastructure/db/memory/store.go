// Package memory provides process-local implementations of the storage
// ports. State is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"
)

// Store is a map-backed KVStore.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Ledger is a SubmissionLedger whose entries expire lazily on lookup.
type Ledger struct {
	mu      sync.Mutex
	entries map[string]ledgerEntry
	now     func() time.Time
}

type ledgerEntry struct {
	bugID   string
	expires time.Time
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]ledgerEntry), now: time.Now}
}

func (l *Ledger) Lookup(_ context.Context, key string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		return "", nil
	}
	if !e.expires.After(l.now()) {
		delete(l.entries, key)
		return "", nil
	}
	return e.bugID, nil
}

func (l *Ledger) Remember(_ context.Context, key, bugID string, ttl time.Duration) error {
	l.mu.Lock()
	l.entries[key] = ledgerEntry{bugID: bugID, expires: l.now().Add(ttl)}
	l.mu.Unlock()
	return nil
}
