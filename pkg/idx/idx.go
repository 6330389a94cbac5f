// Package idx generates the opaque identifiers assigned to users and bugs.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

// Generator hands out ULIDs that are unique and strictly increasing within
// the process, even when several are requested in the same millisecond.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewGenerator returns a Generator stamped by the wall clock.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Next returns a fresh id.
func (g *Generator) Next() string {
	return g.NextAt(g.now())
}

// NextAt returns a fresh id carrying timestamp t.
func (g *Generator) NextAt(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

var (
	globalOnce sync.Once
	global     *Generator
)

// New returns an id from the process-wide generator.
func New() string {
	globalOnce.Do(func() { global = NewGenerator() })
	return global.Next()
}

// Parse validates a ULID string. Seed records use short numeric ids, so
// callers only use this for ids they generated.
func Parse(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return "", ErrInvalid
	}
	return s, nil
}

// Time extracts the embedded timestamp, or the zero time for invalid ids.
func Time(id string) time.Time {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
