// Package poller keeps a periodically refreshed snapshot of the bug
// collection, one per dashboard.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/bug-tracker/internal/core/domain"
	"github.com/99minutos/bug-tracker/internal/core/ports"
)

// Poller re-reads the full bug collection on a fixed interval and serves the
// cached copy. It implements ports.BugLister.
type Poller struct {
	name     string
	source   ports.BugLister
	interval time.Duration
	log      zerolog.Logger

	// OnRefresh, when set, is called after every refresh attempt.
	OnRefresh func(name string, err error)

	mu          sync.RWMutex
	snapshot    []domain.Bug
	loaded      bool
	lastErr     error
	refreshedAt time.Time

	nudge chan struct{}
	done  chan struct{}
}

// New returns a Poller named after the dashboard it feeds.
func New(name string, source ports.BugLister, interval time.Duration, log zerolog.Logger) *Poller {
	return &Poller{
		name:     name,
		source:   source,
		interval: interval,
		log:      log.With().Str("poller", name).Logger(),
		nudge:    make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start refreshes once, then launches the refresh loop. The loop stops when
// ctx is cancelled; Done is closed afterwards.
func (p *Poller) Start(ctx context.Context) {
	_ = p.Refresh(ctx)
	go p.run(ctx)
}

// Done is closed once the refresh loop has exited.
func (p *Poller) Done() <-chan struct{} { return p.done }

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info().Dur("interval", p.interval).Msg("poller started")
	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("poller stopped")
			return
		case <-ticker.C:
			_ = p.Refresh(ctx)
		case <-p.nudge:
			_ = p.Refresh(ctx)
		}
	}
}

// Refresh re-reads the source now. On failure the previous snapshot is kept
// but List reports the error until a refresh succeeds.
func (p *Poller) Refresh(ctx context.Context) error {
	bugs, err := p.source.List(ctx)

	p.mu.Lock()
	if err == nil {
		p.snapshot = bugs
		p.loaded = true
		p.refreshedAt = time.Now()
	}
	p.lastErr = err
	p.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		p.log.Warn().Err(err).Msg("refresh failed")
	}
	if p.OnRefresh != nil {
		p.OnRefresh(p.name, err)
	}
	return err
}

// Nudge asks the loop for an immediate refresh without blocking.
func (p *Poller) Nudge() {
	select {
	case p.nudge <- struct{}{}:
	default:
	}
}

// List returns a copy of the cached snapshot. Before the first successful
// refresh it reads the source directly.
func (p *Poller) List(ctx context.Context) ([]domain.Bug, error) {
	p.mu.RLock()
	loaded, lastErr := p.loaded, p.lastErr
	p.mu.RUnlock()

	if !loaded {
		if err := p.Refresh(ctx); err != nil {
			return nil, err
		}
	} else if lastErr != nil {
		return nil, lastErr
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.Bug, len(p.snapshot))
	copy(out, p.snapshot)
	return out, nil
}

// RefreshedAt reports when the snapshot was last replaced.
func (p *Poller) RefreshedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.refreshedAt
}

// Name returns the dashboard name.
func (p *Poller) Name() string { return p.name }
