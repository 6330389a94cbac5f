package storage

import (
	"context"
	"sync"

	"github.com/99minutos/bug-tracker/internal/core/domain"
)

// BugRepository keeps the bugs collection in the store. Each call re-reads
// the whole collection and mutations write it back whole. The mutex covers
// writers inside this process only.
type BugRepository struct {
	adapter *Adapter
	mu      sync.Mutex
}

func NewBugRepository(adapter *Adapter) *BugRepository {
	return &BugRepository{adapter: adapter}
}

func (r *BugRepository) List(ctx context.Context) ([]domain.Bug, error) {
	return r.adapter.LoadBugs(ctx)
}

func (r *BugRepository) Get(ctx context.Context, id string) (*domain.Bug, error) {
	bugs, err := r.adapter.LoadBugs(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(bugs, id); i >= 0 {
		return &bugs[i], nil
	}
	return nil, domain.ErrBugNotFound
}

func (r *BugRepository) Add(ctx context.Context, b domain.Bug) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bugs, err := r.adapter.LoadBugs(ctx)
	if err != nil {
		return err
	}
	if indexOf(bugs, b.ID) >= 0 {
		return domain.ErrDuplicateBug
	}
	return r.adapter.SaveBugs(ctx, append(bugs, b))
}

func (r *BugRepository) Update(ctx context.Context, b domain.Bug) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bugs, err := r.adapter.LoadBugs(ctx)
	if err != nil {
		return err
	}
	i := indexOf(bugs, b.ID)
	if i < 0 {
		return domain.ErrBugNotFound
	}
	bugs[i] = b
	return r.adapter.SaveBugs(ctx, bugs)
}

func (r *BugRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bugs, err := r.adapter.LoadBugs(ctx)
	if err != nil {
		return err
	}
	i := indexOf(bugs, id)
	if i < 0 {
		return domain.ErrBugNotFound
	}
	return r.adapter.SaveBugs(ctx, append(bugs[:i], bugs[i+1:]...))
}

func indexOf(bugs []domain.Bug, id string) int {
	for i := range bugs {
		if bugs[i].ID == id {
			return i
		}
	}
	return -1
}
