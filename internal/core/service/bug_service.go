package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/bug-tracker/internal/core/domain"
	"github.com/99minutos/bug-tracker/internal/core/ports"
	"github.com/99minutos/bug-tracker/pkg/idx"
)

const defaultSubmissionTTL = time.Hour

// BugServiceConfig tunes the lifecycle rules of a BugService.
type BugServiceConfig struct {
	Workflow      domain.Workflow
	SubmissionTTL time.Duration
}

// BugService implements reporting, triage and the filtered views over bugs.
type BugService struct {
	repo     ports.BugRepository
	ledger   ports.SubmissionLedger
	workflow domain.Workflow
	ttl      time.Duration
	newID    func() string
	now      func() time.Time
	log      zerolog.Logger

	// serialises read-check-write of a transition so stamps land once
	mu sync.Mutex
	// serialises lookup, add and remember of keyed submissions
	submitMu sync.Mutex
}

// NewBugService returns a BugService. ledger may be nil, which disables
// idempotent submissions.
func NewBugService(repo ports.BugRepository, ledger ports.SubmissionLedger, cfg BugServiceConfig, log zerolog.Logger) *BugService {
	if cfg.Workflow.Name() == "" {
		cfg.Workflow = domain.ForwardWorkflow
	}
	if cfg.SubmissionTTL <= 0 {
		cfg.SubmissionTTL = defaultSubmissionTTL
	}
	return &BugService{
		repo:     repo,
		ledger:   ledger,
		workflow: cfg.Workflow,
		ttl:      cfg.SubmissionTTL,
		newID:    idx.New,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// ReportBug validates and stores a new bug in status reported. Exactly one
// validation error is returned, checked in title, description, steps order.
// A repeated IdempotencyKey from the same reporter returns the first bug.
func (s *BugService) ReportBug(ctx context.Context, reporter domain.User, in ports.ReportBugInput) (*ports.ReportBugResult, error) {
	if !reporter.Role.Capabilities().CanReportBugs {
		return nil, fmt.Errorf("report bug: %w", domain.ErrForbidden)
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	steps := strings.TrimSpace(in.Steps)
	switch {
	case title == "":
		return nil, domain.ErrTitleRequired
	case description == "":
		return nil, domain.ErrDescriptionRequired
	case steps == "":
		return nil, domain.ErrStepsRequired
	}
	priority, err := domain.ParsePriority(in.Priority)
	if err != nil {
		return nil, fmt.Errorf("report bug: %w", err)
	}

	ledgerKey := ""
	if in.IdempotencyKey != "" && s.ledger != nil {
		ledgerKey = reporter.ID + ":" + in.IdempotencyKey
		s.submitMu.Lock()
		defer s.submitMu.Unlock()
		if prior, ok := s.replay(ctx, ledgerKey); ok {
			return &ports.ReportBugResult{Bug: *prior, AlreadyExisted: true}, nil
		}
	}

	bug := domain.Bug{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		Steps:       steps,
		Priority:    priority,
		Status:      domain.StatusReported,
		ReportedBy:  reporter.ID,
		ReportedAt:  s.now(),
	}
	if err := s.repo.Add(ctx, bug); err != nil {
		s.log.Error().Err(err).Str("bug_id", bug.ID).Msg("failed to store bug")
		return nil, fmt.Errorf("report bug: %w", err)
	}

	if ledgerKey != "" {
		if err := s.ledger.Remember(ctx, ledgerKey, bug.ID, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("bug_id", bug.ID).Msg("failed to record submission key")
		}
	}

	s.log.Info().
		Str("bug_id", bug.ID).
		Str("priority", string(bug.Priority)).
		Str("reported_by", reporter.ID).
		Msg("bug reported")

	return &ports.ReportBugResult{Bug: bug}, nil
}

// replay returns the bug an earlier submission with the same key produced.
// Ledger trouble never blocks a report.
func (s *BugService) replay(ctx context.Context, key string) (*domain.Bug, bool) {
	id, err := s.ledger.Lookup(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("submission ledger lookup failed, reporting anyway")
		return nil, false
	}
	if id == "" {
		return nil, false
	}
	prior, err := s.repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrBugNotFound) {
			s.log.Warn().Err(err).Str("bug_id", id).Msg("failed to load replayed bug")
		}
		return nil, false
	}
	s.log.Info().Str("bug_id", id).Msg("idempotent replay")
	return prior, true
}

// TransitionBug moves a bug to a new status if the workflow allows it,
// stamping verification and completion the first time they apply.
func (s *BugService) TransitionBug(ctx context.Context, actor domain.User, id, status string) (*domain.Bug, error) {
	if !actor.Role.Capabilities().CanTransitionBugs {
		return nil, fmt.Errorf("transition bug: %w", domain.ErrForbidden)
	}
	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("transition bug: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("transition bug: %w", err)
	}
	if !s.workflow.CanTransition(current.Status, to) {
		return nil, fmt.Errorf("transition bug: %w (from %s to %s)", domain.ErrInvalidTransition, current.Status, to)
	}

	next := domain.ApplyTransition(*current, to, actor.ID, s.now())
	if err := s.repo.Update(ctx, next); err != nil {
		return nil, fmt.Errorf("transition bug: update: %w", err)
	}

	s.log.Info().
		Str("bug_id", id).
		Str("from", string(current.Status)).
		Str("to", string(to)).
		Str("actor", actor.ID).
		Msg("bug transitioned")
	return &next, nil
}

// DeleteBug removes a bug by id.
func (s *BugService) DeleteBug(ctx context.Context, actor domain.User, id string) error {
	if !actor.Role.Capabilities().CanDeleteBugs {
		return fmt.Errorf("delete bug: %w", domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete bug: %w", err)
	}
	s.log.Info().Str("bug_id", id).Str("actor", actor.ID).Msg("bug deleted")
	return nil
}

// ListBugs returns the bugs visible to viewer that match the query, in
// stored order.
func (s *BugService) ListBugs(ctx context.Context, viewer domain.User, in ports.ListBugsInput) ([]domain.Bug, error) {
	q, err := buildQuery(in)
	if err != nil {
		return nil, fmt.Errorf("list bugs: %w", err)
	}
	q.Viewer = &domain.Viewer{ID: viewer.ID, Role: viewer.Role}

	bugs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bugs: %w", err)
	}
	return domain.View(bugs, q), nil
}

// Board groups a snapshot from source into status columns. Roles that triage
// see every bug; the rest get the list visibility rule.
func (s *BugService) Board(ctx context.Context, source ports.BugLister, viewer domain.User, in ports.ListBugsInput) (domain.Board, error) {
	q, err := buildQuery(in)
	if err != nil {
		return domain.Board{}, fmt.Errorf("board: %w", err)
	}
	caps := viewer.Role.Capabilities()
	if !caps.CanSeeAllBugs && !caps.CanTransitionBugs {
		q.Viewer = &domain.Viewer{ID: viewer.ID, Role: viewer.Role}
	}

	bugs, err := source.List(ctx)
	if err != nil {
		return domain.Board{}, fmt.Errorf("board: %w", err)
	}
	return domain.Partition(domain.View(bugs, q)), nil
}

func buildQuery(in ports.ListBugsInput) (domain.ViewQuery, error) {
	q := domain.ViewQuery{
		Search:   in.Search,
		Status:   strings.TrimSpace(in.Status),
		Priority: strings.TrimSpace(in.Priority),
	}
	if q.Status != "" && q.Status != domain.FilterAll {
		if _, err := domain.ParseStatus(q.Status); err != nil {
			return q, err
		}
	}
	if q.Priority != "" && q.Priority != domain.FilterAll {
		if !domain.Priority(q.Priority).IsValid() {
			return q, domain.ErrInvalidPriority
		}
	}
	return q, nil
}
