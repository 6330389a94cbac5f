package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/bug-tracker/internal/core/domain"
	"github.com/99minutos/bug-tracker/internal/core/ports"
)

var (
	admin     = domain.User{ID: "1", Name: "Admin User", Role: domain.RoleAdmin}
	developer = domain.User{ID: "2", Name: "Dev User", Role: domain.RoleDeveloper}
	testNow   = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func newBugSvc(repo *stubBugRepo, ledger ports.SubmissionLedger, wf domain.Workflow) *BugService {
	svc := NewBugService(repo, ledger, BugServiceConfig{Workflow: wf}, zerolog.Nop())
	svc.newID = sequentialIDs()
	svc.now = fixedClock(testNow)
	return svc
}

func validReport() ports.ReportBugInput {
	return ports.ReportBugInput{
		Title:       "  Crash on save ",
		Description: "App crashes",
		Steps:       "1. Click save",
		Priority:    "high",
	}
}

// ---------------------------------------------------------------------------
// ReportBug
// ---------------------------------------------------------------------------

func TestReportBug_Success(t *testing.T) {
	repo := &stubBugRepo{bugs: []domain.Bug{{ID: "seed", Status: domain.StatusCompleted}}}
	svc := newBugSvc(repo, nil, domain.ForwardWorkflow)

	res, err := svc.ReportBug(context.Background(), admin, validReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := res.Bug
	if b.Status != domain.StatusReported {
		t.Errorf("expected reported, got %s", b.Status)
	}
	if b.ID == "" || b.ID == "seed" {
		t.Errorf("expected a fresh id, got %q", b.ID)
	}
	if !b.ReportedAt.Equal(testNow) {
		t.Errorf("reportedAt = %v, want %v", b.ReportedAt, testNow)
	}
	if b.Title != "Crash on save" {
		t.Errorf("title not trimmed: %q", b.Title)
	}
	if b.ReportedBy != admin.ID {
		t.Errorf("reportedBy = %q", b.ReportedBy)
	}
	if res.AlreadyExisted {
		t.Error("AlreadyExisted should be false")
	}

	list, _ := repo.List(context.Background())
	if len(list) != 2 || list[0].ID != "seed" || list[1].ID != b.ID {
		t.Errorf("expected prior bugs plus the new one, got %+v", list)
	}
}

func TestReportBug_UniqueIDs(t *testing.T) {
	repo := &stubBugRepo{}
	svc := newBugSvc(repo, nil, domain.ForwardWorkflow)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		res, err := svc.ReportBug(context.Background(), admin, validReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[res.Bug.ID] {
			t.Fatalf("duplicate id %q", res.Bug.ID)
		}
		seen[res.Bug.ID] = true
	}
}

func TestReportBug_DefaultPriority(t *testing.T) {
	svc := newBugSvc(&stubBugRepo{}, nil, domain.ForwardWorkflow)
	in := validReport()
	in.Priority = ""

	res, err := svc.ReportBug(context.Background(), admin, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Bug.Priority != domain.PriorityMedium {
		t.Errorf("expected medium, got %s", res.Bug.Priority)
	}
}

func TestReportBug_ValidationFirstMatchWins(t *testing.T) {
	cases := []struct {
		name  string
		input ports.ReportBugInput
		want  error
	}{
		{"all blank", ports.ReportBugInput{}, domain.ErrTitleRequired},
		{"title blank", ports.ReportBugInput{Title: "  ", Description: "d", Steps: "s"}, domain.ErrTitleRequired},
		{"description and steps blank", ports.ReportBugInput{Title: "t"}, domain.ErrDescriptionRequired},
		{"description blank", ports.ReportBugInput{Title: "t", Description: "\t", Steps: "s"}, domain.ErrDescriptionRequired},
		{"steps blank", ports.ReportBugInput{Title: "t", Description: "d", Steps: " "}, domain.ErrStepsRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubBugRepo{}
			svc := newBugSvc(repo, nil, domain.ForwardWorkflow)

			_, err := svc.ReportBug(context.Background(), admin, tc.input)
			if err != tc.want {
				t.Fatalf("expected exactly %v, got %v", tc.want, err)
			}
			if repo.adds != 0 {
				t.Errorf("repository mutated %d times", repo.adds)
			}
		})
	}
}

func TestReportBug_InvalidPriority(t *testing.T) {
	repo := &stubBugRepo{}
	svc := newBugSvc(repo, nil, domain.ForwardWorkflow)
	in := validReport()
	in.Priority = "urgent"

	_, err := svc.ReportBug(context.Background(), admin, in)
	if !errors.Is(err, domain.ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if repo.adds != 0 {
		t.Error("repository must not be touched")
	}
}

func TestReportBug_Forbidden(t *testing.T) {
	svc := newBugSvc(&stubBugRepo{}, nil, domain.ForwardWorkflow)
	_, err := svc.ReportBug(context.Background(), developer, validReport())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReportBug_StorageFailure(t *testing.T) {
	repo := &stubBugRepo{addErr: domain.ErrStorageUnavailable}
	svc := newBugSvc(repo, nil, domain.ForwardWorkflow)

	_, err := svc.ReportBug(context.Background(), admin, validReport())
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestReportBug_IdempotentReplay(t *testing.T) {
	repo := &stubBugRepo{}
	ledger := newStubLedger()
	svc := newBugSvc(repo, ledger, domain.ForwardWorkflow)
	in := validReport()
	in.IdempotencyKey = "form-1"

	first, err := svc.ReportBug(context.Background(), admin, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ReportBug(context.Background(), admin, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.AlreadyExisted || second.Bug.ID != first.Bug.ID {
		t.Errorf("expected replay of %q, got %+v", first.Bug.ID, second)
	}
	if repo.adds != 1 {
		t.Errorf("expected one stored bug, got %d", repo.adds)
	}
	if len(ledger.ttls) != 1 || ledger.ttls[0] != defaultSubmissionTTL {
		t.Errorf("unexpected ledger ttls %v", ledger.ttls)
	}
}

func TestReportBug_ConcurrentSameKeyStoresOnce(t *testing.T) {
	repo := &stubBugRepo{}
	ledger := newStubLedger()
	svc := newBugSvc(repo, ledger, domain.ForwardWorkflow)
	in := validReport()
	in.IdempotencyKey = "form-1"

	const n = 20
	results := make([]*ports.ReportBugResult, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.ReportBug(context.Background(), admin, in)
		}(i)
	}
	wg.Wait()

	if repo.adds != 1 {
		t.Fatalf("expected one stored bug, got %d", repo.adds)
	}
	fresh := 0
	for i := range results {
		if errs[i] != nil {
			t.Fatalf("report %d failed: %v", i, errs[i])
		}
		if results[i].Bug.ID != repo.bugs[0].ID {
			t.Errorf("report %d returned %q, want %q", i, results[i].Bug.ID, repo.bugs[0].ID)
		}
		if !results[i].AlreadyExisted {
			fresh++
		}
	}
	if fresh != 1 {
		t.Errorf("expected exactly one fresh report, got %d", fresh)
	}
}

func TestReportBug_IdempotencyKeyScopedToReporter(t *testing.T) {
	repo := &stubBugRepo{}
	ledger := newStubLedger()
	svc := newBugSvc(repo, ledger, domain.ForwardWorkflow)
	in := validReport()
	in.IdempotencyKey = "form-1"
	other := domain.User{ID: "9", Name: "Other Admin", Role: domain.RoleAdmin}

	a, _ := svc.ReportBug(context.Background(), admin, in)
	b, _ := svc.ReportBug(context.Background(), other, in)
	if a.Bug.ID == b.Bug.ID || b.AlreadyExisted {
		t.Errorf("different reporters must not share keys: %+v %+v", a, b)
	}
}

func TestReportBug_LedgerFailureDoesNotBlock(t *testing.T) {
	repo := &stubBugRepo{}
	ledger := newStubLedger()
	ledger.lookupErr = errors.New("redis down")
	svc := newBugSvc(repo, ledger, domain.ForwardWorkflow)
	in := validReport()
	in.IdempotencyKey = "form-1"

	if _, err := svc.ReportBug(context.Background(), admin, in); err != nil {
		t.Fatalf("expected report to proceed, got %v", err)
	}
	if repo.adds != 1 {
		t.Errorf("expected one stored bug, got %d", repo.adds)
	}
}

func TestReportBug_ReplayOfDeletedBugCreatesNew(t *testing.T) {
	repo := &stubBugRepo{}
	ledger := newStubLedger()
	ledger.entries["1:form-1"] = "gone"
	svc := newBugSvc(repo, ledger, domain.ForwardWorkflow)
	in := validReport()
	in.IdempotencyKey = "form-1"

	res, err := svc.ReportBug(context.Background(), admin, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AlreadyExisted {
		t.Error("a deleted bug must not be replayed")
	}
}

// ---------------------------------------------------------------------------
// TransitionBug
// ---------------------------------------------------------------------------

func TestTransitionBug_StampsVerificationOnce(t *testing.T) {
	repo := &stubBugRepo{bugs: []domain.Bug{{ID: "b1", Status: domain.StatusReported, ReportedBy: "1"}}}
	svc := newBugSvc(repo, nil, domain.ForwardWorkflow)

	got, err := svc.TransitionBug(context.Background(), developer, "b1", "processing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.VerifiedBy != developer.ID || got.VerifiedAt == nil || !got.VerifiedAt.Equal(testNow) {
		t.Fatalf("verification not stamped: %+v", got)
	}

	svc.now = fixedClock(testNow.Add(time.Hour))
	again, err := svc.TransitionBug(context.Background(), developer, "b1", "processing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.VerifiedAt.Equal(testNow) {
		t.Errorf("verifiedAt changed to %v", again.VerifiedAt)
	}
	if repo.bugs[0].Status != domain.StatusProcessing {
		t.Errorf("repository not updated: %+v", repo.bugs[0])
	}
}

func TestTransitionBug_ForwardRejectsBackward(t *testing.T) {
	repo := &stubBugRepo{bugs: []domain.Bug{{ID: "b1", Status: domain.StatusCompleted}}}
	svc := newBugSvc(repo, nil, domain.ForwardWorkflow)

	_, err := svc.TransitionBug(context.Background(), developer, "b1", "reported")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.updates != 0 {
		t.Error("repository must not be updated")
	}
}

func TestTransitionBug_PermissiveAllowsBackward(t *testing.T) {
	done := testNow.Add(-time.Hour)
	repo := &stubBugRepo{bugs: []domain.Bug{{ID: "b1", Status: domain.StatusCompleted, CompletedAt: &done}}}
	svc := newBugSvc(repo, nil, domain.PermissiveWorkflow)

	got, err := svc.TransitionBug(context.Background(), developer, "b1", "reported")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusReported || !got.CompletedAt.Equal(done) {
		t.Errorf("unexpected bug %+v", got)
	}
}

func TestTransitionBug_Errors(t *testing.T) {
	repo := &stubBugRepo{bugs: []domain.Bug{{ID: "b1", Status: domain.StatusReported}}}
	svc := newBugSvc(repo, nil, domain.ForwardWorkflow)
	ctx := context.Background()

	if _, err := svc.TransitionBug(ctx, admin, "b1", "processing"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("admin: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.TransitionBug(ctx, developer, "b1", "closed"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.TransitionBug(ctx, developer, "missing", "processing"); !errors.Is(err, domain.ErrBugNotFound) {
		t.Errorf("expected ErrBugNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeleteBug
// ---------------------------------------------------------------------------

func TestDeleteBug(t *testing.T) {
	repo := &stubBugRepo{bugs: []domain.Bug{{ID: "b1"}, {ID: "b2"}}}
	svc := newBugSvc(repo, nil, domain.ForwardWorkflow)
	ctx := context.Background()

	if err := svc.DeleteBug(ctx, developer, "b1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteBug(ctx, admin, "b1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteBug(ctx, admin, "b1"); !errors.Is(err, domain.ErrBugNotFound) {
		t.Fatalf("expected ErrBugNotFound, got %v", err)
	}
	if len(repo.bugs) != 1 || repo.bugs[0].ID != "b2" {
		t.Errorf("unexpected remaining bugs %+v", repo.bugs)
	}
}

// ---------------------------------------------------------------------------
// ListBugs / Board
// ---------------------------------------------------------------------------

func viewFixture() *stubBugRepo {
	return &stubBugRepo{bugs: []domain.Bug{
		{ID: "a", Title: "Login fails", Priority: domain.PriorityHigh, Status: domain.StatusReported, ReportedBy: "1"},
		{ID: "b", Title: "Slow page", Priority: domain.PriorityLow, Status: domain.StatusProcessing, ReportedBy: "42"},
		{ID: "c", Title: "Typo", Priority: domain.PriorityLow, Status: domain.StatusCompleted, ReportedBy: "1"},
	}}
}

func TestListBugs_AdminSeesAll(t *testing.T) {
	svc := newBugSvc(viewFixture(), nil, domain.ForwardWorkflow)

	got, err := svc.ListBugs(context.Background(), admin, ports.ListBugsInput{Status: "all", Priority: "all"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0].ID != "a" || got[2].ID != "c" {
		t.Errorf("unexpected list %+v", got)
	}
}

func TestListBugs_DeveloperVisibility(t *testing.T) {
	svc := newBugSvc(viewFixture(), nil, domain.ForwardWorkflow)
	viewer := domain.User{ID: "42", Role: domain.RoleDeveloper}

	got, err := svc.ListBugs(context.Background(), viewer, ports.ListBugsInput{Priority: "all"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("expected only bug b, got %+v", got)
	}
}

func TestListBugs_InvalidFilters(t *testing.T) {
	svc := newBugSvc(viewFixture(), nil, domain.ForwardWorkflow)
	ctx := context.Background()

	if _, err := svc.ListBugs(ctx, admin, ports.ListBugsInput{Status: "open"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.ListBugs(ctx, admin, ports.ListBugsInput{Priority: "p0"}); !errors.Is(err, domain.ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestBoard_DeveloperTriagesAllBugs(t *testing.T) {
	repo := viewFixture()
	svc := newBugSvc(&stubBugRepo{}, nil, domain.ForwardWorkflow)

	board, err := svc.Board(context.Background(), repo, developer, ports.ListBugsInput{Priority: "low"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.Total() != 2 {
		t.Fatalf("expected 2 low-priority bugs, got %d", board.Total())
	}
	if board.Column(domain.StatusProcessing).Count() != 1 || board.Column(domain.StatusCompleted).Count() != 1 {
		t.Errorf("unexpected columns %+v", board.Columns)
	}
}

func TestBoard_SourceError(t *testing.T) {
	svc := newBugSvc(&stubBugRepo{}, nil, domain.ForwardWorkflow)
	src := &stubBugRepo{listErr: domain.ErrStorageCorrupt}

	_, err := svc.Board(context.Background(), src, admin, ports.ListBugsInput{})
	if !errors.Is(err, domain.ErrStorageCorrupt) {
		t.Fatalf("expected ErrStorageCorrupt, got %v", err)
	}
}
