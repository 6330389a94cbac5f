package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/bug-tracker/internal/api/middleware"
	"github.com/99minutos/bug-tracker/internal/core/domain"
	"github.com/99minutos/bug-tracker/internal/core/ports"
)

type stubSessionService struct {
	loginFn  func(ctx context.Context, name, role string) (*domain.User, error)
	logoutFn func(ctx context.Context) error
	resumeFn func(ctx context.Context) (*domain.User, error)
}

func (s *stubSessionService) Login(ctx context.Context, name, role string) (*domain.User, error) {
	return s.loginFn(ctx, name, role)
}

func (s *stubSessionService) Logout(ctx context.Context) error {
	return s.logoutFn(ctx)
}

func (s *stubSessionService) Resume(ctx context.Context) (*domain.User, error) {
	return s.resumeFn(ctx)
}

type stubBugService struct {
	reportFn     func(ctx context.Context, reporter domain.User, in ports.ReportBugInput) (*ports.ReportBugResult, error)
	transitionFn func(ctx context.Context, actor domain.User, id, status string) (*domain.Bug, error)
	deleteFn     func(ctx context.Context, actor domain.User, id string) error
	listFn       func(ctx context.Context, viewer domain.User, in ports.ListBugsInput) ([]domain.Bug, error)
	boardFn      func(ctx context.Context, source ports.BugLister, viewer domain.User, in ports.ListBugsInput) (domain.Board, error)
}

func (s *stubBugService) ReportBug(ctx context.Context, reporter domain.User, in ports.ReportBugInput) (*ports.ReportBugResult, error) {
	return s.reportFn(ctx, reporter, in)
}

func (s *stubBugService) TransitionBug(ctx context.Context, actor domain.User, id, status string) (*domain.Bug, error) {
	return s.transitionFn(ctx, actor, id, status)
}

func (s *stubBugService) DeleteBug(ctx context.Context, actor domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubBugService) ListBugs(ctx context.Context, viewer domain.User, in ports.ListBugsInput) ([]domain.Bug, error) {
	return s.listFn(ctx, viewer, in)
}

func (s *stubBugService) Board(ctx context.Context, source ports.BugLister, viewer domain.User, in ports.ListBugsInput) (domain.Board, error) {
	return s.boardFn(ctx, source, viewer, in)
}

type countingRefresher struct{ nudges int }

func (r *countingRefresher) Nudge() { r.nudges++ }

type staticFeed struct {
	bugs []domain.Bug
	at   time.Time
}

func (f staticFeed) List(context.Context) ([]domain.Bug, error) { return f.bugs, nil }
func (f staticFeed) RefreshedAt() time.Time                     { return f.at }

var (
	adminUser = domain.User{ID: "1", Name: "Admin User", Role: domain.RoleAdmin}
	devUser   = domain.User{ID: "2", Name: "Dev User", Role: domain.RoleDeveloper}
)

// newTestContext builds an echo context with the validator registered and,
// when user is non-nil, a resolved session.
func newTestContext(method, target string, body io.Reader, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetUser(c, *user)
	}
	return c, rec
}
