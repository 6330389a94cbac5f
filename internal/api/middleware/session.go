package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/bug-tracker/internal/core/domain"
)

// userKey is the echo context key holding the session user.
const userKey = "user"

// SessionResumer returns the active session user.
type SessionResumer interface {
	Resume(ctx context.Context) (*domain.User, error)
}

// Session resolves the current session user and injects it into context.
// Requests without a session are rejected with 401.
func Session(sessions SessionResumer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := sessions.Resume(c.Request().Context())
			if err != nil {
				if errors.Is(err, domain.ErrNoSession) {
					return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
				}
				return err
			}
			SetUser(c, *u)
			return next(c)
		}
	}
}

// SetUser stores u as the request's session user.
func SetUser(c echo.Context, u domain.User) {
	c.Set(userKey, u)
}

// CurrentUser returns the session user injected by Session.
func CurrentUser(c echo.Context) (domain.User, bool) {
	u, ok := c.Get(userKey).(domain.User)
	return u, ok
}
