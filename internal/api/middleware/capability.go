package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/bug-tracker/internal/core/domain"
)

// Capability selects one permission from a role's capability row.
type Capability func(domain.Capabilities) bool

var (
	CanReport     Capability = func(c domain.Capabilities) bool { return c.CanReportBugs }
	CanTransition Capability = func(c domain.Capabilities) bool { return c.CanTransitionBugs }
	CanDelete     Capability = func(c domain.Capabilities) bool { return c.CanDeleteBugs }
)

// RequireCapability lets the request through only when the session user's
// role grants want. It must run after Session.
func RequireCapability(want Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
			}
			if !want(u.Role.Capabilities()) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
			}
			return next(c)
		}
	}
}
