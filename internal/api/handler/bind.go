package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/bug-tracker/internal/api/middleware"
	"github.com/99minutos/bug-tracker/internal/core/domain"
)

// bindAndValidate decodes the request into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// sessionUser returns the user the Session middleware resolved.
func sessionUser(c echo.Context) (domain.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	return u, nil
}
