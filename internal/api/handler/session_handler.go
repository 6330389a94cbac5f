package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/bug-tracker/internal/api/metrics"
	"github.com/99minutos/bug-tracker/internal/core/ports"
)

// SessionHandler exposes login, logout and session resume.
type SessionHandler struct {
	service ports.SessionService
}

func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Login handles POST /v1/session.
//
// @Summary      Log in by name and role
// @Description  Reuses the user with the same name (case-insensitive) and role, or creates one.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Name and role"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/session [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Login(c.Request().Context(), req.Name, req.Role)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusOK, toUserResponse(*user))
}

// Current handles GET /v1/session.
//
// @Summary      Resume the active session
// @Tags         session
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	user, err := h.service.Resume(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(*user))
}

// Logout handles DELETE /v1/session.
//
// @Summary      End the active session
// @Tags         session
// @Success      204
// @Router       /v1/session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
