package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/bug-tracker/internal/core/domain"
	"github.com/99minutos/bug-tracker/internal/core/ports"
)

// refreshTimer is implemented by feeds that know when they were last refreshed.
type refreshTimer interface {
	RefreshedAt() time.Time
}

// BoardHandler serves the per-role dashboards from their polled snapshots.
type BoardHandler struct {
	service  ports.BugService
	feeds    map[domain.Role]ports.BugLister
	fallback ports.BugLister
}

// NewBoardHandler returns a BoardHandler. Roles without a feed read from fallback.
func NewBoardHandler(service ports.BugService, feeds map[domain.Role]ports.BugLister, fallback ports.BugLister) *BoardHandler {
	return &BoardHandler{service: service, feeds: feeds, fallback: fallback}
}

// Board handles GET /v1/bugs/board.
//
// @Summary      Status board for the session user's dashboard
// @Description  Bugs grouped into reported, processing and completed columns with counts.
// @Tags         bugs
// @Produce      json
// @Param        search    query     string  false  "Case-insensitive match on title or description"
// @Param        status    query     string  false  "all, reported, processing or completed"
// @Param        priority  query     string  false  "all, low, medium, high or critical"
// @Success      200       {object}  boardResponse
// @Failure      401       {object}  errorResponse
// @Failure      503       {object}  errorResponse
// @Router       /v1/bugs/board [get]
func (h *BoardHandler) Board(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return err
	}
	var q listQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	source, ok := h.feeds[user.Role]
	if !ok {
		source = h.fallback
	}

	board, err := h.service.Board(c.Request().Context(), source, user, toListInput(q))
	if err != nil {
		return err
	}

	var refreshedAt time.Time
	if rt, ok := source.(refreshTimer); ok {
		refreshedAt = rt.RefreshedAt()
	}
	return c.JSON(http.StatusOK, toBoardResponse(user.Role, board, refreshedAt))
}
