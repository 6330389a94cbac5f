package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/bug-tracker/internal/api/metrics"
	"github.com/99minutos/bug-tracker/internal/core/ports"
)

// Refresher is told when the bug collection changed. Pollers implement it.
type Refresher interface {
	Nudge()
}

// BugHandler handles HTTP requests for bug operations.
type BugHandler struct {
	service    ports.BugService
	refreshers []Refresher
}

func NewBugHandler(service ports.BugService, refreshers ...Refresher) *BugHandler {
	return &BugHandler{service: service, refreshers: refreshers}
}

func (h *BugHandler) changed() {
	for _, r := range h.refreshers {
		r.Nudge()
	}
}

// List handles GET /v1/bugs.
//
// @Summary      List bugs visible to the session user
// @Tags         bugs
// @Produce      json
// @Param        search    query     string  false  "Case-insensitive match on title or description"
// @Param        status    query     string  false  "all, reported, processing or completed"
// @Param        priority  query     string  false  "all, low, medium, high or critical"
// @Success      200       {object}  listBugsResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /v1/bugs [get]
func (h *BugHandler) List(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return err
	}
	var q listQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	bugs, err := h.service.ListBugs(c.Request().Context(), user, toListInput(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listBugsResponse{Items: toBugResponses(bugs), Total: len(bugs)})
}

// Report handles POST /v1/bugs.
//
// @Summary      Report a new bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string            false  "Repeated keys return the first report"
// @Param        body             body      reportBugRequest  true   "Bug report"
// @Success      201              {object}  reportBugResponse
// @Success      200              {object}  reportBugResponse  "Idempotent replay"
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      503              {object}  errorResponse
// @Router       /v1/bugs [post]
func (h *BugHandler) Report(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return err
	}
	var req reportBugRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	result, err := h.service.ReportBug(c.Request().Context(), user, toReportInput(req, idempotencyKey))
	if err != nil {
		return err
	}

	metrics.BugsReportedTotal.WithLabelValues(string(result.Bug.Priority), strconv.FormatBool(result.AlreadyExisted)).Inc()

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	} else {
		h.changed()
	}
	c.Response().Header().Set(echo.HeaderLocation, "/v1/bugs/"+result.Bug.ID)
	return c.JSON(status, reportBugResponse{
		Bug:            toBugResponse(result.Bug),
		AlreadyExisted: result.AlreadyExisted,
	})
}

// Transition handles PATCH /v1/bugs/:id/status.
//
// @Summary      Move a bug to another status
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Bug id"
// @Param        body  body      transitionRequest  true  "Target status"
// @Success      200   {object}  bugResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/bugs/{id}/status [patch]
func (h *BugHandler) Transition(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return err
	}
	var req transitionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	bug, err := h.service.TransitionBug(c.Request().Context(), user, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.BugTransitionsTotal.WithLabelValues(string(bug.Status)).Inc()
	h.changed()
	return c.JSON(http.StatusOK, toBugResponse(*bug))
}

// Delete handles DELETE /v1/bugs/:id.
//
// @Summary      Delete a bug
// @Tags         bugs
// @Param        id   path  string  true  "Bug id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/bugs/{id} [delete]
func (h *BugHandler) Delete(c echo.Context) error {
	user, err := sessionUser(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteBug(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}

	metrics.BugsDeletedTotal.Inc()
	h.changed()
	return c.NoContent(http.StatusNoContent)
}
