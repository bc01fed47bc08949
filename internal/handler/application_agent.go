package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rantai-skena/booking-api/internal/middleware"
	"github.com/rantai-skena/booking-api/internal/model"
	"github.com/rantai-skena/booking-api/internal/repository"
)

// ListForEvent handles GET /api/events/:id/applications (agent, owner):
// every application filed for one of the caller's events, joined with
// applicant display fields. The merged 404 covers both a missing event and
// someone else's event.
func (h *ApplicationHandler) ListForEvent(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx := c.Request().Context()
	eventID := c.Param("id")
	if _, err := h.Events.GetByIDAndAgent(ctx, eventID, p.ID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Event not found or not owned by you")
		}
		c.Logger().Errorf("list event applications: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	rows, err := h.Apps.ListByEvent(ctx, eventID)
	if err != nil {
		c.Logger().Errorf("list event applications: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	if rows == nil {
		rows = []model.EventApplication{}
	}
	return respond(c, http.StatusOK, rows)
}

type setStatusReq struct {
	Status string `json:"status"`
}

// SetStatus handles PATCH /api/applications/:id/status (agent, owner). The
// target must be one of the four known statuses; beyond that any transition
// is accepted, so the owning agent can always override an earlier decision.
func (h *ApplicationHandler) SetStatus(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if !model.KnownStatus(req.Status) {
		return fail(c, http.StatusBadRequest, "Invalid status")
	}
	app, err := h.Apps.UpdateStatusByAgent(c.Request().Context(), c.Param("id"), p.ID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return fail(c, http.StatusNotFound, "Application not found or forbidden")
		}
		c.Logger().Errorf("set status: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	if h.Notifier != nil {
		h.Notifier.ApplicationStatusChanged(c.Request().Context(), app)
	}
	return respond(c, http.StatusOK, app)
}
