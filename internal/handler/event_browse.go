package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rantai-skena/booking-api/internal/middleware"
	"github.com/rantai-skena/booking-api/internal/model"
	"github.com/rantai-skena/booking-api/internal/repository"
)

// ListEvents handles GET /api/events for any resolved role: agents see their
// own events (published or not), artists see the published listing. An
// authenticated caller with a role never gets an error here, only possibly
// an empty list.
func (h *EventHandler) ListEvents(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx := c.Request().Context()
	if p.Role == model.RoleAgent {
		events, err := h.Events.ListByAgent(ctx, p.ID)
		if err != nil {
			c.Logger().Errorf("list events: %v", err)
			return fail(c, http.StatusInternalServerError, "internal error")
		}
		if events == nil {
			events = []model.Event{}
		}
		return respond(c, http.StatusOK, events)
	}
	published, err := h.Events.ListPublished(ctx)
	if err != nil {
		c.Logger().Errorf("list events: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	if published == nil {
		published = []model.PublishedEvent{}
	}
	return respond(c, http.StatusOK, published)
}

// ListPublicEvents handles GET /api/events/public with no authentication:
// the published listing shown to guests. Served through the response cache.
func (h *EventHandler) ListPublicEvents(c echo.Context) error {
	published, err := h.Events.ListPublished(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list public events: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	if published == nil {
		published = []model.PublishedEvent{}
	}
	return respond(c, http.StatusOK, published)
}

// GetEvent handles GET /api/events/:id for any resolved role. Detail is not
// ownership-guarded: apply flows need the event before an application
// exists, so unpublished events are visible here too.
func (h *EventHandler) GetEvent(c echo.Context) error {
	if _, ok := middleware.Principal(c); !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	detail, err := h.Events.GetDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Not found")
		}
		c.Logger().Errorf("event detail: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusOK, detail)
}
