package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rantai-skena/booking-api/internal/middleware"
	"github.com/rantai-skena/booking-api/internal/model"
	"github.com/rantai-skena/booking-api/internal/repository"
)

// Ownership failures on events use one merged message so the API never
// reveals whether another agent's event exists.
const msgEventNotYours = "Event not found or not yours"

// EventHandler bundles the event registry endpoints: agent-owned CRUD plus
// the role-aware read projections in event_browse.go.
type EventHandler struct {
	Events EventStore
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events EventStore) *EventHandler {
	return &EventHandler{Events: events}
}

type eventCreateReq struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	StartsAt    string   `json:"startsAt"`
	EndsAt      string   `json:"endsAt"`
	Genres      []string `json:"genres"`
	Description *string  `json:"description"`
	IsPublished *bool    `json:"isPublished"`
}

// parseEventTimes validates the RFC3339 date pair. endsAt is optional and,
// when present, must not precede startsAt (equal instants are allowed).
func parseEventTimes(startsAt, endsAt string) (time.Time, *time.Time, string) {
	start, err := time.Parse(time.RFC3339, startsAt)
	if err != nil {
		return time.Time{}, nil, "invalid startsAt format"
	}
	if endsAt == "" {
		return start, nil, ""
	}
	end, err := time.Parse(time.RFC3339, endsAt)
	if err != nil {
		return time.Time{}, nil, "invalid endsAt format"
	}
	if end.Before(start) {
		return time.Time{}, nil, "endsAt must not precede startsAt"
	}
	return start, &end, ""
}

// CreateEvent handles POST /api/events (agent only).
func (h *EventHandler) CreateEvent(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req eventCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" || req.Location == "" {
		return fail(c, http.StatusBadRequest, "name and location are required")
	}
	if strings.TrimSpace(req.StartsAt) == "" {
		return fail(c, http.StatusBadRequest, "startsAt is required")
	}
	start, end, msg := parseEventTimes(req.StartsAt, req.EndsAt)
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	ev := model.Event{
		AgentID:     p.ID,
		Name:        req.Name,
		Location:    req.Location,
		StartsAt:    start.UTC(),
		Genres:      req.Genres,
		Description: req.Description,
	}
	if end != nil {
		u := end.UTC()
		ev.EndsAt = &u
	}
	if req.IsPublished != nil {
		ev.IsPublished = *req.IsPublished
	}
	if err := h.Events.Create(c.Request().Context(), &ev); err != nil {
		c.Logger().Errorf("create event: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusCreated, ev)
}

type eventUpdateReq struct {
	Name        *string   `json:"name"`
	Location    *string   `json:"location"`
	StartsAt    *string   `json:"startsAt"`
	EndsAt      *string   `json:"endsAt"`
	Genres      *[]string `json:"genres"`
	Description *string   `json:"description"`
	IsPublished *bool     `json:"isPublished"`
}

// UpdateEvent handles PUT /api/events/:id (agent, owner). The patch is
// partial: absent fields keep their stored values; an empty endsAt string
// clears the end time.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req eventUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	ctx := c.Request().Context()
	ev, err := h.Events.GetByIDAndAgent(ctx, c.Param("id"), p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, msgEventNotYours)
		}
		c.Logger().Errorf("load event: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}

	if req.Name != nil {
		if *req.Name = strings.TrimSpace(*req.Name); *req.Name == "" {
			return fail(c, http.StatusBadRequest, "name must not be empty")
		}
		ev.Name = *req.Name
	}
	if req.Location != nil {
		if *req.Location = strings.TrimSpace(*req.Location); *req.Location == "" {
			return fail(c, http.StatusBadRequest, "location must not be empty")
		}
		ev.Location = *req.Location
	}
	if req.Genres != nil {
		ev.Genres = *req.Genres
	}
	if req.Description != nil {
		ev.Description = req.Description
	}
	if req.IsPublished != nil {
		ev.IsPublished = *req.IsPublished
	}
	if req.StartsAt != nil || req.EndsAt != nil {
		startsAt := ev.StartsAt.Format(time.RFC3339)
		if req.StartsAt != nil {
			startsAt = *req.StartsAt
		}
		endsAt := ""
		if req.EndsAt != nil {
			endsAt = *req.EndsAt
		} else if ev.EndsAt != nil {
			endsAt = ev.EndsAt.Format(time.RFC3339)
		}
		start, end, msg := parseEventTimes(startsAt, endsAt)
		if msg != "" {
			return fail(c, http.StatusBadRequest, msg)
		}
		ev.StartsAt = start.UTC()
		ev.EndsAt = nil
		if end != nil {
			u := end.UTC()
			ev.EndsAt = &u
		}
	}

	if err := h.Events.Update(ctx, &ev, p.ID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, msgEventNotYours)
		}
		c.Logger().Errorf("update event: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusOK, ev)
}

// DeleteEvent handles DELETE /api/events/:id (agent, owner). Deleting an
// event removes all of its applications in the same transaction.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	err := h.Events.DeleteByIDAndAgent(c.Request().Context(), c.Param("id"), p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, msgEventNotYours)
		}
		c.Logger().Errorf("delete event: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, envelope{Success: true})
}

// ListAgentEvents handles GET /api/agent/events: every event the caller
// owns, published or not.
func (h *EventHandler) ListAgentEvents(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	events, err := h.Events.ListByAgent(c.Request().Context(), p.ID)
	if err != nil {
		c.Logger().Errorf("list agent events: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	if events == nil {
		events = []model.Event{}
	}
	return respond(c, http.StatusOK, events)
}
