package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rantai-skena/booking-api/internal/middleware"
	"github.com/rantai-skena/booking-api/internal/model"
	"github.com/rantai-skena/booking-api/internal/repository"
)

// Toast strings surfaced to the client after an apply. Kept verbatim from
// the product copy (Indonesian).
const (
	toastAlreadyApplied = "Kamu sudah pernah apply ke event ini!"
	toastApplied        = "Berhasil apply ke event ini!"
)

// ApplicationHandler bundles the application workflow endpoints for both
// roles. Notifier may be nil when the broker is not configured.
type ApplicationHandler struct {
	Apps     ApplicationStore
	Events   EventStore
	Notifier Notifier
}

// NewApplicationHandler constructs an ApplicationHandler.
func NewApplicationHandler(apps ApplicationStore, events EventStore, notifier Notifier) *ApplicationHandler {
	return &ApplicationHandler{Apps: apps, Events: events, Notifier: notifier}
}

type applyReq struct {
	EventID string  `json:"eventId"`
	Message *string `json:"message"`
}

// applyResp is the apply payload: the application plus a toast for the UI.
type applyResp struct {
	model.Application
	ToastMessage string `json:"toastMessage"`
}

// Apply handles POST /api/applications (artist only). Applying is
// idempotent: a repeat apply for the same event returns the existing
// application with HTTP 200 and the "already applied" toast instead of a
// duplicate row. Races between two first-time applies are settled by the
// store's uniqueness guarantee; the loser also takes the repeat path.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req applyReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.EventID == "" {
		return fail(c, http.StatusBadRequest, "eventId is required")
	}
	ctx := c.Request().Context()
	if _, err := h.Events.GetByID(ctx, req.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return fail(c, http.StatusNotFound, "Event not found")
		}
		c.Logger().Errorf("apply: load event: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}

	app, created, err := h.Apps.CreateOrGet(ctx, req.EventID, p.ID, req.Message)
	if err != nil {
		c.Logger().Errorf("apply: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	if !created {
		return respond(c, http.StatusOK, applyResp{Application: app, ToastMessage: toastAlreadyApplied})
	}
	if h.Notifier != nil {
		h.Notifier.ApplicationSubmitted(ctx, app)
	}
	return respondMessage(c, http.StatusCreated,
		applyResp{Application: app, ToastMessage: toastApplied}, toastApplied)
}

// ListMine handles GET /api/applications/my (artist only): the caller's
// applications joined with event display fields, in creation order.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	rows, err := h.Apps.ListByArtist(c.Request().Context(), p.ID)
	if err != nil {
		c.Logger().Errorf("list my applications: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	if rows == nil {
		rows = []model.ArtistApplication{}
	}
	return respond(c, http.StatusOK, rows)
}
