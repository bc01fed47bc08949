package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rantai-skena/booking-api/internal/middleware"
	"github.com/rantai-skena/booking-api/internal/model"
	"github.com/rantai-skena/booking-api/internal/repository"
)

// AuthHandler covers role assignment and introspection. Registration, login
// and session issuance live in the external identity provider; the only
// account mutation owned by this service is the one-time role pick during
// onboarding.
type AuthHandler struct {
	Accounts AccountStore
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(accounts AccountStore) *AuthHandler {
	return &AuthHandler{Accounts: accounts}
}

type setRoleReq struct {
	Role string `json:"role"`
}

// SetRole handles PUT /api/auth/role: assigns the caller's role. Runs behind
// Auth only (not the role guard), because the caller has no role yet.
func (h *AuthHandler) SetRole(c echo.Context) error {
	id := middleware.UserID(c)
	if id == "" {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req setRoleReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Role != model.RoleArtist && req.Role != model.RoleAgent {
		return fail(c, http.StatusBadRequest, "Invalid role")
	}
	acc, err := h.Accounts.SetRole(c.Request().Context(), id, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		c.Logger().Errorf("set role: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusOK, acc)
}

// GetRole handles GET /api/auth/role: returns the caller's account with its
// current role (possibly null while onboarding is unfinished).
func (h *AuthHandler) GetRole(c echo.Context) error {
	id := middleware.UserID(c)
	if id == "" {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	acc, err := h.Accounts.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		c.Logger().Errorf("get role: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return respond(c, http.StatusOK, acc)
}
