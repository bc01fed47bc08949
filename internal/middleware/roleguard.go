package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rantai-skena/booking-api/internal/model"
	"github.com/rantai-skena/booking-api/internal/repository"
)

// RoleSelectPath is where callers without an assigned role are sent to
// finish onboarding.
const RoleSelectPath = "/register/role"

// AccountSource resolves an authenticated account id to its stored record.
// Satisfied by *repository.AccountRepo; tests substitute an in-memory fake.
type AccountSource interface {
	GetByID(ctx context.Context, id string) (model.Account, error)
}

// RequireRole returns the role guard. It runs after Auth, looks the account
// up (role is assigned post-registration, so it is not in the token), and
// enforces the allowed-roles set:
//
//   - account missing            -> 404 "user not found"
//   - role not yet assigned      -> 302 redirect to the role-selection page
//   - role outside the allow set -> 403
//
// With no roles given, any resolved role passes. On success the resolved
// principal (id + role) is stored in the context for handlers.
func RequireRole(accounts AccountSource, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := UserID(c)
			if id == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
			}
			acc, err := accounts.GetByID(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, repository.ErrAccountNotFound) {
					return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "user not found"})
				}
				c.Logger().Errorf("role guard: load account: %v", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "internal error"})
			}
			if acc.Role == nil {
				// The caller is authenticated but has not picked a role yet;
				// the client completes onboarding and retries.
				return c.Redirect(http.StatusFound, RoleSelectPath)
			}
			if len(allowed) > 0 && !allowed[*acc.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "forbidden: insufficient role"})
			}
			c.Set(ContextPrincipal, model.Principal{ID: acc.ID, Role: *acc.Role})
			return next(c)
		}
	}
}

// Principal returns the resolved caller stored by RequireRole. The bool is
// false when the guard did not run, which indicates a route wiring mistake.
func Principal(c echo.Context) (model.Principal, bool) {
	p, ok := c.Get(ContextPrincipal).(model.Principal)
	return p, ok
}
