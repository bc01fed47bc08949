// Package middleware provides the request gates every guarded endpoint runs
// through: bearer-token authentication, the role guard, the Redis response
// cache and the Redis rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys written by the middleware chain and read by handlers.
const (
	// ContextUserID holds the authenticated account id (JWT subject).
	ContextUserID = "user_id"
	// ContextPrincipal holds the model.Principal set by the role guard.
	ContextPrincipal = "principal"
)

// Auth returns a middleware that validates a Bearer session token issued by
// the identity provider and stores its subject (the account id) in the
// context. The secret must match the one the provider signs with. Only
// identity is established here; role resolution is the role guard's job.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Reject any signing method other than HMAC before trusting
				// the claims.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
			}
			c.Set(ContextUserID, sub)
			return next(c)
		}
	}
}

// UserID returns the authenticated account id stored by Auth, or "" when the
// request is unauthenticated (public routes behind the rate limiter).
func UserID(c echo.Context) string {
	if s, ok := c.Get(ContextUserID).(string); ok {
		return s
	}
	return ""
}
