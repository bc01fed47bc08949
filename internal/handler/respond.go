// Package handler implements the HTTP endpoints. Every response uses the
// uniform envelope {success, data?, error?}; handlers receive their storage
// through the small store interfaces in stores.go so tests can substitute
// in-memory fakes.
package handler

import "github.com/labstack/echo/v4"

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	// Message carries an optional human-readable note next to the data,
	// used by the apply flow's toast handling.
	Message string `json:"message,omitempty"`
}

// respond writes a success envelope.
func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

// respondMessage writes a success envelope with a top-level message.
func respondMessage(c echo.Context, status int, data any, msg string) error {
	return c.JSON(status, envelope{Success: true, Data: data, Message: msg})
}

// fail writes a failure envelope.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, envelope{Success: false, Error: msg})
}
