// Package repository contains the database/sql data access layer. Sentinel
// errors defined here let handlers map storage outcomes onto HTTP responses
// without string matching.
//
// Ownership is folded into the SQL predicates: a lookup scoped to the caller
// that matches nothing yields the same not-found sentinel whether the row is
// absent or owned by someone else. Handlers surface both as one merged 404 so
// the API never leaks which resources exist.
package repository

import "errors"

// ErrAccountNotFound is returned when no account row matches the given id.
var ErrAccountNotFound = errors.New("account not found")

// ErrEventNotFound is returned when an event does not exist or, for
// owner-scoped operations, is not owned by the caller.
var ErrEventNotFound = errors.New("event not found")

// ErrApplicationNotFound is returned when an application does not exist or
// its parent event is not owned by the caller.
var ErrApplicationNotFound = errors.New("application not found")

// ErrProfileNotFound is returned when an account has no profile row yet.
var ErrProfileNotFound = errors.New("profile not found")

// ErrMusicNotFound is returned for missing or foreign-owned music rows.
var ErrMusicNotFound = errors.New("music not found")

// ErrImageNotFound is returned for missing or foreign-owned gallery rows.
var ErrImageNotFound = errors.New("gallery image not found")
