// Package model defines the entities stored by the booking API. These structs
// mirror the tables in schema.sql and carry the JSON shapes returned to
// clients. Repository and handler layers share them; joined read projections
// get their own types next to the entity they project.
package model

import "time"

// Roles an account can hold. A freshly registered account has no role; the
// role guard redirects such callers to onboarding until one is assigned.
const (
	RoleArtist = "artist"
	RoleAgent  = "agent"
)

// Account mirrors the `accounts` table. Rows are created by the external
// identity provider; this service reads them and assigns Role exactly once.
// Role is a pointer because NULL means "onboarding incomplete", which is a
// state the role guard must distinguish from any concrete role.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     *string   `json:"image"`
	Role      *string   `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Principal is the resolved caller attached to the request context by the
// role guard: an account id plus its concrete role. Handlers receive it
// explicitly instead of re-reading ambient session state.
type Principal struct {
	ID   string
	Role string
}
