package model

import "time"

// Application statuses. Transitions among the four are deliberately
// unrestricted: the owning agent can always override a previous decision.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// KnownStatus reports whether s is one of the four application statuses.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Application mirrors the `applications` table. The (EventID, ArtistID) pair
// is unique: applying twice converges to the same row.
type Application struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	ArtistID  string    `json:"artistId"`
	Status    string    `json:"status"`
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ArtistApplication is the "my applications" projection: an application
// joined with display fields of its event so the artist's dashboard can
// render without further lookups.
type ArtistApplication struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Message       *string   `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
	EventID       string    `json:"eventId"`
	EventName     string    `json:"eventName"`
	EventLocation string    `json:"eventLocation"`
	EventStartsAt time.Time `json:"eventStartsAt"`
	AgentID       string    `json:"agentId"`
}

// EventApplication is the per-event projection shown to the owning agent: an
// application joined with the applicant's display name and email.
type EventApplication struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Message     *string   `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
	ArtistID    string    `json:"artistId"`
	ArtistName  string    `json:"artistName"`
	ArtistEmail string    `json:"artistEmail"`
}
