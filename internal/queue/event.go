// Package queue defines the message payloads exchanged over the broker and
// the background consumer that turns them into notification log entries.
package queue

// Queue names used on the default exchange.
const (
	SubmittedQueue     = "application.submitted"
	StatusChangedQueue = "application.status_changed"
)

// ApplicationNotification is published when an artist files an application
// or an agent transitions its status. It carries enough for downstream
// consumers (notification senders, analytics) to act without querying the
// primary database.
type ApplicationNotification struct {
	ApplicationID string `json:"application_id"`
	EventID       string `json:"event_id"`
	ArtistID      string `json:"artist_id"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}
