package model

import "time"

// Event mirrors the `events` table. AgentID is the owning agent and is
// immutable after creation; every mutating operation checks it. Unpublished
// events are visible only to their owner.
type Event struct {
	ID          string     `json:"id"`
	AgentID     string     `json:"agentId"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	Genres      []string   `json:"genres"`
	Description *string    `json:"description"`
	IsPublished bool       `json:"isPublished"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PublishedEvent is the public listing projection: the event joined with the
// owning agent's display name. No private agent data is exposed.
type PublishedEvent struct {
	Event
	AgentName string `json:"agentName"`
}
