package handler

import (
	"context"

	"github.com/rantai-skena/booking-api/internal/model"
)

// The store interfaces mirror the repository layer one method per operation.
// Handlers accept interfaces and the concrete *Repo types satisfy them; the
// _test.go files provide mutex-guarded in-memory fakes.

// AccountStore resolves and updates accounts.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (model.Account, error)
	SetRole(ctx context.Context, id, role string) (model.Account, error)
}

// EventStore persists events and their read projections.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id string) (model.Event, error)
	GetByIDAndAgent(ctx context.Context, id, agentID string) (model.Event, error)
	ListByAgent(ctx context.Context, agentID string) ([]model.Event, error)
	ListPublished(ctx context.Context) ([]model.PublishedEvent, error)
	GetDetail(ctx context.Context, id string) (model.PublishedEvent, error)
	Update(ctx context.Context, e *model.Event, agentID string) error
	DeleteByIDAndAgent(ctx context.Context, id, agentID string) error
}

// ApplicationStore persists applications. CreateOrGet must be atomic with
// respect to the (event, artist) uniqueness constraint: concurrent calls for
// the same pair yield one row, and the second caller gets created=false.
type ApplicationStore interface {
	CreateOrGet(ctx context.Context, eventID, artistID string, message *string) (app model.Application, created bool, err error)
	ListByArtist(ctx context.Context, artistID string) ([]model.ArtistApplication, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.EventApplication, error)
	UpdateStatusByAgent(ctx context.Context, id, agentID, status string) (model.Application, error)
}

// ArtistProfileStore persists artist profiles and the public directory.
type ArtistProfileStore interface {
	GetByUser(ctx context.Context, userID string) (model.ArtistProfile, error)
	Upsert(ctx context.Context, p *model.ArtistProfile) error
	ListPublic(ctx context.Context, q, city string) ([]model.PublicArtist, error)
	GetPublicByUser(ctx context.Context, userID string) (model.PublicArtist, error)
}

// AgentProfileStore persists agent profiles.
type AgentProfileStore interface {
	GetByUser(ctx context.Context, userID string) (model.AgentProfile, error)
	Upsert(ctx context.Context, p *model.AgentProfile) error
}

// MusicStore persists an artist's showcased tracks.
type MusicStore interface {
	Create(ctx context.Context, m *model.Music) error
	ListByArtist(ctx context.Context, artistID string) ([]model.Music, error)
	DeleteByIDAndArtist(ctx context.Context, id, artistID string) error
}

// GalleryStore persists an artist's gallery images.
type GalleryStore interface {
	Create(ctx context.Context, g *model.GalleryImage) error
	ListByArtist(ctx context.Context, artistID string) ([]model.GalleryImage, error)
	DeleteByIDAndArtist(ctx context.Context, id, artistID string) error
}

// Notifier publishes workflow notifications to the broker. Implementations
// must be best-effort: a broker failure never fails the request.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, app model.Application)
	ApplicationStatusChanged(ctx context.Context, app model.Application)
}
