package model

import "time"

// ArtistProfile mirrors `artist_profiles`. One row per artist account,
// upserted from the onboarding and profile-edit flows.
type ArtistProfile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StageName string    `json:"stageName"`
	City      *string   `json:"city"`
	Genre     *string   `json:"genre"`
	Bio       *string   `json:"bio"`
	Instagram *string   `json:"instagram"`
	Spotify   *string   `json:"spotify"`
	Youtube   *string   `json:"youtube"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AgentProfile mirrors `agent_profiles`. One row per agent account.
type AgentProfile struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	AgencyName   string    `json:"agencyName"`
	City         *string   `json:"city"`
	Bio          *string   `json:"bio"`
	Instagram    *string   `json:"instagram"`
	ContactEmail *string   `json:"contactEmail"`
	ContactPhone *string   `json:"contactPhone"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicArtist is the artist-directory projection: a profile joined with the
// account's display name and avatar.
type PublicArtist struct {
	ArtistProfile
	Name  string  `json:"name"`
	Image *string `json:"image"`
}
