package model

import "time"

// Music mirrors the `music` table: a track an artist showcases on their
// profile, linking out to streaming platforms.
type Music struct {
	ID         string    `json:"id"`
	ArtistID   string    `json:"artistId"`
	Title      string    `json:"title"`
	CoverURL   *string   `json:"coverUrl"`
	SpotifyURL *string   `json:"spotifyUrl"`
	YoutubeURL *string   `json:"youtubeUrl"`
	OtherURL   *string   `json:"otherUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// GalleryImage mirrors `gallery_images`. The image itself lives on the
// external media host; only its URL is stored here.
type GalleryImage struct {
	ID        string    `json:"id"`
	ArtistID  string    `json:"artistId"`
	ImageURL  string    `json:"imageUrl"`
	Caption   *string   `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
