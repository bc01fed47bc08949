package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/rantai-skena/booking-api/internal/model"
)

// MusicRepo manages `music` rows.
type MusicRepo struct {
	db *sql.DB
}

// NewMusicRepo constructs a MusicRepo.
func NewMusicRepo(db *sql.DB) *MusicRepo {
	return &MusicRepo{db: db}
}

const musicColumns = `id, artist_id, title, cover_url, spotify_url, youtube_url, other_url, created_at, updated_at`

// Create inserts a track owned by m.ArtistID and re-reads the row for
// DB-default timestamps.
func (r *MusicRepo) Create(ctx context.Context, m *model.Music) error {
	m.ID = uuid.NewString()
	const q = `INSERT INTO music (id, artist_id, title, cover_url, spotify_url, youtube_url, other_url)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		m.ID, m.ArtistID, m.Title, m.CoverURL, m.SpotifyURL, m.YoutubeURL, m.OtherURL); err != nil {
		return err
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+musicColumns+` FROM music WHERE id = ?`, m.ID)
	return row.Scan(&m.ID, &m.ArtistID, &m.Title, &m.CoverURL, &m.SpotifyURL,
		&m.YoutubeURL, &m.OtherURL, &m.CreatedAt, &m.UpdatedAt)
}

// ListByArtist returns the artist's tracks in creation order.
func (r *MusicRepo) ListByArtist(ctx context.Context, artistID string) ([]model.Music, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+musicColumns+` FROM music WHERE artist_id = ? ORDER BY created_at ASC`, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Music
	for rows.Next() {
		var m model.Music
		if err := rows.Scan(&m.ID, &m.ArtistID, &m.Title, &m.CoverURL, &m.SpotifyURL,
			&m.YoutubeURL, &m.OtherURL, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteByIDAndArtist removes a track only when owned by artistID; missing
// and foreign-owned rows are indistinguishable.
func (r *MusicRepo) DeleteByIDAndArtist(ctx context.Context, id, artistID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM music WHERE id = ? AND artist_id = ?`, id, artistID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMusicNotFound
	}
	return nil
}

// GalleryRepo manages `gallery_images` rows. Small enough to share a file
// with MusicRepo; both back the artist showcase endpoints.
type GalleryRepo struct {
	db *sql.DB
}

// NewGalleryRepo constructs a GalleryRepo.
func NewGalleryRepo(db *sql.DB) *GalleryRepo {
	return &GalleryRepo{db: db}
}

const galleryColumns = `id, artist_id, image_url, caption, created_at, updated_at`

// Create inserts a gallery image owned by g.ArtistID.
func (r *GalleryRepo) Create(ctx context.Context, g *model.GalleryImage) error {
	g.ID = uuid.NewString()
	const q = `INSERT INTO gallery_images (id, artist_id, image_url, caption) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, g.ID, g.ArtistID, g.ImageURL, g.Caption); err != nil {
		return err
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+galleryColumns+` FROM gallery_images WHERE id = ?`, g.ID)
	return row.Scan(&g.ID, &g.ArtistID, &g.ImageURL, &g.Caption, &g.CreatedAt, &g.UpdatedAt)
}

// ListByArtist returns the artist's gallery in creation order.
func (r *GalleryRepo) ListByArtist(ctx context.Context, artistID string) ([]model.GalleryImage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+galleryColumns+` FROM gallery_images WHERE artist_id = ? ORDER BY created_at ASC`, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.GalleryImage
	for rows.Next() {
		var g model.GalleryImage
		if err := rows.Scan(&g.ID, &g.ArtistID, &g.ImageURL, &g.Caption, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// DeleteByIDAndArtist removes an image only when owned by artistID.
func (r *GalleryRepo) DeleteByIDAndArtist(ctx context.Context, id, artistID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM gallery_images WHERE id = ? AND artist_id = ?`, id, artistID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrImageNotFound
	}
	return nil
}
