package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rantai-skena/booking-api/internal/model"
)

// ArtistProfileRepo manages `artist_profiles` rows, one per artist account.
type ArtistProfileRepo struct {
	db *sql.DB
}

// NewArtistProfileRepo constructs an ArtistProfileRepo.
func NewArtistProfileRepo(db *sql.DB) *ArtistProfileRepo {
	return &ArtistProfileRepo{db: db}
}

const artistProfileColumns = `id, user_id, stage_name, city, genre, bio, instagram, spotify, youtube, created_at, updated_at`

func scanArtistProfile(row *sql.Row) (model.ArtistProfile, error) {
	var p model.ArtistProfile
	err := row.Scan(&p.ID, &p.UserID, &p.StageName, &p.City, &p.Genre, &p.Bio,
		&p.Instagram, &p.Spotify, &p.Youtube, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ArtistProfile{}, ErrProfileNotFound
		}
		return model.ArtistProfile{}, err
	}
	return p, nil
}

// GetByUser fetches the profile owned by userID.
func (r *ArtistProfileRepo) GetByUser(ctx context.Context, userID string) (model.ArtistProfile, error) {
	return scanArtistProfile(r.db.QueryRowContext(ctx,
		`SELECT `+artistProfileColumns+` FROM artist_profiles WHERE user_id = ?`, userID))
}

// Upsert creates the profile on first save and overwrites it afterwards.
// The unique key on user_id carries the insert-or-update decision.
func (r *ArtistProfileRepo) Upsert(ctx context.Context, p *model.ArtistProfile) error {
	const q = `INSERT INTO artist_profiles (id, user_id, stage_name, city, genre, bio, instagram, spotify, youtube)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	               stage_name = VALUES(stage_name), city = VALUES(city), genre = VALUES(genre),
	               bio = VALUES(bio), instagram = VALUES(instagram), spotify = VALUES(spotify),
	               youtube = VALUES(youtube), updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, q,
		uuid.NewString(), p.UserID, p.StageName, p.City, p.Genre, p.Bio,
		p.Instagram, p.Spotify, p.Youtube); err != nil {
		return err
	}
	fresh, err := r.GetByUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	*p = fresh
	return nil
}

// ListPublic returns the artist directory: profiles joined with account
// display fields. q filters stage name or account name, city filters exactly.
func (r *ArtistProfileRepo) ListPublic(ctx context.Context, q, city string) ([]model.PublicArtist, error) {
	query := `SELECT p.id, p.user_id, p.stage_name, p.city, p.genre, p.bio,
	                 p.instagram, p.spotify, p.youtube, p.created_at, p.updated_at,
	                 a.name, a.image
	          FROM artist_profiles p
	          JOIN accounts a ON a.id = p.user_id`
	var conds []string
	var args []any
	if q != "" {
		conds = append(conds, `(p.stage_name LIKE ? OR a.name LIKE ?)`)
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if city != "" {
		conds = append(conds, `p.city = ?`)
		args = append(args, city)
	}
	for i, c := range conds {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	query += ` ORDER BY p.stage_name ASC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.PublicArtist
	for rows.Next() {
		var pa model.PublicArtist
		if err := rows.Scan(&pa.ID, &pa.UserID, &pa.StageName, &pa.City, &pa.Genre, &pa.Bio,
			&pa.Instagram, &pa.Spotify, &pa.Youtube, &pa.CreatedAt, &pa.UpdatedAt,
			&pa.Name, &pa.Image); err != nil {
			return nil, err
		}
		out = append(out, pa)
	}
	return out, rows.Err()
}

// GetPublicByUser returns one directory entry by the artist's account id.
func (r *ArtistProfileRepo) GetPublicByUser(ctx context.Context, userID string) (model.PublicArtist, error) {
	const q = `SELECT p.id, p.user_id, p.stage_name, p.city, p.genre, p.bio,
	                  p.instagram, p.spotify, p.youtube, p.created_at, p.updated_at,
	                  a.name, a.image
	           FROM artist_profiles p
	           JOIN accounts a ON a.id = p.user_id
	           WHERE p.user_id = ?`
	var pa model.PublicArtist
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&pa.ID, &pa.UserID, &pa.StageName,
		&pa.City, &pa.Genre, &pa.Bio, &pa.Instagram, &pa.Spotify, &pa.Youtube,
		&pa.CreatedAt, &pa.UpdatedAt, &pa.Name, &pa.Image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PublicArtist{}, ErrProfileNotFound
		}
		return model.PublicArtist{}, err
	}
	return pa, nil
}
