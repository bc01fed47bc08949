package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/rantai-skena/booking-api/internal/model"
)

// ApplicationRepo manages persistence for applications. The table carries a
// unique key on (event_id, artist_id), which is what makes apply idempotent
// under concurrency: when two inserts race, exactly one wins and the loser
// re-reads the winner's row.
type ApplicationRepo struct {
	db *sql.DB
}

// NewApplicationRepo constructs an ApplicationRepo with the given DB handle.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationColumns = `id, event_id, artist_id, status, message, created_at, updated_at`

func scanApplication(row *sql.Row) (model.Application, error) {
	var a model.Application
	err := row.Scan(&a.ID, &a.EventID, &a.ArtistID, &a.Status, &a.Message, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Application{}, ErrApplicationNotFound
		}
		return model.Application{}, err
	}
	return a, nil
}

// isDuplicateKey reports whether err is a MySQL 1062 duplicate-entry error.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// GetByEventAndArtist fetches the application an artist filed for an event.
func (r *ApplicationRepo) GetByEventAndArtist(ctx context.Context, eventID, artistID string) (model.Application, error) {
	return scanApplication(r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE event_id = ? AND artist_id = ?`,
		eventID, artistID))
}

// GetByID fetches an application by primary key.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (model.Application, error) {
	return scanApplication(r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id))
}

// CreateOrGet files an application for (eventID, artistID), or returns the
// existing one. The returned bool is true only when a new row was inserted.
// A pre-check keeps the common repeat case cheap; the unique key settles the
// race when two first-time applies arrive together.
func (r *ApplicationRepo) CreateOrGet(ctx context.Context, eventID, artistID string, message *string) (model.Application, bool, error) {
	if existing, err := r.GetByEventAndArtist(ctx, eventID, artistID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrApplicationNotFound) {
		return model.Application{}, false, err
	}

	id := uuid.NewString()
	const q = `INSERT INTO applications (id, event_id, artist_id, status, message) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, id, eventID, artistID, model.StatusPending, message)
	if err != nil {
		if isDuplicateKey(err) {
			// Lost the race: another request inserted between our check and
			// insert. First writer wins; hand back its row.
			existing, gerr := r.GetByEventAndArtist(ctx, eventID, artistID)
			if gerr != nil {
				return model.Application{}, false, gerr
			}
			return existing, false, nil
		}
		return model.Application{}, false, err
	}
	created, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Application{}, false, err
	}
	return created, true, nil
}

// ListByArtist returns the artist's applications joined with event display
// fields, ordered by creation time for deterministic output.
func (r *ApplicationRepo) ListByArtist(ctx context.Context, artistID string) ([]model.ArtistApplication, error) {
	const q = `SELECT a.id, a.status, a.message, a.created_at,
	                  e.id, e.name, e.location, e.starts_at, e.agent_id
	           FROM applications a
	           JOIN events e ON e.id = a.event_id
	           WHERE a.artist_id = ?
	           ORDER BY a.created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ArtistApplication
	for rows.Next() {
		var a model.ArtistApplication
		if err := rows.Scan(&a.ID, &a.Status, &a.Message, &a.CreatedAt,
			&a.EventID, &a.EventName, &a.EventLocation, &a.EventStartsAt, &a.AgentID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListByEvent returns every application for an event joined with applicant
// display fields. Ownership of the event is checked by the caller first.
func (r *ApplicationRepo) ListByEvent(ctx context.Context, eventID string) ([]model.EventApplication, error) {
	const q = `SELECT a.id, a.status, a.message, a.created_at,
	                  a.artist_id, acc.name, acc.email
	           FROM applications a
	           JOIN accounts acc ON acc.id = a.artist_id
	           WHERE a.event_id = ?
	           ORDER BY a.created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.EventApplication
	for rows.Next() {
		var a model.EventApplication
		if err := rows.Scan(&a.ID, &a.Status, &a.Message, &a.CreatedAt,
			&a.ArtistID, &a.ArtistName, &a.ArtistEmail); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStatusByAgent transitions an application's status, but only when the
// caller owns the parent event; the join makes absent and foreign-owned rows
// indistinguishable. Returns the updated row.
func (r *ApplicationRepo) UpdateStatusByAgent(ctx context.Context, id, agentID, status string) (model.Application, error) {
	const q = `UPDATE applications a
	           JOIN events e ON e.id = a.event_id
	           SET a.status = ?, a.updated_at = CURRENT_TIMESTAMP
	           WHERE a.id = ? AND e.agent_id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id, agentID)
	if err != nil {
		return model.Application{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either no such application, the event belongs to another agent, or
		// the status (and timestamp) were already identical. Re-check the
		// scoped row before deciding.
		var one int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM applications a JOIN events e ON e.id = a.event_id
			 WHERE a.id = ? AND e.agent_id = ?`, id, agentID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return model.Application{}, ErrApplicationNotFound
		}
		if err != nil {
			return model.Application{}, err
		}
	}
	return r.GetByID(ctx, id)
}
