package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/rantai-skena/booking-api/internal/model"
)

// EventRepo manages persistence for events. Genres are stored as a single
// comma-joined column and exposed as a slice; times are DATETIME in UTC
// (parseTime=true on the connection maps them to time.Time).
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `id, agent_id, name, location, starts_at, ends_at, genres, description, is_published, created_at, updated_at`

// joinGenres flattens the genre set into the stored column value. NULL is
// stored when there are no genres so the column round-trips to nil.
func joinGenres(genres []string) any {
	if len(genres) == 0 {
		return nil
	}
	return strings.Join(genres, ",")
}

func splitGenres(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	parts := strings.Split(raw.String, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type eventScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row eventScanner, e *model.Event) error {
	var genres sql.NullString
	if err := row.Scan(&e.ID, &e.AgentID, &e.Name, &e.Location, &e.StartsAt, &e.EndsAt,
		&genres, &e.Description, &e.IsPublished, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return err
	}
	e.Genres = splitGenres(genres)
	return nil
}

// Create inserts a new event owned by e.AgentID. A fresh UUID is assigned
// and the row is re-read so DB-default timestamps land on the struct.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	e.ID = uuid.NewString()
	const q = `INSERT INTO events (id, agent_id, name, location, starts_at, ends_at, genres, description, is_published)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		e.ID, e.AgentID, e.Name, e.Location, e.StartsAt, e.EndsAt,
		joinGenres(e.Genres), e.Description, e.IsPublished); err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = fresh
	return nil
}

// GetByID retrieves one event regardless of owner or published state. The
// detail endpoint is role-guarded but not ownership-guarded, so apply flows
// can load an event before applying.
func (r *EventRepo) GetByID(ctx context.Context, id string) (model.Event, error) {
	var e model.Event
	err := scanEvent(r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id), &e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, ErrEventNotFound
		}
		return model.Event{}, err
	}
	return e, nil
}

// GetByIDAndAgent retrieves an event only when it is owned by agentID. The
// absent and foreign-owned cases are indistinguishable on purpose.
func (r *EventRepo) GetByIDAndAgent(ctx context.Context, id, agentID string) (model.Event, error) {
	var e model.Event
	err := scanEvent(r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ? AND agent_id = ?`, id, agentID), &e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, ErrEventNotFound
		}
		return model.Event{}, err
	}
	return e, nil
}

// ListByAgent returns every event owned by agentID, published or not, in
// creation order.
func (r *EventRepo) ListByAgent(ctx context.Context, agentID string) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE agent_id = ? ORDER BY created_at ASC`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListPublished returns all published events joined with the owning agent's
// display name. Used by the public listing and the artist-facing list.
func (r *EventRepo) ListPublished(ctx context.Context) ([]model.PublishedEvent, error) {
	const q = `SELECT e.id, e.agent_id, e.name, e.location, e.starts_at, e.ends_at, e.genres,
	                  e.description, e.is_published, e.created_at, e.updated_at, a.name
	           FROM events e
	           JOIN accounts a ON a.id = e.agent_id
	           WHERE e.is_published = TRUE
	           ORDER BY e.starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.PublishedEvent
	for rows.Next() {
		var p model.PublishedEvent
		var genres sql.NullString
		if err := rows.Scan(&p.ID, &p.AgentID, &p.Name, &p.Location, &p.StartsAt, &p.EndsAt,
			&genres, &p.Description, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt, &p.AgentName); err != nil {
			return nil, err
		}
		p.Genres = splitGenres(genres)
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetDetail returns one event joined with its agent's display name,
// regardless of published state.
func (r *EventRepo) GetDetail(ctx context.Context, id string) (model.PublishedEvent, error) {
	const q = `SELECT e.id, e.agent_id, e.name, e.location, e.starts_at, e.ends_at, e.genres,
	                  e.description, e.is_published, e.created_at, e.updated_at, a.name
	           FROM events e
	           JOIN accounts a ON a.id = e.agent_id
	           WHERE e.id = ?`
	var p model.PublishedEvent
	var genres sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.AgentID, &p.Name, &p.Location,
		&p.StartsAt, &p.EndsAt, &genres, &p.Description, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt, &p.AgentName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PublishedEvent{}, ErrEventNotFound
		}
		return model.PublishedEvent{}, err
	}
	p.Genres = splitGenres(genres)
	return p, nil
}

// Update writes the patched event back, scoped to its owner. updated_at is
// always bumped so RowsAffected distinguishes a matched row from a missing
// or foreign-owned one.
func (r *EventRepo) Update(ctx context.Context, e *model.Event, agentID string) error {
	const q = `UPDATE events
	           SET name = ?, location = ?, starts_at = ?, ends_at = ?, genres = ?,
	               description = ?, is_published = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND agent_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.Location, e.StartsAt, e.EndsAt, joinGenres(e.Genres),
		e.Description, e.IsPublished, e.ID, agentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports zero affected rows both when nothing matched and
		// when every value (including the second-resolution timestamp) was
		// already identical. Re-check the scoped row to tell them apart.
		var one int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM events WHERE id = ? AND agent_id = ?`, e.ID, agentID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		if err != nil {
			return err
		}
	}
	fresh, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = fresh
	return nil
}

// DeleteByIDAndAgent removes an event and cascades its applications inside a
// transaction. The schema's ON DELETE CASCADE would also cover this; the
// explicit delete keeps the cleanup visible and works on schemas restored
// without foreign keys.
func (r *EventRepo) DeleteByIDAndAgent(ctx context.Context, id, agentID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM events WHERE id = ? AND agent_id = ?`, id, agentID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrEventNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM applications WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
