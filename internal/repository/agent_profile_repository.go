package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rantai-skena/booking-api/internal/model"
)

// AgentProfileRepo manages `agent_profiles` rows, one per agent account.
type AgentProfileRepo struct {
	db *sql.DB
}

// NewAgentProfileRepo constructs an AgentProfileRepo.
func NewAgentProfileRepo(db *sql.DB) *AgentProfileRepo {
	return &AgentProfileRepo{db: db}
}

const agentProfileColumns = `id, user_id, agency_name, city, bio, instagram, contact_email, contact_phone, created_at, updated_at`

func scanAgentProfile(row *sql.Row) (model.AgentProfile, error) {
	var p model.AgentProfile
	err := row.Scan(&p.ID, &p.UserID, &p.AgencyName, &p.City, &p.Bio,
		&p.Instagram, &p.ContactEmail, &p.ContactPhone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AgentProfile{}, ErrProfileNotFound
		}
		return model.AgentProfile{}, err
	}
	return p, nil
}

// GetByUser fetches the profile owned by userID.
func (r *AgentProfileRepo) GetByUser(ctx context.Context, userID string) (model.AgentProfile, error) {
	return scanAgentProfile(r.db.QueryRowContext(ctx,
		`SELECT `+agentProfileColumns+` FROM agent_profiles WHERE user_id = ?`, userID))
}

// Upsert creates the profile on first save and overwrites it afterwards.
func (r *AgentProfileRepo) Upsert(ctx context.Context, p *model.AgentProfile) error {
	const q = `INSERT INTO agent_profiles (id, user_id, agency_name, city, bio, instagram, contact_email, contact_phone)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	               agency_name = VALUES(agency_name), city = VALUES(city), bio = VALUES(bio),
	               instagram = VALUES(instagram), contact_email = VALUES(contact_email),
	               contact_phone = VALUES(contact_phone), updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, q,
		uuid.NewString(), p.UserID, p.AgencyName, p.City, p.Bio,
		p.Instagram, p.ContactEmail, p.ContactPhone); err != nil {
		return err
	}
	fresh, err := r.GetByUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	*p = fresh
	return nil
}
