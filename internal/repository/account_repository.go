package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rantai-skena/booking-api/internal/model"
)

// AccountRepo reads and updates rows in the `accounts` table. Accounts are
// created by the external identity provider; this service only resolves them
// and assigns a role during onboarding.
type AccountRepo struct {
	db *sql.DB
}

// NewAccountRepo constructs an AccountRepo with the given DB handle.
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

const accountColumns = `id, name, email, image, role, created_at, updated_at`

func scanAccount(row *sql.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Image, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, err
	}
	return a, nil
}

// GetByID fetches one account. It returns ErrAccountNotFound when the id is
// unknown, which the role guard reports as "user not found".
func (r *AccountRepo) GetByID(ctx context.Context, id string) (model.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id))
}

// SetRole assigns the account's role and bumps updated_at, returning the
// updated row. Role values are validated by the handler before this call.
func (r *AccountRepo) SetRole(ctx context.Context, id, role string) (model.Account, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, role, id); err != nil {
		return model.Account{}, err
	}
	// RowsAffected is 0 both for a missing row and for a same-value write,
	// so the follow-up read decides between ErrAccountNotFound and success.
	return r.GetByID(ctx, id)
}
