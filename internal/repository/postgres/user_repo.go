package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/rfreitas/task-tracker/internal/errs"
	"github.com/rfreitas/task-tracker/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, email, pwd_hash, first_access)
VALUES ($1, $2, $3, $4)`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Email, u.PwdHash, u.FirstAccess)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const q = `
SELECT id, email, pwd_hash, first_access, created_at
FROM users WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PwdHash, &u.FirstAccess, &u.CreatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &u, nil
}

// GetByEmail selects a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, email, pwd_hash, first_access, created_at
FROM users WHERE email=$1`
	row := r.db.Pool.QueryRow(ctx, q, email)
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PwdHash, &u.FirstAccess, &u.CreatedAt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &u, nil
}

// ClearFirstAccess sets first_access=false once.
func (r *UserRepo) ClearFirstAccess(ctx context.Context, id uuid.UUID) error {
	const q = `
UPDATE users SET first_access = false WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
