// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/rfreitas/task-tracker/internal/model"
)

// UserRepository provides access to user accounts.
type UserRepository interface {
	// Create inserts a new user. Duplicate email yields errs.ErrAlreadyExists.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// ClearFirstAccess sets first_access=false. The only mutation after creation.
	ClearFirstAccess(ctx context.Context, id uuid.UUID) error
}
