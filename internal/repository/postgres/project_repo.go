package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/rfreitas/task-tracker/internal/errs"
	"github.com/rfreitas/task-tracker/internal/model"
)

// ProjectRepo implements ProjectRepository using PostgreSQL.
type ProjectRepo struct{ db *DB }

// NewProjectRepo constructs a project repository.
func NewProjectRepo(db *DB) *ProjectRepo { return &ProjectRepo{db: db} }

// List returns live projects owned by userID, newest first with id as tiebreak.
func (r *ProjectRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	const q = `
SELECT id, user_id, name, created_at, deleted_at
FROM projects
WHERE user_id=$1 AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err = rows.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetOwned returns a live project owned by userID.
func (r *ProjectRepo) GetOwned(ctx context.Context, userID, id uuid.UUID) (*model.Project, error) {
	const q = `
SELECT id, user_id, name, created_at, deleted_at
FROM projects
WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL`
	row := r.db.Pool.QueryRow(ctx, q, id, userID)
	var p model.Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a project; created_at is stamped by the database.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	const q = `
INSERT INTO projects (id, user_id, name)
VALUES ($1, $2, $3)
RETURNING created_at`
	return r.db.Pool.QueryRow(ctx, q, p.ID, p.UserID, p.Name).Scan(&p.CreatedAt)
}

// Rename updates the name of a live owned project and returns the fresh row.
// Ownership and liveness sit in the same predicate, so a deleted or foreign
// row is a plain not-found.
func (r *ProjectRepo) Rename(ctx context.Context, userID, id uuid.UUID, name string) (*model.Project, error) {
	const q = `
UPDATE projects SET name=$3
WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL
RETURNING id, user_id, name, created_at, deleted_at`
	row := r.db.Pool.QueryRow(ctx, q, id, userID, name)
	var p model.Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SoftDelete stamps deleted_at and returns the row. Re-deleting fails because
// the predicate excludes already-deleted rows.
func (r *ProjectRepo) SoftDelete(ctx context.Context, userID, id uuid.UUID) (*model.Project, error) {
	const q = `
UPDATE projects SET deleted_at=now()
WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL
RETURNING id, user_id, name, created_at, deleted_at`
	row := r.db.Pool.QueryRow(ctx, q, id, userID)
	var p model.Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
