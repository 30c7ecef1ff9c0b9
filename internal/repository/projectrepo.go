package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/rfreitas/task-tracker/internal/model"
)

// ProjectRepository provides tenant-scoped access to projects. Every
// operation takes the owning user ID and folds it into the predicate;
// soft-deleted rows are invisible on all paths.
type ProjectRepository interface {
	// List returns non-deleted projects owned by userID, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	// GetOwned returns a single live project owned by userID. Absent,
	// soft-deleted and foreign-owned rows all yield errs.ErrNotFound.
	GetOwned(ctx context.Context, userID, id uuid.UUID) (*model.Project, error)
	// Create inserts a project stamped with userID; created_at comes from the
	// database.
	Create(ctx context.Context, p *model.Project) error
	// Rename updates the name of a live owned project and returns the fresh row.
	Rename(ctx context.Context, userID, id uuid.UUID, name string) (*model.Project, error)
	// SoftDelete stamps deleted_at on a live owned project and returns the
	// row. A second call fails with errs.ErrNotFound.
	SoftDelete(ctx context.Context, userID, id uuid.UUID) (*model.Project, error)
}
