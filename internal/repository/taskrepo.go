package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/rfreitas/task-tracker/internal/model"
)

// TaskRepository provides tenant-scoped access to tasks and their aggregates.
// All predicates include the owning user ID and exclude soft-deleted rows.
type TaskRepository interface {
	// List returns non-deleted tasks owned by userID, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	// GetOwned returns a single live task owned by userID (errs.ErrNotFound otherwise).
	GetOwned(ctx context.Context, userID, id uuid.UUID) (*model.Task, error)
	// Create inserts a task stamped with userID; created_at comes from the database.
	Create(ctx context.Context, t *model.Task) error
	// Update applies a partial patch to a live owned task and returns the fresh row.
	Update(ctx context.Context, userID, id uuid.UUID, patch model.TaskPatch) (*model.Task, error)
	// SoftDelete stamps deleted_at on a live owned task and returns the row.
	SoftDelete(ctx context.Context, userID, id uuid.UUID) (*model.Task, error)

	// CountByProjectName counts live tasks grouped by project name snapshot.
	CountByProjectName(ctx context.Context, userID uuid.UUID) ([]model.NameCount, error)
	// CountByCreated counts live tasks grouped by exact creation timestamp.
	CountByCreated(ctx context.Context, userID uuid.UUID) ([]model.DateCount, error)
	// SumDurationByCreated sums durations grouped by exact creation timestamp.
	SumDurationByCreated(ctx context.Context, userID uuid.UUID) ([]model.DateSum, error)
	// TotalDuration sums durations of all live tasks.
	TotalDuration(ctx context.Context, userID uuid.UUID) (int64, error)
	// Longest returns the live task with the greatest duration
	// (errs.ErrNotFound when the user has none).
	Longest(ctx context.Context, userID uuid.UUID) (*model.LongestTask, error)
}
