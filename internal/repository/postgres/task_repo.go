package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/rfreitas/task-tracker/internal/errs"
	"github.com/rfreitas/task-tracker/internal/model"
)

// TaskRepo implements TaskRepository using PostgreSQL.
type TaskRepo struct{ db *DB }

// NewTaskRepo constructs a task repository.
func NewTaskRepo(db *DB) *TaskRepo { return &TaskRepo{db: db} }

// List returns live tasks owned by userID, newest first with id as tiebreak.
func (r *TaskRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	const q = `
SELECT id, user_id, project_id, project_name, description, duration, created_at, deleted_at
FROM tasks
WHERE user_id=$1 AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err = rows.Scan(&t.ID, &t.UserID, &t.ProjectID, &t.ProjectName,
			&t.Description, &t.Duration, &t.CreatedAt, &t.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetOwned returns a live task owned by userID.
func (r *TaskRepo) GetOwned(ctx context.Context, userID, id uuid.UUID) (*model.Task, error) {
	const q = `
SELECT id, user_id, project_id, project_name, description, duration, created_at, deleted_at
FROM tasks
WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL`
	row := r.db.Pool.QueryRow(ctx, q, id, userID)
	var t model.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.ProjectID, &t.ProjectName,
		&t.Description, &t.Duration, &t.CreatedAt, &t.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a task; created_at is stamped by the database. ProjectName
// is the snapshot taken by the caller and is never resynchronized afterwards.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	const q = `
INSERT INTO tasks (id, user_id, project_id, project_name, description, duration)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at`
	return r.db.Pool.QueryRow(ctx, q,
		t.ID, t.UserID, t.ProjectID, t.ProjectName, t.Description, t.Duration,
	).Scan(&t.CreatedAt)
}

// Update applies a partial patch to a live owned task and returns the fresh row.
func (r *TaskRepo) Update(ctx context.Context, userID, id uuid.UUID, patch model.TaskPatch) (*model.Task, error) {
	const q = `
UPDATE tasks SET
  description = COALESCE($3, description),
  duration    = COALESCE($4, duration)
WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL
RETURNING id, user_id, project_id, project_name, description, duration, created_at, deleted_at`
	row := r.db.Pool.QueryRow(ctx, q, id, userID, patch.Description, patch.Duration)
	var t model.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.ProjectID, &t.ProjectName,
		&t.Description, &t.Duration, &t.CreatedAt, &t.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// SoftDelete stamps deleted_at and returns the row.
func (r *TaskRepo) SoftDelete(ctx context.Context, userID, id uuid.UUID) (*model.Task, error) {
	const q = `
UPDATE tasks SET deleted_at=now()
WHERE id=$1 AND user_id=$2 AND deleted_at IS NULL
RETURNING id, user_id, project_id, project_name, description, duration, created_at, deleted_at`
	row := r.db.Pool.QueryRow(ctx, q, id, userID)
	var t model.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.ProjectID, &t.ProjectName,
		&t.Description, &t.Duration, &t.CreatedAt, &t.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// CountByProjectName counts live tasks per project name snapshot.
func (r *TaskRepo) CountByProjectName(ctx context.Context, userID uuid.UUID) ([]model.NameCount, error) {
	const q = `
SELECT project_name, COUNT(*) AS quantity
FROM tasks
WHERE user_id=$1 AND deleted_at IS NULL
GROUP BY project_name
ORDER BY project_name`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.NameCount{}
	for rows.Next() {
		var c model.NameCount
		if err = rows.Scan(&c.ProjectName, &c.Quantity); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountByCreated counts live tasks per exact creation timestamp. No bucketing
// is applied; equality is on the stored value.
func (r *TaskRepo) CountByCreated(ctx context.Context, userID uuid.UUID) ([]model.DateCount, error) {
	const q = `
SELECT created_at, COUNT(*) AS count
FROM tasks
WHERE user_id=$1 AND deleted_at IS NULL
GROUP BY created_at
ORDER BY created_at`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.DateCount{}
	for rows.Next() {
		var c model.DateCount
		if err = rows.Scan(&c.CreatedAt, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SumDurationByCreated sums durations per exact creation timestamp.
func (r *TaskRepo) SumDurationByCreated(ctx context.Context, userID uuid.UUID) ([]model.DateSum, error) {
	const q = `
SELECT created_at, SUM(duration) AS total
FROM tasks
WHERE user_id=$1 AND deleted_at IS NULL
GROUP BY created_at
ORDER BY created_at`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.DateSum{}
	for rows.Next() {
		var s model.DateSum
		if err = rows.Scan(&s.CreatedAt, &s.Total); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TotalDuration sums durations of all live tasks for the user.
func (r *TaskRepo) TotalDuration(ctx context.Context, userID uuid.UUID) (int64, error) {
	const q = `SELECT COALESCE(SUM(duration),0) FROM tasks WHERE user_id=$1 AND deleted_at IS NULL`
	var total int64
	if err := r.db.Pool.QueryRow(ctx, q, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Longest returns the live task with the greatest duration.
func (r *TaskRepo) Longest(ctx context.Context, userID uuid.UUID) (*model.LongestTask, error) {
	const q = `
SELECT description, duration
FROM tasks
WHERE user_id=$1 AND deleted_at IS NULL
ORDER BY duration DESC
LIMIT 1`
	row := r.db.Pool.QueryRow(ctx, q, userID)
	var lt model.LongestTask
	if err := row.Scan(&lt.Description, &lt.Duration); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &lt, nil
}
