package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/rfreitas/task-tracker/internal/errs"
	"github.com/rfreitas/task-tracker/internal/model"
	"github.com/rfreitas/task-tracker/internal/repository"
)

// TaskService defines tenant-scoped task operations.
type TaskService interface {
	// List returns the caller's live tasks, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	// Create inserts a task under an owned project, snapshotting its name.
	Create(ctx context.Context, userID, projectID uuid.UUID, description string, duration int64) (*model.Task, error)
	// Update applies a partial patch to an owned live task.
	Update(ctx context.Context, userID, id uuid.UUID, patch model.TaskPatch) (*model.Task, error)
	// Delete soft-deletes an owned live task and returns the row.
	Delete(ctx context.Context, userID, id uuid.UUID) (*model.Task, error)
}

type TaskServiceImpl struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
}

// NewTaskService constructs TaskService.
func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks, projects: projects}
}

// List returns live tasks owned by userID.
func (s *TaskServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.tasks.List(ctx, userID)
}

// Create resolves the owned project first, so a deleted or foreign project is
// a plain not-found, then inserts the task with the project name snapshot.
func (s *TaskServiceImpl) Create(ctx context.Context, userID, projectID uuid.UUID, description string, duration int64) (*model.Task, error) {
	if userID == uuid.Nil || projectID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID/projectID", errs.ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: empty description", errs.ErrValidation)
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: negative duration", errs.ErrValidation)
	}

	p, err := s.projects.GetOwned(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	t := &model.Task{
		ID:          id,
		UserID:      userID,
		ProjectID:   p.ID,
		ProjectName: p.Name, // frozen at creation time
		Description: description,
		Duration:    duration,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies a partial patch.
func (s *TaskServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, patch model.TaskPatch) (*model.Task, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID/id", errs.ErrValidation)
	}
	if patch.Description == nil && patch.Duration == nil {
		return nil, fmt.Errorf("%w: empty patch", errs.ErrValidation)
	}
	if patch.Description != nil && *patch.Description == "" {
		return nil, fmt.Errorf("%w: empty description", errs.ErrValidation)
	}
	if patch.Duration != nil && *patch.Duration < 0 {
		return nil, fmt.Errorf("%w: negative duration", errs.ErrValidation)
	}
	return s.tasks.Update(ctx, userID, id, patch)
}

// Delete soft-deletes the task.
func (s *TaskServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) (*model.Task, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID/id", errs.ErrValidation)
	}
	return s.tasks.SoftDelete(ctx, userID, id)
}
