package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/rfreitas/task-tracker/internal/errs"
	"github.com/rfreitas/task-tracker/internal/model"
	"github.com/rfreitas/task-tracker/internal/repository"
)

// ProjectService defines tenant-scoped project operations. The userID always
// comes from the resolved identity in the request context, never from client
// input.
type ProjectService interface {
	// List returns the caller's live projects, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	// Create stamps the owner server-side and inserts the project.
	Create(ctx context.Context, userID uuid.UUID, name string) (*model.Project, error)
	// Rename updates the name of an owned live project.
	Rename(ctx context.Context, userID, id uuid.UUID, name string) (*model.Project, error)
	// Delete soft-deletes an owned live project and returns the row.
	Delete(ctx context.Context, userID, id uuid.UUID) (*model.Project, error)
}

type ProjectServiceImpl struct {
	repo repository.ProjectRepository
}

// NewProjectService constructs ProjectService.
func NewProjectService(repo repository.ProjectRepository) *ProjectServiceImpl {
	return &ProjectServiceImpl{repo: repo}
}

// List returns live projects owned by userID.
func (s *ProjectServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.repo.List(ctx, userID)
}

// Create inserts a new project owned by userID.
func (s *ProjectServiceImpl) Create(ctx context.Context, userID uuid.UUID, name string) (*model.Project, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", errs.ErrValidation)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.Project{ID: id, UserID: userID, Name: name}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename updates the project name. The project_name snapshot on existing
// tasks is deliberately left untouched.
func (s *ProjectServiceImpl) Rename(ctx context.Context, userID, id uuid.UUID, name string) (*model.Project, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID/id", errs.ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", errs.ErrValidation)
	}
	return s.repo.Rename(ctx, userID, id, name)
}

// Delete soft-deletes the project.
func (s *ProjectServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) (*model.Project, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID/id", errs.ErrValidation)
	}
	return s.repo.SoftDelete(ctx, userID, id)
}
