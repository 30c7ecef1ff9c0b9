package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/rfreitas/task-tracker/internal/errs"
	"github.com/rfreitas/task-tracker/internal/model"
	"github.com/rfreitas/task-tracker/internal/repository"
)

// ReportService exposes tenant-scoped task aggregates. All reads exclude
// soft-deleted rows and group by exact column values.
type ReportService interface {
	// CountByProjectName counts live tasks per project name snapshot.
	CountByProjectName(ctx context.Context, userID uuid.UUID) ([]model.NameCount, error)
	// CountByCreated counts live tasks per exact creation timestamp.
	CountByCreated(ctx context.Context, userID uuid.UUID) ([]model.DateCount, error)
	// SumDurationByCreated sums durations per exact creation timestamp.
	SumDurationByCreated(ctx context.Context, userID uuid.UUID) ([]model.DateSum, error)
	// TotalDuration sums durations of all live tasks.
	TotalDuration(ctx context.Context, userID uuid.UUID) (int64, error)
	// Longest returns the live task with the greatest duration.
	Longest(ctx context.Context, userID uuid.UUID) (*model.LongestTask, error)
}

type ReportServiceImpl struct {
	tasks repository.TaskRepository
}

// NewReportService constructs ReportService.
func NewReportService(tasks repository.TaskRepository) *ReportServiceImpl {
	return &ReportServiceImpl{tasks: tasks}
}

func (s *ReportServiceImpl) CountByProjectName(ctx context.Context, userID uuid.UUID) ([]model.NameCount, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.tasks.CountByProjectName(ctx, userID)
}

func (s *ReportServiceImpl) CountByCreated(ctx context.Context, userID uuid.UUID) ([]model.DateCount, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.tasks.CountByCreated(ctx, userID)
}

func (s *ReportServiceImpl) SumDurationByCreated(ctx context.Context, userID uuid.UUID) ([]model.DateSum, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.tasks.SumDurationByCreated(ctx, userID)
}

func (s *ReportServiceImpl) TotalDuration(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.tasks.TotalDuration(ctx, userID)
}

func (s *ReportServiceImpl) Longest(ctx context.Context, userID uuid.UUID) (*model.LongestTask, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.tasks.Longest(ctx, userID)
}
