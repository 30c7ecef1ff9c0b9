package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/rfreitas/task-tracker/internal/errs"
	"github.com/rfreitas/task-tracker/internal/model"
)

var taskCols = []string{"id", "user_id", "project_id", "project_name", "description", "duration", "created_at", "deleted_at"}

func TestTaskRepo_List(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	projectID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, user_id, project_id, project_name, description, duration, created_at, deleted_at\s+FROM tasks\s+WHERE user_id=\$1 AND deleted_at IS NULL\s+ORDER BY created_at DESC, id DESC`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(taskCols).
			AddRow(id, userID, projectID, "Backend", "study Go", int64(652), time.Now(), nil))
	got, err := r.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Backend", got[0].ProjectName)
	require.Equal(t, int64(652), got[0].Duration)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepo(db)
	ctx := context.Background()
	task := &model.Task{
		ID:          uuid.Must(uuid.NewV4()),
		UserID:      uuid.Must(uuid.NewV4()),
		ProjectID:   uuid.Must(uuid.NewV4()),
		ProjectName: "Backend",
		Description: "study Go",
		Duration:    652,
	}
	stamped := time.Now()

	mock.ExpectQuery(`INSERT INTO tasks \(id, user_id, project_id, project_name, description, duration\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)\s+RETURNING created_at`).
		WithArgs(task.ID, task.UserID, task.ProjectID, task.ProjectName, task.Description, task.Duration).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(stamped))
	require.NoError(t, r.Create(ctx, task))
	require.Equal(t, stamped, task.CreatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepo_Update(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	projectID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	dur := int64(250)
	patch := model.TaskPatch{Duration: &dur}

	mock.ExpectQuery(`UPDATE tasks SET\s+description = COALESCE\(\$3, description\),\s+duration\s+= COALESCE\(\$4, duration\)\s+WHERE id=\$1 AND user_id=\$2 AND deleted_at IS NULL\s+RETURNING id, user_id, project_id, project_name, description, duration, created_at, deleted_at`).
		WithArgs(id, userID, patch.Description, patch.Duration).
		WillReturnRows(pgxmock.NewRows(taskCols).
			AddRow(id, userID, projectID, "Backend", "study Go", dur, time.Now(), nil))
	task, err := r.Update(ctx, userID, id, patch)
	require.NoError(t, err)
	require.Equal(t, dur, task.Duration)
	require.Equal(t, "study Go", task.Description)

	mock.ExpectQuery(`UPDATE tasks SET\s+description = COALESCE\(\$3, description\),\s+duration\s+= COALESCE\(\$4, duration\)\s+WHERE id=\$1 AND user_id=\$2 AND deleted_at IS NULL\s+RETURNING id, user_id, project_id, project_name, description, duration, created_at, deleted_at`).
		WithArgs(id, userID, patch.Description, patch.Duration).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Update(ctx, userID, id, patch)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepo_SoftDelete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	projectID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	now := time.Now()

	mock.ExpectQuery(`UPDATE tasks SET deleted_at=now\(\)\s+WHERE id=\$1 AND user_id=\$2 AND deleted_at IS NULL\s+RETURNING id, user_id, project_id, project_name, description, duration, created_at, deleted_at`).
		WithArgs(id, userID).
		WillReturnRows(pgxmock.NewRows(taskCols).
			AddRow(id, userID, projectID, "Backend", "study Go", int64(652), now.Add(-time.Hour), &now))
	task, err := r.SoftDelete(ctx, userID, id)
	require.NoError(t, err)
	require.NotNil(t, task.DeletedAt)

	mock.ExpectQuery(`UPDATE tasks SET deleted_at=now\(\)\s+WHERE id=\$1 AND user_id=\$2 AND deleted_at IS NULL\s+RETURNING id, user_id, project_id, project_name, description, duration, created_at, deleted_at`).
		WithArgs(id, userID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.SoftDelete(ctx, userID, id)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepo_CountByProjectName(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT project_name, COUNT\(\*\) AS quantity\s+FROM tasks\s+WHERE user_id=\$1 AND deleted_at IS NULL\s+GROUP BY project_name\s+ORDER BY project_name`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"project_name", "quantity"}).
			AddRow("Backend", int64(2)).
			AddRow("Frontend", int64(1)))
	got, err := r.CountByProjectName(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, model.NameCount{ProjectName: "Backend", Quantity: 2}, got[0])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepo_CountByCreated(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	when := time.Now()

	mock.ExpectQuery(`SELECT created_at, COUNT\(\*\) AS count\s+FROM tasks\s+WHERE user_id=\$1 AND deleted_at IS NULL\s+GROUP BY created_at\s+ORDER BY created_at`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "count"}).
			AddRow(when, int64(3)))
	got, err := r.CountByCreated(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(3), got[0].Count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepo_SumDurationByCreated(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	when := time.Now()

	mock.ExpectQuery(`SELECT created_at, SUM\(duration\) AS total\s+FROM tasks\s+WHERE user_id=\$1 AND deleted_at IS NULL\s+GROUP BY created_at\s+ORDER BY created_at`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "total"}).
			AddRow(when, int64(300)))
	got, err := r.SumDurationByCreated(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(300), got[0].Total)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepo_TotalDuration(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(duration\),0\) FROM tasks WHERE user_id=\$1 AND deleted_at IS NULL`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(300)))
	total, err := r.TotalDuration(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(300), total)

	// COALESCE keeps the no-rows case at zero.
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(duration\),0\) FROM tasks WHERE user_id=\$1 AND deleted_at IS NULL`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))
	total, err = r.TotalDuration(ctx, userID)
	require.NoError(t, err)
	require.Zero(t, total)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepo_Longest(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTaskRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT description, duration\s+FROM tasks\s+WHERE user_id=\$1 AND deleted_at IS NULL\s+ORDER BY duration DESC\s+LIMIT 1`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"description", "duration"}).
			AddRow("study Go", int64(900)))
	lt, err := r.Longest(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "study Go", lt.Description)
	require.Equal(t, int64(900), lt.Duration)

	mock.ExpectQuery(`SELECT description, duration\s+FROM tasks\s+WHERE user_id=\$1 AND deleted_at IS NULL\s+ORDER BY duration DESC\s+LIMIT 1`).
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Longest(ctx, userID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
