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

var projectCols = []string{"id", "user_id", "name", "created_at", "deleted_at"}

func TestProjectRepo_List(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProjectRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	newer := uuid.Must(uuid.NewV4())
	older := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, user_id, name, created_at, deleted_at\s+FROM projects\s+WHERE user_id=\$1 AND deleted_at IS NULL\s+ORDER BY created_at DESC, id DESC`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(projectCols).
			AddRow(newer, userID, "Frontend", time.Now(), nil).
			AddRow(older, userID, "Backend", time.Now().Add(-time.Hour), nil))
	got, err := r.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, newer, got[0].ID)
	require.Equal(t, older, got[1].ID)

	// Empty result is a valid empty slice, not an error.
	mock.ExpectQuery(`SELECT id, user_id, name, created_at, deleted_at\s+FROM projects\s+WHERE user_id=\$1 AND deleted_at IS NULL\s+ORDER BY created_at DESC, id DESC`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(projectCols))
	got, err = r.List(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_GetOwned(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProjectRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, user_id, name, created_at, deleted_at\s+FROM projects\s+WHERE id=\$1 AND user_id=\$2 AND deleted_at IS NULL`).
		WithArgs(id, userID).
		WillReturnRows(pgxmock.NewRows(projectCols).
			AddRow(id, userID, "Backend", time.Now(), nil))
	p, err := r.GetOwned(ctx, userID, id)
	require.NoError(t, err)
	require.Equal(t, "Backend", p.Name)

	// Foreign, deleted and missing rows all surface as not found.
	mock.ExpectQuery(`SELECT id, user_id, name, created_at, deleted_at\s+FROM projects\s+WHERE id=\$1 AND user_id=\$2 AND deleted_at IS NULL`).
		WithArgs(id, userID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetOwned(ctx, userID, id)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProjectRepo(db)
	ctx := context.Background()
	p := &model.Project{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: uuid.Must(uuid.NewV4()),
		Name:   "Backend",
	}
	stamped := time.Now()

	mock.ExpectQuery(`INSERT INTO projects \(id, user_id, name\)\s+VALUES \(\$1, \$2, \$3\)\s+RETURNING created_at`).
		WithArgs(p.ID, p.UserID, p.Name).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(stamped))
	require.NoError(t, r.Create(ctx, p))
	require.Equal(t, stamped, p.CreatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Rename(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProjectRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`UPDATE projects SET name=\$3\s+WHERE id=\$1 AND user_id=\$2 AND deleted_at IS NULL\s+RETURNING id, user_id, name, created_at, deleted_at`).
		WithArgs(id, userID, "Platform").
		WillReturnRows(pgxmock.NewRows(projectCols).
			AddRow(id, userID, "Platform", time.Now(), nil))
	p, err := r.Rename(ctx, userID, id, "Platform")
	require.NoError(t, err)
	require.Equal(t, "Platform", p.Name)

	mock.ExpectQuery(`UPDATE projects SET name=\$3\s+WHERE id=\$1 AND user_id=\$2 AND deleted_at IS NULL\s+RETURNING id, user_id, name, created_at, deleted_at`).
		WithArgs(id, userID, "Platform").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Rename(ctx, userID, id, "Platform")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_SoftDelete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProjectRepo(db)
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	now := time.Now()

	mock.ExpectQuery(`UPDATE projects SET deleted_at=now\(\)\s+WHERE id=\$1 AND user_id=\$2 AND deleted_at IS NULL\s+RETURNING id, user_id, name, created_at, deleted_at`).
		WithArgs(id, userID).
		WillReturnRows(pgxmock.NewRows(projectCols).
			AddRow(id, userID, "Backend", now.Add(-time.Hour), &now))
	p, err := r.SoftDelete(ctx, userID, id)
	require.NoError(t, err)
	require.NotNil(t, p.DeletedAt)

	// Already deleted: the predicate matches nothing.
	mock.ExpectQuery(`UPDATE projects SET deleted_at=now\(\)\s+WHERE id=\$1 AND user_id=\$2 AND deleted_at IS NULL\s+RETURNING id, user_id, name, created_at, deleted_at`).
		WithArgs(id, userID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.SoftDelete(ctx, userID, id)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
