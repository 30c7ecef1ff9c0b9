// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents an account stored on the server. Email is unique and
// immutable after creation; the row is never hard-deleted.
type User struct {
	ID          uuid.UUID // PK
	Email       string    // unique
	PwdHash     string    // bcrypt(password)
	FirstAccess bool      // true until explicitly cleared
	CreatedAt   time.Time
}

// Identity is the resolved, trusted representation of a caller derived from a
// verified token. It is never persisted and lives only for a single request.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Project is a tenant-owned container for tasks.
type Project struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Task is a tenant-owned time-tracked unit of work. ProjectName is a snapshot
// taken at creation time; renaming the project does not rewrite it.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	ProjectName string     `json:"project_name"`
	Description string     `json:"description"`
	Duration    int64      `json:"duration"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// TaskPatch is a partial update applied to a task. Nil fields are left unchanged.
type TaskPatch struct {
	Description *string
	Duration    *int64
}

// NameCount is the number of live tasks per project name snapshot.
type NameCount struct {
	ProjectName string `json:"project_name"`
	Quantity    int64  `json:"quantity"`
}

// DateCount is the number of live tasks per exact creation timestamp.
type DateCount struct {
	CreatedAt time.Time `json:"created_at"`
	Count     int64     `json:"count"`
}

// DateSum is the summed duration of live tasks per exact creation timestamp.
type DateSum struct {
	CreatedAt time.Time `json:"created_at"`
	Total     int64     `json:"total"`
}

// LongestTask is the projection returned by the longest-task report.
type LongestTask struct {
	Description string `json:"description"`
	Duration    int64  `json:"duration"`
}
