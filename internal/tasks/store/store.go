package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by each driver. It
// hands out sub-repositories so a transaction-scoped Store can offer the
// same repositories bound to the transaction.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the credential store.
type Users interface {
	// GetUserByID returns ErrNotFound when no such user exists.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByUsernameOrEmail matches either column.
	GetUserByUsernameOrEmail(ctx context.Context, username, email string) (domain.User, error)

	// CreateUser returns the new id, or ErrAlreadyExists when the username
	// or email is taken.
	CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error)

	// UpdatePasswordHash replaces a stored hash, used to upgrade legacy hashes.
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error
}

// Tasks is the task store. Every method except GetTaskByID is scoped to an
// owner; callers must not expose a task to anyone but its owner.
type Tasks interface {
	CreateTask(ctx context.Context, ownerID int64, t domain.NewTask) (int64, error)

	// GetTaskByID does not check ownership.
	GetTaskByID(ctx context.Context, taskID int64) (domain.Task, error)

	// ListTasksByOwner returns newest first.
	ListTasksByOwner(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]domain.Task, error)

	// UpdateTaskFields writes only the set fields of patch, refreshes
	// updated_at and returns the number of rows changed.
	UpdateTaskFields(ctx context.Context, taskID, ownerID int64, patch domain.TaskPatch) (int64, error)

	DeleteTask(ctx context.Context, taskID, ownerID int64) (int64, error)
}
