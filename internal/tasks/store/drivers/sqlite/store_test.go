package sqlite_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
	"github.com/aussiebroadwan/taskboard/internal/tasks/store"
	"github.com/aussiebroadwan/taskboard/internal/tasks/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, username string) int64 {
	t.Helper()
	id, err := s.Users().CreateUser(context.Background(), username, username+"@example.com", "hash")
	require.NoError(t, err)
	return id
}

func ptr[T any](v T) *T { return &v }

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id := createUser(t, s, "alice")
	require.Positive(t, id)

	t.Run("lookup by id and username", func(t *testing.T) {
		u, err := s.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "alice", u.Username)
		require.Equal(t, "alice@example.com", u.Email)
		require.Equal(t, "hash", u.PasswordHash)
		require.False(t, u.CreatedAt.IsZero())

		u, err = s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, id, u.ID)
	})

	t.Run("lookup by username or email", func(t *testing.T) {
		u, err := s.Users().GetUserByUsernameOrEmail(ctx, "nobody", "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, id, u.ID)

		_, err = s.Users().GetUserByUsernameOrEmail(ctx, "nobody", "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate username or email", func(t *testing.T) {
		_, err := s.Users().CreateUser(ctx, "alice", "other@example.com", "hash")
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		_, err = s.Users().CreateUser(ctx, "other", "alice@example.com", "hash")
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update password hash", func(t *testing.T) {
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, id, "new-hash"))
		u, err := s.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "new-hash", u.PasswordHash)

		require.ErrorIs(t, s.Users().UpdatePasswordHash(ctx, 9999, "x"), store.ErrNotFound)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, 9999)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCreateTaskAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	owner := createUser(t, s, "alice")

	id, err := s.Tasks().CreateTask(ctx, owner, domain.NewTask{Title: "Write report"})
	require.NoError(t, err)

	got, err := s.Tasks().GetTaskByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Write report", got.Title)
	require.Nil(t, got.Description)
	require.Equal(t, domain.TaskStatusPending, got.Status)
	require.Equal(t, domain.TaskPriorityMedium, got.Priority)
	require.Equal(t, owner, got.UserID)
	require.False(t, got.CreatedAt.IsZero())
	require.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestListTasksByOwner(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	first, err := s.Tasks().CreateTask(ctx, alice, domain.NewTask{Title: "a", Priority: domain.TaskPriorityHigh})
	require.NoError(t, err)
	second, err := s.Tasks().CreateTask(ctx, alice, domain.NewTask{Title: "b", Status: domain.TaskStatusCompleted})
	require.NoError(t, err)
	_, err = s.Tasks().CreateTask(ctx, bob, domain.NewTask{Title: "c"})
	require.NoError(t, err)

	t.Run("owner scoped and newest first", func(t *testing.T) {
		items, err := s.Tasks().ListTasksByOwner(ctx, alice, domain.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, items, 2)
		require.Equal(t, second, items[0].ID)
		require.Equal(t, first, items[1].ID)
	})

	t.Run("filter by status", func(t *testing.T) {
		items, err := s.Tasks().ListTasksByOwner(ctx, alice, domain.TaskFilter{Status: ptr(domain.TaskStatusCompleted)})
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, second, items[0].ID)
	})

	t.Run("filter by priority and status", func(t *testing.T) {
		items, err := s.Tasks().ListTasksByOwner(ctx, alice, domain.TaskFilter{
			Status:   ptr(domain.TaskStatusPending),
			Priority: ptr(domain.TaskPriorityHigh),
		})
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, first, items[0].ID)
	})

	t.Run("no tasks yields empty slice", func(t *testing.T) {
		carol := createUser(t, s, "carol")
		items, err := s.Tasks().ListTasksByOwner(ctx, carol, domain.TaskFilter{})
		require.NoError(t, err)
		require.NotNil(t, items)
		require.Empty(t, items)
	})
}

func TestUpdateTaskFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	id, err := s.Tasks().CreateTask(ctx, alice, domain.NewTask{Title: "a", Description: ptr("details")})
	require.NoError(t, err)

	t.Run("only provided fields change", func(t *testing.T) {
		n, err := s.Tasks().UpdateTaskFields(ctx, id, alice, domain.TaskPatch{
			Status: domain.Some(domain.TaskStatusInProgress),
		})
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		got, err := s.Tasks().GetTaskByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "a", got.Title)
		require.Equal(t, "details", *got.Description)
		require.Equal(t, domain.TaskStatusInProgress, got.Status)
		require.Equal(t, domain.TaskPriorityMedium, got.Priority)
	})

	t.Run("null description clears it", func(t *testing.T) {
		n, err := s.Tasks().UpdateTaskFields(ctx, id, alice, domain.TaskPatch{
			Description: domain.Some[*string](nil),
		})
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		got, err := s.Tasks().GetTaskByID(ctx, id)
		require.NoError(t, err)
		require.Nil(t, got.Description)
	})

	t.Run("foreign owner changes nothing", func(t *testing.T) {
		n, err := s.Tasks().UpdateTaskFields(ctx, id, bob, domain.TaskPatch{
			Title: domain.Some("stolen"),
		})
		require.NoError(t, err)
		require.Zero(t, n)

		got, err := s.Tasks().GetTaskByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "a", got.Title)
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	id, err := s.Tasks().CreateTask(ctx, alice, domain.NewTask{Title: "a"})
	require.NoError(t, err)

	n, err := s.Tasks().DeleteTask(ctx, id, bob)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = s.Tasks().DeleteTask(ctx, id, alice)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Tasks().GetTaskByID(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")

	sentinel := context.Canceled
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Tasks().CreateTask(ctx, alice, domain.NewTask{Title: "ghost"}); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	items, err := s.Tasks().ListTasksByOwner(ctx, alice, domain.TaskFilter{})
	require.NoError(t, err)
	require.Empty(t, items)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		return tx.WithTx(ctx, func(store.Tx) error { return nil })
	})
	require.Error(t, err, "nested transactions are rejected")
}
