package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
	"github.com/aussiebroadwan/taskboard/internal/tasks/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTaskFixture(t *testing.T) (*TaskService, *sqlite.Store, int64, int64) {
	t.Helper()
	ctx := context.Background()

	st := newTestStore(t)
	alice, err := st.Users().CreateUser(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)
	bob, err := st.Users().CreateUser(ctx, "bob", "bob@example.com", "hash")
	require.NoError(t, err)

	return &TaskService{Store: st}, st, alice, bob
}

func fieldMsgs(t *testing.T, err error) map[string]string {
	t.Helper()

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Path] = fe.Msg
	}
	return out
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	svc, _, alice, _ := newTaskFixture(t)

	t.Run("defaults and trimmed title", func(t *testing.T) {
		task, err := svc.Create(ctx, alice, TaskInput{Title: domain.Some("  Buy milk  ")})
		require.NoError(t, err)
		require.Equal(t, "Buy milk", task.Title)
		require.Nil(t, task.Description)
		require.Equal(t, domain.TaskStatusPending, task.Status)
		require.Equal(t, domain.TaskPriorityMedium, task.Priority)
		require.Equal(t, alice, task.UserID)
	})

	t.Run("explicit fields", func(t *testing.T) {
		task, err := svc.Create(ctx, alice, TaskInput{
			Title:       domain.Some("Ship"),
			Description: domain.Some(ptr("v1.0")),
			Status:      domain.Some("in-progress"),
			Priority:    domain.Some("high"),
		})
		require.NoError(t, err)
		require.Equal(t, "v1.0", *task.Description)
		require.Equal(t, domain.TaskStatusInProgress, task.Status)
		require.Equal(t, domain.TaskPriorityHigh, task.Priority)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, TaskInput{
			Title:    domain.Some("   "),
			Status:   domain.Some("done"),
			Priority: domain.Some(""),
		})
		require.Equal(t, map[string]string{
			"title":    "Title is required",
			"status":   "Invalid status",
			"priority": "Invalid priority",
		}, fieldMsgs(t, err))

		_, err = svc.Create(ctx, alice, TaskInput{})
		require.Equal(t, map[string]string{"title": "Title is required"}, fieldMsgs(t, err))
	})
}

func TestListAndGetTasks(t *testing.T) {
	ctx := context.Background()
	svc, _, alice, bob := newTaskFixture(t)

	older, err := svc.Create(ctx, alice, TaskInput{Title: domain.Some("older")})
	require.NoError(t, err)
	newer, err := svc.Create(ctx, alice, TaskInput{Title: domain.Some("newer"), Status: domain.Some("completed")})
	require.NoError(t, err)
	foreign, err := svc.Create(ctx, bob, TaskInput{Title: domain.Some("bob's")})
	require.NoError(t, err)

	items, err := svc.List(ctx, alice, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, newer.ID, items[0].ID)
	require.Equal(t, older.ID, items[1].ID)

	filter, err := ParseFilter("completed", "")
	require.NoError(t, err)
	items, err = svc.List(ctx, alice, filter)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, newer.ID, items[0].ID)

	got, err := svc.Get(ctx, alice, older.ID)
	require.NoError(t, err)
	require.Equal(t, older, got)

	_, err = svc.Get(ctx, alice, foreign.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.Get(ctx, alice, 424242)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("", "")
	require.NoError(t, err)
	require.Nil(t, f.Status)
	require.Nil(t, f.Priority)

	f, err = ParseFilter("pending", "low")
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusPending, *f.Status)
	require.Equal(t, domain.TaskPriorityLow, *f.Priority)

	_, err = ParseFilter("bogus", "urgent")
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 2)
	for _, fe := range verrs {
		require.Equal(t, domain.LocationQuery, fe.Location)
	}
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	svc, _, alice, bob := newTaskFixture(t)

	task, err := svc.Create(ctx, alice, TaskInput{
		Title:       domain.Some("draft"),
		Description: domain.Some(ptr("notes")),
	})
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, alice, task.ID, TaskInput{Priority: domain.Some("high")})
		require.NoError(t, err)
		require.Equal(t, "draft", updated.Title)
		require.Equal(t, "notes", *updated.Description)
		require.Equal(t, domain.TaskPriorityHigh, updated.Priority)
		require.Equal(t, domain.TaskStatusPending, updated.Status)
		require.False(t, updated.UpdatedAt.Before(task.UpdatedAt))
	})

	t.Run("clear description and trim title", func(t *testing.T) {
		updated, err := svc.Update(ctx, alice, task.ID, TaskInput{
			Title:       domain.Some("  final  "),
			Description: domain.Some[*string](nil),
		})
		require.NoError(t, err)
		require.Equal(t, "final", updated.Title)
		require.Nil(t, updated.Description)
	})

	t.Run("no fields", func(t *testing.T) {
		_, err := svc.Update(ctx, alice, task.ID, TaskInput{})
		require.ErrorIs(t, err, ErrNoUpdateFields)
	})

	t.Run("validation before lookup", func(t *testing.T) {
		_, err := svc.Update(ctx, alice, 424242, TaskInput{
			Title:  domain.Some(" "),
			Status: domain.Some("archived"),
		})
		require.Equal(t, map[string]string{
			"title":  "Title cannot be empty",
			"status": "Invalid status",
		}, fieldMsgs(t, err))
	})

	t.Run("foreign task is not found and unchanged", func(t *testing.T) {
		_, err := svc.Update(ctx, bob, task.ID, TaskInput{Title: domain.Some("hijack")})
		require.ErrorIs(t, err, ErrTaskNotFound)

		got, err := svc.Get(ctx, alice, task.ID)
		require.NoError(t, err)
		require.Equal(t, "final", got.Title)
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := svc.Update(ctx, alice, 424242, TaskInput{Title: domain.Some("x")})
		require.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	svc, _, alice, bob := newTaskFixture(t)

	task, err := svc.Create(ctx, alice, TaskInput{Title: domain.Some("temp")})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, bob, task.ID), ErrTaskNotFound)
	require.NoError(t, svc.Delete(ctx, alice, task.ID))
	require.ErrorIs(t, svc.Delete(ctx, alice, task.ID), ErrTaskNotFound)

	_, err = svc.Get(ctx, alice, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}
