package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStatus(t *testing.T) {
	for _, s := range []string{"pending", "in-progress", "completed"} {
		st, err := domain.ParseTaskStatus(s)
		require.NoError(t, err)
		require.Equal(t, s, string(st))
	}
	for _, s := range []string{"", "done", "Pending", "in_progress"} {
		_, err := domain.ParseTaskStatus(s)
		require.Error(t, err, s)
	}
}

func TestParseTaskPriority(t *testing.T) {
	for _, p := range domain.TaskPriorities {
		got, err := domain.ParseTaskPriority(string(p))
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	for _, s := range []string{"", "urgent", "HIGH"} {
		_, err := domain.ParseTaskPriority(s)
		require.Error(t, err, s)
	}
}

func TestTaskPatchIsEmpty(t *testing.T) {
	require.True(t, domain.TaskPatch{}.IsEmpty())
	require.False(t, domain.TaskPatch{Title: domain.Some("x")}.IsEmpty())

	// clearing the description is still a change
	require.False(t, domain.TaskPatch{Description: domain.Some[*string](nil)}.IsEmpty())
}

func TestValidationErrors(t *testing.T) {
	require.NoError(t, domain.ValidationErrors(nil).Err())

	errs := domain.ValidationErrors{
		domain.NewFieldError(domain.LocationBody, "title", "", "Title is required"),
		domain.NewFieldError(domain.LocationBody, "status", "done", "Invalid status"),
	}
	err := errs.Err()
	require.Error(t, err)
	require.Equal(t, "validation failed: title: Title is required; status: Invalid status", err.Error())
}
