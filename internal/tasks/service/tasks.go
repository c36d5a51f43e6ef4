package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
	"github.com/aussiebroadwan/taskboard/internal/tasks/store"
	"github.com/aussiebroadwan/taskboard/pkg/slogx"
)

var (
	ErrTaskNotFound   = errors.New("task_not_found")
	ErrNoUpdateFields = errors.New("no_update_fields")
)

// TaskInput carries client supplied task fields before validation. Status
// and priority stay raw strings so rejected values can be reported back.
type TaskInput struct {
	Title       domain.Optional[string]
	Description domain.Optional[*string]
	Status      domain.Optional[string]
	Priority    domain.Optional[string]
}

// TaskService exposes a caller's own tasks. A task owned by someone else
// is reported exactly like a missing one.
type TaskService struct {
	Store store.Store
}

// ParseFilter turns raw query values into a filter. Empty values do not filter.
func ParseFilter(status, priority string) (domain.TaskFilter, error) {
	var (
		f    domain.TaskFilter
		errs domain.ValidationErrors
	)

	if status != "" {
		st, err := domain.ParseTaskStatus(status)
		if err != nil {
			errs = append(errs, domain.NewFieldError(domain.LocationQuery, "status", status, "Invalid status"))
		} else {
			f.Status = &st
		}
	}
	if priority != "" {
		p, err := domain.ParseTaskPriority(priority)
		if err != nil {
			errs = append(errs, domain.NewFieldError(domain.LocationQuery, "priority", priority, "Invalid priority"))
		} else {
			f.Priority = &p
		}
	}
	return f, errs.Err()
}

// List returns the caller's tasks, newest first.
func (s *TaskService) List(ctx context.Context, callerID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.Store.Tasks().ListTasksByOwner(ctx, callerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, callerID, taskID int64) (domain.Task, error) {
	return getOwnedTask(ctx, s.Store, callerID, taskID)
}

// Create validates in and stores a task owned by the caller.
func (s *TaskService) Create(ctx context.Context, callerID int64, in TaskInput) (domain.Task, error) {
	l := slogx.FromContext(ctx)

	nt, err := validateNewTask(in)
	if err != nil {
		return domain.Task{}, err
	}

	var created domain.Task
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Tasks().CreateTask(ctx, callerID, nt)
		if err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		created, err = tx.Tasks().GetTaskByID(ctx, id)
		if err != nil {
			return fmt.Errorf("fetch created task: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	l.Info("task created", slog.Int64("task_id", created.ID), slog.Int64("user_id", callerID))
	return created, nil
}

// Update applies the provided fields and returns the refreshed task.
func (s *TaskService) Update(ctx context.Context, callerID, taskID int64, in TaskInput) (domain.Task, error) {
	// 1. Validate supplied fields
	patch, err := validatePatch(in)
	if err != nil {
		return domain.Task{}, err
	}

	// 2. Nothing recognised is a client error, distinct from not found
	if patch.IsEmpty() {
		return domain.Task{}, ErrNoUpdateFields
	}

	// 3. Write and re-read atomically
	var updated domain.Task
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Tasks().UpdateTaskFields(ctx, taskID, callerID, patch)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if n == 0 {
			return ErrTaskNotFound
		}

		updated, err = tx.Tasks().GetTaskByID(ctx, taskID)
		if err != nil {
			return fmt.Errorf("fetch updated task: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, callerID, taskID int64) error {
	n, err := s.Store.Tasks().DeleteTask(ctx, taskID, callerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return ErrTaskNotFound
	}

	slogx.FromContext(ctx).Info("task deleted", slog.Int64("task_id", taskID), slog.Int64("user_id", callerID))
	return nil
}

func getOwnedTask(ctx context.Context, st store.Store, callerID, taskID int64) (domain.Task, error) {
	t, err := st.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	if t.UserID != callerID {
		return domain.Task{}, ErrTaskNotFound
	}
	return t, nil
}

func validateNewTask(in TaskInput) (domain.NewTask, error) {
	var (
		nt   domain.NewTask
		errs domain.ValidationErrors
	)

	title := strings.TrimSpace(in.Title.Value)
	if title == "" {
		errs = append(errs, domain.NewFieldError(domain.LocationBody, "title", title, "Title is required"))
	}
	nt.Title = title

	if in.Description.Set {
		nt.Description = in.Description.Value
	}

	if in.Status.Set {
		st, err := domain.ParseTaskStatus(in.Status.Value)
		if err != nil {
			errs = append(errs, domain.NewFieldError(domain.LocationBody, "status", in.Status.Value, "Invalid status"))
		}
		nt.Status = st
	}
	if in.Priority.Set {
		p, err := domain.ParseTaskPriority(in.Priority.Value)
		if err != nil {
			errs = append(errs, domain.NewFieldError(domain.LocationBody, "priority", in.Priority.Value, "Invalid priority"))
		}
		nt.Priority = p
	}

	return nt, errs.Err()
}

func validatePatch(in TaskInput) (domain.TaskPatch, error) {
	var (
		patch domain.TaskPatch
		errs  domain.ValidationErrors
	)

	if in.Title.Set {
		title := strings.TrimSpace(in.Title.Value)
		if title == "" {
			errs = append(errs, domain.NewFieldError(domain.LocationBody, "title", title, "Title cannot be empty"))
		}
		patch.Title = domain.Some(title)
	}

	patch.Description = in.Description

	if in.Status.Set {
		st, err := domain.ParseTaskStatus(in.Status.Value)
		if err != nil {
			errs = append(errs, domain.NewFieldError(domain.LocationBody, "status", in.Status.Value, "Invalid status"))
		}
		patch.Status = domain.Some(st)
	}
	if in.Priority.Set {
		p, err := domain.ParseTaskPriority(in.Priority.Value)
		if err != nil {
			errs = append(errs, domain.NewFieldError(domain.LocationBody, "priority", in.Priority.Value, "Invalid priority"))
		}
		patch.Priority = domain.Some(p)
	}

	return patch, errs.Err()
}
