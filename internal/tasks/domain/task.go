package domain

import (
	"fmt"
	"slices"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every accepted status in display order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

func (s TaskStatus) Valid() bool { return slices.Contains(TaskStatuses, s) }

// ParseTaskStatus is case-sensitive: the wire values are lowercase.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid task status %q", s)
	}
	return st, nil
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

func (p TaskPriority) Valid() bool { return slices.Contains(TaskPriorities, p) }

func ParseTaskPriority(s string) (TaskPriority, error) {
	p := TaskPriority(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid task priority %q", s)
	}
	return p, nil
}

// Defaults applied when a task is created without them.
const (
	DefaultTaskStatus   = TaskStatusPending
	DefaultTaskPriority = TaskPriorityMedium
)

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask is the input to task creation. Empty Status/Priority take the defaults.
type NewTask struct {
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
}

// Optional distinguishes "not provided" from any provided value, including
// the zero value.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a provided Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// TaskPatch is a partial update. Description is doubly optional: Set with a
// nil Value clears it.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[*string]
	Status      Optional[TaskStatus]
	Priority    Optional[TaskPriority]
}

// IsEmpty reports whether no field is provided.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set && !p.Priority.Set
}

// TaskFilter narrows a task listing. Nil fields do not filter.
type TaskFilter struct {
	Status   *TaskStatus
	Priority *TaskPriority
}
