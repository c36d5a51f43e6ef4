package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
)

type taskRow struct {
	ID          int64
	Title       string
	Description sql.NullString
	Status      string
	Priority    string
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func scanTask(row scanner) (taskRow, error) {
	var t taskRow
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

const createTask = `INSERT INTO tasks (title, description, status, priority, user_id)
VALUES (?, ?, ?, ?, ?)`

type CreateTaskParams struct {
	Title       string
	Description sql.NullString
	Status      string
	Priority    string
	UserID      int64
}

func (q *Queries) CreateTask(ctx context.Context, arg CreateTaskParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createTask,
		arg.Title,
		arg.Description,
		arg.Status,
		arg.Priority,
		arg.UserID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getTaskByID = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

func (q *Queries) GetTaskByID(ctx context.Context, id int64) (taskRow, error) {
	return scanTask(q.db.QueryRowContext(ctx, getTaskByID, id))
}

// ListTasks builds its WHERE clause from the filter. Only placeholders are
// appended, never values.
func (q *Queries) ListTasks(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]taskRow, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`)
	args := []any{ownerID}

	if filter.Status != nil {
		sb.WriteString(` AND status = ?`)
		args = append(args, string(*filter.Status))
	}
	if filter.Priority != nil {
		sb.WriteString(` AND priority = ?`)
		args = append(args, string(*filter.Priority))
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC`)

	rows, err := q.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []taskRow
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateTaskFields writes the provided columns and always bumps updated_at.
func (q *Queries) UpdateTaskFields(ctx context.Context, taskID, ownerID int64, patch domain.TaskPatch) (int64, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if patch.Title.Set {
		sets = append(sets, "title = ?")
		args = append(args, patch.Title.Value)
	}
	if patch.Description.Set {
		sets = append(sets, "description = ?")
		args = append(args, mapOptionalString(patch.Description.Value))
	}
	if patch.Status.Set {
		sets = append(sets, "status = ?")
		args = append(args, string(patch.Status.Value))
	}
	if patch.Priority.Set {
		sets = append(sets, "priority = ?")
		args = append(args, string(patch.Priority.Value))
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, taskID, ownerID)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteTask = `DELETE FROM tasks WHERE id = ? AND user_id = ?`

func (q *Queries) DeleteTask(ctx context.Context, taskID, ownerID int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTask, taskID, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type tasksRepo struct {
	q *Queries
}

func (r *tasksRepo) CreateTask(ctx context.Context, ownerID int64, t domain.NewTask) (int64, error) {
	status := t.Status
	if status == "" {
		status = domain.DefaultTaskStatus
	}
	priority := t.Priority
	if priority == "" {
		priority = domain.DefaultTaskPriority
	}

	return r.q.CreateTask(ctx, CreateTaskParams{
		Title:       t.Title,
		Description: mapOptionalString(t.Description),
		Status:      string(status),
		Priority:    string(priority),
		UserID:      ownerID,
	})
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, taskID int64) (domain.Task, error) {
	row, err := r.q.GetTaskByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	return mapTask(row), nil
}

func (r *tasksRepo) ListTasksByOwner(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	rows, err := r.q.ListTasks(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTask(row))
	}
	return out, nil
}

func (r *tasksRepo) UpdateTaskFields(ctx context.Context, taskID, ownerID int64, patch domain.TaskPatch) (int64, error) {
	return r.q.UpdateTaskFields(ctx, taskID, ownerID, patch)
}

func (r *tasksRepo) DeleteTask(ctx context.Context, taskID, ownerID int64) (int64, error) {
	return r.q.DeleteTask(ctx, taskID, ownerID)
}

func mapTask(row taskRow) domain.Task {
	return domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: mapNullStringPtr(row.Description),
		Status:      domain.TaskStatus(row.Status),
		Priority:    domain.TaskPriority(row.Priority),
		UserID:      row.UserID,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}
