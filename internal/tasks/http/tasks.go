package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
	"github.com/aussiebroadwan/taskboard/internal/tasks/service"
	"github.com/aussiebroadwan/taskboard/pkg/httpx"
	"github.com/aussiebroadwan/taskboard/pkg/slogx"
	"github.com/aussiebroadwan/taskboard/pkg/tasksdk"
)

// TasksHandler serves the caller's tasks. Every route sits behind
// AuthnMiddleware.
type TasksHandler struct {
	TaskService *service.TaskService
}

// HandleList godoc
//
//	@Summary		List tasks
//	@Description	Returns the caller's tasks, newest first. Empty filter values are ignored.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status		query		string							false	"Filter by status"		Enums(pending, in-progress, completed)
//	@Param			priority	query		string							false	"Filter by priority"	Enums(low, medium, high)
//	@Success		200			{array}		tasksdk.TaskResponse
//	@Failure		400			{object}	tasksdk.ValidationErrorResponse	"Unknown filter value"
//	@Failure		401			{object}	tasksdk.ErrorResponse			"Access token required"
//	@Failure		403			{object}	tasksdk.ErrorResponse			"Invalid or expired token"
//	@Failure		500			{object}	tasksdk.ErrorResponse			"Failed to fetch tasks"
//	@Router			/api/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter, err := service.ParseFilter(q.Get("status"), q.Get("priority"))
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			writeValidation(w, verrs)
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.TaskService.List(ctx, caller.UserID, filter)
	if err != nil {
		log.Error("list tasks failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	out := make([]tasksdk.TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = taskResponse(t)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Get a task
//	@Description	Tasks owned by other users are reported as not found.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Task ID"
//	@Success		200	{object}	tasksdk.TaskResponse
//	@Failure		401	{object}	tasksdk.ErrorResponse	"Access token required"
//	@Failure		403	{object}	tasksdk.ErrorResponse	"Invalid or expired token"
//	@Failure		404	{object}	tasksdk.ErrorResponse	"Task not found"
//	@Failure		500	{object}	tasksdk.ErrorResponse	"Database error"
//	@Router			/api/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDOrNotFound(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.Get(ctx, caller.UserID, taskID)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, taskResponse(task))
	case errors.Is(err, service.ErrTaskNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgTaskNotFound)
	default:
		log.Error("get task failed", "task_id", taskID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
	}
}

// HandleCreate godoc
//
//	@Summary		Create a task
//	@Description	The owner is always the caller. Status defaults to pending and priority to medium.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.CreateTaskRequest		true	"Task"
//	@Success		201		{object}	tasksdk.TaskResponse
//	@Failure		400		{object}	tasksdk.ValidationErrorResponse	"Validation failed"
//	@Failure		401		{object}	tasksdk.ErrorResponse			"Access token required"
//	@Failure		403		{object}	tasksdk.ErrorResponse			"Invalid or expired token"
//	@Failure		500		{object}	tasksdk.ErrorResponse			"Failed to create task"
//	@Router			/api/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}
	fields, ok := readObject(w, r, "title", "description", "status", "priority")
	if !ok {
		return
	}

	task, err := h.TaskService.Create(ctx, caller.UserID, taskInput(fields))

	var verrs domain.ValidationErrors
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, taskResponse(task))
	case errors.As(err, &verrs):
		writeValidation(w, verrs)
	default:
		log.Error("create task failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to create task")
	}
}

// HandleUpdate godoc
//
//	@Summary		Update a task
//	@Description	Partial update: only the fields present in the body change. A null description clears it.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Task ID"
//	@Param			request	body		tasksdk.CreateTaskRequest		true	"Fields to change"
//	@Success		200		{object}	tasksdk.TaskResponse
//	@Failure		400		{object}	tasksdk.ValidationErrorResponse	"Validation failed, or no fields to update"
//	@Failure		401		{object}	tasksdk.ErrorResponse			"Access token required"
//	@Failure		403		{object}	tasksdk.ErrorResponse			"Invalid or expired token"
//	@Failure		404		{object}	tasksdk.ErrorResponse			"Task not found"
//	@Failure		500		{object}	tasksdk.ErrorResponse			"Failed to update task"
//	@Router			/api/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDOrNotFound(w, r)
	if !ok {
		return
	}
	fields, ok := readObject(w, r, "title", "description", "status", "priority")
	if !ok {
		return
	}

	task, err := h.TaskService.Update(ctx, caller.UserID, taskID, taskInput(fields))

	var verrs domain.ValidationErrors
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, taskResponse(task))
	case errors.As(err, &verrs):
		writeValidation(w, verrs)
	case errors.Is(err, service.ErrNoUpdateFields):
		httpx.WriteError(w, http.StatusBadRequest, msgNoFields)
	case errors.Is(err, service.ErrTaskNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgTaskNotFound)
	default:
		log.Error("update task failed", "task_id", taskID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to update task")
	}
}

// HandleDelete godoc
//
//	@Summary		Delete a task
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Task ID"
//	@Success		200	{object}	tasksdk.MessageResponse	"Task deleted successfully"
//	@Failure		401	{object}	tasksdk.ErrorResponse	"Access token required"
//	@Failure		403	{object}	tasksdk.ErrorResponse	"Invalid or expired token"
//	@Failure		404	{object}	tasksdk.ErrorResponse	"Task not found"
//	@Failure		500	{object}	tasksdk.ErrorResponse	"Failed to delete task"
//	@Router			/api/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	caller, ok := callerOrReject(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDOrNotFound(w, r)
	if !ok {
		return
	}

	err := h.TaskService.Delete(ctx, caller.UserID, taskID)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, tasksdk.MessageResponse{Message: "Task deleted successfully"})
	case errors.Is(err, service.ErrTaskNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgTaskNotFound)
	default:
		log.Error("delete task failed", "task_id", taskID, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to delete task")
	}
}

// callerOrReject answers 403 when the guard left no usable identity, e.g.
// a token whose id claim is missing.
func callerOrReject(w http.ResponseWriter, r *http.Request) (httpx.Caller, bool) {
	caller, ok := httpx.CallerFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, httpx.MsgTokenInvalid)
	}
	return caller, ok
}

// taskIDOrNotFound parses {id}. Anything but a positive integer cannot name
// a task, so it is a 404 like any other unknown id.
func taskIDOrNotFound(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusNotFound, msgTaskNotFound)
		return 0, false
	}
	return id, true
}

func taskResponse(t domain.Task) tasksdk.TaskResponse {
	return tasksdk.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
