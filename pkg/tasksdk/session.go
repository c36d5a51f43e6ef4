package tasksdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Session is an authenticated user. Tokens are not refreshed; once expired
// every call fails with a 403 and the caller must log in again.
type Session struct {
	client *Client
	token  string
	user   UserResponse
}

func newSession(c *Client, auth AuthResponse) *Session {
	return &Session{
		client: c,
		token:  auth.Token,
		user:   auth.User,
	}
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// User returns the user the session was opened for. It is zero for sessions
// built with NewSessionFromToken.
func (s *Session) User() UserResponse { return s.user }

// ListTasks returns the caller's tasks, newest first.
func (s *Session) ListTasks(ctx context.Context, opts ListTasksOptions) ([]TaskResponse, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Priority != "" {
		q.Set("priority", opts.Priority)
	}

	path := "/api/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.client.doRequest(ctx, http.MethodGet, path, s.token, nil)
	if err != nil {
		return nil, err
	}

	var tasks []TaskResponse
	if err := decodeJSON(resp, &tasks, http.StatusOK); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Session) GetTask(ctx context.Context, id int64) (*TaskResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, taskPath(id), s.token, nil)
	if err != nil {
		return nil, err
	}

	var task TaskResponse
	if err := decodeJSON(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Session) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/api/tasks", s.token, req)
	if err != nil {
		return nil, err
	}

	var task TaskResponse
	if err := decodeJSON(resp, &task, http.StatusCreated); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask sends only the fields set on req.
func (s *Session) UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (*TaskResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPut, taskPath(id), s.token, req)
	if err != nil {
		return nil, err
	}

	var task TaskResponse
	if err := decodeJSON(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Session) DeleteTask(ctx context.Context, id int64) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, taskPath(id), s.token, nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

func taskPath(id int64) string {
	return "/api/tasks/" + strconv.FormatInt(id, 10)
}
