package tasksdk

import "time"

// ============================================================================
// Auth
// ============================================================================

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is returned by register (201) and login (200).
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ============================================================================
// Tasks
// ============================================================================

// TaskResponse is a task as returned by the task endpoints.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTaskRequest is the body of POST /api/tasks. Empty Status and
// Priority are omitted so the server defaults apply.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	Priority    string  `json:"priority,omitempty"`
}

// UpdateTaskRequest is a partial update. Nil fields are left unchanged;
// set ClearDescription to send an explicit null description.
type UpdateTaskRequest struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *string
	Priority         *string
}

// ListTasksOptions filters GET /api/tasks. Empty values do not filter.
type ListTasksOptions struct {
	Status   string
	Priority string
}

// ============================================================================
// Generic responses
// ============================================================================

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// ValidationErrorResponse is the 400 body for rejected input.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// HealthResponse represents the response structure for health check endpoints.
// /api/health fills Status and Timestamp; /livez and /readyz add uptime and
// version, and /readyz adds Checks.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Timestamp is the server time in ISO 8601 with millisecond precision
	Timestamp string `json:"timestamp,omitempty"`

	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`

	// Checks is only present on /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates the JWT signing capability status
	Signer string `json:"signer"`
}
