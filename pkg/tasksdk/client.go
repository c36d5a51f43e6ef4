package tasksdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to the unauthenticated endpoints and opens Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the task service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account and returns a session for it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", "", req)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// Login authenticates with a username and password.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// NewSessionFromToken wraps a token obtained elsewhere. The user is unknown
// to the session until the server is called.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Health calls /api/health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/api/health")
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/livez")
}

// GetReadiness checks if the service is ready. A degraded service yields an
// *APIError with status 503.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/readyz")
}

func (c *Client) getHealth(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
