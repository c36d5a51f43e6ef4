package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
	"github.com/aussiebroadwan/taskboard/internal/tasks/service"
	"github.com/aussiebroadwan/taskboard/pkg/httpx"
	"github.com/aussiebroadwan/taskboard/pkg/slogx"
	"github.com/aussiebroadwan/taskboard/pkg/tasksdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister creates an account and logs it in.
//
//	@Summary		Register a user
//	@Description	Creates an account and returns a session token. The conflict message does not say whether the username or the email is taken.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.RegisterRequest			true	"Credentials"
//	@Success		201		{object}	tasksdk.AuthResponse			"User created"
//	@Failure		400		{object}	tasksdk.ValidationErrorResponse	"Validation failed, or username/email taken"
//	@Failure		429		{object}	tasksdk.ErrorResponse			"Rate limited"
//	@Failure		500		{object}	tasksdk.ErrorResponse			"Database error"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	fields, ok := readObject(w, r, "username", "email", "password")
	if !ok {
		return
	}

	res, err := h.AuthService.Register(ctx,
		optionalString(fields, "username").Value,
		optionalString(fields, "email").Value,
		optionalString(fields, "password").Value,
	)

	var verrs domain.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		writeValidation(w, verrs)
		return
	case errors.Is(err, service.ErrUserExists):
		httpx.WriteError(w, http.StatusBadRequest, msgUserExists)
		return
	default:
		log.Error("register failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authResponse("User created successfully", res))
}

// HandleLogin exchanges credentials for a session token.
//
//	@Summary		Log in
//	@Description	Verifies username and password and returns a session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.LoginRequest			true	"Credentials"
//	@Success		200		{object}	tasksdk.AuthResponse			"Login successful"
//	@Failure		400		{object}	tasksdk.ValidationErrorResponse	"Missing username or password"
//	@Failure		401		{object}	tasksdk.ErrorResponse			"Invalid credentials"
//	@Failure		429		{object}	tasksdk.ErrorResponse			"Rate limited"
//	@Failure		500		{object}	tasksdk.ErrorResponse			"Database error"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	fields, ok := readObject(w, r, "username", "password")
	if !ok {
		return
	}

	res, err := h.AuthService.Login(ctx,
		optionalString(fields, "username").Value,
		optionalString(fields, "password").Value,
	)

	var verrs domain.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		writeValidation(w, verrs)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, msgInvalidCreds)
		return
	default:
		log.Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse("Login successful", res))
}

func authResponse(msg string, res service.AuthResult) tasksdk.AuthResponse {
	return tasksdk.AuthResponse{
		Message: msg,
		Token:   res.Token,
		User: tasksdk.UserResponse{
			ID:       res.User.ID,
			Username: res.User.Username,
			Email:    res.User.Email,
		},
	}
}
