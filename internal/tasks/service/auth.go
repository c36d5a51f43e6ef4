package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/taskboard/internal/tasks/domain"
	"github.com/aussiebroadwan/taskboard/internal/tasks/store"
	"github.com/aussiebroadwan/taskboard/pkg/cryptox"
	"github.com/aussiebroadwan/taskboard/pkg/jwtx"
	"github.com/aussiebroadwan/taskboard/pkg/slogx"
	"golang.org/x/text/unicode/norm"
)

// Credential rules.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

var (
	ErrUserExists         = errors.New("user_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// AuthResult is a freshly issued session for a user.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

type AuthService struct {
	Store    store.Store
	Tokens   *jwtx.KeyManager
	TokenTTL time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

// Register validates the credentials, creates the user and issues a token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	l := slogx.FromContext(ctx)

	username = normalizeUsername(username)

	// 1. Validate input before touching storage
	if err := validateRegistration(username, email, password).Err(); err != nil {
		return AuthResult{}, err
	}

	// 2. Reject a taken username or email without saying which one collided
	_, err := s.Store.Users().GetUserByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		return AuthResult{}, ErrUserExists
	case !errors.Is(err, store.ErrNotFound):
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	// 3. Hash and store
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.Store.Users().CreateUser(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// lost a race against a concurrent registration
			return AuthResult{}, ErrUserExists
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	user := domain.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	// 4. Issue the session token
	res, err := s.issue(user)
	if err != nil {
		return AuthResult{}, err
	}

	l.Info("user registered", slog.Int64("user_id", id), slog.String("username", username))
	return res, nil
}

// Login verifies the credentials and issues a token. Unknown users and
// wrong passwords fail identically with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	l := slogx.FromContext(ctx)

	if err := validateLogin(username, password).Err(); err != nil {
		return AuthResult{}, err
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login failed", slog.String("reason", "unknown_user"))
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login failed", slog.String("reason", "bad_password"), slog.Int64("user_id", user.ID))
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("verify password: %w", err)
	}

	// Upgrade legacy bcrypt or outdated argon2 parameters. Failure here
	// must not block the login.
	if cryptox.NeedsRehash(user.PasswordHash) {
		if hash, err := cryptox.HashPassword(password); err == nil {
			if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
				l.Warn("password rehash failed", slog.Int64("user_id", user.ID), slog.Any("error", err))
			} else {
				user.PasswordHash = hash
			}
		}
	}

	res, err := s.issue(user)
	if err != nil {
		return AuthResult{}, err
	}

	l.Info("user logged in", slog.Int64("user_id", user.ID))
	return res, nil
}

func (s *AuthService) issue(user domain.User) (AuthResult, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	token, exp, err := s.Tokens.Issue(user.ID, user.Username, ttl, s.now())
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// normalizeUsername trims surrounding whitespace and composes the string so
// visually identical names compare equal.
func normalizeUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}

// Passwords are never echoed back in a FieldError.
func validateRegistration(username, email, password string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if utf8.RuneCountInString(username) < MinUsernameLength {
		errs = append(errs, domain.NewFieldError(domain.LocationBody, "username", username,
			"Username must be at least 3 characters"))
	}
	if !IsEmail(email) {
		errs = append(errs, domain.NewFieldError(domain.LocationBody, "email", email,
			"Invalid email format"))
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs = append(errs, domain.NewFieldError(domain.LocationBody, "password", nil,
			"Password must be at least 6 characters"))
	}
	return errs
}

func validateLogin(username, password string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if username == "" {
		errs = append(errs, domain.NewFieldError(domain.LocationBody, "username", username,
			"Username is required"))
	}
	if password == "" {
		errs = append(errs, domain.NewFieldError(domain.LocationBody, "password", nil,
			"Password is required"))
	}
	return errs
}

// IsEmail accepts a bare addr-spec whose domain contains a dot. Display
// names ("Bob <bob@example.com>") are rejected.
func IsEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return false
	}

	at := strings.LastIndexByte(email, '@')
	host := email[at+1:]
	if !strings.Contains(host, ".") || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return false
	}
	return true
}
