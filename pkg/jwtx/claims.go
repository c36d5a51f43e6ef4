package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a session token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Claims are the session-token claims. The custom fields keep the payload
// the browser client already reads ({id, username}).
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the numeric account id, mirrored in "sub" as a string.
	UserID int64 `json:"id"`

	Username string `json:"username"`
}

// NewSessionClaims builds claims for an authenticated user.
func NewSessionClaims(userID int64, username string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserID:   userID,
		Username: username,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks iss against expected. An empty expectation passes.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateSubject checks that the numeric id and "sub" agree and name a real
// account id.
func (c *Claims) ValidateSubject() error {
	if c.UserID <= 0 {
		return ErrInvalidClaim
	}
	if c.Subject != "" && c.Subject != strconv.FormatInt(c.UserID, 10) {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateExpiryAt ensures the token hasn't expired and isn't used before
// nbf, as seen from now with a skew allowance.
func (c *Claims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
