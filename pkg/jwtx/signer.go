package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// AlgorithmHS256 is the only signing algorithm issued and accepted.
const AlgorithmHS256 = "HS256"

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs with whichever secret is active in its KeySet, so a
// rotation takes effect for the next token without rebuilding the signer.
type HS256Signer struct {
	keys *KeySet
}

// NewSignerHS256 returns a signer bound to keys.
func NewSignerHS256(keys *KeySet) *HS256Signer {
	return &HS256Signer{keys: keys}
}

func (s *HS256Signer) Alg() string { return AlgorithmHS256 }

// Sign serialises claims into a compact JWT with a kid header.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	kid, secret, err := s.keys.Active()
	if err != nil {
		return "", fmt.Errorf("jwtx: no signing secret: %w", err)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = kid
	return t.SignedString(secret)
}
