package jwtx

import (
	"errors"
	"fmt"
	"time"
)

// KeyManager bundles the KeySet with the signer and verifier built on it.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet

	issuer string
}

// KeyManagerOptions configures NewKeyManager.
type KeyManagerOptions struct {
	// Issuer is stamped into and required of every token.
	Issuer string

	// Secret is the active signing secret.
	Secret string

	// PreviousSecrets still verify but never sign. Use them to rotate
	// Secret without logging everybody out.
	PreviousSecrets []string

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration

	// Now overrides the verifier clock, for tests.
	Now func() time.Time
}

// NewKeyManager builds an HS256 KeyManager from opts.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	keys := NewKeySet()

	for i, prev := range opts.PreviousSecrets {
		if prev == "" {
			continue
		}
		if _, err := keys.Add(prev); err != nil {
			return nil, fmt.Errorf("jwtx: previous secret %d: %w", i+1, err)
		}
	}

	kid, err := keys.Add(opts.Secret)
	if err != nil {
		return nil, fmt.Errorf("jwtx: signing secret: %w", err)
	}
	if err := keys.Activate(kid); err != nil {
		return nil, err
	}

	return &KeyManager{
		Signer: NewSignerHS256(keys),
		Verifier: NewVerifierHS256(keys, VerifyOptions{
			Issuer: opts.Issuer,
			Leeway: opts.Leeway,
			Now:    opts.Now,
		}),
		KeySet: keys,
		issuer: opts.Issuer,
	}, nil
}

// Issuer returns the issuer tokens are minted with.
func (km *KeyManager) Issuer() string { return km.issuer }

// IsReady returns true if a signing secret is loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// Issue signs a session token for the user and returns it with its expiry.
func (km *KeyManager) Issue(userID int64, username string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	claims := NewSessionClaims(userID, username, ttl, km.issuer, now)
	token, err := km.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}
