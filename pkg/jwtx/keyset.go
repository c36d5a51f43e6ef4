package jwtx

import (
	"errors"
	"sync"

	"github.com/aussiebroadwan/taskboard/pkg/cryptox"
)

var (
	ErrNoKey       = errors.New("jwtx: key not found")
	ErrEmptySecret = errors.New("jwtx: empty secret")
)

// minSecretLength is the shortest HMAC secret accepted, in bytes.
const minSecretLength = 16

// KeySet holds the HMAC secrets tokens may be verified with, keyed by kid.
// Exactly one of them is active for signing; the rest are kept so tokens
// issued before a rotation stay valid until they expire.
type KeySet struct {
	mu      sync.RWMutex
	secrets map[string][]byte
	active  string
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{secrets: make(map[string][]byte)}
}

// KIDForSecret derives a stable key id from a secret without revealing it.
func KIDForSecret(secret string) string {
	return "hs-" + cryptox.FingerprintToken(secret)[:16]
}

// Add registers a verification secret and returns its kid. Adding the same
// secret twice is a no-op.
func (k *KeySet) Add(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if len(secret) < minSecretLength {
		return "", errors.New("jwtx: secret must be at least 16 bytes")
	}

	kid := KIDForSecret(secret)

	k.mu.Lock()
	defer k.mu.Unlock()
	k.secrets[kid] = []byte(secret)
	return kid, nil
}

// Activate makes kid the signing secret. It must already be in the set.
func (k *KeySet) Activate(kid string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.secrets[kid]; !ok {
		return ErrNoKey
	}
	k.active = kid
	return nil
}

// Get returns the secret for kid.
func (k *KeySet) Get(kid string) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if s, ok := k.secrets[kid]; ok {
		return s, nil
	}
	return nil, ErrNoKey
}

// Active returns the signing kid and secret.
func (k *KeySet) Active() (string, []byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.active == "" {
		return "", nil, ErrNoKey
	}
	return k.active, k.secrets[k.active], nil
}

// KIDs lists every kid in the set.
func (k *KeySet) KIDs() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]string, 0, len(k.secrets))
	for kid := range k.secrets {
		out = append(out, kid)
	}
	return out
}

// IsReady reports whether a signing secret is loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.active != ""
}
