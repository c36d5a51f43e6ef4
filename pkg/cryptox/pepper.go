package cryptox

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile = "pepper"
)

// SetPepperPath sets the file the pepper is loaded from (or written to) and
// drops any cached value.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperFile = file
	pepper = ""
}

// GetPepper returns the process pepper, loading or creating it on first use.
// A pepper that cannot be read makes every stored hash unverifiable, so
// failure is fatal.
func GetPepper() string {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper
	}

	p, err := LoadOrGenerateSecret(pepperFile, keyLength)
	if err != nil {
		slog.Error("failed to load or generate pepper", slog.Any("error", err))
		os.Exit(1)
	}
	pepper = p
	return pepper
}

// LoadOrGenerateSecret reads a secret from path. When the file does not exist
// a random secret of size bytes is generated, base64url encoded and written
// with 0600 permissions. Surrounding whitespace in existing files is ignored.
func LoadOrGenerateSecret(path string, size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: secret size must be positive, got %d", size)
	}

	path = filepath.Clean(path)
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		secret := strings.TrimSpace(string(raw))
		if secret == "" {
			return "", fmt.Errorf("cryptox: secret file %s is empty", path)
		}
		return secret, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", err
	}

	secret, err := GenerateToken(size)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(secret), 0o600); err != nil {
		return "", err
	}
	return secret, nil
}
