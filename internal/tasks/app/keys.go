package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/taskboard/pkg/cryptox"
	"github.com/aussiebroadwan/taskboard/pkg/jwtx"
)

// InitSessionKeys builds the HS256 KeyManager used to sign and verify
// session tokens.
//
// The signing secret comes from JWT_SECRET, or from JWT_SECRET_FILE when the
// variable is unset. A missing file is generated so a fresh install works
// without configuration, and tokens survive restarts. JWT_PREVIOUS_SECRETS
// keeps tokens signed with a retired secret valid until they expire.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	secret := cfg.JWTSecret
	source := "env"
	if secret == "" {
		var err error
		secret, err = cryptox.LoadOrGenerateSecret(cfg.JWTSecretFile, cryptox.TokenSize256)
		if err != nil {
			return nil, fmt.Errorf("load signing secret: %w", err)
		}
		source = cfg.JWTSecretFile
	}

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Issuer:          cfg.Issuer,
		Secret:          secret,
		PreviousSecrets: cfg.PreviousSecrets,
	})
	if err != nil {
		return nil, err
	}

	active, _, _ := km.KeySet.Active()
	logger.Info("session signing key loaded",
		"kid", active,
		"source", source,
		"verify_only", len(km.KeySet.KIDs())-1,
	)

	return km, nil
}
