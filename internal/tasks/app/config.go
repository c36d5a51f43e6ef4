package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                int           `env:"PORT" envDefault:"3001"`
	Env                 string        `env:"ENV" envDefault:"dev"`          // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`   // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`  // json, text
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	// JWTSecret signs session tokens. When empty the secret is read from
	// JWTSecretFile, which is created on first start.
	JWTSecret       string   `env:"JWT_SECRET"`
	JWTSecretFile   string   `env:"JWT_SECRET_FILE" envDefault:"jwt.secret"`
	PreviousSecrets []string `env:"JWT_PREVIOUS_SECRETS" envSeparator:","` // verify only, for rotation

	Issuer   string        `env:"TASKS_ISSUER" envDefault:"taskboard"`
	TokenTTL time.Duration `env:"TASKS_TOKEN_TTL" envDefault:"24h"`

	DatabaseFile string `env:"TASKS_DATABASE_FILE" envDefault:"tasks.db"`
	PepperFile   string `env:"TASKS_PEPPER_FILE" envDefault:"pepper"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TASKS_TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("TASKS_ISSUER must not be empty"))
	}
	if c.JWTSecret == "" && c.JWTSecretFile == "" {
		errs = append(errs, errors.New("one of JWT_SECRET or JWT_SECRET_FILE is required"))
	}
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("TASKS_DATABASE_FILE must not be empty"))
	}

	return errors.Join(errs...)
}
