package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Prefix is prepended to every environment variable name. Each variable may
// also be given without it, so DATABASE_URL works as well as
// POLAROIDS_DATABASE_URL.
const Prefix = "polaroids"

// Config holds all server configuration
type Config struct {
	DatabaseURL        string        `envconfig:"DATABASE_URL" required:"true"`
	Port               int           `envconfig:"PORT" default:"5000"`
	UploadDir          string        `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxUploadBytes     int64         `envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	SweepInterval      time.Duration `envconfig:"SWEEP_INTERVAL" default:"0"`
	SweepGracePeriod   time.Duration `envconfig:"SWEEP_GRACE_PERIOD" default:"1h"`
	SentryDsn          string        `envconfig:"SENTRY_DSN"`
	Environment        string        `envconfig:"ENVIRONMENT"`
}

// Load reads the configuration from the environment and validates it
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return cfg, errors.Wrap(err, "Could not read configuration from environment")
	}

	if err := validateConfig(cfg); err != nil {
		return cfg, errors.Wrap(err, "Invalid configuration")
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	invalid := []string{}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		invalid = append(invalid, "PORT")
	}
	if cfg.UploadDir == "" {
		invalid = append(invalid, "UPLOAD_DIR")
	}
	if cfg.MaxUploadBytes <= 0 {
		invalid = append(invalid, "MAX_UPLOAD_BYTES")
	}
	if cfg.SweepInterval < 0 {
		invalid = append(invalid, "SWEEP_INTERVAL")
	}
	if cfg.SweepGracePeriod < 0 {
		invalid = append(invalid, "SWEEP_GRACE_PERIOD")
	}

	if len(invalid) > 0 {
		return fmt.Errorf("Invalid fields: %v", invalid)
	}
	return nil
}
