// Package config loads server configuration from environment variables.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/rollforge/roll-api/internal/errors"
)

// Config is the server configuration.
type Config struct {
	// Port the HTTP server listens on
	Port int `env:"PORT" envDefault:"8080"`

	// RedisAddr is the address of the redis instance backing roll history
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// RedisPassword is optional; empty means no auth
	RedisPassword string `env:"REDIS_PASSWORD"`

	// HistoryTTL is how long an idle roll history session lives
	HistoryTTL time.Duration `env:"HISTORY_TTL" envDefault:"15m"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, errors.InvalidArgumentf("PORT %d is out of range", cfg.Port)
	}
	if cfg.HistoryTTL <= 0 {
		return nil, errors.InvalidArgumentf("HISTORY_TTL must be positive, got %s", cfg.HistoryTTL)
	}

	return cfg, nil
}
