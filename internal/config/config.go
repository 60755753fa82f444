// Package config loads pkgext settings from the environment.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds environment-driven settings. CLI flags override these.
type Config struct {
	LogLevel   string `env:"PKGEXT_LOG_LEVEL" env-default:"warn" env-description:"log level (trace, debug, info, warn, error)"`
	JSONLog    bool   `env:"PKGEXT_JSON_LOG" env-default:"false" env-description:"emit logs as JSON"`
	MaxEntries int    `env:"PKGEXT_MAX_ENTRIES" env-default:"100000" env-description:"maximum entries read per archive"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	if cfg.MaxEntries <= 0 {
		return Config{}, fmt.Errorf("PKGEXT_MAX_ENTRIES must be positive, got %d", cfg.MaxEntries)
	}
	return cfg, nil
}

// Usage describes the recognized environment variables for help output.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
