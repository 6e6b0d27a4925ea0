// Package config loads process configuration from the environment.
//
// A .env file in the working directory is read first (missing is fine),
// then PPS_* variables are decoded into Config. Command-line flags in
// cmd/server override the listen port and the settings path.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. PPS_PORT.
const Prefix = "PPS"

// Config holds process configuration loaded from environment variables.
type Config struct {
	Port         int           `envconfig:"PORT" default:"8080"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	LogPretty    bool          `envconfig:"LOG_PRETTY" default:"false"`
	SettingsPath string        `envconfig:"SETTINGS_PATH"` // empty: built-in defaults
	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"1s"`
	Location     string        `envconfig:"LOCATION" default:"Local"` // IANA zone for the work window
	Console      bool          `envconfig:"CONSOLE" default:"false"`  // draw the reading on stdout
}

// Load reads .env files (if present) and the environment into Config.
func Load(envFiles ...string) (Config, error) {
	var cfg Config
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load env file: %w", err)
	}
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return cfg, err
	}
	if cfg.TickInterval <= 0 {
		return cfg, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}

// LoadLocation resolves Location; "Local" and "" mean the system zone.
func (c Config) LoadLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", c.Location, err)
	}
	return loc, nil
}
