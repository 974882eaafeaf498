package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables recognized by applyEnv. They take precedence over the
// config file so secrets can stay out of it.
const (
	EnvDatabasePath  = "PERCH_DATABASE_PATH"
	EnvDiscordToken  = "PERCH_DISCORD_TOKEN"
	EnvDiscordChan   = "PERCH_DISCORD_CHANNEL_ID"
	EnvLogLevel      = "PERCH_LOG_LEVEL"
	EnvSchedInterval = "PERCH_SCHEDULER_INTERVAL"
)

// Load reads the configuration file at path, applies environment overrides,
// and validates the result. A missing file is not an error: defaults plus
// environment are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults apply.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv(EnvDiscordToken); v != "" {
		cfg.Discord.Token = v
		cfg.Discord.Enabled = true
	}
	if v := os.Getenv(EnvDiscordChan); v != "" {
		cfg.Discord.ChannelID = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvSchedInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvSchedInterval, err)
		}
		cfg.Scheduler.Interval = d
	}
	return nil
}
