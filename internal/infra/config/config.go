// Package config provides configuration loading for the task board.
package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultConfigFileName is the config file looked up when --config is not set.
const DefaultConfigFileName = "perch.toml"

// Config is the full runtime configuration.
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Discord   DiscordConfig   `toml:"discord"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Log       LogConfig       `toml:"log"`
	Roster    RosterConfig    `toml:"roster"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `toml:"path"` // Database file path
}

// DiscordConfig configures the notification sink. When Enabled is false the
// rest of the section is ignored and notifications are dropped.
type DiscordConfig struct {
	Token          string `toml:"token"`            // Bot token
	ChannelID      string `toml:"channel_id"`       // Channel for status updates
	InboxChannelID string `toml:"inbox_channel_id"` // Channel polled for direct requests
	BotUserID      string `toml:"bot_user_id"`      // Own user id, skipped when polling the inbox
	APIBase        string `toml:"api_base"`         // Override for testing
	Enabled        bool   `toml:"enabled"`
}

// SchedulerConfig configures the agent activation cadence.
type SchedulerConfig struct {
	Interval            time.Duration `toml:"interval"`             // Base activation interval
	Stagger             time.Duration `toml:"stagger"`              // Per-agent start offset
	CoordinatorInterval time.Duration `toml:"coordinator_interval"` // Cadence for the coordinator
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// RosterConfig points at the agent roster definition.
type RosterConfig struct {
	Path string `toml:"path"` // YAML roster file; empty means the built-in roster
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "perch.db"},
		Scheduler: SchedulerConfig{
			Interval:            15 * time.Minute,
			Stagger:             2 * time.Minute,
			CoordinatorInterval: 5 * time.Minute,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Validate checks the configuration and reports every problem at once, so a
// broken deploy surfaces all missing keys in a single run.
func (c *Config) Validate() error {
	var missing []string

	if c.Database.Path == "" {
		missing = append(missing, "database.path")
	}
	if c.Discord.Enabled {
		if c.Discord.Token == "" {
			missing = append(missing, "discord.token")
		}
		if c.Discord.ChannelID == "" {
			missing = append(missing, "discord.channel_id")
		}
	}
	if c.Scheduler.Interval <= 0 {
		missing = append(missing, "scheduler.interval")
	}
	if c.Scheduler.Stagger < 0 {
		missing = append(missing, "scheduler.stagger")
	}
	if c.Scheduler.CoordinatorInterval <= 0 {
		missing = append(missing, "scheduler.coordinator_interval")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		missing = append(missing, "log.level")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		missing = append(missing, "log.format")
	}

	if len(missing) > 0 {
		return fmt.Errorf("invalid or missing config keys: %s", strings.Join(missing, ", "))
	}
	return nil
}
