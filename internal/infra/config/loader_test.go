package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "perch.db", cfg.Database.Path)
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.Interval)
	assert.Equal(t, 2*time.Minute, cfg.Scheduler.Stagger)
	assert.False(t, cfg.Discord.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
path = "/var/lib/perch/board.db"

[scheduler]
interval = "30m"
stagger = "1m"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/perch/board.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Minute, cfg.Scheduler.Interval)
	assert.Equal(t, time.Minute, cfg.Scheduler.Stagger)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep defaults.
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.CoordinatorInterval)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[database]
path = "from-file.db"
`)
	t.Setenv(EnvDatabasePath, "from-env.db")
	t.Setenv(EnvDiscordToken, "token-123")
	t.Setenv(EnvDiscordChan, "chan-456")
	t.Setenv(EnvSchedInterval, "45m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.Database.Path)
	assert.True(t, cfg.Discord.Enabled, "setting a token enables the sink")
	assert.Equal(t, "token-123", cfg.Discord.Token)
	assert.Equal(t, "chan-456", cfg.Discord.ChannelID)
	assert.Equal(t, 45*time.Minute, cfg.Scheduler.Interval)
}

func TestLoad_ReportsAllProblemsAtOnce(t *testing.T) {
	path := writeConfig(t, `
[database]
path = ""

[discord]
enabled = true

[log]
level = "loud"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.path")
	assert.Contains(t, err.Error(), "discord.token")
	assert.Contains(t, err.Error(), "discord.channel_id")
	assert.Contains(t, err.Error(), "log.level")
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "[database\npath=")
	_, err := Load(path)
	assert.Error(t, err)
}
