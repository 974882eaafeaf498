package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/perchhq/perch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRoster_EmptyPathUsesBuiltin(t *testing.T) {
	defs, err := LoadRoster("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRoster(), defs)
}

func TestLoadRoster_FromFile(t *testing.T) {
	path := writeRoster(t, `
agents:
  - name: orchestrator
    display_name: Orchestrator
    specialization: triage
    coordinator: true
  - name: builder
    display_name: Builder
    specialization: implementation
    keywords: [build, ship]
`)

	defs, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "orchestrator", defs[0].Name)
	assert.True(t, defs[0].IsCoordinator)
	assert.Equal(t, []string{"build", "ship"}, defs[1].Keywords)
}

func TestLoadRoster_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty roster", "agents: []"},
		{"duplicate names", "agents:\n  - name: ada\n  - name: ada"},
		{"missing name", "agents:\n  - display_name: Ghost"},
		{"two coordinators", "agents:\n  - name: a\n    coordinator: true\n  - name: b\n    coordinator: true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRoster(writeRoster(t, tt.content))
			assert.Error(t, err)
		})
	}
}
