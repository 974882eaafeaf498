package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/perchhq/perch/internal/domain"
	"gopkg.in/yaml.v3"
)

// rosterFile is the on-disk shape of the roster document.
type rosterFile struct {
	Agents []domain.AgentDef `yaml:"agents"`
}

// LoadRoster reads the agent roster from a YAML file. An empty path or a
// missing file yields the built-in roster.
func LoadRoster(path string) ([]domain.AgentDef, error) {
	if path == "" {
		return domain.DefaultRoster(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultRoster(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}

	var doc rosterFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	if err := validateRoster(doc.Agents); err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}
	return doc.Agents, nil
}

// validateRoster checks roster structural invariants: non-empty, unique
// names, and at most one coordinator.
func validateRoster(defs []domain.AgentDef) error {
	if len(defs) == 0 {
		return fmt.Errorf("no agents defined")
	}

	seen := make(map[string]bool, len(defs))
	coordinators := 0
	for _, def := range defs {
		if def.Name == "" {
			return fmt.Errorf("agent with empty name")
		}
		if seen[def.Name] {
			return fmt.Errorf("duplicate agent name %q", def.Name)
		}
		seen[def.Name] = true
		if def.IsCoordinator {
			coordinators++
		}
	}
	if coordinators > 1 {
		return fmt.Errorf("more than one coordinator")
	}
	return nil
}
