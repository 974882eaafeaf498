package domain

import "time"

// Agent is a registry entity describing one named queue owner.
// Fields are ordered to minimize memory padding.
type Agent struct {
	LastRun        *time.Time `json:"lastRun,omitempty"`
	ID             string     `json:"-"`
	Name           string     `json:"name"` // Stable identity, also the queue name
	DisplayName    string     `json:"displayName"`
	Personality    string     `json:"personality"`
	Specialization string     `json:"specialization"`
	TasksCompleted int        `json:"tasksCompleted"` // Monotonic success counter
	IsActive       bool       `json:"isActive"`
	IsCoordinator  bool       `json:"isCoordinator"` // May run on a tighter cadence and triage inbound requests
}

// AgentDef describes an agent in the roster before registration.
// Fields are ordered to minimize memory padding.
type AgentDef struct {
	Name           string   `yaml:"name"`
	DisplayName    string   `yaml:"display_name"`
	Personality    string   `yaml:"personality"`
	Specialization string   `yaml:"specialization"`
	Keywords       []string `yaml:"keywords"` // Routing keywords for the coordinator
	IsCoordinator  bool     `yaml:"coordinator"`
}

// DefaultRoster returns the built-in agent team. A YAML roster file may
// replace it entirely.
func DefaultRoster() []AgentDef {
	return []AgentDef{
		{
			Name:           "helix",
			DisplayName:    "Helix",
			Personality:    "Strategic, sees the big picture, coordinates team efforts",
			Specialization: "coordination and triage",
			Keywords:       []string{"organize", "coordinate", "status", "overview"},
			IsCoordinator:  true,
		},
		{
			Name:           "ada",
			DisplayName:    "Ada",
			Personality:    "Methodical, thinks in systems and interfaces",
			Specialization: "architecture and design",
			Keywords:       []string{"design", "architect", "schema", "interface"},
		},
		{
			Name:           "turing",
			DisplayName:    "Turing",
			Personality:    "Pragmatic, ships working code fast",
			Specialization: "implementation",
			Keywords:       []string{"build", "implement", "code", "write"},
		},
		{
			Name:           "sage",
			DisplayName:    "Sage",
			Personality:    "Deliberate, weighs options before acting",
			Specialization: "planning and research",
			Keywords:       []string{"plan", "research", "strategy", "investigate"},
		},
		{
			Name:           "sleuth",
			DisplayName:    "Sleuth",
			Personality:    "Skeptical, trusts only reproduced evidence",
			Specialization: "testing and debugging",
			Keywords:       []string{"bug", "fix", "debug", "test"},
		},
	}
}

// RosterNames returns the queue names of a roster in order.
func RosterNames(defs []AgentDef) []string {
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	return names
}

// RosterContains reports whether name is a known agent identity in defs.
func RosterContains(defs []AgentDef, name string) bool {
	for _, d := range defs {
		if d.Name == name {
			return true
		}
	}
	return false
}
