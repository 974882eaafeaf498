package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/perchhq/perch/internal/domain"
)

// RegisterAgentsOutput contains the result of registering the roster.
type RegisterAgentsOutput struct {
	Agents []*domain.Agent // Registry rows after registration, roster order
}

// RegisterAgents is the use case for registering the configured roster in the
// agent registry. Registration is idempotent per name, so it runs on every
// startup.
type RegisterAgents struct {
	registry domain.AgentRegistry
	logger   *slog.Logger
	roster   []domain.AgentDef
}

// NewRegisterAgents creates a new RegisterAgents use case.
func NewRegisterAgents(registry domain.AgentRegistry, roster []domain.AgentDef, logger *slog.Logger) *RegisterAgents {
	return &RegisterAgents{
		registry: registry,
		roster:   roster,
		logger:   logger,
	}
}

// Execute registers every roster agent.
func (uc *RegisterAgents) Execute(_ context.Context) (*RegisterAgentsOutput, error) {
	out := &RegisterAgentsOutput{}
	for _, def := range uc.roster {
		id, err := uc.registry.Register(&domain.Agent{
			Name:           def.Name,
			DisplayName:    def.DisplayName,
			Personality:    def.Personality,
			Specialization: def.Specialization,
			IsActive:       true,
			IsCoordinator:  def.IsCoordinator,
		})
		if err != nil {
			return nil, fmt.Errorf("register agent %s: %w", def.Name, err)
		}
		agent, err := uc.registry.Get(def.Name)
		if err != nil {
			return nil, fmt.Errorf("get agent %s: %w", def.Name, err)
		}
		if agent == nil {
			return nil, fmt.Errorf("agent %s missing after register (id %s): %w", def.Name, id, domain.ErrAgentNotFound)
		}
		out.Agents = append(out.Agents, agent)
	}
	if uc.logger != nil {
		uc.logger.Info("roster registered", "agents", len(out.Agents))
	}
	return out, nil
}
