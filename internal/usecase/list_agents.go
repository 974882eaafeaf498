package usecase

import (
	"context"
	"fmt"

	"github.com/perchhq/perch/internal/domain"
)

// ListAgentsOutput contains the result of listing agents.
type ListAgentsOutput struct {
	Agents []*domain.Agent
}

// ListAgents is the use case for listing the agent registry.
type ListAgents struct {
	registry domain.AgentRegistry
}

// NewListAgents creates a new ListAgents use case.
func NewListAgents(registry domain.AgentRegistry) *ListAgents {
	return &ListAgents{registry: registry}
}

// Execute lists all registered agents.
func (uc *ListAgents) Execute(_ context.Context) (*ListAgentsOutput, error) {
	agents, err := uc.registry.List()
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return &ListAgentsOutput{Agents: agents}, nil
}
