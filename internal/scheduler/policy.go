// Package scheduler drives agent worker activations on a configurable cadence.
package scheduler

import (
	"sync"
	"time"
)

// Policy decides when an agent next activates. Implementations may keep
// internal state; Next must be safe for concurrent use.
type Policy interface {
	Next(agent string, now time.Time) time.Time
}

// FixedInterval activates every agent on the same uniform cadence.
type FixedInterval struct {
	Interval time.Duration
}

// Next returns now plus the fixed interval.
func (p FixedInterval) Next(_ string, now time.Time) time.Time {
	return now.Add(p.Interval)
}

// StaggeredInterval activates each agent on a fixed cadence, offsetting the
// first activation per agent so the fleet does not wake up at once.
type StaggeredInterval struct {
	offsets  map[string]time.Duration
	started  map[string]bool
	interval time.Duration
	mu       sync.Mutex
}

// NewStaggeredInterval assigns offsets in roster order: the i-th agent starts
// i*stagger after the scheduler does.
func NewStaggeredInterval(agents []string, interval, stagger time.Duration) *StaggeredInterval {
	offsets := make(map[string]time.Duration, len(agents))
	for i, name := range agents {
		offsets[name] = time.Duration(i) * stagger
	}
	return &StaggeredInterval{
		offsets:  offsets,
		started:  make(map[string]bool, len(agents)),
		interval: interval,
	}
}

// Next returns the agent's first slot (its stagger offset) on the first call,
// then the regular cadence.
func (p *StaggeredInterval) Next(agent string, now time.Time) time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started[agent] {
		p.started[agent] = true
		return now.Add(p.offsets[agent])
	}
	return now.Add(p.interval)
}

// State is the rotating pointer of a RoundRobin policy.
type State struct {
	NextSlot time.Time // When the pointer agent activates
	Pointer  int       // Index into the agent ring
}

// RoundRobin activates one agent per slot, cycling through the ring in order.
type RoundRobin struct {
	agents []string
	state  State
	slot   time.Duration
	mu     sync.Mutex
}

// NewRoundRobin creates a RoundRobin over the given agent ring.
func NewRoundRobin(agents []string, slot time.Duration) *RoundRobin {
	return &RoundRobin{
		agents: append([]string(nil), agents...),
		slot:   slot,
	}
}

// State returns a snapshot of the rotation state.
func (p *RoundRobin) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Next returns the time of the agent's next slot. Asking for the current
// pointer slot consumes it and moves the pointer on.
func (p *RoundRobin) Next(agent string, now time.Time) time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.agents)
	i := p.indexOf(agent)
	if i < 0 {
		// Unknown agents idle for a full rotation.
		return now.Add(p.slot * time.Duration(n))
	}

	if p.state.NextSlot.IsZero() {
		p.state.NextSlot = now.Add(p.slot)
	}

	steps := (i - p.state.Pointer + n) % n
	at := p.state.NextSlot.Add(time.Duration(steps) * p.slot)
	if steps == 0 {
		p.state.Pointer = (p.state.Pointer + 1) % n
		p.state.NextSlot = p.state.NextSlot.Add(p.slot)
	}
	if at.Before(now) {
		at = now
	}
	return at
}

func (p *RoundRobin) indexOf(agent string) int {
	for i, name := range p.agents {
		if name == agent {
			return i
		}
	}
	return -1
}

// PerAgent overrides the cadence for specific agents, typically to run the
// coordinator tighter than the specialists.
type PerAgent struct {
	Overrides map[string]Policy
	Default   Policy
}

// Next delegates to the agent's override, falling back to the default policy.
func (p PerAgent) Next(agent string, now time.Time) time.Time {
	if override, ok := p.Overrides[agent]; ok {
		return override.Next(agent, now)
	}
	return p.Default.Next(agent, now)
}
