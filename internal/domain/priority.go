package domain

// Priority determines task selection order within a queue. It is fixed at
// creation and never escalated automatically.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities returns all valid priority values.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Rank returns the numeric ordering rank: urgent=4 > high=3 > medium=2 > low=1.
// Unknown priorities rank 0 and sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// IsValid returns true if p is one of the four known priorities.
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}
