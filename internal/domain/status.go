package domain

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusQueued     Status = "queued"      // Created (or re-queued), awaiting pickup
	StatusInProgress Status = "in_progress" // Agent working
	StatusCompleted  Status = "completed"   // Finished; may be reopened
	StatusBlocked    Status = "blocked"     // Execution failed, needs intervention
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusQueued,
		StatusInProgress,
		StatusCompleted,
		StatusBlocked,
	}
}

// transitions defines the allowed status transitions.
// Flow: queued → in_progress → completed
//
//	↑               ↓    ↑
//	└── (reopen) ←──┘  blocked (retry)
//
// Reassignment re-queues a task from any state; that is a separate operation
// and intentionally bypasses this table.
var transitions = map[Status][]Status{
	StatusQueued:     {StatusInProgress},
	StatusInProgress: {StatusCompleted, StatusBlocked},
	StatusBlocked:    {StatusInProgress},
	StatusCompleted:  {StatusQueued},
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsValid returns true if s is one of the four known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusQueued, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusQueued:
		return "Queued"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusBlocked:
		return "Blocked"
	default:
		return string(s)
	}
}
