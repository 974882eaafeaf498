// Package domain contains core business entities and interfaces.
package domain

import "time"

// Task represents a work unit on the board. Each task belongs to exactly
// one owner queue at any point in time.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt   time.Time  `json:"createdAt"`             // Creation time, immutable
	UpdatedAt   time.Time  `json:"updatedAt"`             // Bumped on every mutation
	CompletedAt *time.Time `json:"completedAt,omitempty"` // Most recent completion time (kept on reopen)
	Artifacts   *Artifacts `json:"artifacts,omitempty"`   // Outputs attached on completion
	ID          string     `json:"-"`                     // Opaque identifier, assigned at creation
	Title       string     `json:"title"`                 // Short title (required)
	Description string     `json:"description,omitempty"` // Long description (optional)
	Owner       string     `json:"owner"`                 // Agent queue currently responsible
	CreatedBy   string     `json:"createdBy"`             // Creator identity (human or agent)
	ThreadID    string     `json:"threadId,omitempty"`    // Notification thread handle (optional)
	Status      Status     `json:"status"`                // Current lifecycle state
	Priority    Priority   `json:"priority"`              // Fixed at creation, ordering only
}

// Artifacts is the bag of output references attached when a task completes.
type Artifacts struct {
	Notes string   `json:"notes,omitempty"`
	Files []string `json:"files,omitempty"`
	Links []string `json:"links,omitempty"`
}

// IsCompleted returns true if the task is currently in the completed state.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// WasEverCompleted returns true if the task has completed at least once,
// even if it was later reopened.
func (t *Task) WasEverCompleted() bool {
	return t.CompletedAt != nil
}
