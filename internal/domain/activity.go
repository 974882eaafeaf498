package domain

import "time"

// Action identifies the kind of mutation recorded in the activity log.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionMoved     Action = "moved"
	ActionCompleted Action = "completed"
)

// Activity is an append-only audit entry for a single task mutation.
// TaskID is a weak reference: rows are kept even after the task is deleted.
// Fields are ordered to minimize memory padding.
type Activity struct {
	Timestamp     time.Time `json:"timestamp"`
	ID            string    `json:"-"`
	TaskID        string    `json:"taskId"`
	ActorName     string    `json:"actorName"` // Who performed the action
	PreviousOwner string    `json:"previousOwner,omitempty"`
	NewOwner      string    `json:"newOwner,omitempty"`
	Message       string    `json:"message,omitempty"`
	Action        Action    `json:"action"`
}
