package domain

import (
	"context"
	"time"
)

// TaskRepository manages task persistence. Each mutation touches exactly one
// task row; implementations only need per-row atomicity.
type TaskRepository interface {
	// Get retrieves a task by ID. Returns nil if not found.
	Get(id string) (*Task, error)

	// List retrieves all tasks, most-recently-created first.
	List() ([]*Task, error)

	// ListByOwner retrieves all tasks for an owner regardless of status.
	ListByOwner(owner string) ([]*Task, error)

	// Insert persists a new task.
	Insert(task *Task) error

	// Update saves changes to an existing task. Returns ErrTaskNotFound if
	// the row no longer exists.
	Update(task *Task) error

	// Delete removes a task by ID. Deleting a missing ID is a no-op.
	Delete(id string) error

	// DeleteByOwner removes every task belonging to an owner.
	DeleteByOwner(owner string) error

	// DeleteAll removes every task.
	DeleteAll() error
}

// ActivityLog is the append-only audit trail. The core never reads it back;
// it is appended on every task mutation and queried only by operators.
type ActivityLog interface {
	// Append records one activity entry.
	Append(entry *Activity) error

	// ListByTask retrieves all entries for a task, oldest first.
	ListByTask(taskID string) ([]*Activity, error)

	// ListRecent retrieves the most recent entries across all tasks.
	ListRecent(limit int) ([]*Activity, error)
}

// AgentRegistry manages the agent registry table.
type AgentRegistry interface {
	// Register creates the agent if the name is new and returns its ID.
	// Registering an existing name is a no-op returning the existing ID.
	Register(agent *Agent) (string, error)

	// Get retrieves an agent by name. Returns nil if not found.
	Get(name string) (*Agent, error)

	// List retrieves all registered agents.
	List() ([]*Agent, error)

	// UpdateLastRun records the time of the agent's latest activation.
	UpdateLastRun(name string, at time.Time) error

	// IncrementCompleted bumps the agent's success counter by one.
	IncrementCompleted(name string) error
}

// UpdateStatus identifies the phase reported by a status update notification.
type UpdateStatus string

const (
	UpdateStarted   UpdateStatus = "started"
	UpdateCompleted UpdateStatus = "completed"
	UpdateBlocked   UpdateStatus = "blocked"
	UpdateMoved     UpdateStatus = "moved"
)

// StatusUpdate is a human-readable task progress notification.
// Fields are ordered to minimize memory padding.
type StatusUpdate struct {
	AgentName string
	TaskTitle string
	Details   string
	ThreadID  string // Optional conversation thread to post into
	Status    UpdateStatus
}

// Notifier posts human-readable updates to the chat platform. Delivery is
// best-effort: status mutations commit independently of notification delivery.
type Notifier interface {
	// PostMessage sends free-form text to a channel or thread.
	PostMessage(ctx context.Context, channelOrThread, text string) error

	// PostStatusUpdate sends a formatted task progress update.
	PostStatusUpdate(ctx context.Context, update StatusUpdate) error

	// CreateThread opens a conversation thread and returns its handle.
	CreateThread(ctx context.Context, channel, title, initialMessage string) (string, error)

	// Close releases the underlying session.
	Close() error
}

// InboundMessage is a direct request received out of band (e.g. a DM).
type InboundMessage struct {
	ID      string
	Author  string
	Content string
}

// Inbox polls for direct requests addressed to one agent.
type Inbox interface {
	// FetchUnread returns direct messages not yet acknowledged.
	FetchUnread(ctx context.Context) ([]InboundMessage, error)

	// Acknowledge replies to a message and marks it as handled.
	Acknowledge(ctx context.Context, msg InboundMessage, reply string) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
