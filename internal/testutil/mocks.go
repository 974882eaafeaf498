// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/perchhq/perch/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockTaskRepository is an in-memory test double for domain.TaskRepository.
type MockTaskRepository struct {
	Tasks     map[string]*domain.Task
	InsertErr error
	UpdateErr error
	ListErr   error
}

// NewMockTaskRepository creates a new MockTaskRepository.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{Tasks: make(map[string]*domain.Task)}
}

// Get retrieves a task by ID, nil if absent.
func (m *MockTaskRepository) Get(id string) (*domain.Task, error) {
	task, ok := m.Tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *task
	return &cp, nil
}

// List returns all tasks, most-recently-created first.
func (m *MockTaskRepository) List() ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// ListByOwner returns the owner's tasks.
func (m *MockTaskRepository) ListByOwner(owner string) ([]*domain.Task, error) {
	all, err := m.List()
	if err != nil {
		return nil, err
	}
	var out []*domain.Task
	for _, t := range all {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	return out, nil
}

// Insert stores a new task.
func (m *MockTaskRepository) Insert(task *domain.Task) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	cp := *task
	m.Tasks[task.ID] = &cp
	return nil
}

// Update saves an existing task.
func (m *MockTaskRepository) Update(task *domain.Task) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.Tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	cp := *task
	m.Tasks[task.ID] = &cp
	return nil
}

// Delete removes a task; missing IDs are a no-op.
func (m *MockTaskRepository) Delete(id string) error {
	delete(m.Tasks, id)
	return nil
}

// DeleteByOwner removes every task belonging to owner.
func (m *MockTaskRepository) DeleteByOwner(owner string) error {
	for id, t := range m.Tasks {
		if t.Owner == owner {
			delete(m.Tasks, id)
		}
	}
	return nil
}

// DeleteAll removes every task.
func (m *MockTaskRepository) DeleteAll() error {
	m.Tasks = make(map[string]*domain.Task)
	return nil
}

// MockActivityLog is an in-memory test double for domain.ActivityLog.
type MockActivityLog struct {
	Entries []*domain.Activity
}

// Append records one entry.
func (m *MockActivityLog) Append(entry *domain.Activity) error {
	cp := *entry
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	m.Entries = append(m.Entries, &cp)
	return nil
}

// ListByTask returns the task's entries, oldest first.
func (m *MockActivityLog) ListByTask(taskID string) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for _, e := range m.Entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns the newest entries across all tasks.
func (m *MockActivityLog) ListRecent(limit int) ([]*domain.Activity, error) {
	out := append([]*domain.Activity(nil), m.Entries...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ByAction filters entries by action.
func (m *MockActivityLog) ByAction(action domain.Action) []*domain.Activity {
	var out []*domain.Activity
	for _, e := range m.Entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// MockAgentRegistry is an in-memory test double for domain.AgentRegistry.
type MockAgentRegistry struct {
	Agents map[string]*domain.Agent
}

// NewMockAgentRegistry creates a new MockAgentRegistry.
func NewMockAgentRegistry() *MockAgentRegistry {
	return &MockAgentRegistry{Agents: make(map[string]*domain.Agent)}
}

// Register creates the agent if new, returning the stored ID either way.
func (m *MockAgentRegistry) Register(agent *domain.Agent) (string, error) {
	if existing, ok := m.Agents[agent.Name]; ok {
		return existing.ID, nil
	}
	cp := *agent
	cp.ID = uuid.NewString()
	m.Agents[agent.Name] = &cp
	return cp.ID, nil
}

// Get retrieves an agent by name, nil if absent.
func (m *MockAgentRegistry) Get(name string) (*domain.Agent, error) {
	agent, ok := m.Agents[name]
	if !ok {
		return nil, nil
	}
	cp := *agent
	return &cp, nil
}

// List returns all agents sorted by name.
func (m *MockAgentRegistry) List() ([]*domain.Agent, error) {
	out := make([]*domain.Agent, 0, len(m.Agents))
	for _, a := range m.Agents {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UpdateLastRun records an activation time.
func (m *MockAgentRegistry) UpdateLastRun(name string, at time.Time) error {
	if a, ok := m.Agents[name]; ok {
		t := at
		a.LastRun = &t
	}
	return nil
}

// IncrementCompleted bumps the success counter.
func (m *MockAgentRegistry) IncrementCompleted(name string) error {
	if a, ok := m.Agents[name]; ok {
		a.TasksCompleted++
	}
	return nil
}

// MockNotifier records every notification it receives.
type MockNotifier struct {
	Messages []string
	Updates  []domain.StatusUpdate
	Threads  []string
	PostErr  error
	Closed   bool
}

// PostMessage records the text.
func (m *MockNotifier) PostMessage(_ context.Context, _, text string) error {
	if m.PostErr != nil {
		return m.PostErr
	}
	m.Messages = append(m.Messages, text)
	return nil
}

// PostStatusUpdate records the update.
func (m *MockNotifier) PostStatusUpdate(_ context.Context, update domain.StatusUpdate) error {
	if m.PostErr != nil {
		return m.PostErr
	}
	m.Updates = append(m.Updates, update)
	return nil
}

// CreateThread records the title and returns a synthetic handle.
func (m *MockNotifier) CreateThread(_ context.Context, _, title, _ string) (string, error) {
	m.Threads = append(m.Threads, title)
	return "thread-" + title, nil
}

// Close marks the notifier closed.
func (m *MockNotifier) Close() error {
	m.Closed = true
	return nil
}

// UpdatesByStatus filters recorded updates by phase.
func (m *MockNotifier) UpdatesByStatus(status domain.UpdateStatus) []domain.StatusUpdate {
	var out []domain.StatusUpdate
	for _, u := range m.Updates {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out
}

// MockInbox serves a fixed batch of direct messages.
type MockInbox struct {
	Unread   []domain.InboundMessage
	Acked    []domain.InboundMessage
	Replies  []string
	FetchErr error
}

// FetchUnread returns and clears the pending batch.
func (m *MockInbox) FetchUnread(_ context.Context) ([]domain.InboundMessage, error) {
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	out := m.Unread
	m.Unread = nil
	return out, nil
}

// Acknowledge records the reply.
func (m *MockInbox) Acknowledge(_ context.Context, msg domain.InboundMessage, reply string) error {
	m.Acked = append(m.Acked, msg)
	m.Replies = append(m.Replies, reply)
	return nil
}
