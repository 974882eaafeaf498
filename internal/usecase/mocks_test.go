package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/perchhq/perch/internal/domain"
)

// mockClock is a test double for domain.Clock.
type mockClock struct {
	now time.Time
}

func (m *mockClock) Now() time.Time {
	return m.now
}

// mockTaskRepository is a map-backed test double for domain.TaskRepository.
// Fields are ordered to minimize memory padding.
type mockTaskRepository struct {
	tasks     map[string]*domain.Task
	insertErr error
	updateErr error
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[string]*domain.Task)}
}

func (m *mockTaskRepository) Get(id string) (*domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *task
	return &cp, nil
}

func (m *mockTaskRepository) List() ([]*domain.Task, error) {
	out := make([]*domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockTaskRepository) ListByOwner(owner string) ([]*domain.Task, error) {
	all, _ := m.List()
	var out []*domain.Task
	for _, t := range all {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTaskRepository) Insert(task *domain.Task) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskRepository) Update(task *domain.Task) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskRepository) Delete(id string) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepository) DeleteByOwner(owner string) error {
	for id, t := range m.tasks {
		if t.Owner == owner {
			delete(m.tasks, id)
		}
	}
	return nil
}

func (m *mockTaskRepository) DeleteAll() error {
	m.tasks = make(map[string]*domain.Task)
	return nil
}

// mockActivityLog is an append-only test double for domain.ActivityLog.
type mockActivityLog struct {
	entries []*domain.Activity
}

func (m *mockActivityLog) Append(entry *domain.Activity) error {
	cp := *entry
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *mockActivityLog) ListByTask(taskID string) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for _, e := range m.entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockActivityLog) ListRecent(limit int) ([]*domain.Activity, error) {
	out := append([]*domain.Activity(nil), m.entries...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// byAction returns the number of entries recorded with the given action.
func (m *mockActivityLog) byAction(action domain.Action) []*domain.Activity {
	var out []*domain.Activity
	for _, e := range m.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// mockAgentRegistry is a test double for domain.AgentRegistry.
type mockAgentRegistry struct {
	agents map[string]*domain.Agent
}

func newMockAgentRegistry() *mockAgentRegistry {
	return &mockAgentRegistry{agents: make(map[string]*domain.Agent)}
}

func (m *mockAgentRegistry) Register(agent *domain.Agent) (string, error) {
	if existing, ok := m.agents[agent.Name]; ok {
		return existing.ID, nil
	}
	cp := *agent
	cp.ID = uuid.NewString()
	m.agents[agent.Name] = &cp
	return cp.ID, nil
}

func (m *mockAgentRegistry) Get(name string) (*domain.Agent, error) {
	agent, ok := m.agents[name]
	if !ok {
		return nil, nil
	}
	cp := *agent
	return &cp, nil
}

func (m *mockAgentRegistry) List() ([]*domain.Agent, error) {
	out := make([]*domain.Agent, 0, len(m.agents))
	for _, a := range m.agents {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockAgentRegistry) UpdateLastRun(name string, at time.Time) error {
	if a, ok := m.agents[name]; ok {
		t := at
		a.LastRun = &t
	}
	return nil
}

func (m *mockAgentRegistry) IncrementCompleted(name string) error {
	if a, ok := m.agents[name]; ok {
		a.TasksCompleted++
	}
	return nil
}
