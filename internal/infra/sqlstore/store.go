package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/perchhq/perch/internal/domain"
)

// Ensure the stores implement the persistence ports.
var (
	_ domain.TaskRepository = (*Store)(nil)
	_ domain.ActivityLog    = (*Store)(nil)
	_ domain.AgentRegistry  = (*AgentStore)(nil)
)

// Store persists tasks and their activity trail in SQLite. Activity entries
// are appended alongside task mutations by the use-case layer; only per-row
// atomicity is relied upon.
type Store struct {
	db *sql.DB
}

// New creates a Store over an opened database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// AgentStore persists the agent registry in SQLite.
type AgentStore struct {
	db *sql.DB
}

// NewAgentStore creates an AgentStore over an opened database.
func NewAgentStore(db *sql.DB) *AgentStore {
	return &AgentStore{db: db}
}

// Close releases the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

const taskColumns = `id, title, description, owner, status, priority, created_by, artifacts, thread_id, created_at, updated_at, completed_at`

// Insert persists a new task.
func (s *Store) Insert(t *domain.Task) error {
	artifacts, err := encodeArtifacts(t.Artifacts)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.ID, t.Title, t.Description, t.Owner, string(t.Status), string(t.Priority),
		t.CreatedBy, artifacts, t.ThreadID,
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt), nullTime(t.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(id string) (*domain.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// List retrieves all tasks, most-recently-created first.
func (s *Store) List() ([]*domain.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return collectTasks(rows)
}

// ListByOwner retrieves all tasks for an owner regardless of status.
func (s *Store) ListByOwner(owner string) ([]*domain.Task, error) {
	rows, err := s.db.Query(`SELECT `+taskColumns+` FROM tasks WHERE owner = ? ORDER BY created_at DESC, id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list tasks by owner: %w", err)
	}
	return collectTasks(rows)
}

// Update saves changes to an existing task.
func (s *Store) Update(t *domain.Task) error {
	artifacts, err := encodeArtifacts(t.Artifacts)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE tasks SET
			title = ?, description = ?, owner = ?, status = ?, priority = ?,
			created_by = ?, artifacts = ?, thread_id = ?, updated_at = ?, completed_at = ?
		WHERE id = ?`,
		t.Title, t.Description, t.Owner, string(t.Status), string(t.Priority),
		t.CreatedBy, artifacts, t.ThreadID,
		formatTime(t.UpdatedAt), nullTime(t.CompletedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by ID. Deleting a missing ID is a no-op.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// DeleteByOwner removes every task belonging to an owner.
func (s *Store) DeleteByOwner(owner string) error {
	if _, err := s.db.Exec(`DELETE FROM tasks WHERE owner = ?`, owner); err != nil {
		return fmt.Errorf("delete tasks by owner: %w", err)
	}
	return nil
}

// DeleteAll removes every task.
func (s *Store) DeleteAll() error {
	if _, err := s.db.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("delete all tasks: %w", err)
	}
	return nil
}

// Append records one activity entry. Task deletion does not cascade here:
// activity rows are an independent historical record.
func (s *Store) Append(entry *domain.Activity) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO activity (id, task_id, actor_name, action, previous_owner, new_owner, message, timestamp)
		VALUES (?,?,?,?,?,?,?,?)`,
		entry.ID, entry.TaskID, entry.ActorName, string(entry.Action),
		entry.PreviousOwner, entry.NewOwner, entry.Message, formatTime(entry.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

// ListByTask retrieves all activity entries for a task, oldest first.
func (s *Store) ListByTask(taskID string) ([]*domain.Activity, error) {
	rows, err := s.db.Query(`
		SELECT id, task_id, actor_name, action, previous_owner, new_owner, message, timestamp
		FROM activity WHERE task_id = ? ORDER BY timestamp ASC, id ASC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return collectActivity(rows)
}

// ListRecent retrieves the most recent activity entries across all tasks.
func (s *Store) ListRecent(limit int) ([]*domain.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, task_id, actor_name, action, previous_owner, new_owner, message, timestamp
		FROM activity ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}
	return collectActivity(rows)
}

// Register creates the agent if the name is new and returns its ID.
// Registering an existing name returns the existing ID unchanged.
func (s *AgentStore) Register(agent *domain.Agent) (string, error) {
	existing, err := s.Get(agent.Name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	id := uuid.NewString()
	_, err = s.db.Exec(`
		INSERT INTO agents (id, name, display_name, personality, specialization, is_active, is_coordinator, last_run, tasks_completed)
		VALUES (?,?,?,?,?,?,?,?,0)`,
		id, agent.Name, agent.DisplayName, agent.Personality, agent.Specialization,
		boolInt(agent.IsActive), boolInt(agent.IsCoordinator), nullTime(agent.LastRun),
	)
	if err != nil {
		return "", fmt.Errorf("register agent: %w", err)
	}
	return id, nil
}

// Get retrieves an agent by name. Returns nil if not found.
func (s *AgentStore) Get(name string) (*domain.Agent, error) {
	row := s.db.QueryRow(`
		SELECT id, name, display_name, personality, specialization, is_active, is_coordinator, last_run, tasks_completed
		FROM agents WHERE name = ?`, name)
	a, err := scanAgent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}
	return a, nil
}

// ListAgents retrieves all registered agents.
func (s *AgentStore) List() ([]*domain.Agent, error) {
	rows, err := s.db.Query(`
		SELECT id, name, display_name, personality, specialization, is_active, is_coordinator, last_run, tasks_completed
		FROM agents ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var out []*domain.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agents: %w", err)
	}
	return out, nil
}

// UpdateLastRun records the time of the agent's latest activation.
// Unknown names are a no-op, matching the registry's best-effort contract.
func (s *AgentStore) UpdateLastRun(name string, at time.Time) error {
	if _, err := s.db.Exec(`UPDATE agents SET last_run = ? WHERE name = ?`, formatTime(at), name); err != nil {
		return fmt.Errorf("update last run: %w", err)
	}
	return nil
}

// IncrementCompleted bumps the agent's success counter by one.
func (s *AgentStore) IncrementCompleted(name string) error {
	if _, err := s.db.Exec(`UPDATE agents SET tasks_completed = tasks_completed + 1 WHERE name = ?`, name); err != nil {
		return fmt.Errorf("increment completed: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*domain.Task, error) {
	var t domain.Task
	var status, priority string
	var artifacts sql.NullString
	var createdAt, updatedAt string
	var completedAt sql.NullString
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Owner, &status, &priority,
		&t.CreatedBy, &artifacts, &t.ThreadID,
		&createdAt, &updatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = domain.Status(status)
	t.Priority = domain.Priority(priority)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	if completedAt.Valid {
		at := parseTime(completedAt.String)
		t.CompletedAt = &at
	}
	if artifacts.Valid && artifacts.String != "" {
		var a domain.Artifacts
		if err := json.Unmarshal([]byte(artifacts.String), &a); err != nil {
			return nil, fmt.Errorf("decode artifacts: %w", err)
		}
		t.Artifacts = &a
	}
	return &t, nil
}

func collectTasks(rows *sql.Rows) ([]*domain.Task, error) {
	defer rows.Close()
	var out []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

func scanActivity(row scanner) (*domain.Activity, error) {
	var a domain.Activity
	var action, timestamp string
	err := row.Scan(&a.ID, &a.TaskID, &a.ActorName, &action, &a.PreviousOwner, &a.NewOwner, &a.Message, &timestamp)
	if err != nil {
		return nil, err
	}
	a.Action = domain.Action(action)
	a.Timestamp = parseTime(timestamp)
	return &a, nil
}

func collectActivity(rows *sql.Rows) ([]*domain.Activity, error) {
	defer rows.Close()
	var out []*domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return out, nil
}

func scanAgent(row scanner) (*domain.Agent, error) {
	var a domain.Agent
	var isActive, isCoordinator int
	var lastRun sql.NullString
	err := row.Scan(
		&a.ID, &a.Name, &a.DisplayName, &a.Personality, &a.Specialization,
		&isActive, &isCoordinator, &lastRun, &a.TasksCompleted,
	)
	if err != nil {
		return nil, err
	}
	a.IsActive = isActive != 0
	a.IsCoordinator = isCoordinator != 0
	if lastRun.Valid {
		at := parseTime(lastRun.String)
		a.LastRun = &at
	}
	return &a, nil
}

func encodeArtifacts(a *domain.Artifacts) (sql.NullString, error) {
	if a == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode artifacts: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// timeLayout is fixed width so that the lexicographic ORDER BY on timestamp
// columns matches chronological order. RFC3339Nano trims trailing fractional
// zeros and would not sort correctly.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
