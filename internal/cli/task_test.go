package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/perchhq/perch/internal/app"
	"github.com/perchhq/perch/internal/domain"
	"github.com/perchhq/perch/internal/infra/config"
	"github.com/perchhq/perch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv bundles the mocks behind a test container.
type testEnv struct {
	repo     *testutil.MockTaskRepository
	log      *testutil.MockActivityLog
	registry *testutil.MockAgentRegistry
	notifier *testutil.MockNotifier
}

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer() (*app.Container, *testEnv) {
	env := &testEnv{
		repo:     testutil.NewMockTaskRepository(),
		log:      &testutil.MockActivityLog{},
		registry: testutil.NewMockAgentRegistry(),
		notifier: &testutil.MockNotifier{},
	}
	container := app.NewWithDeps(
		config.Default(),
		domain.DefaultRoster(),
		env.repo,
		env.log,
		env.registry,
		env.notifier,
		&testutil.MockClock{NowTime: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)},
		nil,
	)
	return container, env
}

func runCommand(t *testing.T, container *app.Container, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(container, "test")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func firstTask(t *testing.T, env *testEnv) *domain.Task {
	t.Helper()
	tasks, err := env.repo.List()
	require.NoError(t, err)
	require.NotEmpty(t, tasks)
	return tasks[0]
}

func TestTaskAddCommand(t *testing.T) {
	container, env := newTestContainer()

	out, err := runCommand(t, container, "task", "add", "Design the billing schema", "--owner", "ada", "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task")

	task := firstTask(t, env)
	assert.Equal(t, "Design the billing schema", task.Title)
	assert.Equal(t, "ada", task.Owner)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, domain.StatusQueued, task.Status)
}

func TestTaskAddCommand_UnknownOwner(t *testing.T) {
	container, _ := newTestContainer()

	_, err := runCommand(t, container, "task", "add", "Some work", "--owner", "nobody")
	assert.ErrorIs(t, err, domain.ErrUnknownAgent)
}

func TestTaskListCommand_Filters(t *testing.T) {
	container, _ := newTestContainer()
	_, err := runCommand(t, container, "task", "add", "Ada work", "--owner", "ada")
	require.NoError(t, err)
	_, err = runCommand(t, container, "task", "add", "Turing work", "--owner", "turing")
	require.NoError(t, err)

	out, err := runCommand(t, container, "task", "list", "--owner", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada work")
	assert.NotContains(t, out, "Turing work")
}

func TestTaskListCommand_Empty(t *testing.T) {
	container, _ := newTestContainer()
	out, err := runCommand(t, container, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks.")
}

func TestTaskShowCommand(t *testing.T) {
	container, env := newTestContainer()
	_, err := runCommand(t, container, "task", "add", "Inspect me", "--owner", "ada", "--description", "Full details here")
	require.NoError(t, err)
	task := firstTask(t, env)

	out, err := runCommand(t, container, "task", "show", task.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Inspect me")
	assert.Contains(t, out, "Full details here")

	_, err = runCommand(t, container, "task", "show", "no-such-id")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskStatusCommand_LifecyclePath(t *testing.T) {
	container, env := newTestContainer()
	_, err := runCommand(t, container, "task", "add", "Walk the lifecycle", "--owner", "ada")
	require.NoError(t, err)
	task := firstTask(t, env)

	_, err = runCommand(t, container, "task", "status", task.ID, "in_progress")
	require.NoError(t, err)
	_, err = runCommand(t, container, "task", "status", task.ID, "blocked")
	require.NoError(t, err)
	_, err = runCommand(t, container, "task", "status", task.ID, "in_progress")
	require.NoError(t, err)

	got, _ := env.repo.Get(task.ID)
	assert.Equal(t, domain.StatusInProgress, got.Status)
}

func TestTaskStatusCommand_RejectsInvalidTransition(t *testing.T) {
	container, env := newTestContainer()
	_, err := runCommand(t, container, "task", "add", "Still queued", "--owner", "ada")
	require.NoError(t, err)
	task := firstTask(t, env)

	_, err = runCommand(t, container, "task", "status", task.ID, "completed")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTaskMoveCommand(t *testing.T) {
	container, env := newTestContainer()
	_, err := runCommand(t, container, "task", "add", "Wandering task", "--owner", "ada")
	require.NoError(t, err)
	task := firstTask(t, env)

	out, err := runCommand(t, container, "task", "move", task.ID, "turing")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved task")

	got, _ := env.repo.Get(task.ID)
	assert.Equal(t, "turing", got.Owner)
	assert.Equal(t, domain.StatusQueued, got.Status)

	moved := env.log.ByAction(domain.ActionMoved)
	require.Len(t, moved, 1)
	assert.Equal(t, "ada", moved[0].PreviousOwner)
}

func TestTaskDoneCommand(t *testing.T) {
	container, env := newTestContainer()
	_, err := runCommand(t, container, "task", "add", "Finish me", "--owner", "ada")
	require.NoError(t, err)
	task := firstTask(t, env)
	_, err = runCommand(t, container, "task", "status", task.ID, "in_progress")
	require.NoError(t, err)

	_, err = runCommand(t, container, "task", "done", task.ID, "--notes", "All wrapped up")
	require.NoError(t, err)

	got, _ := env.repo.Get(task.ID)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.Artifacts)
	assert.Equal(t, "All wrapped up", got.Artifacts.Notes)
}

func TestTaskRmCommand(t *testing.T) {
	container, env := newTestContainer()
	_, err := runCommand(t, container, "task", "add", "Doomed", "--owner", "ada")
	require.NoError(t, err)
	task := firstTask(t, env)

	_, err = runCommand(t, container, "task", "rm", task.ID)
	require.NoError(t, err)

	got, _ := env.repo.Get(task.ID)
	assert.Nil(t, got)
	assert.NotEmpty(t, env.log.Entries, "activity survives deletion")
}

func TestTaskPruneCommand(t *testing.T) {
	container, env := newTestContainer()
	_, err := runCommand(t, container, "task", "add", "Ada one", "--owner", "ada")
	require.NoError(t, err)
	_, err = runCommand(t, container, "task", "add", "Turing one", "--owner", "turing")
	require.NoError(t, err)

	_, err = runCommand(t, container, "task", "prune", "--owner", "ada")
	require.NoError(t, err)
	remaining, _ := env.repo.List()
	require.Len(t, remaining, 1)
	assert.Equal(t, "turing", remaining[0].Owner)

	_, err = runCommand(t, container, "task", "prune", "--all")
	require.NoError(t, err)
	remaining, _ = env.repo.List()
	assert.Empty(t, remaining)
}

func TestTaskPruneCommand_RequiresScope(t *testing.T) {
	container, _ := newTestContainer()
	_, err := runCommand(t, container, "task", "prune")
	assert.Error(t, err)
}
