package cli

import (
	"testing"

	"github.com/perchhq/perch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentsRegisterAndListCommands(t *testing.T) {
	container, env := newTestContainer()

	out, err := runCommand(t, container, "agents", "register")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered 5 agents")

	out, err = runCommand(t, container, "agents", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "helix")
	assert.Contains(t, out, "coordinator")
	assert.Contains(t, out, "sleuth")
	assert.Contains(t, out, "never")

	// Re-registration keeps existing rows.
	env.registry.Agents["ada"].TasksCompleted = 3
	_, err = runCommand(t, container, "agents", "register")
	require.NoError(t, err)
	assert.Equal(t, 3, env.registry.Agents["ada"].TasksCompleted)
}

func TestAgentsListCommand_EmptyRegistry(t *testing.T) {
	container, _ := newTestContainer()
	out, err := runCommand(t, container, "agents", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No agents registered")
}

func TestActivityCommand(t *testing.T) {
	container, env := newTestContainer()
	_, err := runCommand(t, container, "task", "add", "Tracked task", "--owner", "ada")
	require.NoError(t, err)
	task := firstTask(t, env)
	_, err = runCommand(t, container, "task", "status", task.ID, "in_progress")
	require.NoError(t, err)

	out, err := runCommand(t, container, "activity", task.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Task created: Tracked task")
	assert.Contains(t, out, "Status changed to in_progress")

	out, err = runCommand(t, container, "activity")
	require.NoError(t, err)
	assert.Contains(t, out, "created")
}

func TestRunCommand_SingleActivation(t *testing.T) {
	container, env := newTestContainer()
	_, err := runCommand(t, container, "task", "add", "Run me", "--owner", "turing")
	require.NoError(t, err)
	task := firstTask(t, env)

	_, err = runCommand(t, container, "run", "turing")
	require.NoError(t, err)

	got, _ := env.repo.Get(task.ID)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.NotEmpty(t, env.notifier.UpdatesByStatus(domain.UpdateCompleted))

	agent, _ := env.registry.Get("turing")
	require.NotNil(t, agent)
	assert.Equal(t, 1, agent.TasksCompleted)
}

func TestRunCommand_UnknownAgent(t *testing.T) {
	container, _ := newTestContainer()
	_, err := runCommand(t, container, "run", "nobody")
	assert.ErrorIs(t, err, domain.ErrUnknownAgent)
}
