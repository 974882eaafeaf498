package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/perchhq/perch/internal/app"
	"github.com/perchhq/perch/internal/domain"
	"github.com/perchhq/perch/internal/infra/config"
	"github.com/perchhq/perch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (*Model, *testutil.MockTaskRepository) {
	t.Helper()
	repo := testutil.NewMockTaskRepository()
	container := app.NewWithDeps(
		config.Default(),
		domain.DefaultRoster(),
		repo,
		&testutil.MockActivityLog{},
		testutil.NewMockAgentRegistry(),
		&testutil.MockNotifier{},
		&testutil.MockClock{NowTime: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)},
		nil,
	)
	return New(container), repo
}

func seedBoardTask(t *testing.T, repo *testutil.MockTaskRepository, title string, status domain.Status) *domain.Task {
	t.Helper()
	task := &domain.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Owner:     "ada",
		Status:    status,
		Priority:  domain.PriorityMedium,
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Insert(task))
	return task
}

func loaded(m *Model, tasks []*domain.Task) {
	_, _ = m.Update(tasksLoadedMsg{tasks: tasks})
}

func TestModel_ColumnsFollowStatus(t *testing.T) {
	m, repo := newTestModel(t)
	seedBoardTask(t, repo, "waiting", domain.StatusQueued)
	seedBoardTask(t, repo, "running", domain.StatusInProgress)
	seedBoardTask(t, repo, "stuck", domain.StatusBlocked)
	seedBoardTask(t, repo, "shipped", domain.StatusCompleted)
	tasks, _ := repo.List()

	loaded(m, tasks)

	require.Len(t, m.columns, 4)
	for i := range boardOrder {
		assert.Len(t, m.columns[i], 1)
	}

	view := m.View()
	assert.Contains(t, view, "waiting")
	assert.Contains(t, view, "Queued (1)")
	assert.Contains(t, view, "In Progress (1)")
	assert.Contains(t, view, "Blocked (1)")
	assert.Contains(t, view, "Completed (1)")
}

func TestModel_Navigation(t *testing.T) {
	m, repo := newTestModel(t)
	seedBoardTask(t, repo, "a", domain.StatusQueued)
	seedBoardTask(t, repo, "b", domain.StatusQueued)
	tasks, _ := repo.List()
	loaded(m, tasks)

	assert.Equal(t, 0, m.column)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.column)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.column)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor, "cursor clamps at the last card")
}

func TestModel_ReopenCompletedTask(t *testing.T) {
	m, repo := newTestModel(t)
	task := seedBoardTask(t, repo, "shipped", domain.StatusCompleted)
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	task.CompletedAt = &now
	require.NoError(t, repo.Update(task))
	tasks, _ := repo.List()
	loaded(m, tasks)

	// Move to the completed column and reopen.
	for m.column != 3 {
		m.moveColumn(1)
	}
	cmd := m.reopenSelected()
	require.NotNil(t, cmd)
	_ = cmd()

	got, _ := repo.Get(task.ID)
	assert.Equal(t, domain.StatusQueued, got.Status)
	assert.NotNil(t, got.CompletedAt, "reopening keeps the completion timestamp")
}

func TestModel_ReopenIgnoresNonCompleted(t *testing.T) {
	m, repo := newTestModel(t)
	seedBoardTask(t, repo, "waiting", domain.StatusQueued)
	tasks, _ := repo.List()
	loaded(m, tasks)

	assert.Nil(t, m.reopenSelected())
}

func TestModel_QuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
