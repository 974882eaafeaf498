// Package tui renders the live task board.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/perchhq/perch/internal/app"
	"github.com/perchhq/perch/internal/domain"
	"github.com/perchhq/perch/internal/usecase"
)

// refreshEvery is the board's reload cadence.
const refreshEvery = 5 * time.Second

// tasksLoadedMsg carries a board refresh result.
type tasksLoadedMsg struct {
	err   error
	tasks []*domain.Task
}

// refreshTickMsg triggers a periodic reload.
type refreshTickMsg time.Time

// Model is the bubbletea model for the board.
type Model struct {
	container *app.Container
	err       error
	tasks     []*domain.Task
	columns   [][]*domain.Task
	styles    Styles
	spinner   spinner.Model
	width     int
	height    int
	column    int
	cursor    int
	loading   bool
}

// boardOrder fixes the column layout left to right.
var boardOrder = []domain.Status{
	domain.StatusQueued,
	domain.StatusInProgress,
	domain.StatusBlocked,
	domain.StatusCompleted,
}

// New creates a board Model over the given container.
func New(c *app.Container) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Colors.Primary)

	return &Model{
		container: c,
		styles:    DefaultStyles(),
		spinner:   sp,
		columns:   make([][]*domain.Task, len(boardOrder)),
		loading:   true,
	}
}

// Init starts the first load and the refresh ticker.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadTasks(), m.scheduleRefresh())
}

// loadTasks fetches the board contents.
func (m *Model) loadTasks() tea.Cmd {
	uc := m.container.ListTasksUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.ListTasksInput{})
		if err != nil {
			return tasksLoadedMsg{err: err}
		}
		return tasksLoadedMsg{tasks: out.Tasks}
	}
}

func (m *Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// reopenSelected re-queues the selected completed task.
func (m *Model) reopenSelected() tea.Cmd {
	task := m.selected()
	if task == nil || task.Status != domain.StatusCompleted {
		return nil
	}
	uc := m.container.UpdateStatusUseCase()
	id := task.ID
	return func() tea.Msg {
		err := uc.Execute(context.Background(), usecase.UpdateStatusInput{
			TaskID:    id,
			ActorName: "user",
			Status:    domain.StatusQueued,
		})
		if err != nil {
			return tasksLoadedMsg{err: err}
		}
		return refreshTickMsg(time.Now())
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.tasks = msg.tasks
		m.rebuildColumns()
		return m, nil

	case refreshTickMsg:
		m.loading = true
		return m, tea.Batch(m.loadTasks(), m.scheduleRefresh())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.moveColumn(-1)
		case "right", "l":
			m.moveColumn(1)
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "r":
			return m, m.reopenSelected()
		case "R":
			m.loading = true
			return m, m.loadTasks()
		}
	}
	return m, nil
}

func (m *Model) rebuildColumns() {
	for i := range m.columns {
		m.columns[i] = nil
	}
	for _, t := range m.tasks {
		for i, status := range boardOrder {
			if t.Status == status {
				m.columns[i] = append(m.columns[i], t)
				break
			}
		}
	}
	m.clampCursor()
}

func (m *Model) moveColumn(delta int) {
	m.column = (m.column + delta + len(boardOrder)) % len(boardOrder)
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.columns[m.column])
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() *domain.Task {
	col := m.columns[m.column]
	if m.cursor < 0 || m.cursor >= len(col) {
		return nil
	}
	return col[m.cursor]
}

// View renders the board.
func (m *Model) View() string {
	var header string
	if m.loading {
		header = m.styles.Title.Render("perch board ") + m.spinner.View()
	} else {
		header = m.styles.Title.Render("perch board")
	}
	if m.err != nil {
		header += "  " + m.styles.Urgent.Render(fmt.Sprintf("error: %v", m.err))
	}

	cols := make([]string, 0, len(boardOrder))
	for i, status := range boardOrder {
		cols = append(cols, m.renderColumn(i, status))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	help := m.styles.Help.Render("←/→ column  ↑/↓ task  r reopen completed  R refresh  q quit")
	return header + "\n" + board + "\n" + help
}

func (m *Model) renderColumn(i int, status domain.Status) string {
	width := 28
	if m.width > 0 {
		if w := m.width/len(boardOrder) - 4; w > 12 {
			width = w
		}
	}

	headerStyle := m.styles.Header.Foreground(statusColor(status))
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", status.Display(), len(m.columns[i]))))
	b.WriteString("\n")

	for j, t := range m.columns[i] {
		line := truncate(t.Title, width)
		style := m.styles.Card
		if i == m.column && j == m.cursor {
			style = m.styles.CardSelected
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		meta := "  " + t.Owner
		if t.Priority == domain.PriorityUrgent {
			b.WriteString(m.styles.Owner.Render(meta) + " " + m.styles.Urgent.Render("urgent"))
		} else {
			b.WriteString(m.styles.Owner.Render(meta + " · " + string(t.Priority)))
		}
		b.WriteString("\n")
	}

	style := m.styles.Column
	if i == m.column {
		style = m.styles.ColumnActive
	}
	return style.Width(width + 2).Render(b.String())
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
