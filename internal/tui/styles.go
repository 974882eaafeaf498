package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/perchhq/perch/internal/domain"
)

// Colors defines the color palette for the board.
var Colors = struct {
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Queued     lipgloss.Color
	InProgress lipgloss.Color
	Completed  lipgloss.Color
	Blocked    lipgloss.Color
	Urgent     lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Muted:      lipgloss.Color("#636E72"), // Gray
	Queued:     lipgloss.Color("#74B9FF"), // Blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Completed:  lipgloss.Color("#00B894"), // Green
	Blocked:    lipgloss.Color("#D63031"), // Red
	Urgent:     lipgloss.Color("#E17055"), // Orange
}

// Styles holds the lipgloss styles used by the board.
type Styles struct {
	Title        lipgloss.Style
	Column       lipgloss.Style
	ColumnActive lipgloss.Style
	Header       lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Owner        lipgloss.Style
	Urgent       lipgloss.Style
	Help         lipgloss.Style
}

// DefaultStyles returns the default board styles.
func DefaultStyles() Styles {
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Colors.Muted).
		Padding(0, 1)

	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		Column:       column,
		ColumnActive: column.BorderForeground(Colors.Primary),
		Header:       lipgloss.NewStyle().Bold(true),
		Card:         lipgloss.NewStyle(),
		CardSelected: lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		Owner:        lipgloss.NewStyle().Foreground(Colors.Muted),
		Urgent:       lipgloss.NewStyle().Foreground(Colors.Urgent).Bold(true),
		Help:         lipgloss.NewStyle().Foreground(Colors.Muted),
	}
}

// statusColor maps a task status to its column accent color.
func statusColor(status domain.Status) lipgloss.Color {
	switch status {
	case domain.StatusQueued:
		return Colors.Queued
	case domain.StatusInProgress:
		return Colors.InProgress
	case domain.StatusCompleted:
		return Colors.Completed
	case domain.StatusBlocked:
		return Colors.Blocked
	default:
		return Colors.Muted
	}
}
