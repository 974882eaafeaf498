package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/perchhq/perch/internal/app"
	"github.com/perchhq/perch/internal/tui"
	"github.com/spf13/cobra"
)

// newBoardCommand creates the board command.
func newBoardCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "board",
		Short:   "Open the live task board",
		GroupID: groupBoard,
		Long: `Open a terminal board showing tasks in four status columns. The view
refreshes itself; press r on a completed task to reopen it.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run board: %w", err)
			}
			return nil
		},
	}
	return cmd
}
