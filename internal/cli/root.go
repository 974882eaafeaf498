// Package cli provides the command-line interface for perch.
package cli

import (
	"github.com/perchhq/perch/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupBoard = "board"
	groupFleet = "fleet"
)

// NewRootCommand creates the root command for perch.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "perch",
		Short: "Multi-agent task board",
		Long: `perch is a task board for a small fleet of named agents.
Tasks live in per-agent queues; agents wake up on a schedule, pick the
highest-priority queued task, work it, and report the outcome.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: groupBoard, Title: "Board Commands:"},
		&cobra.Group{ID: groupFleet, Title: "Fleet Commands:"},
	)

	root.AddCommand(
		newTaskCommand(c),
		newActivityCommand(c),
		newBoardCommand(c),
		newAgentsCommand(c),
		newRunCommand(c),
		newServeCommand(c),
	)
	return root
}
