package cli

import (
	"fmt"

	"github.com/perchhq/perch/internal/app"
	"github.com/perchhq/perch/internal/domain"
	"github.com/spf13/cobra"
)

// newRunCommand creates the run command.
func newRunCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run <agent>",
		Short:   "Run one activation of an agent",
		GroupID: groupFleet,
		Long: `Run a single activation of the named agent: pick its best queued task,
work it, and report the outcome. Useful for driving the board without the
scheduler.

Examples:
  perch run ada
  perch run helix`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var def domain.AgentDef
			for _, d := range c.Roster {
				if d.Name == args[0] {
					def = d
					break
				}
			}
			if def.Name == "" {
				return fmt.Errorf("%q: %w", args[0], domain.ErrUnknownAgent)
			}

			// The registry row must exist before counters can move.
			if _, err := c.RegisterAgentsUseCase().Execute(cmd.Context()); err != nil {
				return err
			}

			c.Worker(def).Run(cmd.Context())
			return nil
		},
	}
	return cmd
}
