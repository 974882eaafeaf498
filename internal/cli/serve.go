package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/perchhq/perch/internal/app"
	"github.com/spf13/cobra"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the agent fleet on its schedule",
		GroupID: groupFleet,
		Long: `Run the scheduler until interrupted. Each roster agent activates on its
configured cadence; the coordinator runs tighter. SIGINT or SIGTERM stops
the fleet cleanly: pending activations are cancelled, in-flight ones finish.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if _, err := c.RegisterAgentsUseCase().Execute(ctx); err != nil {
				return err
			}

			sched := c.Scheduler()
			sched.Start(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Fleet running. Press Ctrl+C to stop.")

			<-ctx.Done()
			fmt.Fprintln(cmd.OutOrStdout(), "Stopping...")
			sched.Stop()
			return nil
		},
	}
	return cmd
}
