package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/perchhq/perch/internal/app"
	"github.com/perchhq/perch/internal/domain"
	"github.com/spf13/cobra"
)

// newAgentsCommand creates the agents command group.
func newAgentsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agents",
		Short:   "Inspect and register the agent fleet",
		GroupID: groupFleet,
	}
	cmd.AddCommand(
		newAgentsListCommand(c),
		newAgentsRegisterCommand(c),
	)
	return cmd
}

// newAgentsListCommand creates the agents list command.
func newAgentsListCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered agents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListAgentsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			printAgentTable(cmd.OutOrStdout(), out.Agents)
			return nil
		},
	}
	return cmd
}

// newAgentsRegisterCommand creates the agents register command.
func newAgentsRegisterCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the configured roster",
		Long: `Register every roster agent in the registry. Registration is idempotent:
agents already present keep their row and counters.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.RegisterAgentsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %d agents\n", len(out.Agents))
			return nil
		},
	}
	return cmd
}

// printAgentTable renders the registry as an aligned table.
func printAgentTable(w io.Writer, agents []*domain.Agent) {
	if len(agents) == 0 {
		fmt.Fprintln(w, "No agents registered. Run 'perch agents register' first.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSPECIALIZATION\tCOMPLETED\tLAST RUN\tROLE")
	for _, a := range agents {
		lastRun := "never"
		if a.LastRun != nil {
			lastRun = a.LastRun.Local().Format("2006-01-02 15:04")
		}
		role := "specialist"
		if a.IsCoordinator {
			role = "coordinator"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", a.Name, a.Specialization, a.TasksCompleted, lastRun, role)
	}
	_ = tw.Flush()
}
