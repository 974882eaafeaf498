package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/perchhq/perch/internal/app"
	"github.com/perchhq/perch/internal/domain"
	"github.com/perchhq/perch/internal/usecase"
	"github.com/spf13/cobra"
)

// newActivityCommand creates the activity command.
func newActivityCommand(c *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "activity [task-id]",
		Short:   "Show the audit trail",
		GroupID: groupBoard,
		Long: `Show activity entries. With a task ID, shows that task's full history
oldest first; without one, shows the most recent entries across the board.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ListActivityInput{Limit: limit}
			if len(args) == 1 {
				in.TaskID = args[0]
			}
			out, err := c.ListActivityUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printActivityTable(cmd.OutOrStdout(), out.Entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max entries when no task is given")
	return cmd
}

// printActivityTable renders activity entries as an aligned table.
func printActivityTable(w io.Writer, entries []*domain.Activity) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No activity.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTASK\tACTOR\tACTION\tMESSAGE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			shortID(e.TaskID),
			e.ActorName,
			e.Action,
			e.Message,
		)
	}
	_ = tw.Flush()
}
