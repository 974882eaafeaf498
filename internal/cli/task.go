package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/perchhq/perch/internal/app"
	"github.com/perchhq/perch/internal/domain"
	"github.com/perchhq/perch/internal/usecase"
	"github.com/spf13/cobra"
)

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Short:   "Create and manage tasks",
		GroupID: groupBoard,
	}
	cmd.AddCommand(
		newTaskAddCommand(c),
		newTaskListCommand(c),
		newTaskShowCommand(c),
		newTaskStatusCommand(c),
		newTaskMoveCommand(c),
		newTaskDoneCommand(c),
		newTaskRmCommand(c),
		newTaskPruneCommand(c),
	)
	return cmd
}

// newTaskAddCommand creates the task add command.
func newTaskAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Description string
		Owner       string
		Priority    string
		CreatedBy   string
	}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Long: `Create a new task in an agent's queue.

Tasks start queued and are picked up on the owner's next activation.

Examples:
  # Queue implementation work for turing
  perch task add "Implement the export endpoint" --owner turing

  # Urgent bug for sleuth with a description
  perch task add "Login fails on Safari" --owner sleuth --priority urgent \
    --description "Repro: open /login in Safari 17, submit, observe 500."`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.CreateTaskUseCase().Execute(cmd.Context(), usecase.CreateTaskInput{
				Title:       args[0],
				Description: opts.Description,
				Owner:       opts.Owner,
				CreatedBy:   opts.CreatedBy,
				Priority:    domain.Priority(opts.Priority),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.TaskID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&opts.Owner, "owner", "o", "", "Agent queue (required)")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", string(domain.PriorityMedium), "Priority: low, medium, high, urgent")
	cmd.Flags().StringVar(&opts.CreatedBy, "created-by", "user", "Creator identity")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

// newTaskListCommand creates the task list command.
func newTaskListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Owner  string
		Status string
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, most-recently-created first.

Examples:
  perch task list
  perch task list --owner ada
  perch task list --status queued`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Owner:  opts.Owner,
				Status: domain.Status(opts.Status),
			})
			if err != nil {
				return err
			}
			printTaskTable(cmd.OutOrStdout(), out.Tasks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Owner, "owner", "o", "", "Filter by agent queue")
	cmd.Flags().StringVarP(&opts.Status, "status", "s", "", "Filter by status")
	return cmd
}

// newTaskShowCommand creates the task show command.
func newTaskShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := c.Tasks.Get(args[0])
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("task %s: %w", args[0], domain.ErrTaskNotFound)
			}
			printTaskDetail(cmd.OutOrStdout(), task)
			return nil
		},
	}
	return cmd
}

// newTaskStatusCommand creates the task status command.
func newTaskStatusCommand(c *app.Container) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "status <task-id> <status>",
		Short: "Move a task through its lifecycle",
		Long: `Change a task's status. Valid transitions:
  queued -> in_progress
  in_progress -> completed | blocked
  blocked -> in_progress
  completed -> queued (reopen)`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.UpdateStatusUseCase().Execute(cmd.Context(), usecase.UpdateStatusInput{
				TaskID:    args[0],
				ActorName: actor,
				Status:    domain.Status(args[1]),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "user", "Who is making the change")
	return cmd
}

// newTaskMoveCommand creates the task move command.
func newTaskMoveCommand(c *app.Container) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "move <task-id> <new-owner>",
		Short: "Move a task to another agent's queue",
		Long: `Move a task to a different agent. The task is re-queued regardless of its
current status; the new owner starts it fresh.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.ReassignTaskUseCase().Execute(cmd.Context(), usecase.ReassignTaskInput{
				TaskID:    args[0],
				NewOwner:  args[1],
				ActorName: actor,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved task %s to %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "user", "Who is making the change")
	return cmd
}

// newTaskDoneCommand creates the task done command.
func newTaskDoneCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Notes string
		Actor string
	}

	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var artifacts *domain.Artifacts
			if opts.Notes != "" {
				artifacts = &domain.Artifacts{Notes: opts.Notes}
			}
			err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{
				TaskID:    args[0],
				ActorName: opts.Actor,
				Artifacts: artifacts,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Notes, "notes", "", "Completion notes to attach")
	cmd.Flags().StringVar(&opts.Actor, "actor", "user", "Who is making the change")
	return cmd
}

// newTaskRmCommand creates the task rm command.
func newTaskRmCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Long:  `Delete a task. Its activity history is kept.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
	return cmd
}

// newTaskPruneCommand creates the task prune command.
func newTaskPruneCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Owner string
		All   bool
	}

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Bulk-delete tasks",
		Long: `Delete every task for one agent, or the whole board.

Examples:
  perch task prune --owner ada
  perch task prune --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := c.PruneTasksUseCase().Execute(cmd.Context(), usecase.PruneTasksInput{
				Owner: opts.Owner,
				All:   opts.All,
			})
			if err != nil {
				return err
			}
			if opts.All {
				fmt.Fprintln(cmd.OutOrStdout(), "Deleted all tasks")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted all tasks owned by %s\n", opts.Owner)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Owner, "owner", "o", "", "Delete this agent's tasks")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Delete every task")
	return cmd
}

// printTaskTable renders tasks as an aligned table.
func printTaskTable(w io.Writer, tasks []*domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tOWNER\tSTATUS\tPRIORITY\tCREATED")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID),
			truncate(t.Title, 40),
			t.Owner,
			t.Status.Display(),
			t.Priority,
			t.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	_ = tw.Flush()
}

// printTaskDetail renders one task in full.
func printTaskDetail(w io.Writer, t *domain.Task) {
	fmt.Fprintf(w, "ID:        %s\n", t.ID)
	fmt.Fprintf(w, "Title:     %s\n", t.Title)
	fmt.Fprintf(w, "Owner:     %s\n", t.Owner)
	fmt.Fprintf(w, "Status:    %s\n", t.Status.Display())
	fmt.Fprintf(w, "Priority:  %s\n", t.Priority)
	fmt.Fprintf(w, "Created:   %s by %s\n", t.CreatedAt.Local().Format(time.RFC1123), t.CreatedBy)
	fmt.Fprintf(w, "Updated:   %s\n", t.UpdatedAt.Local().Format(time.RFC1123))
	if t.CompletedAt != nil {
		fmt.Fprintf(w, "Completed: %s\n", t.CompletedAt.Local().Format(time.RFC1123))
	}
	if t.Description != "" {
		fmt.Fprintf(w, "\n%s\n", t.Description)
	}
	if t.Artifacts != nil {
		fmt.Fprintln(w, "\nArtifacts:")
		if t.Artifacts.Notes != "" {
			fmt.Fprintf(w, "  Notes: %s\n", t.Artifacts.Notes)
		}
		for _, f := range t.Artifacts.Files {
			fmt.Fprintf(w, "  File:  %s\n", f)
		}
		for _, l := range t.Artifacts.Links {
			fmt.Fprintf(w, "  Link:  %s\n", l)
		}
	}
}

// shortID abbreviates a UUID for table display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}
