package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/perchhq/perch/internal/domain"
	"github.com/perchhq/perch/internal/usecase"
)

// titleMaxLen bounds task titles derived from inbound message text.
const titleMaxLen = 80

// Deps holds everything a worker needs. Inbox may be nil for agents without
// a direct-message channel.
type Deps struct {
	Tasks      domain.TaskRepository
	Registry   domain.AgentRegistry
	CreateTask *usecase.CreateTask
	Status     *usecase.UpdateStatus
	Complete   *usecase.CompleteTask
	Executor   Executor
	Notifier   domain.Notifier
	Inbox      domain.Inbox
	Clock      domain.Clock
	Logger     *slog.Logger
}

// Worker is one agent's execution loop. Run is not re-entrant; the scheduler
// guarantees one activation at a time per agent.
type Worker struct {
	deps Deps
	def  domain.AgentDef
}

// New creates a worker for the given roster agent.
func New(def domain.AgentDef, deps Deps) *Worker {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{def: def, deps: deps}
}

// Name returns the agent queue this worker serves.
func (w *Worker) Name() string {
	return w.def.Name
}

// Run performs one activation. All failures are contained here: they are
// logged and reported as a generic failure notification, never propagated to
// the scheduler.
func (w *Worker) Run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.deps.Logger.Error("activation panicked", "agent", w.def.Name, "panic", r)
			w.notifyFailure(ctx, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := w.deps.Registry.UpdateLastRun(w.def.Name, w.deps.Clock.Now()); err != nil {
		w.deps.Logger.Warn("record last run", "agent", w.def.Name, "error", err)
	}

	if err := w.activate(ctx); err != nil {
		w.deps.Logger.Error("activation failed", "agent", w.def.Name, "error", err)
		w.notifyFailure(ctx, err)
	}
}

// activate runs the per-activation algorithm: direct requests preempt the
// queue; otherwise the best queued task runs.
func (w *Worker) activate(ctx context.Context) error {
	if w.deps.Inbox != nil {
		handled, err := w.drainInbox(ctx)
		if err != nil {
			// Inbox trouble should not starve the queue.
			w.deps.Logger.Warn("inbox poll failed", "agent", w.def.Name, "error", err)
		}
		if handled {
			return nil
		}
	}

	tasks, err := w.deps.Tasks.ListByOwner(w.def.Name)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	task := SelectNext(filterQueued(tasks))
	if task == nil {
		w.deps.Logger.Debug("queue empty", "agent", w.def.Name)
		return nil
	}
	return w.process(ctx, task.ID)
}

// drainInbox materializes each direct request as an urgent task, acknowledges
// it, and processes it immediately. Reports whether any request was handled.
func (w *Worker) drainInbox(ctx context.Context) (bool, error) {
	msgs, err := w.deps.Inbox.FetchUnread(ctx)
	if err != nil {
		return false, err
	}
	if len(msgs) == 0 {
		return false, nil
	}

	for _, msg := range msgs {
		out, err := w.deps.CreateTask.Execute(ctx, usecase.CreateTaskInput{
			Title:       titleFromMessage(msg.Content),
			Description: msg.Content,
			Owner:       w.def.Name,
			CreatedBy:   msg.Author,
			Priority:    domain.PriorityUrgent,
		})
		if err != nil {
			w.deps.Logger.Error("materialize direct request", "agent", w.def.Name, "author", msg.Author, "error", err)
			continue
		}

		reply := fmt.Sprintf("Got it, %s. Queued as an urgent task and starting now.", msg.Author)
		if err := w.deps.Inbox.Acknowledge(ctx, msg, reply); err != nil {
			w.deps.Logger.Warn("acknowledge direct request", "agent", w.def.Name, "error", err)
		}

		if err := w.process(ctx, out.TaskID); err != nil {
			w.deps.Logger.Error("process direct request", "agent", w.def.Name, "task", out.TaskID, "error", err)
		}
	}
	return true, nil
}

// process runs one task through its lifecycle. Execution failure is terminal
// for this activation: the task lands in blocked and is not retried.
func (w *Worker) process(ctx context.Context, taskID string) error {
	task, err := w.deps.Tasks.Get(taskID)
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}
	if task == nil {
		// Deleted between selection and pickup. Fatal for this task only.
		return fmt.Errorf("task %s: %w", taskID, domain.ErrTaskNotFound)
	}

	if err := w.deps.Status.Execute(ctx, usecase.UpdateStatusInput{
		TaskID:    task.ID,
		ActorName: w.def.Name,
		Status:    domain.StatusInProgress,
	}); err != nil {
		return fmt.Errorf("start task %s: %w", task.ID, err)
	}

	w.notify(ctx, domain.StatusUpdate{
		AgentName: w.def.DisplayName,
		TaskTitle: task.Title,
		Status:    domain.UpdateStarted,
		ThreadID:  task.ThreadID,
	})

	wasCompleted := task.WasEverCompleted()

	result, err := w.deps.Executor.Execute(ctx, task)
	if err != nil {
		return w.markBlocked(ctx, task, err)
	}

	if result.Reassigned {
		w.notify(ctx, domain.StatusUpdate{
			AgentName: w.def.DisplayName,
			TaskTitle: task.Title,
			Status:    domain.UpdateMoved,
			Details:   result.Output,
			ThreadID:  task.ThreadID,
		})
		return nil
	}

	if err := w.deps.Complete.Execute(ctx, usecase.CompleteTaskInput{
		TaskID:    task.ID,
		ActorName: w.def.Name,
		Artifacts: result.Artifacts,
	}); err != nil {
		return fmt.Errorf("complete task %s: %w", task.ID, err)
	}

	// The success counter counts distinct tasks, not completions.
	if !wasCompleted {
		if err := w.deps.Registry.IncrementCompleted(w.def.Name); err != nil {
			w.deps.Logger.Warn("bump completion counter", "agent", w.def.Name, "error", err)
		}
	}

	w.notify(ctx, domain.StatusUpdate{
		AgentName: w.def.DisplayName,
		TaskTitle: task.Title,
		Status:    domain.UpdateCompleted,
		Details:   result.Output,
		ThreadID:  task.ThreadID,
	})
	return nil
}

// markBlocked records an execution failure. The status mutation commits even
// when the notification cannot be delivered.
func (w *Worker) markBlocked(ctx context.Context, task *domain.Task, cause error) error {
	if err := w.deps.Status.Execute(ctx, usecase.UpdateStatusInput{
		TaskID:    task.ID,
		ActorName: w.def.Name,
		Status:    domain.StatusBlocked,
	}); err != nil {
		return fmt.Errorf("block task %s after %v: %w", task.ID, cause, err)
	}

	w.notify(ctx, domain.StatusUpdate{
		AgentName: w.def.DisplayName,
		TaskTitle: task.Title,
		Status:    domain.UpdateBlocked,
		Details:   cause.Error(),
		ThreadID:  task.ThreadID,
	})
	w.deps.Logger.Warn("task blocked", "agent", w.def.Name, "task", task.ID, "error", cause)
	return nil
}

// notify delivers a status update best-effort.
func (w *Worker) notify(ctx context.Context, update domain.StatusUpdate) {
	if err := w.deps.Notifier.PostStatusUpdate(ctx, update); err != nil {
		w.deps.Logger.Warn("post status update", "agent", w.def.Name, "status", update.Status, "error", err)
	}
}

func (w *Worker) notifyFailure(ctx context.Context, cause error) {
	text := fmt.Sprintf("%s hit an error during activation: %v", w.def.DisplayName, cause)
	if err := w.deps.Notifier.PostMessage(ctx, "", text); err != nil {
		w.deps.Logger.Warn("post failure notice", "agent", w.def.Name, "error", err)
	}
}

// titleFromMessage derives a task title from inbound message text.
func titleFromMessage(content string) string {
	title := content
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Direct request"
	}
	if utf8.RuneCountInString(title) > titleMaxLen {
		title = string([]rune(title)[:titleMaxLen-3]) + "..."
	}
	return title
}
