// Package worker implements the per-agent activation loop: inbox triage,
// queued task selection, execution, and outcome reporting.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/perchhq/perch/internal/domain"
)

// Result is what an executor produced for one task. A Reassigned result means
// the task now lives in another agent's queue and must not be completed by
// this worker.
type Result struct {
	Output     string
	Artifacts  *domain.Artifacts
	NewOwner   string // Set when Reassigned
	Reassigned bool
}

// Executor runs one task to its outcome. A returned error means the task
// failed and lands in blocked; it does not abort the activation.
type Executor interface {
	Execute(ctx context.Context, task *domain.Task) (*Result, error)
}

// CannedExecutor produces a fabricated response after a short simulated
// working delay. It stands in for a real capability.
type CannedExecutor struct {
	Specialization string
	Delay          time.Duration
}

// Execute returns a canned summary of the work.
func (e *CannedExecutor) Execute(ctx context.Context, task *domain.Task) (*Result, error) {
	if e.Delay > 0 {
		select {
		case <-time.After(e.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &Result{
		Output: fmt.Sprintf("Reviewed %q with a %s lens and wrote up findings.", task.Title, e.Specialization),
		Artifacts: &domain.Artifacts{
			Notes: fmt.Sprintf("Automated %s pass over: %s", e.Specialization, task.Description),
		},
	}, nil
}

// TaskMover moves a task to a different owner queue.
type TaskMover interface {
	Move(ctx context.Context, taskID, newOwner, actorName string) error
}

// MoverFunc adapts a function to TaskMover.
type MoverFunc func(ctx context.Context, taskID, newOwner, actorName string) error

// Move calls f.
func (f MoverFunc) Move(ctx context.Context, taskID, newOwner, actorName string) error {
	return f(ctx, taskID, newOwner, actorName)
}

// CoordinatorExecutor triages a task by keyword routing. With AutoRoute it
// hands the task off to the matched specialist; otherwise it only recommends.
// Routing is a best-effort heuristic.
type CoordinatorExecutor struct {
	Router    domain.Router
	Mover     TaskMover // Required when AutoRoute is set
	ActorName string
	AutoRoute bool
}

// Execute routes the task text to a specialist.
func (e *CoordinatorExecutor) Execute(ctx context.Context, task *domain.Task) (*Result, error) {
	owner, ok := e.Router(task.Title + " " + task.Description)
	if !ok {
		return &Result{
			Output: fmt.Sprintf("No specialist matched %q; triage finished without a handoff.", task.Title),
		}, nil
	}

	if !e.AutoRoute || e.Mover == nil {
		return &Result{
			Output: fmt.Sprintf("Recommend assigning %q to %s.", task.Title, owner),
		}, nil
	}

	if err := e.Mover.Move(ctx, task.ID, owner, e.ActorName); err != nil {
		return nil, fmt.Errorf("route to %s: %w", owner, err)
	}
	return &Result{
		Output:     fmt.Sprintf("Routed %q to %s.", task.Title, owner),
		NewOwner:   owner,
		Reassigned: true,
	}, nil
}
