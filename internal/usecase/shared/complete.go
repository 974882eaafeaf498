package shared

import (
	"fmt"

	"github.com/perchhq/perch/internal/domain"
)

// Complete is the single completion path. Both the artifact-carrying complete
// operation and a plain status update to "completed" go through here, so
// completedAt and the audit entry are set exactly one way.
//
// completedAt records the most recent completion and is never cleared by a
// later reopen.
func Complete(
	tasks domain.TaskRepository,
	activity domain.ActivityLog,
	clock domain.Clock,
	task *domain.Task,
	actorName string,
	artifacts *domain.Artifacts,
) error {
	if !task.Status.CanTransitionTo(domain.StatusCompleted) {
		return fmt.Errorf("cannot complete task in %s status: %w", task.Status, domain.ErrInvalidTransition)
	}

	now := clock.Now()
	task.Status = domain.StatusCompleted
	task.UpdatedAt = now
	completedAt := now
	task.CompletedAt = &completedAt
	if artifacts != nil {
		task.Artifacts = artifacts
	}

	if err := tasks.Update(task); err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	if err := activity.Append(&domain.Activity{
		TaskID:    task.ID,
		ActorName: actorName,
		Action:    domain.ActionCompleted,
		Message:   fmt.Sprintf("Task completed by %s", actorName),
		Timestamp: now,
	}); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}
