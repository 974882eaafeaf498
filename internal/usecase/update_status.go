package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/perchhq/perch/internal/domain"
	"github.com/perchhq/perch/internal/usecase/shared"
)

// UpdateStatusInput contains the parameters for a status change.
type UpdateStatusInput struct {
	TaskID    string
	ActorName string
	Status    domain.Status
}

// UpdateStatus is the use case for moving a task through its lifecycle.
// Transitions are validated against the status transition table; a change
// into completed is delegated to the single completion path.
type UpdateStatus struct {
	tasks    domain.TaskRepository
	activity domain.ActivityLog
	clock    domain.Clock
	logger   *slog.Logger
}

// NewUpdateStatus creates a new UpdateStatus use case.
func NewUpdateStatus(tasks domain.TaskRepository, activity domain.ActivityLog, clock domain.Clock, logger *slog.Logger) *UpdateStatus {
	return &UpdateStatus{
		tasks:    tasks,
		activity: activity,
		clock:    clock,
		logger:   logger,
	}
}

// Execute applies the status change.
func (uc *UpdateStatus) Execute(_ context.Context, in UpdateStatusInput) error {
	if !in.Status.IsValid() {
		return fmt.Errorf("%q: %w", in.Status, domain.ErrInvalidStatus)
	}

	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return err
	}

	if in.Status == domain.StatusCompleted {
		// Completion without artifacts still goes through the one
		// completion path so completedAt is set in exactly one place.
		if err := shared.Complete(uc.tasks, uc.activity, uc.clock, task, in.ActorName, nil); err != nil {
			return err
		}
		uc.log(task, in)
		return nil
	}

	if !task.Status.CanTransitionTo(in.Status) {
		return fmt.Errorf("%s -> %s: %w", task.Status, in.Status, domain.ErrInvalidTransition)
	}

	now := uc.clock.Now()
	task.Status = in.Status
	task.UpdatedAt = now

	if err := uc.tasks.Update(task); err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	if err := uc.activity.Append(&domain.Activity{
		TaskID:    task.ID,
		ActorName: in.ActorName,
		Action:    domain.ActionUpdated,
		Message:   fmt.Sprintf("Status changed to %s", in.Status),
		Timestamp: now,
	}); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}

	uc.log(task, in)
	return nil
}

func (uc *UpdateStatus) log(task *domain.Task, in UpdateStatusInput) {
	if uc.logger != nil {
		uc.logger.Info("status changed", "task", task.ID, "status", in.Status, "actor", in.ActorName)
	}
}
