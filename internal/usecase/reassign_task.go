package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/perchhq/perch/internal/domain"
	"github.com/perchhq/perch/internal/usecase/shared"
)

// ReassignTaskInput contains the parameters for moving a task to another queue.
type ReassignTaskInput struct {
	TaskID    string
	NewOwner  string
	ActorName string
}

// ReassignTask is the use case for moving a task to a different owner queue.
// Reassignment is a hard reset of progress: the task is re-queued regardless
// of its previous state, so the new owner starts fresh instead of inheriting
// partial progress.
type ReassignTask struct {
	tasks    domain.TaskRepository
	activity domain.ActivityLog
	clock    domain.Clock
	logger   *slog.Logger
	roster   []domain.AgentDef
}

// NewReassignTask creates a new ReassignTask use case.
func NewReassignTask(tasks domain.TaskRepository, activity domain.ActivityLog, roster []domain.AgentDef, clock domain.Clock, logger *slog.Logger) *ReassignTask {
	return &ReassignTask{
		tasks:    tasks,
		activity: activity,
		roster:   roster,
		clock:    clock,
		logger:   logger,
	}
}

// Execute moves the task to the new owner's queue.
func (uc *ReassignTask) Execute(_ context.Context, in ReassignTaskInput) error {
	if !domain.RosterContains(uc.roster, in.NewOwner) {
		return fmt.Errorf("%q: %w", in.NewOwner, domain.ErrUnknownAgent)
	}

	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return err
	}

	previousOwner := task.Owner
	now := uc.clock.Now()
	task.Owner = in.NewOwner
	task.Status = domain.StatusQueued
	task.UpdatedAt = now

	if err := uc.tasks.Update(task); err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	if err := uc.activity.Append(&domain.Activity{
		TaskID:        task.ID,
		ActorName:     in.ActorName,
		Action:        domain.ActionMoved,
		PreviousOwner: previousOwner,
		NewOwner:      in.NewOwner,
		Message:       fmt.Sprintf("Moved from %s to %s", previousOwner, in.NewOwner),
		Timestamp:     now,
	}); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("task reassigned", "task", task.ID, "from", previousOwner, "to", in.NewOwner, "actor", in.ActorName)
	}
	return nil
}
