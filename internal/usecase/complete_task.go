package usecase

import (
	"context"
	"log/slog"

	"github.com/perchhq/perch/internal/domain"
	"github.com/perchhq/perch/internal/usecase/shared"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	Artifacts *domain.Artifacts // Optional outputs to attach
	TaskID    string
	ActorName string
}

// CompleteTask is the use case for marking a task completed with optional
// artifacts. It shares its completion path with UpdateStatus.
type CompleteTask struct {
	tasks    domain.TaskRepository
	activity domain.ActivityLog
	clock    domain.Clock
	logger   *slog.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskRepository, activity domain.ActivityLog, clock domain.Clock, logger *slog.Logger) *CompleteTask {
	return &CompleteTask{
		tasks:    tasks,
		activity: activity,
		clock:    clock,
		logger:   logger,
	}
}

// Execute marks the task completed.
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) error {
	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return err
	}

	if err := shared.Complete(uc.tasks, uc.activity, uc.clock, task, in.ActorName, in.Artifacts); err != nil {
		return err
	}

	if uc.logger != nil {
		uc.logger.Info("task completed", "task", task.ID, "actor", in.ActorName)
	}
	return nil
}
