package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/perchhq/perch/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string
}

// DeleteTask is the use case for hard-deleting a task. Deletion is idempotent:
// a missing ID succeeds without error. Activity rows referencing the task are
// kept as independent historical record.
type DeleteTask struct {
	tasks  domain.TaskRepository
	logger *slog.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository, logger *slog.Logger) *DeleteTask {
	return &DeleteTask{tasks: tasks, logger: logger}
}

// Execute deletes the task.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) error {
	if err := uc.tasks.Delete(in.TaskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("task deleted", "task", in.TaskID)
	}
	return nil
}
