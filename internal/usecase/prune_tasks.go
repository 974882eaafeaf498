package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/perchhq/perch/internal/domain"
)

// PruneTasksInput contains the parameters for bulk deletion.
type PruneTasksInput struct {
	Owner string // Delete only this owner's tasks (ignored when All is set)
	All   bool   // Delete every task
}

// PruneTasks is the use case for bulk task deletion: everything for one
// owner, or the whole board.
type PruneTasks struct {
	tasks  domain.TaskRepository
	logger *slog.Logger
}

// NewPruneTasks creates a new PruneTasks use case.
func NewPruneTasks(tasks domain.TaskRepository, logger *slog.Logger) *PruneTasks {
	return &PruneTasks{tasks: tasks, logger: logger}
}

// Execute deletes the selected tasks.
func (uc *PruneTasks) Execute(_ context.Context, in PruneTasksInput) error {
	if in.All {
		if err := uc.tasks.DeleteAll(); err != nil {
			return fmt.Errorf("delete all tasks: %w", err)
		}
		if uc.logger != nil {
			uc.logger.Info("all tasks deleted")
		}
		return nil
	}

	if in.Owner == "" {
		return fmt.Errorf("owner is required unless --all is set")
	}
	if err := uc.tasks.DeleteByOwner(in.Owner); err != nil {
		return fmt.Errorf("delete tasks by owner: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("tasks deleted", "owner", in.Owner)
	}
	return nil
}
