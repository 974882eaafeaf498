// Package shared contains helpers used by multiple use cases.
package shared

import (
	"fmt"

	"github.com/perchhq/perch/internal/domain"
)

// GetTask retrieves a task and converts a missing row into ErrTaskNotFound.
func GetTask(tasks domain.TaskRepository, id string) (*domain.Task, error) {
	task, err := tasks.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}
