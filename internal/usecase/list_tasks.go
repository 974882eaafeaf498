package usecase

import (
	"context"
	"fmt"

	"github.com/perchhq/perch/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Owner  string        // Filter by owner queue (empty = all tasks)
	Status domain.Status // Filter by status (empty = all statuses)
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task // Most-recently-created first
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks domain.TaskRepository
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

// Execute lists tasks matching the given input criteria.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	var tasks []*domain.Task
	var err error
	if in.Owner != "" {
		tasks, err = uc.tasks.ListByOwner(in.Owner)
	} else {
		tasks, err = uc.tasks.List()
	}
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if in.Status != "" {
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.Status == in.Status {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	return &ListTasksOutput{Tasks: tasks}, nil
}
