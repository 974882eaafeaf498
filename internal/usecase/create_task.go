// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/perchhq/perch/internal/domain"
)

// CreateTaskInput contains the parameters for creating a task.
// Fields are ordered to minimize memory padding.
type CreateTaskInput struct {
	Title       string          // Task title (required)
	Description string          // Task description (optional)
	Owner       string          // Agent queue the task is assigned to (required)
	CreatedBy   string          // Creator identity, e.g. "user" or an agent name
	ThreadID    string          // Optional notification thread handle
	Priority    domain.Priority // One of low/medium/high/urgent
}

// CreateTaskOutput contains the result of creating a task.
type CreateTaskOutput struct {
	TaskID string
}

// CreateTask is the use case for creating a new task. Tasks always start
// queued; exactly one "created" activity entry is appended.
type CreateTask struct {
	tasks    domain.TaskRepository
	activity domain.ActivityLog
	clock    domain.Clock
	logger   *slog.Logger
	roster   []domain.AgentDef
}

// NewCreateTask creates a new CreateTask use case.
func NewCreateTask(tasks domain.TaskRepository, activity domain.ActivityLog, roster []domain.AgentDef, clock domain.Clock, logger *slog.Logger) *CreateTask {
	return &CreateTask{
		tasks:    tasks,
		activity: activity,
		roster:   roster,
		clock:    clock,
		logger:   logger,
	}
}

// Execute creates a new task with the given input.
func (uc *CreateTask) Execute(_ context.Context, in CreateTaskInput) (*CreateTaskOutput, error) {
	if in.Title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if !domain.RosterContains(uc.roster, in.Owner) {
		return nil, fmt.Errorf("%q: %w", in.Owner, domain.ErrUnknownAgent)
	}
	if !in.Priority.IsValid() {
		return nil, fmt.Errorf("%q: %w", in.Priority, domain.ErrInvalidPriority)
	}

	now := uc.clock.Now()
	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Owner:       in.Owner,
		Status:      domain.StatusQueued,
		Priority:    in.Priority,
		CreatedBy:   in.CreatedBy,
		ThreadID:    in.ThreadID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.tasks.Insert(task); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	if err := uc.activity.Append(&domain.Activity{
		TaskID:    task.ID,
		ActorName: in.CreatedBy,
		Action:    domain.ActionCreated,
		NewOwner:  in.Owner,
		Message:   fmt.Sprintf("Task created: %s", in.Title),
		Timestamp: now,
	}); err != nil {
		return nil, fmt.Errorf("append activity: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("task created", "task", task.ID, "title", in.Title, "owner", in.Owner, "priority", in.Priority)
	}

	return &CreateTaskOutput{TaskID: task.ID}, nil
}
