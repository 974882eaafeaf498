package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrAgentNotFound     = errors.New("agent not found")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrUnknownAgent      = errors.New("unknown agent")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
)
