package usecase

import (
	"context"
	"fmt"

	"github.com/perchhq/perch/internal/domain"
)

// ListActivityInput contains the parameters for reading the audit trail.
type ListActivityInput struct {
	TaskID string // Entries for one task, oldest first (empty = recent across all)
	Limit  int    // Max entries when TaskID is empty
}

// ListActivityOutput contains the result of reading the audit trail.
type ListActivityOutput struct {
	Entries []*domain.Activity
}

// ListActivity is the read-only use case over the activity log. The core
// never consumes the log; this exists for operators.
type ListActivity struct {
	activity domain.ActivityLog
}

// NewListActivity creates a new ListActivity use case.
func NewListActivity(activity domain.ActivityLog) *ListActivity {
	return &ListActivity{activity: activity}
}

// Execute reads the audit trail.
func (uc *ListActivity) Execute(_ context.Context, in ListActivityInput) (*ListActivityOutput, error) {
	var entries []*domain.Activity
	var err error
	if in.TaskID != "" {
		entries, err = uc.activity.ListByTask(in.TaskID)
	} else {
		entries, err = uc.activity.ListRecent(in.Limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return &ListActivityOutput{Entries: entries}, nil
}
