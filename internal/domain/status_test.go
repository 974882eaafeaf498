package domain

import "testing"

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		to     Status
		expect bool
	}{
		// From queued
		{"queued -> in_progress", StatusQueued, StatusInProgress, true},
		{"queued -> completed", StatusQueued, StatusCompleted, false},
		{"queued -> blocked", StatusQueued, StatusBlocked, false},
		{"queued -> queued", StatusQueued, StatusQueued, false},

		// From in_progress
		{"in_progress -> completed", StatusInProgress, StatusCompleted, true},
		{"in_progress -> blocked", StatusInProgress, StatusBlocked, true},
		{"in_progress -> queued", StatusInProgress, StatusQueued, false},
		{"in_progress -> in_progress", StatusInProgress, StatusInProgress, false},

		// From blocked (retry)
		{"blocked -> in_progress", StatusBlocked, StatusInProgress, true},
		{"blocked -> queued", StatusBlocked, StatusQueued, false},
		{"blocked -> completed", StatusBlocked, StatusCompleted, false},

		// From completed (manual reopen)
		{"completed -> queued", StatusCompleted, StatusQueued, true},
		{"completed -> in_progress", StatusCompleted, StatusInProgress, false},
		{"completed -> completed", StatusCompleted, StatusCompleted, false},
		{"completed -> blocked", StatusCompleted, StatusBlocked, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.CanTransitionTo(tt.to)
			if got != tt.expect {
				t.Errorf("CanTransitionTo(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		if !s.IsValid() {
			t.Errorf("IsValid(%s) = false, want true", s)
		}
	}
	if Status("archived").IsValid() {
		t.Error("IsValid(archived) = true, want false")
	}
}

func TestPriority_Rank(t *testing.T) {
	tests := []struct {
		priority Priority
		rank     int
	}{
		{PriorityUrgent, 4},
		{PriorityHigh, 3},
		{PriorityMedium, 2},
		{PriorityLow, 1},
		{Priority("whenever"), 0},
	}
	for _, tt := range tests {
		if got := tt.priority.Rank(); got != tt.rank {
			t.Errorf("Rank(%s) = %d, want %d", tt.priority, got, tt.rank)
		}
	}
}
