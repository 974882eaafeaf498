package worker

import (
	"sort"

	"github.com/perchhq/perch/internal/domain"
)

// SelectNext picks the task a worker should run next: highest priority rank
// first, oldest first among equals, ID as the final tiebreak so the choice is
// deterministic. Returns nil for an empty queue.
func SelectNext(tasks []*domain.Task) *domain.Task {
	if len(tasks) == 0 {
		return nil
	}

	sorted := append([]*domain.Task(nil), tasks...)
	sort.Slice(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Priority.Rank(), sorted[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted[0]
}

// filterQueued returns only the tasks waiting to be picked up.
func filterQueued(tasks []*domain.Task) []*domain.Task {
	var out []*domain.Task
	for _, t := range tasks {
		if t.Status == domain.StatusQueued {
			out = append(out, t)
		}
	}
	return out
}
