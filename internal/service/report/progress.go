// Package report computes derived project metrics from in-memory snapshots
// of the raw collections. Nothing here touches the store and nothing is ever
// persisted: every figure is recomputed on read so stored and computed truth
// cannot drift. All functions tolerate missing fields by substituting zero
// values and never return errors.
package report

import (
	"math"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

// Round2 rounds to two decimals for presentation. Figures stay unrounded
// until they cross the HTTP boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TaskProgress returns the percentage of tasks with status DONE. An empty
// snapshot is 0, not NaN.
func TaskProgress(tasks []model.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == model.TaskDone {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100
}

// RoomProgress returns the completion percentage over the tasks assigned to
// one room. The rooms page counts every task; the dashboard excludes
// NOT_RELEVANT ones. The caller picks the variant via excludeNotRelevant.
func RoomProgress(roomID int64, tasks []model.Task, excludeNotRelevant bool) float64 {
	scoped := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.RoomID == nil || *t.RoomID != roomID {
			continue
		}
		if excludeNotRelevant && t.Status == model.TaskNotRelevant {
			continue
		}
		scoped = append(scoped, t)
	}
	return TaskProgress(scoped)
}

// WaitingTaskCount counts tasks blocked on something external.
func WaitingTaskCount(tasks []model.Task) int {
	count := 0
	for _, t := range tasks {
		if t.Status == model.TaskWaiting {
			count++
		}
	}
	return count
}
