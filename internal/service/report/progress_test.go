package report

import (
	"math"
	"testing"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

func taskWithStatus(id int64, status model.TaskStatus) model.Task {
	return model.Task{ID: id, Status: status}
}

func roomTask(id, roomID int64, status model.TaskStatus) model.Task {
	t := taskWithStatus(id, status)
	t.RoomID = &roomID
	return t
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestTaskProgress_Empty(t *testing.T) {
	if got := TaskProgress(nil); got != 0 {
		t.Errorf("TaskProgress(nil) = %v, want 0", got)
	}
	if got := TaskProgress([]model.Task{}); got != 0 {
		t.Errorf("TaskProgress(empty) = %v, want 0", got)
	}
}

func TestTaskProgress_TwoOfThreeDone(t *testing.T) {
	tasks := []model.Task{
		taskWithStatus(1, model.TaskDone),
		taskWithStatus(2, model.TaskDone),
		taskWithStatus(3, model.TaskNotStarted),
	}
	got := TaskProgress(tasks)
	if !almostEqual(got, 66.67) {
		t.Errorf("TaskProgress = %v, want ~66.67", got)
	}
}

func TestTaskProgress_OnlyDoneCounts(t *testing.T) {
	tasks := []model.Task{
		taskWithStatus(1, model.TaskInProgress),
		taskWithStatus(2, model.TaskWaiting),
		taskWithStatus(3, model.TaskNotRelevant),
		taskWithStatus(4, model.TaskNoStatus),
	}
	if got := TaskProgress(tasks); got != 0 {
		t.Errorf("TaskProgress = %v, want 0 (nothing DONE)", got)
	}
}

func TestTaskProgress_Idempotent(t *testing.T) {
	tasks := []model.Task{
		taskWithStatus(1, model.TaskDone),
		taskWithStatus(2, model.TaskNotStarted),
	}
	if TaskProgress(tasks) != TaskProgress(tasks) {
		t.Error("TaskProgress not idempotent over identical input")
	}
}

func TestRoomProgress_ScopedToRoom(t *testing.T) {
	tasks := []model.Task{
		roomTask(1, 10, model.TaskDone),
		roomTask(2, 10, model.TaskNotStarted),
		roomTask(3, 11, model.TaskDone),
		taskWithStatus(4, model.TaskNotStarted), // no room
	}
	if got := RoomProgress(10, tasks, false); !almostEqual(got, 50) {
		t.Errorf("RoomProgress(10) = %v, want 50", got)
	}
	if got := RoomProgress(11, tasks, false); !almostEqual(got, 100) {
		t.Errorf("RoomProgress(11) = %v, want 100", got)
	}
}

func TestRoomProgress_DashboardVariantExcludesNotRelevant(t *testing.T) {
	tasks := []model.Task{
		roomTask(1, 10, model.TaskDone),
		roomTask(2, 10, model.TaskNotRelevant),
	}
	// Rooms page counts every task.
	if got := RoomProgress(10, tasks, false); !almostEqual(got, 50) {
		t.Errorf("all-tasks variant = %v, want 50", got)
	}
	// Dashboard drops NOT_RELEVANT.
	if got := RoomProgress(10, tasks, true); !almostEqual(got, 100) {
		t.Errorf("dashboard variant = %v, want 100", got)
	}
}

func TestRoomProgress_NoTasksForRoom(t *testing.T) {
	if got := RoomProgress(99, []model.Task{roomTask(1, 10, model.TaskDone)}, false); got != 0 {
		t.Errorf("RoomProgress for empty room = %v, want 0", got)
	}
}
