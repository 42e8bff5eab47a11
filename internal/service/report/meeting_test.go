package report

import (
	"testing"
	"time"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

func meetingWith(completed bool, statuses ...model.ActionItemStatus) model.Meeting {
	m := model.Meeting{Completed: completed}
	for i, s := range statuses {
		m.ActionItems = append(m.ActionItems, model.ActionItem{ID: string(rune('a' + i)), Status: s})
	}
	return m
}

func TestMeetingStatusOf(t *testing.T) {
	tests := []struct {
		name string
		m    model.Meeting
		want MeetingStatus
	}{
		{"flagged done with open item", meetingWith(true, model.ActionCompleted, model.ActionPending), MeetingPartiallyDone},
		{"flagged done, all items done", meetingWith(true, model.ActionCompleted, model.ActionCompleted), MeetingCompleted},
		{"flagged done, no items", meetingWith(true), MeetingCompleted},
		{"open with one item done", meetingWith(false, model.ActionCompleted), MeetingInProgress},
		{"open with no items", meetingWith(false), MeetingNotStarted},
		{"open with only pending items", meetingWith(false, model.ActionPending, model.ActionInProgress), MeetingNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeetingStatusOf(tt.m); got != tt.want {
				t.Errorf("MeetingStatusOf = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSortMeetingsByStatus(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	done := meetingWith(true, model.ActionCompleted)
	done.ID = 1
	done.MeetingDate = base

	partial := meetingWith(true, model.ActionPending)
	partial.ID = 2
	partial.MeetingDate = base

	inProgress := meetingWith(false, model.ActionCompleted)
	inProgress.ID = 3
	inProgress.MeetingDate = base

	notStarted := meetingWith(false)
	notStarted.ID = 4
	notStarted.MeetingDate = base

	meetings := []model.Meeting{done, partial, inProgress, notStarted}
	SortMeetingsByStatus(meetings)

	wantOrder := []int64{4, 3, 2, 1}
	for i, want := range wantOrder {
		if meetings[i].ID != want {
			t.Errorf("meetings[%d].ID = %d, want %d", i, meetings[i].ID, want)
		}
	}
}
