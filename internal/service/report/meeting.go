package report

import (
	"sort"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

// MeetingStatus is the derived state of a meeting. It is recomputed from the
// completed flag and the action items on every read and never stored.
type MeetingStatus string

const (
	MeetingNotStarted MeetingStatus = "NOT_STARTED"
	MeetingInProgress MeetingStatus = "IN_PROGRESS"
	// MeetingPartiallyDone means the meeting was flagged done while action
	// items remain open. That inconsistency is surfaced, not hidden.
	MeetingPartiallyDone MeetingStatus = "PARTIAL"
	MeetingCompleted     MeetingStatus = "COMPLETED"
)

// MeetingStatusOf derives the display status of a meeting.
//
//	completed && all items COMPLETED  -> COMPLETED
//	completed && open items remain    -> PARTIAL
//	!completed && any item COMPLETED  -> IN_PROGRESS
//	otherwise                         -> NOT_STARTED
func MeetingStatusOf(m model.Meeting) MeetingStatus {
	completedItems := 0
	for _, item := range m.ActionItems {
		if item.Status == model.ActionCompleted {
			completedItems++
		}
	}

	if m.Completed {
		if completedItems == len(m.ActionItems) {
			return MeetingCompleted
		}
		return MeetingPartiallyDone
	}

	if completedItems > 0 {
		return MeetingInProgress
	}
	return MeetingNotStarted
}

var meetingStatusRank = map[MeetingStatus]int{
	MeetingNotStarted:    0,
	MeetingInProgress:    1,
	MeetingPartiallyDone: 2,
	MeetingCompleted:     3,
}

// SortMeetingsByStatus orders meetings NOT_STARTED < IN_PROGRESS < PARTIAL <
// COMPLETED, keeping newer meetings first within a status.
func SortMeetingsByStatus(meetings []model.Meeting) {
	sort.SliceStable(meetings, func(i, j int) bool {
		ri := meetingStatusRank[MeetingStatusOf(meetings[i])]
		rj := meetingStatusRank[MeetingStatusOf(meetings[j])]
		if ri != rj {
			return ri < rj
		}
		return meetings[i].MeetingDate.After(meetings[j].MeetingDate)
	})
}
