package schedule

import (
	"sort"
	"time"

	"taskpilot/internal/model"
	"taskpilot/pkg/timeparse"
)

// DueKind tags how a task's schedule was resolved. The precedence is fixed:
// an explicit datetime beats a time parsed out of the due text, which beats a
// date with no time, which beats nothing at all.
type DueKind int

const (
	DueNone DueKind = iota
	DueDateOnly
	DueTextTime
	DueDateTime
)

// ResolveDue applies the due-precedence rule and, for the two time-bearing
// kinds, returns the minute of day in loc. This is the single shared rule;
// the timeline and ordering code both go through it.
func ResolveDue(due *model.Due, loc *time.Location) (DueKind, int) {
	if due == nil {
		return DueNone, 0
	}
	if due.Datetime != "" {
		// Datetimes arrive either zoned (RFC 3339) or floating.
		if t, err := time.Parse(time.RFC3339, due.Datetime); err == nil {
			return DueDateTime, MinuteOfDay(t, loc)
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", due.Datetime, loc); err == nil {
			return DueDateTime, MinuteOfDay(t, loc)
		}
	}
	if due.String != "" {
		if minute, ok := timeparse.FindClockTime(due.String); ok {
			return DueTextTime, minute
		}
	}
	if due.Date != "" {
		return DueDateOnly, 0
	}
	return DueNone, 0
}

// IsUnscheduled reports whether a task has no resolvable time of day.
func IsUnscheduled(t model.Task, loc *time.Location) bool {
	kind, _ := ResolveDue(t.Due, loc)
	return kind != DueDateTime && kind != DueTextTime
}

// SortByTime orders tasks chronologically by resolved minute of day, with
// unscheduled tasks after every scheduled one. The sort is stable: tasks at
// the same minute, and unscheduled tasks among themselves, keep their input
// order.
func SortByTime(tasks []model.Task, loc *time.Location) []model.Task {
	const unscheduledKey = MinutesPerDayKey

	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)

	key := func(t model.Task) int {
		kind, minute := ResolveDue(t.Due, loc)
		if kind == DueDateTime || kind == DueTextTime {
			return minute
		}
		return unscheduledKey
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) < key(sorted[j])
	})
	return sorted
}

// MinutesPerDayKey sorts after any real minute of day.
const MinutesPerDayKey = timeparse.MinutesPerDay
