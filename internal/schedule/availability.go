package schedule

import (
	"sort"
	"time"

	"taskpilot/internal/model"
)

// MinSlotMinutes is the smallest reportable free gap. Shorter gaps are
// dropped, not shown.
const MinSlotMinutes = 15

// FreeSlot is a contiguous gap within the work-hours window not covered by
// any busy interval. Start < End and Minutes >= MinSlotMinutes always hold.
type FreeSlot struct {
	Start   time.Time
	End     time.Time
	Minutes int
}

// BusyInterval is a clipped, timed busy span inside the work-hours window.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// MergeBusy normalizes a day's events into a merged busy-interval list:
// all-day entries are discarded, the rest are clipped to [workStart, workEnd],
// degenerate clips dropped, and overlapping or touching intervals coalesced.
// The result is sorted ascending with no two entries overlapping or touching.
func MergeBusy(events []model.Event, workStart, workEnd time.Time) []BusyInterval {
	clipped := make([]BusyInterval, 0, len(events))
	for _, e := range events {
		if e.IsAllDay {
			continue
		}
		start, end := e.Start, e.End
		if start.Before(workStart) {
			start = workStart
		}
		if end.After(workEnd) {
			end = workEnd
		}
		if !start.Before(end) {
			continue
		}
		clipped = append(clipped, BusyInterval{Start: start, End: end})
	}

	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	merged := make([]BusyInterval, 0, len(clipped))
	for _, iv := range clipped {
		if n := len(merged); n > 0 && !iv.Start.After(merged[n-1].End) {
			if iv.End.After(merged[n-1].End) {
				merged[n-1].End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// FreeSlots computes the free gaps within [workStart, workEnd] left open by
// the given events. With no busy time the whole window is one slot; a busy
// span covering the window yields none.
func FreeSlots(events []model.Event, workStart, workEnd time.Time) []FreeSlot {
	merged := MergeBusy(events, workStart, workEnd)

	slots := make([]FreeSlot, 0, len(merged)+1)
	cursor := workStart

	emit := func(start, end time.Time) {
		minutes := int(end.Sub(start).Round(time.Minute) / time.Minute)
		if minutes >= MinSlotMinutes {
			slots = append(slots, FreeSlot{Start: start, End: end, Minutes: minutes})
		}
	}

	for _, iv := range merged {
		if iv.Start.After(cursor) {
			emit(cursor, iv.Start)
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}
	if cursor.Before(workEnd) {
		emit(cursor, workEnd)
	}

	return slots
}

// TotalFreeMinutes sums the minutes across slots.
func TotalFreeMinutes(slots []FreeSlot) int {
	total := 0
	for _, s := range slots {
		total += s.Minutes
	}
	return total
}

// MergeMeetingBlocks coalesces anonymous "Busy" events separated by at most
// five minutes into display-level meeting blocks, returning the named events
// untouched. Distinct from MergeBusy, which merges touching intervals only.
func MergeMeetingBlocks(events []model.Event) (named []model.Event, blocks []model.MeetingBlock) {
	var busyTimed []model.Event
	for _, e := range events {
		if e.IsAllDay || e.Summary != model.BusySummary {
			named = append(named, e)
		} else {
			busyTimed = append(busyTimed, e)
		}
	}

	sort.Slice(busyTimed, func(i, j int) bool {
		return busyTimed[i].Start.Before(busyTimed[j].Start)
	})

	const tolerance = 5 * time.Minute
	for _, e := range busyTimed {
		if n := len(blocks); n > 0 && e.Start.Sub(blocks[n-1].End) <= tolerance {
			if e.End.After(blocks[n-1].End) {
				blocks[n-1].End = e.End
			}
			continue
		}
		blocks = append(blocks, model.MeetingBlock{Start: e.Start, End: e.End})
	}
	return named, blocks
}
