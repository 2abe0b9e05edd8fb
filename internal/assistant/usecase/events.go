package usecase

import (
	"context"
	"sort"
	"time"

	"taskpilot/internal/model"
)

// eventsBetween gathers events from every configured calendar source for the
// window. Sources fail independently; a broken feed costs its own events, not
// the whole view.
func (uc *implUseCase) eventsBetween(ctx context.Context, start, end time.Time) []model.Event {
	var events []model.Event

	if uc.calendar != nil && len(uc.calendarIDs) > 0 {
		got, errs := uc.calendar.ListAcrossCalendars(ctx, uc.calendarIDs, start, end)
		for _, err := range errs {
			uc.l.Warnf(ctx, "calendar listing failed: %v", err)
		}
		events = append(events, got...)
	}

	if uc.feeds != nil {
		for _, feed := range uc.icsFeeds {
			got, err := uc.feeds.FetchEvents(ctx, feed, start, end, uc.loc)
			if err != nil {
				uc.l.Warnf(ctx, "ics feed %q failed: %v", feed.Name, err)
				continue
			}
			events = append(events, got...)
		}
	}

	sortEvents(events)
	return events
}

// sortEvents orders all-day events first, then timed events by start.
func sortEvents(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].IsAllDay != events[j].IsAllDay {
			return events[i].IsAllDay
		}
		return events[i].Start.Before(events[j].Start)
	})
}
