package usecase

import (
	"time"

	"taskpilot/internal/assistant/repository"
	"taskpilot/internal/ics"
	"taskpilot/internal/session"
	pkgLog "taskpilot/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	tasks    repository.TaskStore
	calendar repository.Calendar
	feeds    repository.FeedReader
	renderer repository.TimelineRenderer
	sessions *session.Store

	loc                *time.Location
	workStartMin       int
	workEndMin         int
	calendarIDs        []string
	writableCalendarID string
	icsFeeds           []ics.Feed

	now func() time.Time
}

// Config carries the schedule settings the use case needs beyond its
// dependencies. Calendar, feed reader, and renderer may be nil; the
// corresponding operations degrade or refuse accordingly.
type Config struct {
	Location           *time.Location
	WorkStartMin       int
	WorkEndMin         int
	CalendarIDs        []string
	WritableCalendarID string
	ICSFeeds           []ics.Feed
}

// New creates a new assistant UseCase instance.
func New(
	l pkgLog.Logger,
	tasks repository.TaskStore,
	calendar repository.Calendar,
	feeds repository.FeedReader,
	renderer repository.TimelineRenderer,
	sessions *session.Store,
	cfg Config,
) *implUseCase {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &implUseCase{
		l:                  l,
		tasks:              tasks,
		calendar:           calendar,
		feeds:              feeds,
		renderer:           renderer,
		sessions:           sessions,
		loc:                loc,
		workStartMin:       cfg.WorkStartMin,
		workEndMin:         cfg.WorkEndMin,
		calendarIDs:        cfg.CalendarIDs,
		writableCalendarID: cfg.WritableCalendarID,
		icsFeeds:           cfg.ICSFeeds,
		now:                time.Now,
	}
}

func (uc *implUseCase) calendarConfigured() bool {
	if uc.calendar != nil && len(uc.calendarIDs) > 0 {
		return true
	}
	return uc.feeds != nil && len(uc.icsFeeds) > 0
}
