package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskpilot/internal/assistant/repository"
	"taskpilot/internal/ics"
	"taskpilot/internal/model"
	"taskpilot/internal/session"
	"taskpilot/pkg/gcalendar"
	"taskpilot/pkg/todoist"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...interface{}) {}
func (nopLogger) Debugf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Info(ctx context.Context, args ...interface{}) {}
func (nopLogger) Infof(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Warn(ctx context.Context, args ...interface{}) {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Error(ctx context.Context, args ...interface{}) {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Fatal(ctx context.Context, args ...interface{}) {}
func (nopLogger) Fatalf(ctx context.Context, format string, args ...interface{}) {}

// fakeTaskStore records mutations and serves canned task lists.
type fakeTaskStore struct {
	today     []model.Task
	overdue   []model.Task
	tomorrow  []model.Task
	byFilter  map[string][]model.Task
	byID      map[string]*model.Task
	projects  []model.Project
	completed []model.CompletedTask

	quickAdded   []string
	quickAddTask *model.Task
	updates      []update
	closed       []string
	reopened     []string
	deleted      []string
	failAll      bool
}

type update struct {
	taskID string
	req    todoist.UpdateTaskRequest
}

func (f *fakeTaskStore) QuickAdd(ctx context.Context, text string) (*model.Task, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	f.quickAdded = append(f.quickAdded, text)
	if f.quickAddTask != nil {
		return f.quickAddTask, nil
	}
	return &model.Task{ID: "new", Content: text}, nil
}

func (f *fakeTaskStore) GetTasksByFilter(ctx context.Context, filter string) ([]model.Task, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	return f.byFilter[filter], nil
}

func (f *fakeTaskStore) GetTodayTasks(ctx context.Context) ([]model.Task, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	return f.today, nil
}

func (f *fakeTaskStore) GetTomorrowTasks(ctx context.Context) ([]model.Task, error) {
	return f.tomorrow, nil
}

func (f *fakeTaskStore) GetOverdueTasks(ctx context.Context) ([]model.Task, error) {
	if f.failAll {
		return nil, errors.New("store down")
	}
	return f.overdue, nil
}

func (f *fakeTaskStore) GetWeekTasks(ctx context.Context) ([]model.Task, error) { return nil, nil }

func (f *fakeTaskStore) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	if t, ok := f.byID[taskID]; ok {
		return t, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeTaskStore) CloseTask(ctx context.Context, taskID string) error {
	if f.failAll {
		return errors.New("store down")
	}
	f.closed = append(f.closed, taskID)
	return nil
}

func (f *fakeTaskStore) ReopenTask(ctx context.Context, taskID string) error {
	f.reopened = append(f.reopened, taskID)
	return nil
}

func (f *fakeTaskStore) DeleteTask(ctx context.Context, taskID string) error {
	if f.failAll {
		return errors.New("store down")
	}
	f.deleted = append(f.deleted, taskID)
	return nil
}

func (f *fakeTaskStore) UpdateTask(ctx context.Context, taskID string, req todoist.UpdateTaskRequest) error {
	if f.failAll {
		return errors.New("store down")
	}
	f.updates = append(f.updates, update{taskID: taskID, req: req})
	return nil
}

func (f *fakeTaskStore) GetProjectsWithCounts(ctx context.Context) ([]model.Project, error) {
	return f.projects, nil
}

func (f *fakeTaskStore) GetCompletedSince(ctx context.Context, since, until time.Time) ([]model.CompletedTask, error) {
	return f.completed, nil
}

// fakeCalendar serves canned events and records created ones.
type fakeCalendar struct {
	events  []model.Event
	errs    []error
	created []gcalendar.CreateEventRequest
	deleted []string
}

func (f *fakeCalendar) ListAcrossCalendars(ctx context.Context, calendarIDs []string, timeMin, timeMax time.Time) ([]model.Event, []error) {
	var in []model.Event
	for _, e := range f.events {
		if e.Start.Before(timeMax) && e.End.After(timeMin) {
			in = append(in, e)
		}
	}
	return in, f.errs
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.CreatedEvent, error) {
	f.created = append(f.created, req)
	return &gcalendar.CreatedEvent{
		ID:         fmt.Sprintf("ev%d", len(f.created)),
		CalendarID: req.CalendarID,
		Summary:    req.Summary,
		HtmlLink:   "https://calendar.example/ev",
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}, nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

type fakeFeedReader struct {
	events map[string][]model.Event
}

func (f *fakeFeedReader) FetchEvents(ctx context.Context, feed ics.Feed, rangeStart, rangeEnd time.Time, loc *time.Location) ([]model.Event, error) {
	got, ok := f.events[feed.Name]
	if !ok {
		return nil, errors.New("feed unreachable")
	}
	return got, nil
}

// testNow is 10:00 on Monday March 2, 2026 UTC.
var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newTestUseCase(store *fakeTaskStore, cal *fakeCalendar) *implUseCase {
	var calendar repository.Calendar
	var calendarIDs []string
	if cal != nil {
		calendar = cal
		calendarIDs = []string{"primary"}
	}
	uc := New(nopLogger{}, store, calendar, nil, nil, session.NewStore(16, time.Hour), Config{
		Location:           time.UTC,
		WorkStartMin:       9 * 60,
		WorkEndMin:         17 * 60,
		CalendarIDs:        calendarIDs,
		WritableCalendarID: "primary",
	})
	uc.now = func() time.Time { return testNow }
	return uc
}

func dueAt(hour, minute int) *model.Due {
	return &model.Due{
		Date:     "2026-03-02",
		Datetime: fmt.Sprintf("2026-03-02T%02d:%02d:00Z", hour, minute),
	}
}

func eventAt(summary string, startHour, startMin, durMin int) model.Event {
	start := time.Date(2026, 3, 2, startHour, startMin, 0, 0, time.UTC)
	return model.Event{
		Summary: summary,
		Start:   start,
		End:     start.Add(time.Duration(durMin) * time.Minute),
	}
}
