package usecase

import (
	"context"
	"testing"
	"time"

	"taskpilot/internal/assistant"
	"taskpilot/internal/ics"
	"taskpilot/internal/model"
)

func TestDayOverviewToday(t *testing.T) {
	store := &fakeTaskStore{
		overdue: []model.Task{{ID: "o1", Content: "Late thing"}},
		today: []model.Task{
			{ID: "t2", Content: "Afternoon", Due: dueAt(15, 0)},
			{ID: "t1", Content: "Morning", Due: dueAt(9, 30)},
		},
	}
	cal := &fakeCalendar{events: []model.Event{eventAt("Standup", 9, 0, 15)}}
	uc := newTestUseCase(store, cal)

	out, err := uc.DayOverview(context.Background(), assistant.DayOverviewInput{ChatID: 1})
	if err != nil {
		t.Fatalf("DayOverview: %v", err)
	}
	if out.DateLabel != "Monday, March 2" {
		t.Errorf("DateLabel = %q", out.DateLabel)
	}
	if !out.CalendarConfigured || len(out.Events) != 1 {
		t.Errorf("events = %+v", out.Events)
	}
	if len(out.Overdue) != 1 || len(out.Tasks) != 2 || out.Tasks[0].ID != "t1" {
		t.Errorf("tasks = %+v overdue = %+v", out.Tasks, out.Overdue)
	}

	// Numbering runs overdue first, then today.
	if len(out.Mappings) != 3 || out.Mappings[0].TaskID != "o1" || out.Mappings[1].TaskID != "t1" {
		t.Errorf("mappings = %+v", out.Mappings)
	}
}

func TestDayOverviewTomorrowSkipsOverdue(t *testing.T) {
	store := &fakeTaskStore{
		overdue:  []model.Task{{ID: "o1", Content: "Late thing"}},
		tomorrow: []model.Task{{ID: "m1", Content: "Prep slides"}},
	}
	uc := newTestUseCase(store, nil)

	out, err := uc.DayOverview(context.Background(), assistant.DayOverviewInput{ChatID: 1, OffsetDays: 1})
	if err != nil {
		t.Fatalf("DayOverview: %v", err)
	}
	if out.CalendarConfigured {
		t.Error("CalendarConfigured = true without a calendar")
	}
	if len(out.Overdue) != 0 || len(out.Tasks) != 1 || out.Tasks[0].ID != "m1" {
		t.Errorf("out = %+v", out)
	}
	if out.DateLabel != "Tuesday, March 3" {
		t.Errorf("DateLabel = %q", out.DateLabel)
	}
}

func TestNextUp(t *testing.T) {
	store := &fakeTaskStore{
		today: []model.Task{
			{ID: "low", Content: "Tidy desk", Priority: model.PriorityDefault, Due: dueAt(11, 0)},
			{ID: "high", Content: "File taxes", Priority: model.PriorityUrgent, Due: dueAt(16, 0)},
		},
	}
	cal := &fakeCalendar{events: []model.Event{
		eventAt("Earlier", 8, 0, 30),   // already past 10:00
		eventAt("Planning", 14, 0, 60), // next up
		eventAt("Later", 16, 0, 60),
	}}
	uc := newTestUseCase(store, cal)

	out, err := uc.NextUp(context.Background())
	if err != nil {
		t.Fatalf("NextUp: %v", err)
	}
	if out.Event == nil || out.Event.Summary != "Planning" {
		t.Errorf("Event = %+v, want Planning", out.Event)
	}
	if out.Task == nil || out.Task.ID != "high" {
		t.Errorf("Task = %+v, want the urgent one", out.Task)
	}
}

func TestEventsBetweenMergesFeedSources(t *testing.T) {
	cal := &fakeCalendar{events: []model.Event{eventAt("Standup", 9, 0, 15)}}
	uc := newTestUseCase(&fakeTaskStore{}, cal)
	uc.feeds = &fakeFeedReader{events: map[string][]model.Event{
		"team": {
			eventAt("Retro", 13, 0, 60),
			{Summary: "Offsite", Start: testNow, End: testNow.Add(24 * time.Hour), IsAllDay: true},
		},
	}}
	uc.icsFeeds = []ics.Feed{{Name: "team", URL: "https://feeds.example/team.ics"}, {Name: "broken", URL: "https://feeds.example/broken.ics"}}

	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	events := uc.eventsBetween(context.Background(), dayStart, dayStart.Add(24*time.Hour))
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3 (broken feed skipped)", len(events))
	}
	if !events[0].IsAllDay {
		t.Errorf("all-day event should sort first, got %+v", events[0])
	}
	if events[1].Summary != "Standup" || events[2].Summary != "Retro" {
		t.Errorf("timed order = %q, %q", events[1].Summary, events[2].Summary)
	}
}
