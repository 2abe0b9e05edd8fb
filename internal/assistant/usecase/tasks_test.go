package usecase

import (
	"context"
	"testing"

	"taskpilot/internal/model"
	"taskpilot/internal/session"
)

func TestAddTaskExtractsInlineRange(t *testing.T) {
	store := &fakeTaskStore{quickAddTask: &model.Task{ID: "t1", Content: "Meeting #Work"}}
	uc := newTestUseCase(store, nil)

	out, err := uc.AddTask(context.Background(), 1, "Meeting 2pm-3pm #Work")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if len(store.quickAdded) != 1 || store.quickAdded[0] != "Meeting 2pm #Work" {
		t.Errorf("quick-add text = %q, want %q", store.quickAdded, "Meeting 2pm #Work")
	}
	if out.DurationMinutes != 60 {
		t.Errorf("DurationMinutes = %d, want 60", out.DurationMinutes)
	}
	if len(store.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(store.updates))
	}
	if u := store.updates[0]; u.taskID != "t1" || u.req.Duration != 60 || u.req.DurationUnit != "minute" {
		t.Errorf("duration update = %+v", u)
	}

	action, ok := uc.sessions.PopUndo(1)
	if !ok || action.Type != session.UndoAdd || action.TaskID != "t1" {
		t.Errorf("undo action = %+v ok=%v, want add of t1", action, ok)
	}
}

func TestAddTaskPlainTextSkipsDurationUpdate(t *testing.T) {
	store := &fakeTaskStore{}
	uc := newTestUseCase(store, nil)

	out, err := uc.AddTask(context.Background(), 1, "Buy groceries tomorrow")
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if out.DurationMinutes != 0 {
		t.Errorf("DurationMinutes = %d, want 0", out.DurationMinutes)
	}
	if len(store.updates) != 0 {
		t.Errorf("unexpected updates: %+v", store.updates)
	}
	if store.quickAdded[0] != "Buy groceries tomorrow" {
		t.Errorf("quick-add text = %q", store.quickAdded[0])
	}
}

func TestAddTaskEmpty(t *testing.T) {
	uc := newTestUseCase(&fakeTaskStore{}, nil)
	if _, err := uc.AddTask(context.Background(), 1, "   "); err == nil {
		t.Fatal("want error for empty input")
	}
}

func TestListTasksDefaultsToToday(t *testing.T) {
	store := &fakeTaskStore{byFilter: map[string][]model.Task{
		"today | overdue": {
			{ID: "b", Content: "Late", Due: dueAt(14, 0)},
			{ID: "a", Content: "Early", Due: dueAt(9, 0)},
		},
		"#Work": {{ID: "w", Content: "Ship it"}},
	}}
	uc := newTestUseCase(store, nil)

	out, err := uc.ListTasks(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if out.FilterLabel != "Today" {
		t.Errorf("FilterLabel = %q, want Today", out.FilterLabel)
	}
	if len(out.Tasks) != 2 || out.Tasks[0].ID != "a" {
		t.Errorf("tasks not sorted by time: %+v", out.Tasks)
	}
	if len(out.Mappings) != 2 || out.Mappings[0].Index != 1 || out.Mappings[0].TaskID != "a" {
		t.Errorf("mappings = %+v", out.Mappings)
	}

	// The numbered list is what follow-up commands resolve against.
	m, ok := uc.sessions.TaskByIndex(1, 2)
	if !ok || m.TaskID != "b" {
		t.Errorf("TaskByIndex(2) = %+v ok=%v, want b", m, ok)
	}

	out, err = uc.ListTasks(context.Background(), 1, "#Work")
	if err != nil {
		t.Fatalf("ListTasks(#Work): %v", err)
	}
	if out.FilterLabel != "#Work" || len(out.Tasks) != 1 {
		t.Errorf("filtered list = %+v", out)
	}
}
