package usecase

import (
	"context"
	"errors"
	"testing"

	"taskpilot/internal/assistant"
	"taskpilot/internal/session"
)

func TestUndoComplete(t *testing.T) {
	store := &fakeTaskStore{}
	uc := newTestUseCase(store, nil)
	uc.sessions.PushUndo(1, session.UndoAction{
		Type:          session.UndoComplete,
		TaskID:        "t1",
		TaskContent:   "Pay rent",
		PrevDueString: "today at 2pm",
	})

	out, err := uc.Undo(context.Background(), 1)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(store.reopened) != 1 || store.reopened[0] != "t1" {
		t.Errorf("reopened = %v", store.reopened)
	}
	if len(store.updates) != 1 || store.updates[0].req.DueString != "today at 2pm" {
		t.Errorf("updates = %+v", store.updates)
	}
	if out.RestoredTo != "today at 2pm" || out.Content != "Pay rent" {
		t.Errorf("out = %+v", out)
	}
}

func TestUndoRescheduleWithoutPriorDue(t *testing.T) {
	store := &fakeTaskStore{}
	uc := newTestUseCase(store, nil)
	uc.sessions.PushUndo(1, session.UndoAction{
		Type:        session.UndoReschedule,
		TaskID:      "t1",
		TaskContent: "Someday item",
	})

	out, err := uc.Undo(context.Background(), 1)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	// The task had no schedule before the snooze, so it goes back to none.
	if store.updates[0].req.DueString != "no date" {
		t.Errorf("DueString = %q, want no date", store.updates[0].req.DueString)
	}
	if out.RestoredTo != "no date" {
		t.Errorf("RestoredTo = %q", out.RestoredTo)
	}
}

func TestUndoPriority(t *testing.T) {
	store := &fakeTaskStore{}
	uc := newTestUseCase(store, nil)
	uc.sessions.PushUndo(1, session.UndoAction{
		Type:         session.UndoPriority,
		TaskID:       "t1",
		TaskContent:  "Ship release",
		PrevPriority: 2,
	})

	out, err := uc.Undo(context.Background(), 1)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if store.updates[0].req.Priority != 2 {
		t.Errorf("Priority = %d, want 2", store.updates[0].req.Priority)
	}
	if out.RestoredTo != "priority 2" {
		t.Errorf("RestoredTo = %q", out.RestoredTo)
	}
}

func TestUndoAddDeletesTask(t *testing.T) {
	store := &fakeTaskStore{}
	uc := newTestUseCase(store, nil)
	uc.sessions.PushUndo(1, session.UndoAction{
		Type:        session.UndoAdd,
		TaskID:      "t9",
		TaskContent: "Accidental task",
	})

	if _, err := uc.Undo(context.Background(), 1); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "t9" {
		t.Errorf("deleted = %v", store.deleted)
	}
}

func TestUndoEmptyStack(t *testing.T) {
	uc := newTestUseCase(&fakeTaskStore{}, nil)
	if _, err := uc.Undo(context.Background(), 1); !errors.Is(err, assistant.ErrNothingToUndo) {
		t.Errorf("err = %v, want ErrNothingToUndo", err)
	}
}

func TestUndoIsLIFO(t *testing.T) {
	store := &fakeTaskStore{}
	uc := newTestUseCase(store, nil)
	uc.sessions.PushUndo(1, session.UndoAction{Type: session.UndoAdd, TaskID: "first"})
	uc.sessions.PushUndo(1, session.UndoAction{Type: session.UndoAdd, TaskID: "second"})

	if _, err := uc.Undo(context.Background(), 1); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if store.deleted[0] != "second" {
		t.Errorf("deleted = %v, want second first", store.deleted)
	}
}
