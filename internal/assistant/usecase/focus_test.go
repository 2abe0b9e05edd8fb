package usecase

import (
	"errors"
	"testing"

	"taskpilot/internal/assistant"
)

func TestStartFocusParsesMinutes(t *testing.T) {
	uc := newTestUseCase(&fakeTaskStore{}, nil)

	out, err := uc.StartFocus(1, "45 Write report", func(assistant.FocusOutput) {})
	if err != nil {
		t.Fatalf("StartFocus: %v", err)
	}
	if out.TaskDescription != "Write report" || out.DurationMinutes != 45 {
		t.Errorf("out = %+v", out)
	}
	if out.RemainingMinutes != 45 {
		t.Errorf("RemainingMinutes = %d, want 45", out.RemainingMinutes)
	}
}

func TestStartFocusDefaults(t *testing.T) {
	uc := newTestUseCase(&fakeTaskStore{}, nil)

	out, err := uc.StartFocus(1, "", func(assistant.FocusOutput) {})
	if err != nil {
		t.Fatalf("StartFocus: %v", err)
	}
	if out.TaskDescription != "Focus time" || out.DurationMinutes != 25 {
		t.Errorf("out = %+v", out)
	}
}

func TestStartFocusRejectsSecondSession(t *testing.T) {
	uc := newTestUseCase(&fakeTaskStore{}, nil)

	if _, err := uc.StartFocus(1, "Deep work", func(assistant.FocusOutput) {}); err != nil {
		t.Fatalf("StartFocus: %v", err)
	}
	if _, err := uc.StartFocus(1, "Another", func(assistant.FocusOutput) {}); !errors.Is(err, assistant.ErrFocusActive) {
		t.Errorf("err = %v, want ErrFocusActive", err)
	}
}

func TestFocusStatusAndStop(t *testing.T) {
	uc := newTestUseCase(&fakeTaskStore{}, nil)

	if _, err := uc.FocusStatus(1); !errors.Is(err, assistant.ErrNoFocusSession) {
		t.Errorf("status before start: err = %v, want ErrNoFocusSession", err)
	}

	if _, err := uc.StartFocus(1, "30 Deep work", func(assistant.FocusOutput) {}); err != nil {
		t.Fatalf("StartFocus: %v", err)
	}
	status, err := uc.FocusStatus(1)
	if err != nil {
		t.Fatalf("FocusStatus: %v", err)
	}
	if status.TaskDescription != "Deep work" || status.DurationMinutes != 30 {
		t.Errorf("status = %+v", status)
	}

	if _, err := uc.StopFocus(1); err != nil {
		t.Fatalf("StopFocus: %v", err)
	}
	if _, err := uc.FocusStatus(1); !errors.Is(err, assistant.ErrNoFocusSession) {
		t.Errorf("status after stop: err = %v, want ErrNoFocusSession", err)
	}
}
