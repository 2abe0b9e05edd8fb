package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"taskpilot/internal/assistant"
	"taskpilot/internal/session"
)

const (
	defaultFocusMinutes = 25
	defaultFocusLabel   = "Focus time"
)

var focusMinutesRe = regexp.MustCompile(`^(\d+)\s*(.*)$`)

// StartFocus begins a focus session. The text may lead with a minute count
// ("45 Write report"); otherwise the default length is used. onDone fires
// when the session runs to completion.
func (uc *implUseCase) StartFocus(chatID int64, text string, onDone func(assistant.FocusOutput)) (assistant.FocusOutput, error) {
	minutes := defaultFocusMinutes
	description := strings.TrimSpace(text)
	if m := focusMinutesRe.FindStringSubmatch(description); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			minutes = n
			description = strings.TrimSpace(m[2])
		}
	}
	if description == "" {
		description = defaultFocusLabel
	}

	timer, ok := uc.sessions.StartFocus(chatID, description, minutes, func() {
		onDone(assistant.FocusOutput{
			TaskDescription: description,
			DurationMinutes: minutes,
			ElapsedMinutes:  minutes,
		})
	})
	if !ok {
		return assistant.FocusOutput{}, assistant.ErrFocusActive
	}
	return focusSnapshot(timer, uc.now()), nil
}

// FocusStatus reports the running focus session.
func (uc *implUseCase) FocusStatus(chatID int64) (assistant.FocusOutput, error) {
	timer, ok := uc.sessions.Focus(chatID)
	if !ok {
		return assistant.FocusOutput{}, assistant.ErrNoFocusSession
	}
	return focusSnapshot(timer, uc.now()), nil
}

// StopFocus ends the running focus session early.
func (uc *implUseCase) StopFocus(chatID int64) (assistant.FocusOutput, error) {
	timer, ok := uc.sessions.StopFocus(chatID)
	if !ok {
		return assistant.FocusOutput{}, assistant.ErrNoFocusSession
	}
	return focusSnapshot(timer, uc.now()), nil
}

func focusSnapshot(timer session.FocusTimer, now time.Time) assistant.FocusOutput {
	elapsed := int(now.Sub(timer.StartedAt).Minutes())
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > timer.DurationMinutes {
		elapsed = timer.DurationMinutes
	}
	return assistant.FocusOutput{
		TaskDescription:  timer.TaskDescription,
		DurationMinutes:  timer.DurationMinutes,
		ElapsedMinutes:   elapsed,
		RemainingMinutes: timer.DurationMinutes - elapsed,
	}
}
