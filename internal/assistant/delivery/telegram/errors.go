package telegram

import (
	"errors"

	"taskpilot/internal/assistant"
)

// errorMessage returns a user-facing string for an error out of the use
// case, keeping internals out of the chat.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, assistant.ErrEmptyInput):
		return "that command needs some input"
	case errors.Is(err, assistant.ErrTaskNotFound):
		return "I couldn't find that task. List tasks first with /tasks or /today."
	case errors.Is(err, assistant.ErrNothingToUndo):
		return "nothing to undo"
	case errors.Is(err, assistant.ErrBadTimeInput):
		return "I couldn't read that time. Try \"2pm-3pm\" or \"10am for 1h\"."
	case errors.Is(err, assistant.ErrMissingTitle):
		return "give the block a title, e.g. /block 2pm-3pm Deep work"
	case errors.Is(err, assistant.ErrCalendarNotConfigured):
		return "no calendar is configured"
	case errors.Is(err, assistant.ErrCalendarReadOnly):
		return "no writable calendar is configured"
	case errors.Is(err, assistant.ErrFocusActive):
		return "a focus session is already running, stop it with /focus stop"
	case errors.Is(err, assistant.ErrNoFocusSession):
		return "no focus session is running"
	default:
		return "please try again"
	}
}
