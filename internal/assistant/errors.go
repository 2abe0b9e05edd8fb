package assistant

import "errors"

// Domain-specific errors for the assistant package.
var (
	ErrEmptyInput            = errors.New("input text is empty")
	ErrTaskNotFound          = errors.New("no matching task in the last shown list")
	ErrNothingToUndo         = errors.New("nothing to undo")
	ErrBadTimeInput          = errors.New("could not parse time input")
	ErrMissingTitle          = errors.New("event title is missing")
	ErrCalendarNotConfigured = errors.New("calendar is not configured")
	ErrCalendarReadOnly      = errors.New("no writable calendar configured")
	ErrFocusActive           = errors.New("a focus session is already active")
	ErrNoFocusSession        = errors.New("no active focus session")
)
