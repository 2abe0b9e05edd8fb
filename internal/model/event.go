package model

import "time"

// BusySummary is the anonymized title placeholder calendars use for private
// events. Such events are treated as meeting blocks in briefings.
const BusySummary = "Busy"

// Event is a calendar event normalized from any calendar source (Google
// Calendar or an ICS feed).
type Event struct {
	Summary    string
	Start      time.Time
	End        time.Time
	IsAllDay   bool
	Location   string
	CalendarID string
}

// MeetingBlock is a run of adjacent anonymous "Busy" events merged for
// display purposes.
type MeetingBlock struct {
	Start time.Time
	End   time.Time
}

// Environment names used in config and server mode selection.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
