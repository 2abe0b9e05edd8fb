// Package timeparse converts short free-text fragments ("2pm", "2pm-3pm",
// "1h30m", "for half an hour") into minute-of-day and minute-duration values.
// All parse functions report failure with a boolean instead of an error:
// unparseable input means "no time information here", not a fault.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinutesPerDay is the valid exclusive upper bound for a minute-of-day value.
const MinutesPerDay = 24 * 60

var clockRe = regexp.MustCompile(`^(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

// ParseClockTime parses "H", "H:MM", "Ham", "H:MMpm" (case-insensitive,
// optional space before the meridiem) into minutes since local midnight.
// With a meridiem the hour must be 1-12; without one the value is read as a
// 24-hour time, so "14:30" works but "14:30pm" does not.
func ParseClockTime(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}

	hours, _ := strconv.Atoi(m[1])
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}
	if minutes > 59 {
		return 0, false
	}

	meridiem := strings.ToLower(m[3])
	if meridiem == "" {
		if hours > 23 {
			return 0, false
		}
		return hours*60 + minutes, true
	}

	if hours < 1 || hours > 12 {
		return 0, false
	}
	if meridiem == "pm" && hours != 12 {
		hours += 12
	}
	if meridiem == "am" && hours == 12 {
		hours = 0
	}
	return hours*60 + minutes, true
}

// FormatTimeOfDay renders a minute-of-day as the canonical "h[:mm]am/pm"
// form ("9am", "2:30pm"). ParseClockTime inverts it exactly, and the output
// is accepted verbatim by the task store's natural-language due strings.
func FormatTimeOfDay(minute int) string {
	minute = ((minute % MinutesPerDay) + MinutesPerDay) % MinutesPerDay

	hours := minute / 60
	mins := minute % 60

	meridiem := "am"
	if hours >= 12 {
		meridiem = "pm"
	}
	h12 := hours % 12
	if h12 == 0 {
		h12 = 12
	}

	if mins == 0 {
		return fmt.Sprintf("%d%s", h12, meridiem)
	}
	return fmt.Sprintf("%d:%02d%s", h12, mins, meridiem)
}

var (
	textTimeWithMinutesRe = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)?`)
	textTimeHourRe        = regexp.MustCompile(`(?i)(\d{1,2})\s*(am|pm)`)
)

// FindClockTime scans free text (e.g. a "today at 7:30am" due string) for the
// first clock-time pattern and returns its minute-of-day. A bare "H:MM" is
// read as 24-hour; a bare hour is only accepted with a meridiem, so stray
// numbers don't turn into times.
func FindClockTime(text string) (int, bool) {
	var hourStr, minStr, meridiem string

	if m := textTimeWithMinutesRe.FindStringSubmatch(text); m != nil {
		hourStr, minStr, meridiem = m[1], m[2], m[3]
	} else if m := textTimeHourRe.FindStringSubmatch(text); m != nil {
		hourStr, meridiem = m[1], m[2]
	} else {
		return 0, false
	}

	hours, _ := strconv.Atoi(hourStr)
	minutes := 0
	if minStr != "" {
		minutes, _ = strconv.Atoi(minStr)
	}
	if minutes > 59 {
		return 0, false
	}

	switch strings.ToLower(meridiem) {
	case "pm":
		if hours > 12 {
			return 0, false
		}
		if hours < 12 {
			hours += 12
		}
	case "am":
		if hours > 12 {
			return 0, false
		}
		if hours == 12 {
			hours = 0
		}
	default:
		if hours > 23 {
			return 0, false
		}
	}

	return hours*60 + minutes, true
}
