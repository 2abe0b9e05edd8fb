// Package schedule computes day windows, free time within work hours, and
// the chronological ordering of tasks. Everything here is pure computation
// over its inputs; callers own all I/O.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayStart returns midnight of the day offsetDays away from now in loc.
func DayStart(now time.Time, offsetDays int, loc *time.Location) time.Time {
	t := now.In(loc).AddDate(0, 0, offsetDays)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ParseWorkHour parses a work-hours boundary like "09:00" into minutes from
// midnight.
func ParseWorkHour(hhmm string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid work hour %q", hhmm)
	}
	m := 0
	if len(parts) == 2 {
		m, err = strconv.Atoi(parts[1])
		if err != nil || m < 0 || m > 59 {
			return 0, fmt.Errorf("invalid work hour %q", hhmm)
		}
	}
	return h*60 + m, nil
}

// AtMinute returns the instant minute minutes after midnight of the given
// day in loc. time.Date handles the wall-clock-in-zone construction directly,
// including DST transitions.
func AtMinute(dayStart time.Time, minute int, loc *time.Location) time.Time {
	d := dayStart.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, minute, 0, 0, loc)
}

// MinuteOfDay converts an instant to minutes since midnight in loc.
func MinuteOfDay(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}
