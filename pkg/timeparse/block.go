package timeparse

import (
	"regexp"
	"strings"
)

// Block is a parsed time block: a start time and an optional duration.
type Block struct {
	StartMinute     int
	DurationMinutes int
	HasDuration     bool
}

var (
	rangeRe   = regexp.MustCompile(`^(?i)(\d{1,2}(?::\d{2})?)\s*(am|pm)?\s*(?:-|–|to)\s*(\d{1,2}(?::\d{2})?)\s*(am|pm)?$`)
	timeDurRe = regexp.MustCompile(`^(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\s+(?:for\s+)?(.+)$`)
)

// ParseTimeBlock parses a time block expression, trying three forms in order:
//
//	"2pm-3pm", "2-3pm", "9:30am to 11am"  — range; duration is the difference
//	"2pm for 1h", "2pm 1h30m"             — start time plus duration phrase
//	"2pm"                                 — bare start time, no duration
//
// A dash range needs a meridiem on at least one side; "2-4" is rejected
// rather than guessed at, since it reads equally well as a date. The bare
// side of a range inherits the other side's meridiem ("2-3pm" is 2pm-3pm).
// A range whose end is not after its start fails.
func ParseTimeBlock(s string) (Block, bool) {
	s = strings.TrimSpace(s)

	if m := rangeRe.FindStringSubmatch(s); m != nil {
		mer1, mer2 := strings.ToLower(m[2]), strings.ToLower(m[4])
		if mer1 == "" && mer2 == "" {
			return Block{}, false
		}
		if mer1 == "" {
			mer1 = mer2
		}
		if mer2 == "" {
			mer2 = mer1
		}

		start, ok1 := ParseClockTime(m[1] + mer1)
		end, ok2 := ParseClockTime(m[3] + mer2)
		if !ok1 || !ok2 || end <= start {
			return Block{}, false
		}
		return Block{StartMinute: start, DurationMinutes: end - start, HasDuration: true}, true
	}

	if m := timeDurRe.FindStringSubmatch(s); m != nil {
		if start, ok := ParseClockTime(m[1]); ok {
			if minutes, ok := ParseDuration(m[2]); ok {
				return Block{StartMinute: start, DurationMinutes: minutes, HasDuration: true}, true
			}
		}
	}

	if start, ok := ParseClockTime(s); ok {
		return Block{StartMinute: start}, true
	}

	return Block{}, false
}
