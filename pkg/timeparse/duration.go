package timeparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// naturalDurations maps fixed spoken idioms to minute counts. Checked before
// the numeric grammars so "half an hour" never reaches the unit parser.
var naturalDurations = map[string]int{
	"an hour":            60,
	"half an hour":       30,
	"a half hour":        30,
	"half hour":          30,
	"quarter of an hour": 15,
	"quarter hour":       15,
}

var (
	compoundDurationRe = regexp.MustCompile(`^(?i)(\d+)\s*(?:hours?|hrs?|h)\s*(\d+)\s*(?:minutes?|mins?|m)?$`)
	simpleDurationRe   = regexp.MustCompile(`^(?i)(\d+(?:\.\d+)?)\s*(hours?|hrs?|h|minutes?|mins?|m)$`)
)

// NaturalDuration looks up a fixed idiom ("half an hour", "quarter hour")
// and returns its minute count.
func NaturalDuration(s string) (int, bool) {
	minutes, ok := naturalDurations[strings.ToLower(strings.TrimSpace(s))]
	return minutes, ok
}

// ParseDuration converts a duration phrase to minutes. It accepts, in order:
// a fixed idiom ("an hour"), a compound form ("1h30m", "2 hours 15"), and a
// simple value with unit ("1.5h", "45min"). Fractional hours round to the
// nearest minute.
func ParseDuration(s string) (int, bool) {
	s = strings.TrimSpace(s)

	if minutes, ok := NaturalDuration(s); ok {
		return minutes, true
	}

	if m := compoundDurationRe.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return hours*60 + minutes, true
	}

	if m := simpleDurationRe.FindStringSubmatch(s); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		if strings.HasPrefix(strings.ToLower(m[2]), "h") {
			return int(math.Round(value * 60)), true
		}
		return int(math.Round(value)), true
	}

	return 0, false
}

// FormatDuration renders minutes as "2h", "45m" or "1h 30m".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
