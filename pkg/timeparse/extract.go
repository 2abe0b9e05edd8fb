package timeparse

import (
	"regexp"
	"strings"
)

var (
	rangeSearchRe = regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?)\s*(am|pm)?\s*(?:-|–|to)\s*(\d{1,2}(?::\d{2})?)\s*(am|pm)?`)

	forIdiomRe = regexp.MustCompile(`(?i)\bfor\s+(an hour|half an hour|a half hour|half hour|quarter of an hour|quarter hour)\b`)

	durationTokenPattern = `\d+(?:\.\d+)?\s*(?:hours?|hrs?|h|minutes?|mins?|m)(?:\s*\d+\s*(?:minutes?|mins?|m))?`

	forNumericRe    = regexp.MustCompile(`(?i)\bfor\s+(` + durationTokenPattern + `)`)
	afterTimeDurRe  = regexp.MustCompile(`(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm))\s+(` + durationTokenPattern + `)`)
	multipleSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// ExtractDuration locates the first duration signal in a task description and
// strips it, returning the minutes and the cleaned text. Four forms are tried
// in priority order, first match wins with no backtracking:
//
//  1. an embedded time range ("Meeting 2pm-3pm #Work") — the range is replaced
//     by just its canonical start time so the remaining text still schedules;
//  2. "for" plus a spoken idiom ("for half an hour") — removed entirely;
//  3. "for" plus a numeric duration ("for 1h30m") — removed entirely;
//  4. a bare duration directly after a clock time ("2pm 1h30m") — only the
//     duration is removed, the time stays.
//
// Range-before-duration ordering is deliberate: "2pm-3pm" must never be read
// as "2pm" plus leftovers. A text carrying both a range and a separate
// "for X" phrase honors only the range; that precedence is inherited product
// behavior, kept as-is.
func ExtractDuration(text string) (int, string, bool) {
	if m := rangeSearchRe.FindStringSubmatchIndex(text); m != nil {
		if minutes, start, ok := resolveRangeMatch(text, m); ok {
			cleaned := text[:m[0]] + FormatTimeOfDay(start) + text[m[1]:]
			return minutes, tidy(cleaned), true
		}
	}

	if m := forIdiomRe.FindStringSubmatchIndex(text); m != nil {
		minutes, _ := NaturalDuration(text[m[2]:m[3]])
		return minutes, tidy(text[:m[0]] + text[m[1]:]), true
	}

	if m := forNumericRe.FindStringSubmatchIndex(text); m != nil && boundaryAfter(text, m[1]) {
		if minutes, ok := ParseDuration(text[m[2]:m[3]]); ok {
			return minutes, tidy(text[:m[0]] + text[m[1]:]), true
		}
	}

	if m := afterTimeDurRe.FindStringSubmatchIndex(text); m != nil && boundaryAfter(text, m[1]) {
		if _, ok := ParseClockTime(text[m[2]:m[3]]); ok {
			if minutes, ok := ParseDuration(text[m[4]:m[5]]); ok {
				cleaned := text[:m[3]] + text[m[1]:]
				return minutes, tidy(cleaned), true
			}
		}
	}

	return 0, text, false
}

// resolveRangeMatch validates a candidate range match: at least one side must
// carry a meridiem (the other inherits it) and the end must be after the
// start. Returns the duration and the resolved start minute.
func resolveRangeMatch(text string, m []int) (minutes, start int, ok bool) {
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return text[m[2*i]:m[2*i+1]]
	}

	mer1, mer2 := strings.ToLower(group(2)), strings.ToLower(group(4))
	if mer1 == "" && mer2 == "" {
		return 0, 0, false
	}
	if mer1 == "" {
		mer1 = mer2
	}
	if mer2 == "" {
		mer2 = mer1
	}

	t1, ok1 := ParseClockTime(group(1) + mer1)
	t2, ok2 := ParseClockTime(group(3) + mer2)
	if !ok1 || !ok2 || t2 <= t1 {
		return 0, 0, false
	}
	return t2 - t1, t1, true
}

// boundaryAfter reports whether the match ending at end is not glued to more
// word characters, so "for 2 m" inside "for 2 months" never counts.
func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	c := text[end]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

func tidy(s string) string {
	return strings.TrimSpace(multipleSpaceRe.ReplaceAllString(s, " "))
}
