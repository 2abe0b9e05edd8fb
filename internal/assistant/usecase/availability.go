package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"taskpilot/internal/assistant"
	"taskpilot/internal/schedule"
	"taskpilot/pkg/gcalendar"
	"taskpilot/pkg/timeparse"
)

const defaultBlockMinutes = 60

var (
	blockRangeRe = regexp.MustCompile(`^(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm)?\s*(?:-|–|to)\s*\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\s*(.*)$`)
	blockForRe   = regexp.MustCompile(`^(?i)(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\s+for\s+(\d+(?:\.\d+)?\s*(?:h|hr|hrs|hours?)(?:\s*\d+\s*(?:m|min|mins|minutes?))?|\d+\s*(?:m|min|mins|minutes?))\s*(.*)$`)
)

// FreeSlots computes open time within work hours for the requested window.
// Today's window starts at the current time when work hours are already
// under way.
func (uc *implUseCase) FreeSlots(ctx context.Context, scope assistant.FreeSlotsScope) (assistant.FreeSlotsOutput, error) {
	if !uc.calendarConfigured() {
		return assistant.FreeSlotsOutput{}, assistant.ErrCalendarNotConfigured
	}

	now := uc.now().In(uc.loc)
	first, count := 0, 1
	switch scope {
	case assistant.FreeTomorrow:
		first = 1
	case assistant.FreeWeek:
		count = 7
	}

	out := assistant.FreeSlotsOutput{
		Scope:     scope,
		WorkStart: timeparse.FormatTimeOfDay(uc.workStartMin),
		WorkEnd:   timeparse.FormatTimeOfDay(uc.workEndMin),
	}
	for i := first; i < first+count; i++ {
		dayStart := schedule.DayStart(now, i, uc.loc)
		workStart := schedule.AtMinute(dayStart, uc.workStartMin, uc.loc)
		workEnd := schedule.AtMinute(dayStart, uc.workEndMin, uc.loc)
		if i == 0 && now.After(workStart) {
			workStart = now
		}
		if !workEnd.After(workStart) {
			out.Days = append(out.Days, assistant.FreeDay{DateLabel: dayStart.Format(dateLabelLayout)})
			continue
		}

		events := uc.eventsBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
		slots := schedule.FreeSlots(events, workStart, workEnd)
		out.Days = append(out.Days, assistant.FreeDay{
			DateLabel: dayStart.Format(dateLabelLayout),
			Slots:     slots,
		})
		out.TotalMinutes += schedule.TotalFreeMinutes(slots)
	}
	return out, nil
}

// BlockTime creates a calendar event from a block command. Accepted forms:
//
//	/block 2pm-3pm Deep work
//	/block 10am for 1h Code review
//	/block tomorrow 9am-11am Planning
func (uc *implUseCase) BlockTime(ctx context.Context, chatID int64, text string) (assistant.BlockTimeOutput, error) {
	if uc.calendar == nil {
		return assistant.BlockTimeOutput{}, assistant.ErrCalendarNotConfigured
	}
	if uc.writableCalendarID == "" {
		return assistant.BlockTimeOutput{}, assistant.ErrCalendarReadOnly
	}

	text = strings.TrimSpace(text)
	offset := 0
	if rest, ok := cutPrefixFold(text, "tomorrow"); ok {
		offset = 1
		text = strings.TrimSpace(rest)
	}
	if text == "" {
		return assistant.BlockTimeOutput{}, assistant.ErrEmptyInput
	}

	block, title, ok := parseBlockCommand(text)
	if !ok {
		return assistant.BlockTimeOutput{}, assistant.ErrBadTimeInput
	}
	if title == "" {
		return assistant.BlockTimeOutput{}, assistant.ErrMissingTitle
	}

	minutes := defaultBlockMinutes
	if block.HasDuration {
		minutes = block.DurationMinutes
	}
	dayStart := schedule.DayStart(uc.now().In(uc.loc), offset, uc.loc)
	start := schedule.AtMinute(dayStart, block.StartMinute, uc.loc)
	end := start.Add(time.Duration(minutes) * time.Minute)

	created, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID: uc.writableCalendarID,
		Summary:    title,
		StartTime:  start,
		EndTime:    end,
		Timezone:   uc.loc.String(),
	})
	if err != nil {
		return assistant.BlockTimeOutput{}, fmt.Errorf("failed to create event: %w", err)
	}
	return assistant.BlockTimeOutput{
		Title: title,
		Start: created.StartTime,
		End:   created.EndTime,
		Link:  created.HtmlLink,
	}, nil
}

// parseBlockCommand splits a block command into its time block and title.
func parseBlockCommand(text string) (timeparse.Block, string, bool) {
	if m := blockRangeRe.FindStringSubmatch(text); m != nil {
		if block, ok := timeparse.ParseTimeBlock(m[1]); ok {
			return block, strings.TrimSpace(m[2]), true
		}
	}
	if m := blockForRe.FindStringSubmatch(text); m != nil {
		if block, ok := timeparse.ParseTimeBlock(m[1] + " " + m[2]); ok {
			return block, strings.TrimSpace(m[3]), true
		}
	}
	// Bare start time followed by a title.
	first, rest, _ := strings.Cut(text, " ")
	if block, ok := timeparse.ParseTimeBlock(first); ok {
		return block, strings.TrimSpace(rest), true
	}
	return timeparse.Block{}, "", false
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
