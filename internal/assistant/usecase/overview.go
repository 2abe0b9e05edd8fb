package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"taskpilot/internal/assistant"
	"taskpilot/internal/model"
	"taskpilot/internal/schedule"
)

const dateLabelLayout = "Monday, January 2"

// DayOverview builds the schedule-plus-tasks view for one day. Overdue tasks
// are included only for today; the combined overdue-then-today list is what
// gets numbered for follow-up commands.
func (uc *implUseCase) DayOverview(ctx context.Context, input assistant.DayOverviewInput) (assistant.DayOverviewOutput, error) {
	dayStart := schedule.DayStart(uc.now().In(uc.loc), input.OffsetDays, uc.loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	out := assistant.DayOverviewOutput{
		DateLabel:          dayStart.Format(dateLabelLayout),
		CalendarConfigured: uc.calendarConfigured(),
	}
	if out.CalendarConfigured {
		out.Events = uc.eventsBetween(ctx, dayStart, dayEnd)
	}

	var (
		tasks []model.Task
		err   error
	)
	switch input.OffsetDays {
	case 0:
		out.Overdue, err = uc.tasks.GetOverdueTasks(ctx)
		if err != nil {
			return out, fmt.Errorf("failed to fetch overdue tasks: %w", err)
		}
		tasks, err = uc.tasks.GetTodayTasks(ctx)
	case 1:
		tasks, err = uc.tasks.GetTomorrowTasks(ctx)
	default:
		tasks, err = uc.tasks.GetTasksByFilter(ctx, dayStart.Format("2006-01-02"))
	}
	if err != nil {
		return out, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	out.Overdue = schedule.SortByTime(out.Overdue, uc.loc)
	out.Tasks = schedule.SortByTime(tasks, uc.loc)

	numbered := make([]model.Task, 0, len(out.Overdue)+len(out.Tasks))
	numbered = append(numbered, out.Overdue...)
	numbered = append(numbered, out.Tasks...)
	out.Mappings = uc.sessions.SetTaskMappings(input.ChatID, numbered)
	return out, nil
}

// NextUp returns the next upcoming timed event and the most urgent task.
func (uc *implUseCase) NextUp(ctx context.Context) (assistant.NextUpOutput, error) {
	now := uc.now().In(uc.loc)
	out := assistant.NextUpOutput{CalendarConfigured: uc.calendarConfigured()}

	if out.CalendarConfigured {
		dayEnd := schedule.DayStart(now, 1, uc.loc)
		for _, e := range uc.eventsBetween(ctx, now, dayEnd) {
			if e.IsAllDay || !e.Start.After(now) {
				continue
			}
			ev := e
			out.Event = &ev
			break
		}
	}

	today, err := uc.tasks.GetTodayTasks(ctx)
	if err != nil {
		return out, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	overdue, err := uc.tasks.GetOverdueTasks(ctx)
	if err != nil {
		return out, fmt.Errorf("failed to fetch overdue tasks: %w", err)
	}

	candidates := schedule.SortByTime(append(overdue, today...), uc.loc)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
	if len(candidates) > 0 {
		t := candidates[0]
		out.Task = &t
	}
	return out, nil
}
