package usecase

import (
	"context"
	"fmt"
	"time"

	"taskpilot/internal/assistant"
	"taskpilot/internal/model"
	"taskpilot/internal/schedule"
)

// Briefing builds the morning summary: today's schedule with anonymous busy
// events merged into meeting blocks, overdue and today's tasks, and the
// total free time left in the workday.
func (uc *implUseCase) Briefing(ctx context.Context) (assistant.BriefingOutput, error) {
	now := uc.now().In(uc.loc)
	dayStart := schedule.DayStart(now, 0, uc.loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	out := assistant.BriefingOutput{DateLabel: dayStart.Format(dateLabelLayout)}

	var events []model.Event
	if uc.calendarConfigured() {
		events = uc.eventsBetween(ctx, dayStart, dayEnd)
		out.NamedEvents, out.MeetingBlocks = schedule.MergeMeetingBlocks(events)
	}

	overdue, err := uc.tasks.GetOverdueTasks(ctx)
	if err != nil {
		return out, fmt.Errorf("failed to fetch overdue tasks: %w", err)
	}
	today, err := uc.tasks.GetTodayTasks(ctx)
	if err != nil {
		return out, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	out.Overdue = schedule.SortByTime(overdue, uc.loc)
	out.Tasks = schedule.SortByTime(today, uc.loc)

	workStart := schedule.AtMinute(dayStart, uc.workStartMin, uc.loc)
	workEnd := schedule.AtMinute(dayStart, uc.workEndMin, uc.loc)
	if now.After(workStart) {
		workStart = now
	}
	if workEnd.After(workStart) {
		out.FreeMinutes = schedule.TotalFreeMinutes(schedule.FreeSlots(events, workStart, workEnd))
	}
	return out, nil
}
