package usecase

import (
	"context"
	"fmt"
	"time"

	"taskpilot/internal/model"
	"taskpilot/internal/schedule"
	"taskpilot/internal/timeline"
)

// TimelineImage renders one day's tasks, events, and completions as a PNG.
func (uc *implUseCase) TimelineImage(ctx context.Context, offsetDays int) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("timeline renderer is not configured")
	}

	now := uc.now().In(uc.loc)
	dayStart := schedule.DayStart(now, offsetDays, uc.loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	in := timeline.Input{
		DateLabel:    dayStart.Format(dateLabelLayout),
		WorkStartMin: uc.workStartMin,
		WorkEndMin:   uc.workEndMin,
		NowMin:       -1,
		Loc:          uc.loc,
	}
	if uc.calendarConfigured() {
		in.Events = uc.eventsBetween(ctx, dayStart, dayEnd)
	}

	var (
		tasks []model.Task
		err   error
	)
	switch offsetDays {
	case 0:
		in.NowMin = schedule.MinuteOfDay(now, uc.loc)
		in.Overdue, err = uc.tasks.GetOverdueTasks(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch overdue tasks: %w", err)
		}
		tasks, err = uc.tasks.GetTodayTasks(ctx)
	case 1:
		tasks, err = uc.tasks.GetTomorrowTasks(ctx)
	default:
		tasks, err = uc.tasks.GetTasksByFilter(ctx, dayStart.Format("2006-01-02"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	in.Tasks = tasks

	if offsetDays == 0 {
		completed, err := uc.tasks.GetCompletedSince(ctx, dayStart, now)
		if err != nil {
			uc.l.Warnf(ctx, "failed to fetch completed tasks: %v", err)
		} else {
			in.Completed = completed
		}
	}

	png, err := uc.renderer.RenderPNG(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to render timeline: %w", err)
	}
	return png, nil
}
