package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"taskpilot/internal/assistant"
	"taskpilot/internal/session"
	"taskpilot/pkg/timeparse"
	"taskpilot/pkg/todoist"
)

// CompleteTask completes a task referenced by list number or by a fuzzy name
// match against the last shown list.
func (uc *implUseCase) CompleteTask(ctx context.Context, chatID int64, ref string) (assistant.CompleteTaskOutput, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return assistant.CompleteTaskOutput{}, assistant.ErrEmptyInput
	}

	var (
		mapping session.TaskMapping
		ok      bool
	)
	if n, err := strconv.Atoi(ref); err == nil {
		mapping, ok = uc.sessions.TaskByIndex(chatID, n)
	} else {
		mapping, ok = uc.sessions.TaskByFuzzyMatch(chatID, ref)
	}
	if !ok {
		return assistant.CompleteTaskOutput{}, assistant.ErrTaskNotFound
	}

	action := session.UndoAction{
		Type:        session.UndoComplete,
		TaskID:      mapping.TaskID,
		TaskContent: mapping.Content,
	}
	// Snapshot the schedule before closing so undo can restore it.
	if task, err := uc.tasks.GetTask(ctx, mapping.TaskID); err == nil && task.Due != nil {
		action.PrevDueString = task.Due.String
		action.PrevDueDate = task.Due.Date
	}

	if err := uc.tasks.CloseTask(ctx, mapping.TaskID); err != nil {
		return assistant.CompleteTaskOutput{}, fmt.Errorf("failed to complete task: %w", err)
	}
	uc.sessions.PushUndo(chatID, action)
	return assistant.CompleteTaskOutput{Content: mapping.Content}, nil
}

// DeleteTasks deletes tasks by list number, best effort per task.
func (uc *implUseCase) DeleteTasks(ctx context.Context, chatID int64, numbers []int) (assistant.BatchOutput, error) {
	if len(numbers) == 0 {
		return assistant.BatchOutput{}, assistant.ErrEmptyInput
	}

	var out assistant.BatchOutput
	for _, n := range numbers {
		mapping, ok := uc.sessions.TaskByIndex(chatID, n)
		if !ok {
			out.Failed = append(out.Failed, fmt.Sprintf("#%d", n))
			continue
		}
		if err := uc.tasks.DeleteTask(ctx, mapping.TaskID); err != nil {
			uc.l.Warnf(ctx, "failed to delete task %s: %v", mapping.TaskID, err)
			out.Failed = append(out.Failed, mapping.Content)
			continue
		}
		out.Done = append(out.Done, mapping.Content)
	}
	return out, nil
}

// SnoozeTasks reschedules tasks by list number to a snooze target.
func (uc *implUseCase) SnoozeTasks(ctx context.Context, chatID int64, numbers []int, when string) (assistant.SnoozeOutput, error) {
	if len(numbers) == 0 {
		return assistant.SnoozeOutput{}, assistant.ErrEmptyInput
	}
	target := uc.resolveSnoozeTarget(when)

	out := assistant.SnoozeOutput{Target: target}
	for _, n := range numbers {
		mapping, ok := uc.sessions.TaskByIndex(chatID, n)
		if !ok {
			out.Failed = append(out.Failed, fmt.Sprintf("#%d", n))
			continue
		}

		action := session.UndoAction{
			Type:        session.UndoReschedule,
			TaskID:      mapping.TaskID,
			TaskContent: mapping.Content,
		}
		if task, err := uc.tasks.GetTask(ctx, mapping.TaskID); err == nil && task.Due != nil {
			action.PrevDueString = task.Due.String
			action.PrevDueDate = task.Due.Date
		}

		err := uc.tasks.UpdateTask(ctx, mapping.TaskID, todoist.UpdateTaskRequest{DueString: target})
		if err != nil {
			uc.l.Warnf(ctx, "failed to snooze task %s: %v", mapping.TaskID, err)
			out.Failed = append(out.Failed, mapping.Content)
			continue
		}
		uc.sessions.PushUndo(chatID, action)
		out.Done = append(out.Done, mapping.Content)
	}
	return out, nil
}

// resolveSnoozeTarget turns a snooze phrase into a due string the task store
// understands. Relative offsets ("2h", "30m") become an explicit time of day;
// shorthand like "tonight" and "next week" expand; anything else passes
// through for the store's own parser to handle.
func (uc *implUseCase) resolveSnoozeTarget(when string) string {
	w := strings.ToLower(strings.TrimSpace(when))
	switch w {
	case "":
		return "tomorrow"
	case "tonight":
		return "today at 7pm"
	case "weekend":
		return "saturday"
	case "next week":
		return "next monday"
	}

	if minutes, ok := timeparse.ParseDuration(w); ok {
		now := uc.now().In(uc.loc)
		total := now.Hour()*60 + now.Minute() + minutes
		if total >= timeparse.MinutesPerDay {
			return "tomorrow at " + timeparse.FormatTimeOfDay(total%timeparse.MinutesPerDay)
		}
		return "today at " + timeparse.FormatTimeOfDay(total)
	}
	return w
}

// EditTask updates one field of a task. The first word of the edit text
// selects the field: "duration 45m", "time 3pm-4pm", "description ...";
// anything else replaces the task content wholesale.
func (uc *implUseCase) EditTask(ctx context.Context, chatID int64, number int, edit string) (assistant.EditTaskOutput, error) {
	edit = strings.TrimSpace(edit)
	if edit == "" {
		return assistant.EditTaskOutput{}, assistant.ErrEmptyInput
	}
	mapping, ok := uc.sessions.TaskByIndex(chatID, number)
	if !ok {
		return assistant.EditTaskOutput{}, assistant.ErrTaskNotFound
	}

	keyword, rest, _ := strings.Cut(edit, " ")
	rest = strings.TrimSpace(rest)
	out := assistant.EditTaskOutput{Content: mapping.Content}

	switch strings.ToLower(keyword) {
	case "duration":
		minutes, ok := timeparse.ParseDuration(rest)
		if !ok {
			return out, assistant.ErrBadTimeInput
		}
		err := uc.tasks.UpdateTask(ctx, mapping.TaskID, todoist.UpdateTaskRequest{
			Duration:     minutes,
			DurationUnit: "minute",
		})
		if err != nil {
			return out, fmt.Errorf("failed to update duration: %w", err)
		}
		out.Kind = assistant.EditDuration
		out.DurationMinutes = minutes
		return out, nil

	case "time":
		block, ok := timeparse.ParseTimeBlock(rest)
		if !ok {
			return out, assistant.ErrBadTimeInput
		}
		// Keep the task on its current date, only the time moves.
		date := "today"
		if task, err := uc.tasks.GetTask(ctx, mapping.TaskID); err == nil && task.Due != nil && task.Due.Date != "" {
			date = task.Due.Date
		}
		start := timeparse.FormatTimeOfDay(block.StartMinute)
		req := todoist.UpdateTaskRequest{DueString: date + " at " + start}
		if block.HasDuration {
			req.Duration = block.DurationMinutes
			req.DurationUnit = "minute"
		}
		if err := uc.tasks.UpdateTask(ctx, mapping.TaskID, req); err != nil {
			return out, fmt.Errorf("failed to update time: %w", err)
		}
		out.Kind = assistant.EditTime
		out.StartLabel = start
		out.DurationMinutes = block.DurationMinutes
		return out, nil

	case "description":
		err := uc.tasks.UpdateTask(ctx, mapping.TaskID, todoist.UpdateTaskRequest{Description: rest})
		if err != nil {
			return out, fmt.Errorf("failed to update description: %w", err)
		}
		out.Kind = assistant.EditDescription
		return out, nil

	default:
		err := uc.tasks.UpdateTask(ctx, mapping.TaskID, todoist.UpdateTaskRequest{Content: edit})
		if err != nil {
			return out, fmt.Errorf("failed to update content: %w", err)
		}
		out.Kind = assistant.EditContent
		out.Content = edit
		return out, nil
	}
}
