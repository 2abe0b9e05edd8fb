package usecase

import (
	"context"
	"fmt"
	"strings"

	"taskpilot/internal/assistant"
	"taskpilot/internal/schedule"
	"taskpilot/internal/session"
	"taskpilot/pkg/timeparse"
	"taskpilot/pkg/todoist"
)

// ListTasks lists tasks for a filter query and renumbers the chat's task
// list. An empty filter means today plus overdue.
func (uc *implUseCase) ListTasks(ctx context.Context, chatID int64, filter string) (assistant.TaskListOutput, error) {
	filter = strings.TrimSpace(filter)
	label := filter
	query := filter
	if query == "" {
		label = "Today"
		query = "today | overdue"
	}

	tasks, err := uc.tasks.GetTasksByFilter(ctx, query)
	if err != nil {
		return assistant.TaskListOutput{}, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	tasks = schedule.SortByTime(tasks, uc.loc)

	return assistant.TaskListOutput{
		FilterLabel: label,
		Tasks:       tasks,
		Mappings:    uc.sessions.SetTaskMappings(chatID, tasks),
	}, nil
}

// AddTask quick-adds a task. An inline time range ("Meeting 2pm-3pm #Work")
// or duration idiom ("for 1h") is stripped from the text and attached as an
// explicit duration instead, so the store's quick-add parser sees only the
// start time.
func (uc *implUseCase) AddTask(ctx context.Context, chatID int64, text string) (assistant.AddTaskOutput, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return assistant.AddTaskOutput{}, assistant.ErrEmptyInput
	}

	minutes, cleaned, extracted := timeparse.ExtractDuration(text)
	if extracted {
		text = cleaned
	}

	task, err := uc.tasks.QuickAdd(ctx, text)
	if err != nil {
		return assistant.AddTaskOutput{}, fmt.Errorf("failed to add task: %w", err)
	}

	out := assistant.AddTaskOutput{Task: *task}
	if extracted {
		err = uc.tasks.UpdateTask(ctx, task.ID, todoist.UpdateTaskRequest{
			Duration:     minutes,
			DurationUnit: "minute",
		})
		if err != nil {
			uc.l.Warnf(ctx, "failed to set duration on task %s: %v", task.ID, err)
		} else {
			out.DurationMinutes = minutes
		}
	}

	uc.sessions.PushUndo(chatID, session.UndoAction{
		Type:        session.UndoAdd,
		TaskID:      task.ID,
		TaskContent: task.Content,
	})
	return out, nil
}
