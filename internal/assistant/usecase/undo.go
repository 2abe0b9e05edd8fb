package usecase

import (
	"context"
	"fmt"

	"taskpilot/internal/assistant"
	"taskpilot/internal/session"
	"taskpilot/pkg/todoist"
)

// Undo reverses the chat's most recent recorded mutation.
func (uc *implUseCase) Undo(ctx context.Context, chatID int64) (assistant.UndoOutput, error) {
	action, ok := uc.sessions.PopUndo(chatID)
	if !ok {
		return assistant.UndoOutput{}, assistant.ErrNothingToUndo
	}
	out := assistant.UndoOutput{Type: action.Type, Content: action.TaskContent}

	switch action.Type {
	case session.UndoComplete:
		if err := uc.tasks.ReopenTask(ctx, action.TaskID); err != nil {
			return out, fmt.Errorf("failed to reopen task: %w", err)
		}
		if due := prevDue(action); due != "" {
			if err := uc.tasks.UpdateTask(ctx, action.TaskID, todoist.UpdateTaskRequest{DueString: due}); err != nil {
				uc.l.Warnf(ctx, "failed to restore due on task %s: %v", action.TaskID, err)
			} else {
				out.RestoredTo = due
			}
		}
		return out, nil

	case session.UndoReschedule:
		due := prevDue(action)
		if due == "" {
			due = "no date"
		}
		if err := uc.tasks.UpdateTask(ctx, action.TaskID, todoist.UpdateTaskRequest{DueString: due}); err != nil {
			return out, fmt.Errorf("failed to restore schedule: %w", err)
		}
		out.RestoredTo = due
		return out, nil

	case session.UndoPriority:
		err := uc.tasks.UpdateTask(ctx, action.TaskID, todoist.UpdateTaskRequest{Priority: action.PrevPriority})
		if err != nil {
			return out, fmt.Errorf("failed to restore priority: %w", err)
		}
		out.RestoredTo = fmt.Sprintf("priority %d", action.PrevPriority)
		return out, nil

	case session.UndoAdd:
		if err := uc.tasks.DeleteTask(ctx, action.TaskID); err != nil {
			return out, fmt.Errorf("failed to delete task: %w", err)
		}
		return out, nil
	}
	return out, fmt.Errorf("unknown undo action type %d", action.Type)
}

// prevDue prefers the natural-language due string over the bare date.
func prevDue(action session.UndoAction) string {
	if action.PrevDueString != "" {
		return action.PrevDueString
	}
	return action.PrevDueDate
}
