package assistant

import "context"

// UseCase is the business logic of the assistant: everything the chat
// surface can ask for, independent of how replies are formatted.
type UseCase interface {
	// DayOverview builds the schedule-plus-tasks view for today or a later
	// day, and renumbers the chat's task list.
	DayOverview(ctx context.Context, input DayOverviewInput) (DayOverviewOutput, error)

	// NextUp returns the next upcoming event and the highest-priority task.
	NextUp(ctx context.Context) (NextUpOutput, error)

	// ListTasks lists tasks for a filter (project, label, or raw query) and
	// renumbers the chat's task list.
	ListTasks(ctx context.Context, chatID int64, filter string) (TaskListOutput, error)

	// AddTask quick-adds a task, first extracting an inline duration
	// ("Meeting 2pm-3pm") into an explicit task duration.
	AddTask(ctx context.Context, chatID int64, text string) (AddTaskOutput, error)

	// CompleteTask completes a task referenced by list number or by name.
	CompleteTask(ctx context.Context, chatID int64, ref string) (CompleteTaskOutput, error)

	// DeleteTasks deletes tasks by list number, best effort per task.
	DeleteTasks(ctx context.Context, chatID int64, numbers []int) (BatchOutput, error)

	// SnoozeTasks reschedules tasks by list number to a snooze target
	// ("2h", "tonight", "next week", or a raw due string).
	SnoozeTasks(ctx context.Context, chatID int64, numbers []int, when string) (SnoozeOutput, error)

	// EditTask updates a task's content, duration, time, or description.
	EditTask(ctx context.Context, chatID int64, number int, edit string) (EditTaskOutput, error)

	// FreeSlots computes open time within work hours for today, tomorrow,
	// or each day of the coming week.
	FreeSlots(ctx context.Context, scope FreeSlotsScope) (FreeSlotsOutput, error)

	// BlockTime creates a calendar event from "/block 2pm-3pm Title" or
	// "/block 10am for 1h Title", optionally prefixed with "tomorrow".
	BlockTime(ctx context.Context, chatID int64, text string) (BlockTimeOutput, error)

	// TimelineImage renders the day's tasks and events as a PNG.
	TimelineImage(ctx context.Context, offsetDays int) ([]byte, error)

	// Undo reverses the chat's most recent recorded mutation.
	Undo(ctx context.Context, chatID int64) (UndoOutput, error)

	// Projects lists projects with open-task counts, favorites first.
	Projects(ctx context.Context) (ProjectsOutput, error)

	// Briefing builds the morning summary: schedule with busy blocks
	// merged, overdue and today's tasks, and total free time.
	Briefing(ctx context.Context) (BriefingOutput, error)

	// StartFocus begins a focus session; onDone fires when it completes.
	StartFocus(chatID int64, text string, onDone func(FocusOutput)) (FocusOutput, error)

	// FocusStatus reports the running focus session.
	FocusStatus(chatID int64) (FocusOutput, error)

	// StopFocus ends the running focus session early.
	StopFocus(chatID int64) (FocusOutput, error)
}
