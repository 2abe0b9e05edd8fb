package assistant

import (
	"time"

	"taskpilot/internal/model"
	"taskpilot/internal/schedule"
	"taskpilot/internal/session"
)

// DayOverviewInput selects the day to summarize.
type DayOverviewInput struct {
	ChatID     int64
	OffsetDays int // 0 = today, 1 = tomorrow
}

// DayOverviewOutput is the schedule-plus-tasks view for one day. Overdue
// tasks are only populated for today.
type DayOverviewOutput struct {
	DateLabel          string
	Events             []model.Event
	Overdue            []model.Task
	Tasks              []model.Task
	Mappings           []session.TaskMapping
	CalendarConfigured bool
}

// NextUpOutput is the closest upcoming event and the top task.
type NextUpOutput struct {
	Event              *model.Event
	Task               *model.Task
	CalendarConfigured bool
}

// TaskListOutput is a numbered task listing.
type TaskListOutput struct {
	FilterLabel string
	Tasks       []model.Task
	Mappings    []session.TaskMapping
}

// AddTaskOutput is the created task. DurationMinutes is set when an inline
// duration was extracted from the text and attached to the task.
type AddTaskOutput struct {
	Task            model.Task
	DurationMinutes int
}

// CompleteTaskOutput names the completed task.
type CompleteTaskOutput struct {
	Content string
}

// BatchOutput reports a best-effort batch mutation.
type BatchOutput struct {
	Done   []string
	Failed []string
}

// SnoozeOutput reports a snooze and the due string it resolved to.
type SnoozeOutput struct {
	Target string
	Done   []string
	Failed []string
}

// EditKind says which task field an edit changed.
type EditKind int

const (
	EditContent EditKind = iota
	EditDuration
	EditTime
	EditDescription
)

// EditTaskOutput reports a task edit.
type EditTaskOutput struct {
	Kind            EditKind
	Content         string
	DurationMinutes int
	StartLabel      string // canonical start time for time edits
}

// FreeSlotsScope selects the window for a free-slot query.
type FreeSlotsScope int

const (
	FreeToday FreeSlotsScope = iota
	FreeTomorrow
	FreeWeek
)

// FreeDay is one day's open slots.
type FreeDay struct {
	DateLabel string
	Slots     []schedule.FreeSlot
}

// FreeSlotsOutput lists open time per day within work hours.
type FreeSlotsOutput struct {
	Scope        FreeSlotsScope
	WorkStart    string
	WorkEnd      string
	Days         []FreeDay
	TotalMinutes int
}

// BlockTimeOutput is the calendar event created by a block command.
type BlockTimeOutput struct {
	Title string
	Start time.Time
	End   time.Time
	Link  string
}

// UndoOutput reports what an undo reversed.
type UndoOutput struct {
	Type       session.UndoType
	Content    string
	RestoredTo string // due string or priority label the task went back to
}

// ProjectsOutput lists projects, favorites first, busiest first.
type ProjectsOutput struct {
	Projects   []model.Project
	TotalTasks int
}

// BriefingOutput is the morning summary.
type BriefingOutput struct {
	DateLabel     string
	NamedEvents   []model.Event
	MeetingBlocks []model.MeetingBlock
	Overdue       []model.Task
	Tasks         []model.Task
	FreeMinutes   int
}

// FocusOutput is a snapshot of a focus session.
type FocusOutput struct {
	TaskDescription  string
	DurationMinutes  int
	ElapsedMinutes   int
	RemainingMinutes int
}
