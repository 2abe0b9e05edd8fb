package model

import "time"

// Task priorities use the task store's wire convention: 4 is the most urgent
// ("p1" in the UI), 1 the default.
const (
	PriorityUrgent  = 4
	PriorityHigh    = 3
	PriorityMedium  = 2
	PriorityDefault = 1
)

// Due is the task store's due shape. Any combination of fields may be set:
// Date is always present when the task is dated, Datetime only when an exact
// instant is known, and String carries the user's original natural-language
// phrasing ("today at 7:30am"). Consumers must not null-chain through these —
// schedule.ResolveDue is the single precedence rule.
type Due struct {
	Date        string // YYYY-MM-DD
	Datetime    string // RFC3339, optional
	String      string // natural-language due text, optional
	IsRecurring bool
}

// Duration is an explicit task duration from the task store.
type Duration struct {
	Amount int
	Unit   string // "minute" or "day"
}

// Task is a task record fetched from the remote task store. The core only
// reads it; all mutations go back through the store client.
type Task struct {
	ID          string
	Content     string
	Description string
	Priority    int
	Due         *Due
	Duration    *Duration
	ProjectID   string
	ProjectName string
	Labels      []string
}

// Minutes returns the explicit duration in minutes, or 0 when the task has
// none (day-unit durations carry no minute information).
func (t Task) Minutes() int {
	if t.Duration != nil && t.Duration.Unit == "minute" {
		return t.Duration.Amount
	}
	return 0
}

// CompletedTask is a finished task, kept for recap and timeline rendering.
// Due preserves the original schedule so the task can be drawn where it was
// meant to happen rather than when it was checked off.
type CompletedTask struct {
	Content     string
	ProjectName string
	CompletedAt time.Time
	Priority    int
	Due         *Due
	Duration    *Duration
}

// Minutes returns the explicit duration in minutes, or 0.
func (t CompletedTask) Minutes() int {
	if t.Duration != nil && t.Duration.Unit == "minute" {
		return t.Duration.Amount
	}
	return 0
}

// Project is a task-store project with an aggregated open-task count.
type Project struct {
	ID         string
	Name       string
	Color      string
	TaskCount  int
	IsFavorite bool
}
