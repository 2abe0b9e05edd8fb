// Package repository defines the external-store interfaces the assistant
// use case depends on. The concrete implementations are the Todoist and
// Google Calendar clients, the ICS feed reader, and the timeline renderer.
package repository

import (
	"context"
	"time"

	"taskpilot/internal/ics"
	"taskpilot/internal/model"
	"taskpilot/internal/timeline"
	"taskpilot/pkg/gcalendar"
	"taskpilot/pkg/todoist"
)

// TaskStore is the remote task manager.
type TaskStore interface {
	QuickAdd(ctx context.Context, text string) (*model.Task, error)
	GetTasksByFilter(ctx context.Context, filter string) ([]model.Task, error)
	GetTodayTasks(ctx context.Context) ([]model.Task, error)
	GetTomorrowTasks(ctx context.Context) ([]model.Task, error)
	GetOverdueTasks(ctx context.Context) ([]model.Task, error)
	GetWeekTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, taskID string) (*model.Task, error)
	CloseTask(ctx context.Context, taskID string) error
	ReopenTask(ctx context.Context, taskID string) error
	DeleteTask(ctx context.Context, taskID string) error
	UpdateTask(ctx context.Context, taskID string, req todoist.UpdateTaskRequest) error
	GetProjectsWithCounts(ctx context.Context) ([]model.Project, error)
	GetCompletedSince(ctx context.Context, since, until time.Time) ([]model.CompletedTask, error)
}

// Calendar is the primary calendar store.
type Calendar interface {
	ListAcrossCalendars(ctx context.Context, calendarIDs []string, timeMin, timeMax time.Time) ([]model.Event, []error)
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.CreatedEvent, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// FeedReader pulls events from subscribed ICS feeds.
type FeedReader interface {
	FetchEvents(ctx context.Context, feed ics.Feed, rangeStart, rangeEnd time.Time, loc *time.Location) ([]model.Event, error)
}

// TimelineRenderer turns a day layout into a PNG.
type TimelineRenderer interface {
	RenderPNG(ctx context.Context, in timeline.Input) ([]byte, error)
}
