// Package todoist is a client for the Todoist REST v2 and Sync v9 APIs,
// covering the task, project, and completed-activity surface the assistant
// needs.
package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"taskpilot/internal/model"
)

const (
	defaultRestURL = "https://api.todoist.com/rest/v2"
	defaultSyncURL = "https://api.todoist.com/sync/v9"

	projectCacheKey = "projects"
)

// Filter strings understood by the task store.
const (
	FilterToday    = "today"
	FilterTomorrow = "tomorrow"
	FilterOverdue  = "overdue"
	FilterWeek     = "7 days"
	FilterUndated  = "no date"
)

// Client is the Todoist API client. Project lookups are cached with a TTL so
// task listings don't refetch the project table on every command.
type Client struct {
	token      string
	restURL    string
	syncURL    string
	httpClient *http.Client

	projectCache *expirable.LRU[string, []model.Project]
}

// NewClient creates a new Todoist client. projectTTL bounds how stale the
// cached project table may get.
func NewClient(token string, projectTTL time.Duration) *Client {
	return &Client{
		token:        token,
		restURL:      defaultRestURL,
		syncURL:      defaultSyncURL,
		httpClient:   &http.Client{},
		projectCache: expirable.NewLRU[string, []model.Project](1, nil, projectTTL),
	}
}

// SetBaseURLs overrides the API base URLs for testing purposes.
func (c *Client) SetBaseURLs(restURL, syncURL string) {
	c.restURL = restURL
	c.syncURL = syncURL
}

// QuickAdd creates a task from free text, letting the task store parse dates,
// projects, labels, and priorities out of it.
func (c *Client) QuickAdd(ctx context.Context, text string) (*model.Task, error) {
	var created taskJSON
	err := c.do(ctx, http.MethodPost, c.syncURL+"/quick/add", QuickAddRequest{Text: text}, &created)
	if err != nil {
		return nil, fmt.Errorf("failed to quick-add task: %w", err)
	}
	task := c.toTask(ctx, created)
	return &task, nil
}

// GetTasksByFilter returns open tasks matching a Todoist filter query, with
// project names resolved.
func (c *Client) GetTasksByFilter(ctx context.Context, filter string) ([]model.Task, error) {
	u := fmt.Sprintf("%s/tasks?filter=%s", c.restURL, url.QueryEscape(filter))
	var raw []taskJSON
	if err := c.do(ctx, http.MethodGet, u, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch tasks for filter %q: %w", filter, err)
	}

	names := c.projectNames(ctx)
	tasks := make([]model.Task, 0, len(raw))
	for _, t := range raw {
		task := toTask(t)
		if name, ok := names[t.ProjectID]; ok {
			task.ProjectName = name
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// GetTodayTasks returns tasks due today.
func (c *Client) GetTodayTasks(ctx context.Context) ([]model.Task, error) {
	return c.GetTasksByFilter(ctx, FilterToday)
}

// GetTomorrowTasks returns tasks due tomorrow.
func (c *Client) GetTomorrowTasks(ctx context.Context) ([]model.Task, error) {
	return c.GetTasksByFilter(ctx, FilterTomorrow)
}

// GetOverdueTasks returns tasks past their due date.
func (c *Client) GetOverdueTasks(ctx context.Context) ([]model.Task, error) {
	return c.GetTasksByFilter(ctx, FilterOverdue)
}

// GetWeekTasks returns tasks due within the next seven days.
func (c *Client) GetWeekTasks(ctx context.Context) ([]model.Task, error) {
	return c.GetTasksByFilter(ctx, FilterWeek)
}

// GetUndatedTasks returns tasks with no due date.
func (c *Client) GetUndatedTasks(ctx context.Context) ([]model.Task, error) {
	return c.GetTasksByFilter(ctx, FilterUndated)
}

// GetTask fetches a single task by ID.
func (c *Client) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	var raw taskJSON
	if err := c.do(ctx, http.MethodGet, c.restURL+"/tasks/"+taskID, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch task %s: %w", taskID, err)
	}
	task := c.toTask(ctx, raw)
	return &task, nil
}

// CloseTask marks a task complete.
func (c *Client) CloseTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodPost, c.restURL+"/tasks/"+taskID+"/close", nil, nil); err != nil {
		return fmt.Errorf("failed to close task %s: %w", taskID, err)
	}
	return nil
}

// ReopenTask reverts a completed task to open.
func (c *Client) ReopenTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodPost, c.restURL+"/tasks/"+taskID+"/reopen", nil, nil); err != nil {
		return fmt.Errorf("failed to reopen task %s: %w", taskID, err)
	}
	return nil
}

// DeleteTask permanently deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodDelete, c.restURL+"/tasks/"+taskID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}
	return nil
}

// UpdateTask patches the given fields of a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) error {
	if err := c.do(ctx, http.MethodPost, c.restURL+"/tasks/"+taskID, req, nil); err != nil {
		return fmt.Errorf("failed to update task %s: %w", taskID, err)
	}
	return nil
}

// GetProjects returns the project table, served from cache within the TTL.
func (c *Client) GetProjects(ctx context.Context) ([]model.Project, error) {
	if cached, ok := c.projectCache.Get(projectCacheKey); ok {
		return cached, nil
	}

	var raw []projectJSON
	if err := c.do(ctx, http.MethodGet, c.restURL+"/projects", nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	projects := make([]model.Project, 0, len(raw))
	for _, p := range raw {
		projects = append(projects, model.Project{
			ID:         p.ID,
			Name:       p.Name,
			Color:      p.Color,
			IsFavorite: p.IsFavorite,
		})
	}
	c.projectCache.Add(projectCacheKey, projects)
	return projects, nil
}

// GetProjectsWithCounts returns projects annotated with their open-task count.
func (c *Client) GetProjectsWithCounts(ctx context.Context) ([]model.Project, error) {
	projects, err := c.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := c.GetTasksByFilter(ctx, "all")
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.ProjectID]++
	}
	out := make([]model.Project, len(projects))
	for i, p := range projects {
		p.TaskCount = counts[p.ID]
		out[i] = p
	}
	return out, nil
}

// GetCompletedSince returns tasks completed in [since, until), annotated with
// their original schedule where the store still has it.
func (c *Client) GetCompletedSince(ctx context.Context, since, until time.Time) ([]model.CompletedTask, error) {
	u := fmt.Sprintf("%s/completed/get_all?since=%s&until=%s&annotate_items=true",
		c.syncURL,
		url.QueryEscape(since.UTC().Format("2006-01-02T15:04:05")),
		url.QueryEscape(until.UTC().Format("2006-01-02T15:04:05")))

	var resp completedResponseJSON
	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch completed tasks: %w", err)
	}

	names := c.projectNames(ctx)
	completed := make([]model.CompletedTask, 0, len(resp.Items))
	for _, item := range resp.Items {
		ct := model.CompletedTask{
			Content:     item.Content,
			ProjectName: names[item.ProjectID],
		}
		if at, err := time.Parse(time.RFC3339, item.CompletedAt); err == nil {
			ct.CompletedAt = at
		}
		if item.ItemObject != nil {
			ct.Priority = item.ItemObject.Priority
			ct.Due = toDue(item.ItemObject.Due)
			ct.Duration = toDuration(item.ItemObject.Duration)
		}
		completed = append(completed, ct)
	}
	return completed, nil
}

// projectNames resolves project IDs to names, best effort: a failed project
// fetch degrades listings to bare IDs instead of failing them.
func (c *Client) projectNames(ctx context.Context) map[string]string {
	projects, err := c.GetProjects(ctx)
	if err != nil {
		return nil
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names
}

func (c *Client) toTask(ctx context.Context, raw taskJSON) model.Task {
	task := toTask(raw)
	if name, ok := c.projectNames(ctx)[raw.ProjectID]; ok {
		task.ProjectName = name
	}
	return task
}

func toDue(d *dueJSON) *model.Due {
	if d == nil {
		return nil
	}
	return &model.Due{
		Date:        d.Date,
		Datetime:    d.Datetime,
		String:      d.String,
		IsRecurring: d.IsRecurring,
	}
}

func toDuration(d *durationJSON) *model.Duration {
	if d == nil {
		return nil
	}
	return &model.Duration{Amount: d.Amount, Unit: d.Unit}
}

func toTask(raw taskJSON) model.Task {
	return model.Task{
		ID:          raw.ID,
		Content:     raw.Content,
		Description: raw.Description,
		Priority:    raw.Priority,
		Due:         toDue(raw.Due),
		Duration:    toDuration(raw.Duration),
		ProjectID:   raw.ProjectID,
		Labels:      raw.Labels,
	}
}

func (c *Client) do(ctx context.Context, method, url string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call todoist API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("todoist API error %d: %s", resp.StatusCode, string(raw))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
