// Package gcalendar wraps the Google Calendar API for reading a day's
// events across several calendars and for creating focus blocks.
package gcalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"taskpilot/internal/model"
)

// freeRe matches placeholder "free" blocks some work calendars publish;
// they are availability hints, not commitments.
var freeRe = regexp.MustCompile(`(?i)^free\b`)

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

// NewClientFromCredentialsFile creates a Calendar client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data)
}

// NewClientFromCredentialsJSON creates a Calendar client from raw Service
// Account JSON bytes, falling back to OAuth installed-app credentials plus a
// local token.json.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err == nil {
		svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", svcErr)
		}
		return &Client{service: svc}, nil
	}

	var oauthCreds struct {
		Installed struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURIs []string `json:"redirect_uris"`
		} `json:"installed"`
	}
	if jsonErr := json.Unmarshal(credentialsJSON, &oauthCreds); jsonErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     oauthCreds.Installed.ClientID,
		ClientSecret: oauthCreds.Installed.ClientSecret,
		Scopes:       []string{calendar.CalendarScope},
		Endpoint:     google.Endpoint,
	}

	tokenData, tokenErr := os.ReadFile("token.json")
	if tokenErr != nil {
		return nil, fmt.Errorf("google credentials are OAuth Desktop type but no token.json found: use Service Account instead")
	}
	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse token.json: %w", jsonErr)
	}

	svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, &tok)))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create calendar service from OAuth token: %w", svcErr)
	}
	return &Client{service: svc}, nil
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

// ListEvents returns the events of one calendar in [TimeMin, TimeMax),
// recurring series expanded and ordered by start time.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]model.Event, error) {
	calendarID := req.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	resp, err := c.service.Events.List(calendarID).
		TimeMin(req.TimeMin.Format(time.RFC3339)).
		TimeMax(req.TimeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events for calendar %s: %w", calendarID, err)
	}

	events := make([]model.Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		ev := model.Event{
			Summary:    item.Summary,
			Location:   item.Location,
			CalendarID: calendarID,
		}
		if ev.Summary == "" {
			ev.Summary = model.BusySummary
		}
		if item.Start != nil && item.Start.DateTime != "" {
			ev.Start, _ = time.Parse(time.RFC3339, item.Start.DateTime)
			if item.End != nil {
				ev.End, _ = time.Parse(time.RFC3339, item.End.DateTime)
			}
		} else {
			// Date-only start means an all-day event.
			ev.IsAllDay = true
			if item.Start != nil {
				ev.Start, _ = time.Parse("2006-01-02", item.Start.Date)
			}
			if item.End != nil {
				ev.End, _ = time.Parse("2006-01-02", item.End.Date)
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

// ListAcrossCalendars merges events from several calendars. A calendar that
// fails to load is skipped rather than failing the whole listing; "free"
// placeholder blocks are dropped. All-day events sort first, then by start.
func (c *Client) ListAcrossCalendars(ctx context.Context, calendarIDs []string, timeMin, timeMax time.Time) ([]model.Event, []error) {
	var all []model.Event
	var errs []error
	for _, id := range calendarIDs {
		events, err := c.ListEvents(ctx, ListEventsRequest{CalendarID: id, TimeMin: timeMin, TimeMax: timeMax})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, ev := range events {
			if freeRe.MatchString(ev.Summary) {
				continue
			}
			all = append(all, ev)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].IsAllDay != all[j].IsAllDay {
			return all[i].IsAllDay
		}
		return all[i].Start.Before(all[j].Start)
	})
	return all, errs
}

// CreateEvent creates a new Google Calendar event.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*CreatedEvent, error) {
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: req.StartTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.EndTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
	}

	calendarID := req.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	created, err := c.service.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return &CreatedEvent{
		ID:         created.Id,
		CalendarID: calendarID,
		Summary:    created.Summary,
		HtmlLink:   created.HtmlLink,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}, nil
}

// DeleteEvent removes an event this client created.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if calendarID == "" {
		calendarID = "primary"
	}
	if err := c.service.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event %s: %w", eventID, err)
	}
	return nil
}
