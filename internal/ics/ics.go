// Package ics reads external iCalendar feeds (subscribed team or school
// calendars) and expands them into concrete events for a day window, so they
// can join Google Calendar events in availability and timeline views.
package ics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"taskpilot/internal/model"
)

// Expansion cap per recurring event, so a malformed rule can't blow up a fetch.
const maxOccurrences = 1000

// Feed is one subscribed iCalendar URL.
type Feed struct {
	Name string
	URL  string
}

// Client fetches and expands ICS feeds.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 30 * time.Second}}
}

// FetchEvents downloads a feed and returns its events overlapping
// [rangeStart, rangeEnd), recurrences expanded, in loc.
func (c *Client) FetchEvents(ctx context.Context, feed Feed, rangeStart, rangeEnd time.Time, loc *time.Location) ([]model.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for feed %s: %w", feed.Name, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feed.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned status %d", feed.Name, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed %s: %w", feed.Name, err)
	}
	return Expand(feed.Name, body, rangeStart, rangeEnd, loc)
}

// Expand parses an ICS payload and expands its VEVENTs into the window.
// Events that fail to parse are skipped; a feed with one bad entry still
// yields the rest.
func Expand(feedName string, body []byte, rangeStart, rangeEnd time.Time, loc *time.Location) ([]model.Event, error) {
	cal, err := ical.ParseCalendar(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedName, err)
	}

	var events []model.Event
	for _, ve := range cal.Events() {
		events = append(events, expandVEvent(feedName, ve, rangeStart, rangeEnd, loc)...)
	}
	return events, nil
}

func expandVEvent(feedName string, ve *ical.VEvent, rangeStart, rangeEnd time.Time, loc *time.Location) []model.Event {
	start, err := ve.GetStartAt()
	if err != nil {
		return nil
	}
	end, _ := ve.GetEndAt()

	allDay := false
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			allDay = true
		}
		if !strings.Contains(p.Value, "T") {
			allDay = true
		}
	}
	if allDay && end.IsZero() {
		end = start.Add(24 * time.Hour)
	}
	if end.IsZero() {
		end = start
	}

	summary := model.BusySummary
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil && p.Value != "" {
		summary = p.Value
	}
	location := ""
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		location = p.Value
	}

	base := model.Event{
		Summary:    summary,
		Location:   location,
		IsAllDay:   allDay,
		CalendarID: feedName,
	}

	rruleProp := ve.GetProperty(ical.ComponentPropertyRrule)
	if rruleProp == nil {
		if end.After(rangeStart) && start.Before(rangeEnd) {
			ev := base
			ev.Start = start.In(loc)
			ev.End = end.In(loc)
			return []model.Event{ev}
		}
		return nil
	}

	r, err := rrule.StrToRRule(rruleProp.Value)
	if err != nil {
		return nil
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if ex, perr := parseICSTime(strings.TrimSpace(part), start.Location()); perr == nil {
				set.ExDate(ex.In(start.Location()))
			}
		}
	}

	duration := end.Sub(start)
	occTimes := set.Between(rangeStart.In(start.Location()), rangeEnd.In(start.Location()), true)
	if len(occTimes) > maxOccurrences {
		occTimes = occTimes[:maxOccurrences]
	}

	out := make([]model.Event, 0, len(occTimes))
	for _, occStart := range occTimes {
		ev := base
		if allDay {
			day := time.Date(occStart.Year(), occStart.Month(), occStart.Day(), 0, 0, 0, 0, loc)
			ev.Start = day
			ev.End = day.Add(24 * time.Hour)
		} else {
			ev.Start = occStart.In(loc)
			ev.End = occStart.Add(duration).In(loc)
		}
		out = append(out, ev)
	}
	return out
}

// parseICSTime handles the basic EXDATE forms: UTC, floating, and date-only.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
