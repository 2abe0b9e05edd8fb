package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const singleEventICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:single-1
DTSTART:20260302T100000Z
DTEND:20260302T110000Z
SUMMARY:Dentist
LOCATION:Main St
END:VEVENT
BEGIN:VEVENT
UID:allday-1
DTSTART;VALUE=DATE:20260302
DTEND;VALUE=DATE:20260303
SUMMARY:Conference
END:VEVENT
BEGIN:VEVENT
UID:untitled-1
DTSTART:20260302T130000Z
DTEND:20260302T133000Z
END:VEVENT
END:VCALENDAR
`

const recurringICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:weekly-1
DTSTART:20260302T090000Z
DTEND:20260302T093000Z
RRULE:FREQ=DAILY;COUNT=10
EXDATE:20260304T090000Z
SUMMARY:Standup
END:VEVENT
END:VCALENDAR
`

func window(days int) (time.Time, time.Time) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, days)
}

func TestExpandSingleEvents(t *testing.T) {
	start, end := window(1)
	events, err := Expand("team", []byte(singleEventICS), start, end, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	bySummary := map[string]int{}
	for _, e := range events {
		bySummary[e.Summary]++
		if e.CalendarID != "team" {
			t.Errorf("calendar id = %q", e.CalendarID)
		}
	}
	if bySummary["Dentist"] != 1 || bySummary["Conference"] != 1 || bySummary["Busy"] != 1 {
		t.Errorf("events = %v", bySummary)
	}

	for _, e := range events {
		if e.Summary == "Conference" && !e.IsAllDay {
			t.Error("date-only event not flagged all-day")
		}
		if e.Summary == "Dentist" && e.IsAllDay {
			t.Error("timed event flagged all-day")
		}
	}
}

func TestExpandOutsideWindow(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	events, err := Expand("team", []byte(singleEventICS), start, start.AddDate(0, 0, 1), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events outside window, want 0", len(events))
	}
}

func TestExpandRecurring(t *testing.T) {
	start, end := window(4) // Mar 2–5
	events, err := Expand("team", []byte(recurringICS), start, end, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Daily Mar 2, 3, 4, 5 with Mar 4 excluded.
	if len(events) != 3 {
		t.Fatalf("got %d occurrences, want 3: %+v", len(events), events)
	}
	for _, e := range events {
		if e.Start.Day() == 4 {
			t.Errorf("EXDATE occurrence not excluded: %v", e.Start)
		}
		if got := e.End.Sub(e.Start); got != 30*time.Minute {
			t.Errorf("occurrence duration = %v, want 30m", got)
		}
	}
}

func TestFetchEvents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(singleEventICS))
	}))
	defer ts.Close()

	c := NewClient()
	start, end := window(1)

	events, err := c.FetchEvents(context.Background(), Feed{Name: "team", URL: ts.URL}, start, end, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("got %d events, want 3", len(events))
	}

	if _, err := c.FetchEvents(context.Background(), Feed{Name: "bad", URL: ts.URL + "/bad"}, start, end, time.UTC); err == nil {
		t.Error("expected error for failing feed")
	}
}
