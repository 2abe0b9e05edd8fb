package telegram

import (
	"strings"
	"testing"
	"time"

	"taskpilot/internal/assistant"
	"taskpilot/internal/model"
)

func TestPriorityEmoji(t *testing.T) {
	tests := []struct {
		priority int
		want     string
	}{
		{model.PriorityUrgent, "🔴"},
		{model.PriorityHigh, "🟠"},
		{model.PriorityMedium, "🔵"},
		{model.PriorityDefault, "⚪"},
		{0, "⚪"},
	}
	for _, tt := range tests {
		if got := priorityEmoji(tt.priority); got != tt.want {
			t.Errorf("priorityEmoji(%d) = %s, want %s", tt.priority, got, tt.want)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	got := escapeMarkdown("fix *bold* and _under_ and `code` and [link")
	want := "fix \\*bold\\* and \\_under\\_ and \\`code\\` and \\[link"
	if got != want {
		t.Errorf("escapeMarkdown = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 50); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	long := strings.Repeat("a", 60)
	got := truncate(long, 50)
	if len(got) != 50 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate long = %q (len %d)", got, len(got))
	}
}

func TestTimeUntil(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(30 * time.Second), "now"},
		{now.Add(45 * time.Minute), "in 45m"},
		{now.Add(2 * time.Hour), "in 2h"},
		{now.Add(2*time.Hour + 5*time.Minute), "in 2h 5m"},
		{now.Add(72 * time.Hour), "in 3d"},
	}
	for _, tt := range tests {
		if got := timeUntil(tt.at, now); got != tt.want {
			t.Errorf("timeUntil(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestFormatDuePrecedence(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name string
		due  *model.Due
		want string
	}{
		{"nil", nil, ""},
		{"string wins", &model.Due{Date: "2026-03-02", Datetime: "2026-03-02T14:00:00Z", String: "today at 2pm"}, "today at 2pm"},
		{"datetime next", &model.Due{Date: "2026-03-02", Datetime: "2026-03-02T14:00:00Z"}, "2pm"},
		{"floating datetime", &model.Due{Date: "2026-03-02", Datetime: "2026-03-02T09:30:00"}, "9:30am"},
		{"date only", &model.Due{Date: "2026-03-02"}, "2026-03-02"},
	}
	for _, tt := range tests {
		if got := formatDue(tt.due, loc); got != tt.want {
			t.Errorf("%s: formatDue = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(0, 25); got != strings.Repeat("░", 10) {
		t.Errorf("empty bar = %q", got)
	}
	if got := progressBar(25, 25); got != strings.Repeat("▓", 10) {
		t.Errorf("full bar = %q", got)
	}
	half := progressBar(5, 10)
	if strings.Count(half, "▓") != 5 {
		t.Errorf("half bar = %q", half)
	}
}

func TestNextUpReplyMasksBusyEvents(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	out := assistant.NextUpOutput{
		CalendarConfigured: true,
		Event: &model.Event{
			Summary: model.BusySummary,
			Start:   start,
			End:     start.Add(30 * time.Minute),
		},
	}
	reply := nextUpReply(out, time.UTC, now)
	if strings.Contains(reply, model.BusySummary) {
		t.Errorf("reply leaks the busy placeholder: %q", reply)
	}
	if !strings.Contains(reply, "Meeting") || !strings.Contains(reply, "in 1h") {
		t.Errorf("reply = %q", reply)
	}
}

func TestDoneKeyboard(t *testing.T) {
	if kb := doneKeyboard(0); kb != nil {
		t.Errorf("empty list keyboard = %+v, want nil", kb)
	}
	kb := doneKeyboard(6)
	if len(kb.InlineKeyboard) != 2 || len(kb.InlineKeyboard[0]) != 4 || len(kb.InlineKeyboard[1]) != 2 {
		t.Fatalf("keyboard layout = %+v", kb.InlineKeyboard)
	}
	if kb.InlineKeyboard[1][1].CallbackData != "done:6" {
		t.Errorf("last button = %+v", kb.InlineKeyboard[1][1])
	}

	// Oversized lists get capped rather than flooding the message.
	if kb := doneKeyboard(30); len(kb.InlineKeyboard) != 2 {
		t.Errorf("capped keyboard rows = %d", len(kb.InlineKeyboard))
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		in          string
		wantCommand string
		wantArgs    string
	}{
		{"/today", "/today", ""},
		{"/tasks #Work", "/tasks", "#Work"},
		{"/done@taskpilot_bot 2", "/done", "2"},
		{"Buy milk", "", "Buy milk"},
	}
	for _, tt := range tests {
		command, args := splitCommand(tt.in)
		if command != tt.wantCommand || args != tt.wantArgs {
			t.Errorf("splitCommand(%q) = %q, %q", tt.in, command, args)
		}
	}
}

func TestSplitLeadingNumbers(t *testing.T) {
	numbers, rest := splitLeadingNumbers("1 3, 5 next week")
	if len(numbers) != 3 || numbers[2] != 5 || rest != "next week" {
		t.Errorf("got %v, %q", numbers, rest)
	}
	numbers, rest = splitLeadingNumbers("tomorrow")
	if len(numbers) != 0 || rest != "tomorrow" {
		t.Errorf("got %v, %q", numbers, rest)
	}
}
