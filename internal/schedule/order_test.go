package schedule_test

import (
	"testing"
	"time"

	"taskpilot/internal/model"
	"taskpilot/internal/schedule"
)

func TestResolveDue(t *testing.T) {
	tests := []struct {
		name     string
		due      *model.Due
		wantKind schedule.DueKind
		wantMin  int
	}{
		{"nil", nil, schedule.DueNone, 0},
		{"empty", &model.Due{}, schedule.DueNone, 0},
		{"date only", &model.Due{Date: "2026-03-02"}, schedule.DueDateOnly, 0},
		{"text time", &model.Due{Date: "2026-03-02", String: "today at 9am"}, schedule.DueTextTime, 540},
		{"floating datetime", &model.Due{Date: "2026-03-02", Datetime: "2026-03-02T14:00:00"}, schedule.DueDateTime, 840},
		{"zoned datetime", &model.Due{Datetime: "2026-03-02T14:00:00Z"}, schedule.DueDateTime, 840},
		{
			"datetime beats text",
			&model.Due{Datetime: "2026-03-02T14:00:00Z", String: "today at 9am"},
			schedule.DueDateTime, 840,
		},
		{"text without time", &model.Due{Date: "2026-03-02", String: "every monday"}, schedule.DueDateOnly, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, min := schedule.ResolveDue(tt.due, time.UTC)
			if kind != tt.wantKind || min != tt.wantMin {
				t.Errorf("ResolveDue() = (%v, %d), want (%v, %d)", kind, min, tt.wantKind, tt.wantMin)
			}
		})
	}
}

func TestSortByTime(t *testing.T) {
	a := model.Task{Content: "A", Due: &model.Due{Date: "2026-03-02", String: "today at 9am"}}
	b := model.Task{Content: "B", Due: &model.Due{Date: "2026-03-02", Datetime: "2026-03-02T14:00:00Z"}}
	c := model.Task{Content: "C", Due: &model.Due{Date: "2026-03-02"}}

	sorted := schedule.SortByTime([]model.Task{c, b, a}, time.UTC)
	got := []string{sorted[0].Content, sorted[1].Content, sorted[2].Content}
	want := []string{"A", "B", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortByTimeStable(t *testing.T) {
	mk := func(content string) model.Task {
		return model.Task{Content: content, Due: &model.Due{Datetime: "2026-03-02T10:00:00Z"}}
	}
	sorted := schedule.SortByTime([]model.Task{mk("first"), mk("second"), {Content: "u1"}, {Content: "u2"}}, time.UTC)
	if sorted[0].Content != "first" || sorted[1].Content != "second" {
		t.Errorf("equal-minute tasks reordered: %v, %v", sorted[0].Content, sorted[1].Content)
	}
	if sorted[2].Content != "u1" || sorted[3].Content != "u2" {
		t.Errorf("unscheduled tasks reordered: %v, %v", sorted[2].Content, sorted[3].Content)
	}
}

func TestDayStartAndAtMinute(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 3, 2, 23, 45, 0, 0, loc)

	start := schedule.DayStart(now, 0, loc)
	if start.Hour() != 0 || start.Minute() != 0 || start.Day() != 2 {
		t.Errorf("DayStart = %v", start)
	}

	tomorrow := schedule.DayStart(now, 1, loc)
	if tomorrow.Day() != 3 {
		t.Errorf("DayStart(+1) = %v", tomorrow)
	}

	nine := schedule.AtMinute(start, 540, loc)
	if nine.Hour() != 9 || nine.Minute() != 0 {
		t.Errorf("AtMinute(540) = %v", nine)
	}
	if schedule.MinuteOfDay(nine, loc) != 540 {
		t.Errorf("MinuteOfDay round trip failed: %v", nine)
	}
}
