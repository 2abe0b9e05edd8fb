package telegram

import (
	"fmt"
	"strings"
	"time"

	"taskpilot/internal/assistant"
	"taskpilot/internal/model"
	"taskpilot/internal/session"
	"taskpilot/pkg/timeparse"
)

const maxContentLength = 50

// priorityEmoji maps store priorities (4 = most urgent) to markers.
func priorityEmoji(priority int) string {
	switch priority {
	case model.PriorityUrgent:
		return "🔴"
	case model.PriorityHigh:
		return "🟠"
	case model.PriorityMedium:
		return "🔵"
	default:
		return "⚪"
	}
}

// escapeMarkdown escapes the characters Telegram's legacy Markdown mode
// treats as formatting.
func escapeMarkdown(s string) string {
	r := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return r.Replace(s)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// timeUntil renders the distance to a future instant ("in 45m", "in 2h 5m",
// "in 3d"). Anything under a minute is "now".
func timeUntil(t, now time.Time) string {
	d := t.Sub(now)
	if d < time.Minute {
		return "now"
	}
	mins := int(d.Minutes())
	switch {
	case mins < 60:
		return fmt.Sprintf("in %dm", mins)
	case mins < 24*60:
		if m := mins % 60; m > 0 {
			return fmt.Sprintf("in %dh %dm", mins/60, m)
		}
		return fmt.Sprintf("in %dh", mins/60)
	default:
		return fmt.Sprintf("in %dd", mins/(24*60))
	}
}

// formatDue renders a task's due the way the user phrased it when possible,
// then as a clock time, then as the bare date.
func formatDue(due *model.Due, loc *time.Location) string {
	if due == nil {
		return ""
	}
	if due.String != "" {
		return due.String
	}
	if due.Datetime != "" {
		if t, err := time.Parse(time.RFC3339, due.Datetime); err == nil {
			return timeparse.FormatTimeOfDay(t.In(loc).Hour()*60 + t.In(loc).Minute())
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", due.Datetime, loc); err == nil {
			return timeparse.FormatTimeOfDay(t.Hour()*60 + t.Minute())
		}
	}
	return due.Date
}

func formatTaskLine(index int, t model.Task, loc *time.Location) string {
	line := fmt.Sprintf("%d. %s %s", index, priorityEmoji(t.Priority), escapeMarkdown(truncate(t.Content, maxContentLength)))
	var tags []string
	if due := formatDue(t.Due, loc); due != "" {
		tags = append(tags, due)
	}
	if m := t.Minutes(); m > 0 {
		tags = append(tags, timeparse.FormatDuration(m))
	}
	if t.ProjectName != "" {
		tags = append(tags, "#"+escapeMarkdown(t.ProjectName))
	}
	if len(tags) > 0 {
		line += " _(" + escapeMarkdown(strings.Join(tags, ", ")) + ")_"
	}
	return line
}

func formatEventLine(e model.Event, loc *time.Location) string {
	if e.IsAllDay {
		return fmt.Sprintf("📅 %s _(all day)_", escapeMarkdown(e.Summary))
	}
	start := e.Start.In(loc)
	end := e.End.In(loc)
	return fmt.Sprintf("🕐 %s-%s %s",
		timeparse.FormatTimeOfDay(start.Hour()*60+start.Minute()),
		timeparse.FormatTimeOfDay(end.Hour()*60+end.Minute()),
		escapeMarkdown(eventDisplayName(e)))
}

// eventDisplayName softens the anonymized busy placeholder.
func eventDisplayName(e model.Event) string {
	if e.Summary == model.BusySummary {
		return "Meeting"
	}
	return e.Summary
}

// progressBar renders a ten-segment bar for a focus session.
func progressBar(elapsed, total int) string {
	if total <= 0 {
		return strings.Repeat("░", 10)
	}
	filled := elapsed * 10 / total
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled)
}

func overviewReply(out assistant.DayOverviewOutput, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", out.DateLabel)

	if out.CalendarConfigured {
		b.WriteString("\n*Schedule*\n")
		if len(out.Events) == 0 {
			b.WriteString("No events.\n")
		}
		for _, e := range out.Events {
			b.WriteString(formatEventLine(e, loc) + "\n")
		}
	}

	index := 1
	if len(out.Overdue) > 0 {
		b.WriteString("\n*Overdue*\n")
		for _, t := range out.Overdue {
			b.WriteString(formatTaskLine(index, t, loc) + "\n")
			index++
		}
	}

	b.WriteString("\n*Tasks*\n")
	if len(out.Tasks) == 0 {
		b.WriteString("Nothing scheduled. 🎉\n")
	}
	for _, t := range out.Tasks {
		b.WriteString(formatTaskLine(index, t, loc) + "\n")
		index++
	}
	return b.String()
}

func taskListReply(out assistant.TaskListOutput, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Tasks: %s*\n\n", escapeMarkdown(out.FilterLabel))
	if len(out.Tasks) == 0 {
		b.WriteString("No tasks found.")
		return b.String()
	}
	for i, t := range out.Tasks {
		b.WriteString(formatTaskLine(i+1, t, loc) + "\n")
	}
	return b.String()
}

func nextUpReply(out assistant.NextUpOutput, loc *time.Location, now time.Time) string {
	var b strings.Builder
	b.WriteString("*Next up*\n\n")
	if out.Event != nil {
		start := out.Event.Start.In(loc)
		fmt.Fprintf(&b, "🕐 %s at %s _(%s)_\n",
			escapeMarkdown(eventDisplayName(*out.Event)),
			timeparse.FormatTimeOfDay(start.Hour()*60+start.Minute()),
			timeUntil(out.Event.Start, now))
	} else if out.CalendarConfigured {
		b.WriteString("No more events today.\n")
	}
	if out.Task != nil {
		fmt.Fprintf(&b, "%s %s", priorityEmoji(out.Task.Priority), escapeMarkdown(out.Task.Content))
		if due := formatDue(out.Task.Due, loc); due != "" {
			fmt.Fprintf(&b, " _(%s)_", escapeMarkdown(due))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No open tasks. 🎉\n")
	}
	return b.String()
}

func addTaskReply(out assistant.AddTaskOutput) string {
	reply := fmt.Sprintf("✅ Added: *%s*", escapeMarkdown(out.Task.Content))
	if out.Task.Due != nil && out.Task.Due.String != "" {
		reply += fmt.Sprintf(" _(%s)_", escapeMarkdown(out.Task.Due.String))
	}
	if out.DurationMinutes > 0 {
		reply += fmt.Sprintf(" ⏱ %s", timeparse.FormatDuration(out.DurationMinutes))
	}
	return reply
}

func freeSlotsReply(out assistant.FreeSlotsOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Free time* _(work hours %s-%s)_\n", out.WorkStart, out.WorkEnd)
	for _, day := range out.Days {
		if len(out.Days) > 1 {
			fmt.Fprintf(&b, "\n*%s*\n", day.DateLabel)
		} else {
			b.WriteString("\n")
		}
		if len(day.Slots) == 0 {
			b.WriteString("No free slots.\n")
			continue
		}
		for _, s := range day.Slots {
			fmt.Fprintf(&b, "• %s-%s _(%s)_\n",
				timeparse.FormatTimeOfDay(s.Start.Hour()*60+s.Start.Minute()),
				timeparse.FormatTimeOfDay(s.End.Hour()*60+s.End.Minute()),
				timeparse.FormatDuration(s.Minutes))
		}
	}
	fmt.Fprintf(&b, "\nTotal: *%s* free", timeparse.FormatDuration(out.TotalMinutes))
	return b.String()
}

func blockTimeReply(out assistant.BlockTimeOutput, loc *time.Location) string {
	start := out.Start.In(loc)
	end := out.End.In(loc)
	reply := fmt.Sprintf("📅 Blocked *%s* %s-%s",
		escapeMarkdown(out.Title),
		timeparse.FormatTimeOfDay(start.Hour()*60+start.Minute()),
		timeparse.FormatTimeOfDay(end.Hour()*60+end.Minute()))
	if out.Link != "" {
		reply += fmt.Sprintf("\n[Open in calendar](%s)", out.Link)
	}
	return reply
}

func batchReply(verb string, out assistant.BatchOutput) string {
	var b strings.Builder
	for _, content := range out.Done {
		fmt.Fprintf(&b, "✅ %s: %s\n", verb, escapeMarkdown(content))
	}
	for _, content := range out.Failed {
		fmt.Fprintf(&b, "⚠️ Could not %s %s\n", strings.ToLower(verb), escapeMarkdown(content))
	}
	return strings.TrimRight(b.String(), "\n")
}

func snoozeReply(out assistant.SnoozeOutput) string {
	var b strings.Builder
	for _, content := range out.Done {
		fmt.Fprintf(&b, "😴 Snoozed *%s* → %s\n", escapeMarkdown(content), escapeMarkdown(out.Target))
	}
	for _, content := range out.Failed {
		fmt.Fprintf(&b, "⚠️ Could not snooze %s\n", escapeMarkdown(content))
	}
	return strings.TrimRight(b.String(), "\n")
}

func editTaskReply(out assistant.EditTaskOutput) string {
	switch out.Kind {
	case assistant.EditDuration:
		return fmt.Sprintf("✏️ Set duration of *%s* to %s", escapeMarkdown(out.Content), timeparse.FormatDuration(out.DurationMinutes))
	case assistant.EditTime:
		reply := fmt.Sprintf("✏️ Moved *%s* to %s", escapeMarkdown(out.Content), out.StartLabel)
		if out.DurationMinutes > 0 {
			reply += fmt.Sprintf(" _(%s)_", timeparse.FormatDuration(out.DurationMinutes))
		}
		return reply
	case assistant.EditDescription:
		return fmt.Sprintf("✏️ Updated description of *%s*", escapeMarkdown(out.Content))
	default:
		return fmt.Sprintf("✏️ Renamed task to *%s*", escapeMarkdown(out.Content))
	}
}

func undoReply(out assistant.UndoOutput) string {
	switch out.Type {
	case session.UndoComplete:
		reply := fmt.Sprintf("↩️ Reopened *%s*", escapeMarkdown(out.Content))
		if out.RestoredTo != "" {
			reply += fmt.Sprintf(" _(due %s)_", escapeMarkdown(out.RestoredTo))
		}
		return reply
	case session.UndoReschedule:
		return fmt.Sprintf("↩️ Moved *%s* back to %s", escapeMarkdown(out.Content), escapeMarkdown(out.RestoredTo))
	case session.UndoPriority:
		return fmt.Sprintf("↩️ Restored *%s* to %s", escapeMarkdown(out.Content), escapeMarkdown(out.RestoredTo))
	default:
		return fmt.Sprintf("↩️ Removed *%s*", escapeMarkdown(out.Content))
	}
}

func projectsReply(out assistant.ProjectsOutput) string {
	var b strings.Builder
	b.WriteString("*Projects*\n\n")
	for _, p := range out.Projects {
		marker := "📁"
		if p.IsFavorite {
			marker = "⭐"
		}
		fmt.Fprintf(&b, "%s %s — %d open\n", marker, escapeMarkdown(p.Name), p.TaskCount)
	}
	fmt.Fprintf(&b, "\n*%d* open tasks total", out.TotalTasks)
	return b.String()
}

func briefingReply(out assistant.BriefingOutput, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "☀️ *Good morning! %s*\n", out.DateLabel)

	if len(out.NamedEvents) > 0 || len(out.MeetingBlocks) > 0 {
		b.WriteString("\n*Schedule*\n")
		for _, e := range out.NamedEvents {
			b.WriteString(formatEventLine(e, loc) + "\n")
		}
		for _, block := range out.MeetingBlocks {
			start := block.Start.In(loc)
			end := block.End.In(loc)
			fmt.Fprintf(&b, "🕐 %s-%s Meetings\n",
				timeparse.FormatTimeOfDay(start.Hour()*60+start.Minute()),
				timeparse.FormatTimeOfDay(end.Hour()*60+end.Minute()))
		}
	}

	index := 1
	if len(out.Overdue) > 0 {
		b.WriteString("\n*Overdue*\n")
		for _, t := range out.Overdue {
			b.WriteString(formatTaskLine(index, t, loc) + "\n")
			index++
		}
	}
	if len(out.Tasks) > 0 {
		b.WriteString("\n*Today*\n")
		for _, t := range out.Tasks {
			b.WriteString(formatTaskLine(index, t, loc) + "\n")
			index++
		}
	}

	fmt.Fprintf(&b, "\n⏳ *%s* free in your workday", timeparse.FormatDuration(out.FreeMinutes))
	return b.String()
}

func focusStartedReply(out assistant.FocusOutput) string {
	return fmt.Sprintf("🎯 Focusing on *%s* for %s. Go!", escapeMarkdown(out.TaskDescription), timeparse.FormatDuration(out.DurationMinutes))
}

func focusStatusReply(out assistant.FocusOutput) string {
	return fmt.Sprintf("🎯 *%s*\n%s %s elapsed, %s left",
		escapeMarkdown(out.TaskDescription),
		progressBar(out.ElapsedMinutes, out.DurationMinutes),
		timeparse.FormatDuration(out.ElapsedMinutes),
		timeparse.FormatDuration(out.RemainingMinutes))
}

func focusDoneReply(out assistant.FocusOutput) string {
	return fmt.Sprintf("⏰ Focus session done: *%s* (%s). Nice work!",
		escapeMarkdown(out.TaskDescription), timeparse.FormatDuration(out.DurationMinutes))
}

func focusStoppedReply(out assistant.FocusOutput) string {
	return fmt.Sprintf("🛑 Stopped *%s* after %s.",
		escapeMarkdown(out.TaskDescription), timeparse.FormatDuration(out.ElapsedMinutes))
}
