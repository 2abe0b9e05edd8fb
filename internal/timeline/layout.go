// Package timeline lays out a day's tasks and calendar events on a vertical
// hour grid and renders the result as an image. Layout is pure computation;
// rendering goes through the SVG emitter and a headless-browser screenshot.
package timeline

import (
	"sort"
	"time"

	"taskpilot/internal/model"
	"taskpilot/internal/schedule"
)

// Layout constants, in pixels.
const (
	CanvasWidth    = 800
	HourHeight     = 80
	LeftGutter     = 70 // space for hour labels
	RightMargin    = 20
	TimelineWidth  = CanvasWidth - LeftGutter - RightMargin
	HeaderHeight   = 60
	SectionPad     = 12
	RowHeight      = 32
	BlockPad       = 4
	BlockRadius    = 6
	MinBlockHeight = 24
)

const (
	eventColor     = "#2a9d8f"
	completedColor = "#2d5a2d"
	completedText  = "#88aa88"
	blockText      = "#ffffff"
)

var priorityColors = map[int]string{
	model.PriorityUrgent:  "#e63946",
	model.PriorityHigh:    "#f4a261",
	model.PriorityMedium:  "#457b9d",
	model.PriorityDefault: "#6c757d",
}

// PriorityColor returns the block color for a Todoist priority value.
func PriorityColor(priority int) string {
	if c, ok := priorityColors[priority]; ok {
		return c
	}
	return priorityColors[model.PriorityDefault]
}

type BlockKind int

const (
	BlockEvent BlockKind = iota
	BlockTask
	BlockCompleted
)

// TimeBlock is one box on the hour grid, in minutes from midnight.
type TimeBlock struct {
	Label     string
	StartMin  int
	EndMin    int
	Color     string
	TextColor string
	Kind      BlockKind
	Priority  int
}

// PlacedBlock is a TimeBlock with its column assignment and pixel geometry.
type PlacedBlock struct {
	TimeBlock
	Col        int
	TotalCols  int
	X, Y, W, H float64
}

// Input is everything needed to lay out one day.
type Input struct {
	DateLabel    string
	Tasks        []model.Task
	Overdue      []model.Task
	Events       []model.Event
	Completed    []model.CompletedTask
	WorkStartMin int
	WorkEndMin   int
	// NowMin is minutes from midnight for the current-time marker, or -1
	// when the rendered day is not today.
	NowMin int
	Loc    *time.Location
}

// Section is a horizontal band above or below the hour grid.
type Section struct {
	Y      float64
	Height float64
}

// Layout is the fully computed geometry for one timeline image.
type Layout struct {
	DateLabel string
	Width     float64
	Height    float64

	GridStartMin int
	GridEndMin   int
	GridTop      float64
	GridHeight   float64

	Blocks []PlacedBlock

	OverdueSection   Section
	AllDaySection    Section
	UnschedSection   Section
	CompletedSection Section

	Overdue     []model.Task
	AllDay      []model.Event
	Unscheduled []model.Task
	Completed   []model.CompletedTask

	ShowNow bool
	NowY    float64

	Empty bool
}

// MinutesToY converts a minute of day to a vertical pixel position on the grid.
func (l *Layout) MinutesToY(min int) float64 {
	return l.GridTop + float64(min-l.GridStartMin)/60*HourHeight
}

func taskDuration(d *model.Duration) int {
	if d != nil && d.Unit == "minute" && d.Amount > 0 {
		return d.Amount
	}
	return 30
}

// Build computes the complete layout for one day. Timed events and tasks
// become grid blocks; all-day events, overdue, unscheduled, and completed
// items land in their own sections.
func Build(in Input) *Layout {
	l := &Layout{
		DateLabel: in.DateLabel,
		Width:     CanvasWidth,
		Overdue:   in.Overdue,
		Completed: in.Completed,
	}

	var blocks []TimeBlock
	timedCount := 0

	for _, e := range in.Events {
		if e.IsAllDay {
			l.AllDay = append(l.AllDay, e)
			continue
		}
		startMin := schedule.MinuteOfDay(e.Start, in.Loc)
		endMin := schedule.MinuteOfDay(e.End, in.Loc)
		if endMin <= startMin {
			// Event runs past midnight; show the first hour.
			endMin = startMin + 60
		}
		blocks = append(blocks, TimeBlock{
			Label:     e.Summary,
			StartMin:  startMin,
			EndMin:    endMin,
			Color:     eventColor,
			TextColor: blockText,
			Kind:      BlockEvent,
		})
		timedCount++
	}

	for _, t := range in.Tasks {
		kind, minute := schedule.ResolveDue(t.Due, in.Loc)
		if kind != schedule.DueDateTime && kind != schedule.DueTextTime {
			l.Unscheduled = append(l.Unscheduled, t)
			continue
		}
		blocks = append(blocks, TimeBlock{
			Label:     t.Content,
			StartMin:  minute,
			EndMin:    minute + taskDuration(t.Duration),
			Color:     PriorityColor(t.Priority),
			TextColor: blockText,
			Kind:      BlockTask,
			Priority:  t.Priority,
		})
		timedCount++
	}

	for _, t := range in.Completed {
		kind, minute := schedule.ResolveDue(t.Due, in.Loc)
		if kind != schedule.DueDateTime && kind != schedule.DueTextTime {
			// Fall back to the completion instant.
			if t.CompletedAt.IsZero() {
				continue
			}
			minute = schedule.MinuteOfDay(t.CompletedAt, in.Loc)
		}
		blocks = append(blocks, TimeBlock{
			Label:     t.Content,
			StartMin:  minute,
			EndMin:    minute + taskDuration(t.Duration),
			Color:     completedColor,
			TextColor: completedText,
			Kind:      BlockCompleted,
		})
	}

	// Expand the grid beyond work hours to contain every block, snapping
	// to whole hours.
	gridStart, gridEnd := in.WorkStartMin, in.WorkEndMin
	for _, b := range blocks {
		if b.StartMin < gridStart {
			gridStart = b.StartMin / 60 * 60
		}
		if b.EndMin > gridEnd {
			gridEnd = (b.EndMin + 59) / 60 * 60
		}
	}
	l.GridStartMin, l.GridEndMin = gridStart, gridEnd

	visible := blocks[:0]
	for _, b := range blocks {
		if b.EndMin > gridStart && b.StartMin < gridEnd {
			visible = append(visible, b)
		}
	}

	// Vertical stacking: header, overdue, all-day, grid, unscheduled,
	// completed.
	y := float64(HeaderHeight)

	l.OverdueSection = Section{Y: y}
	if len(l.Overdue) > 0 {
		l.OverdueSection.Height = SectionPad + 24 + float64(len(l.Overdue))*RowHeight + SectionPad
	}
	y += l.OverdueSection.Height

	l.AllDaySection = Section{Y: y}
	if len(l.AllDay) > 0 {
		l.AllDaySection.Height = SectionPad + float64(len(l.AllDay))*RowHeight + SectionPad
	}
	y += l.AllDaySection.Height

	l.GridTop = y + SectionPad
	l.GridHeight = float64(gridEnd-gridStart) / 60 * HourHeight
	y = l.GridTop + l.GridHeight + SectionPad

	l.UnschedSection = Section{Y: y}
	if len(l.Unscheduled) > 0 {
		l.UnschedSection.Height = SectionPad + 24 + float64(len(l.Unscheduled))*RowHeight + SectionPad
	}
	y += l.UnschedSection.Height

	l.CompletedSection = Section{Y: y}
	if len(l.Completed) > 0 {
		l.CompletedSection.Height = SectionPad + 24 + float64(len(l.Completed))*RowHeight + SectionPad
	}
	y += l.CompletedSection.Height

	l.Height = y + 20

	l.Blocks = placeBlocks(visible, l)
	l.Empty = len(l.Blocks) == 0 && timedCount == 0

	if in.NowMin >= gridStart && in.NowMin <= gridEnd {
		l.ShowNow = true
		l.NowY = l.MinutesToY(in.NowMin)
	}

	return l
}

// placeBlocks packs overlapping blocks into side-by-side columns. Each block
// goes to the first column whose previous block has ended; its width then
// divides the lane by the widest overlap it participates in.
func placeBlocks(blocks []TimeBlock, l *Layout) []PlacedBlock {
	sorted := make([]TimeBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartMin != sorted[j].StartMin {
			return sorted[i].StartMin < sorted[j].StartMin
		}
		return sorted[i].EndMin < sorted[j].EndMin
	})

	placed := make([]PlacedBlock, 0, len(sorted))
	var colEnds []int // end minute of the last block in each column
	for _, b := range sorted {
		col := -1
		for c, end := range colEnds {
			if b.StartMin >= end {
				col = c
				break
			}
		}
		if col == -1 {
			colEnds = append(colEnds, 0)
			col = len(colEnds) - 1
		}
		colEnds[col] = b.EndMin
		placed = append(placed, PlacedBlock{TimeBlock: b, Col: col})
	}

	// A block's lane is as wide as the highest column index of anything
	// overlapping it.
	for i := range placed {
		maxCol := placed[i].Col
		for j := range placed {
			if placed[j].StartMin < placed[i].EndMin && placed[j].EndMin > placed[i].StartMin && placed[j].Col > maxCol {
				maxCol = placed[j].Col
			}
		}
		placed[i].TotalCols = maxCol + 1

		colWidth := float64(TimelineWidth-BlockPad*2) / float64(placed[i].TotalCols)
		placed[i].X = LeftGutter + BlockPad + float64(placed[i].Col)*colWidth
		placed[i].Y = l.MinutesToY(placed[i].StartMin)
		placed[i].W = colWidth - BlockPad
		h := float64(placed[i].EndMin-placed[i].StartMin) / 60 * HourHeight
		if h < MinBlockHeight {
			h = MinBlockHeight
		}
		placed[i].H = h
	}
	return placed
}
