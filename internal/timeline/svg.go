package timeline

import (
	"encoding/xml"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Dark theme.
const (
	bgColor         = "#1a1a2e"
	gridLineColor   = "#2a2a45"
	hourTextColor   = "#8888aa"
	headerTextColor = "#e0e0f0"
	nowColor        = "#ff4444"
	overdueBG       = "#3a1a1a"
	overdueHeader   = "#ff6b6b"
	overdueText     = "#ddcccc"
	unschedBG       = "#2a2a3a"
	unschedHeader   = "#aaaacc"
	unschedText     = "#ccccdd"
	allDayBG        = "#264653"
	allDayText      = "#e0f0f0"
	completedBG     = "#1a3a1a"
	completedHeader = "#66bb6a"
)

// avgCharWidth approximates sans-serif glyph width as a fraction of font size.
// Good enough for truncation; the browser does the real text layout.
const avgCharWidth = 0.58

// truncate shortens text to fit maxWidth pixels at the given font size,
// appending an ellipsis when it cuts.
func truncate(text string, fontSize, maxWidth float64) string {
	fits := int(maxWidth / (fontSize * avgCharWidth))
	if utf8.RuneCountInString(text) <= fits {
		return text
	}
	if fits < 2 {
		return "…"
	}
	runes := []rune(text)
	return string(runes[:fits-1]) + "…"
}

func esc(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

type svgBuilder struct {
	strings.Builder
}

func (b *svgBuilder) rect(x, y, w, h float64, fill string) {
	fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n", x, y, w, h, fill)
}

func (b *svgBuilder) roundRect(x, y, w, h, r float64, fill string, opacity float64) {
	fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" fill-opacity="%.2f"/>`+"\n",
		x, y, w, h, r, fill, opacity)
}

func (b *svgBuilder) line(x1, y1, x2, y2 float64, stroke string, width float64) {
	fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		x1, y1, x2, y2, stroke, width)
}

func (b *svgBuilder) text(x, y float64, s, fill string, size float64, weight, anchor string) {
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" fill="%s" font-size="%.0f" font-weight="%s" text-anchor="%s" font-family="sans-serif">%s</text>`+"\n",
		x, y, fill, size, weight, anchor, esc(s))
}

func (b *svgBuilder) circle(cx, cy, r float64, fill string) {
	fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, r, fill)
}

func clockLabel(min int) string {
	h, m := min/60, min%60
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d", h12, m)
}

// RenderSVG serializes a computed layout to an SVG document.
func RenderSVG(l *Layout) []byte {
	var b svgBuilder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	b.rect(0, 0, l.Width, l.Height, bgColor)

	b.text(l.Width/2, 40, l.DateLabel, headerTextColor, 24, "bold", "middle")

	if len(l.Overdue) > 0 {
		sec := l.OverdueSection
		b.rect(0, sec.Y, l.Width, sec.Height, overdueBG)
		b.text(LeftGutter, sec.Y+SectionPad+16, fmt.Sprintf("OVERDUE (%d)", len(l.Overdue)), overdueHeader, 14, "bold", "start")
		for i, t := range l.Overdue {
			y := sec.Y + SectionPad + 24 + float64(i)*RowHeight + 20
			b.circle(LeftGutter+6, y-5, 5, PriorityColor(t.Priority))
			b.text(LeftGutter+18, y, truncate(t.Content, 14, TimelineWidth-20), overdueText, 14, "normal", "start")
		}
	}

	for i, e := range l.AllDay {
		y := l.AllDaySection.Y + SectionPad + float64(i)*RowHeight
		b.roundRect(LeftGutter, y, TimelineWidth, RowHeight-4, BlockRadius, allDayBG, 1)
		pinX, pinY := float64(LeftGutter+14), y+15
		fmt.Fprintf(&b, `<path d="M%.1f %.1f L%.1f %.1f L%.1f %.1f L%.1f %.1f Z" fill="%s"/>`+"\n",
			pinX, pinY-5, pinX+5, pinY, pinX, pinY+5, pinX-5, pinY, allDayText)
		b.text(LeftGutter+24, y+20, truncate(e.Summary, 14, TimelineWidth-32), allDayText, 14, "normal", "start")
	}

	for min := l.GridStartMin; min <= l.GridEndMin; min += 60 {
		y := l.MinutesToY(min)
		b.line(LeftGutter, y, l.Width-RightMargin, y, gridLineColor, 1)
		h := min / 60
		ampm := "AM"
		if h >= 12 {
			ampm = "PM"
		}
		h12 := h % 12
		if h12 == 0 {
			h12 = 12
		}
		b.text(LeftGutter-8, y+5, fmt.Sprintf("%d %s", h12, ampm), hourTextColor, 13, "normal", "end")
	}

	for _, p := range l.Blocks {
		opacity := 0.85
		if p.Kind == BlockCompleted {
			opacity = 0.6
		}
		b.roundRect(p.X, p.Y, p.W, p.H, BlockRadius, p.Color, opacity)

		textMaxW := p.W - 12
		if textMaxW <= 20 {
			continue
		}
		prefix := ""
		if p.Kind == BlockCompleted {
			prefix = "✓ "
		}
		timeStr := clockLabel(p.StartMin)
		if p.H >= 44 {
			b.text(p.X+6, p.Y+16, timeStr, p.TextColor, 11, "normal", "start")
			b.text(p.X+6, p.Y+32, truncate(prefix+p.Label, 13, textMaxW), p.TextColor, 13, "bold", "start")
		} else {
			combined := timeStr + " " + prefix + p.Label
			b.text(p.X+6, p.Y+p.H/2+5, truncate(combined, 13, textMaxW), p.TextColor, 13, "bold", "start")
		}
	}

	if l.Empty {
		b.text(l.Width/2, l.GridTop+l.GridHeight/2, "No items scheduled", hourTextColor, 16, "normal", "middle")
	}

	if l.ShowNow {
		b.line(LeftGutter, l.NowY, l.Width-RightMargin, l.NowY, nowColor, 2)
		b.text(LeftGutter-8, l.NowY+4, "NOW", nowColor, 11, "bold", "end")
		fmt.Fprintf(&b, `<path d="M%d %.1f L%d %.1f L%d %.1f Z" fill="%s"/>`+"\n",
			LeftGutter, l.NowY-5, LeftGutter, l.NowY+5, LeftGutter+6, l.NowY, nowColor)
	}

	if len(l.Unscheduled) > 0 {
		sec := l.UnschedSection
		b.rect(0, sec.Y, l.Width, sec.Height, unschedBG)
		b.text(LeftGutter, sec.Y+SectionPad+16, fmt.Sprintf("UNSCHEDULED (%d)", len(l.Unscheduled)), unschedHeader, 14, "bold", "start")
		for i, t := range l.Unscheduled {
			y := sec.Y + SectionPad + 24 + float64(i)*RowHeight + 20
			b.circle(LeftGutter+6, y-5, 5, PriorityColor(t.Priority))
			b.text(LeftGutter+18, y, truncate(t.Content, 14, TimelineWidth-20), unschedText, 14, "normal", "start")
		}
	}

	if len(l.Completed) > 0 {
		sec := l.CompletedSection
		b.rect(0, sec.Y, l.Width, sec.Height, completedBG)
		b.text(LeftGutter, sec.Y+SectionPad+16, fmt.Sprintf("COMPLETED (%d)", len(l.Completed)), completedHeader, 14, "bold", "start")
		for i, t := range l.Completed {
			y := sec.Y + SectionPad + 24 + float64(i)*RowHeight + 20
			b.text(LeftGutter+2, y, "✓", completedHeader, 14, "bold", "start")
			b.text(LeftGutter+18, y, truncate(t.Content, 14, TimelineWidth-20), completedText, 14, "normal", "start")
		}
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}
