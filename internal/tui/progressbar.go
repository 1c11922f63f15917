package tui

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// RenderProgressBar draws a gradient bar for percent in [0,100] followed by
// the rounded percentage. Values outside the range are clamped for display.
func RenderProgressBar(percent float64, width int) string {
	percent = math.Max(0, math.Min(100, percent))
	label := fmt.Sprintf(" %3d%%", int(math.Round(percent)))
	barWidth := width - len(label)
	if barWidth < 10 {
		barWidth = 10
	}

	th := theme.Current()
	s := th.S()
	filled := int(math.Round(percent / 100 * float64(barWidth)))

	var b strings.Builder
	for i := 0; i < filled; i++ {
		pos := 0.0
		if barWidth > 1 {
			pos = float64(i) / float64(barWidth-1)
		}
		c := theme.InterpolateColor(th.Primary, th.Secondary, pos)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("█"))
	}
	b.WriteString(s.ProgressEmpty.Render(strings.Repeat("░", barWidth-filled)))
	b.WriteString(s.ProgressLabel.Render(label))
	return b.String()
}

// RenderMeter draws a compact fixed-width meter, used for confidence and
// popularity values.
func RenderMeter(value, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	s := theme.Current().S()
	filled := value * width / max
	return s.Accent.Render(strings.Repeat("━", filled)) + s.ProgressEmpty.Render(strings.Repeat("━", width-filled))
}
