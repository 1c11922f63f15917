package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// DrawText renders plain text at a position
func DrawText(scr uv.Screen, area uv.Rectangle, text string) {
	uv.NewStyledString(text).Draw(scr, area)
}

// FillArea clears an area with the theme background
func FillArea(scr uv.Screen, area uv.Rectangle) {
	if area.Dx() <= 0 || area.Dy() <= 0 {
		return
	}
	fill := lipgloss.NewStyle().
		Background(theme.HexToColor(theme.Current().BgBase)).
		Width(area.Dx()).
		Height(area.Dy()).
		Render("")
	uv.NewStyledString(fill).Draw(scr, area)
}

// DrawCentered draws content centered inside area and returns the rectangle used.
func DrawCentered(scr uv.Screen, area uv.Rectangle, content string) uv.Rectangle {
	w := lipgloss.Width(content)
	h := lipgloss.Height(content)
	x := (area.Dx() - w) / 2
	y := (area.Dy() - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	rect := uv.Rect(area.Min.X+x, area.Min.Y+y, w, h)
	uv.NewStyledString(content).Draw(scr, rect)
	return rect
}

// Rule renders "Title ────────" spanning width.
func Rule(title string, width int) string {
	s := theme.Current().S()
	styled := s.Subtitle.Render(title)
	n := width - lipgloss.Width(styled) - 1
	if n < 0 {
		n = 0
	}
	return styled + " " + s.Muted.Render(strings.Repeat("─", n))
}

// SplitRows carves area into a top section of height top and the rest.
func SplitRows(area uv.Rectangle, top int) (uv.Rectangle, uv.Rectangle) {
	if top > area.Dy() {
		top = area.Dy()
	}
	if top < 0 {
		top = 0
	}
	upper := uv.Rect(area.Min.X, area.Min.Y, area.Dx(), top)
	lower := uv.Rect(area.Min.X, area.Min.Y+top, area.Dx(), area.Dy()-top)
	return upper, lower
}
