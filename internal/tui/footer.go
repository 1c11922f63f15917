package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// Copyright is shown on the right of the footer.
const Copyright = "© 2026 StyleAI. All rights reserved."

// Footer renders the bottom bar with key hints.
type Footer struct {
	hints      string
	layoutMode LayoutMode
}

// NewFooter creates a new Footer component.
func NewFooter() *Footer {
	return &Footer{layoutMode: LayoutDesktop}
}

// SetHints replaces the rendered hint bar.
func (f *Footer) SetHints(hints string) {
	f.hints = hints
}

// SetLayoutMode updates the layout mode (desktop/compact).
func (f *Footer) SetLayoutMode(mode LayoutMode) {
	f.layoutMode = mode
}

// Draw renders the footer to the screen at the given area.
func (f *Footer) Draw(scr uv.Screen, area uv.Rectangle) {
	if area.Dy() < 1 || area.Dx() < 1 {
		return
	}
	DrawText(scr, area, f.build(area.Dx()))
}

// build lays out hints on the left and the copyright on the right, dropping
// the copyright first when space runs out.
func (f *Footer) build(width int) string {
	left := " " + f.hints
	if f.layoutMode == LayoutCompact {
		return left
	}
	right := theme.Current().S().Muted.Render(Copyright) + " "
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 2 {
		return left
	}
	return left + strings.Repeat(" ", padding) + right
}
