package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// Modal is a titled box drawn centered over the screen.
type Modal struct {
	Title  string
	Body   string
	Footer string
	Width  int // preferred outer width; 0 means 60
}

// Render returns the modal as a styled block fitted to the screen width.
func (m Modal) Render(screenWidth int) string {
	s := theme.Current().S()

	width := m.Width
	if width == 0 {
		width = 60
	}
	if width > screenWidth-4 {
		width = screenWidth - 4
	}
	if width < 30 {
		width = 30
	}
	inner := width - 6 // border + padding

	var sections []string
	if m.Title != "" {
		sections = append(sections, s.ModalTitle.Width(inner).Render(m.Title), "")
	}
	sections = append(sections, lipgloss.NewStyle().Width(inner).Render(m.Body))
	if m.Footer != "" {
		sections = append(sections, "", m.Footer)
	}

	return s.ModalContainer.Width(width).Render(strings.Join(sections, "\n"))
}

// Draw renders the modal centered on the screen buffer.
func (m Modal) Draw(scr uv.Screen, area uv.Rectangle) {
	DrawCentered(scr, area, m.Render(area.Dx()))
}
