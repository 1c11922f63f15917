package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// StatusBar displays where the user is (left) and whether events are being
// recorded (right).
type StatusBar struct {
	location  string
	session   string
	recording bool
	busy      bool
	spinner   Spinner
}

// NewStatusBar creates a status bar for session.
func NewStatusBar(session string, recording bool) *StatusBar {
	return &StatusBar{
		session:   session,
		recording: recording,
		spinner:   NewDefaultSpinner(),
	}
}

// SetLocation sets the phase or route shown on the left.
func (s *StatusBar) SetLocation(location string) {
	s.location = location
}

// SetBusy shows the spinner while background work runs.
func (s *StatusBar) SetBusy(busy bool) {
	s.busy = busy
}

// Spinner exposes the spinner so the owner can drive its ticks.
func (s *StatusBar) Spinner() *Spinner {
	return &s.spinner
}

// Draw renders the status bar.
// Format: ● location | session            [spinner] ● recording
func (s *StatusBar) Draw(scr uv.Screen, area uv.Rectangle) {
	if area.Dx() <= 0 || area.Dy() <= 0 {
		return
	}
	left := s.buildLeft()
	right := s.buildRight()

	padding := area.Dx() - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	DrawText(scr, area, " "+left+strings.Repeat(" ", padding)+right)
}

func (s *StatusBar) buildLeft() string {
	st := theme.Current().S()
	left := st.Accent.Render("●") + " " + st.Body.Render(s.location)
	if s.session != "" {
		id := s.session
		if len(id) > 8 {
			id = id[:8]
		}
		left += st.Muted.Render(" | session " + id)
	}
	return left
}

func (s *StatusBar) buildRight() string {
	st := theme.Current().S()
	var right string
	if s.busy {
		right = s.spinner.View() + " "
	}
	if s.recording {
		return right + st.Success.Render("●") + st.Muted.Render(" recording")
	}
	return right + st.Muted.Render("○ events off")
}
