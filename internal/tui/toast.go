package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

// ToastDismissMsg is sent when the toast should be dismissed. Seq guards
// against an older timer hiding a newer toast.
type ToastDismissMsg struct {
	Seq int
}

// Toast is a minimal toast notification component.
// Shows a message in the bottom-right corner that auto-dismisses.
type Toast struct {
	message string
	warn    bool
	visible bool
	seq     int
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{}
}

// Show displays an informational toast.
func (t *Toast) Show(msg string) tea.Cmd {
	return t.show(msg, false)
}

// Warn displays a warning toast.
func (t *Toast) Warn(msg string) tea.Cmd {
	return t.show(msg, true)
}

func (t *Toast) show(msg string, warn bool) tea.Cmd {
	t.seq++
	t.message = msg
	t.warn = warn
	t.visible = true
	seq := t.seq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastDismissMsg{Seq: seq}
	})
}

// Update handles messages for the toast component.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(ToastDismissMsg); ok && m.Seq == t.seq {
		t.visible = false
		t.message = ""
	}
	return nil
}

// Draw renders the toast in the bottom-right corner of area, one row above
// the bottom edge.
func (t *Toast) Draw(scr uv.Screen, area uv.Rectangle) {
	if !t.visible || t.message == "" {
		return
	}
	s := theme.Current().S()
	style := s.Toast
	if t.warn {
		style = s.ToastError
	}
	content := style.Render(t.message)
	w := lipgloss.Width(content)
	if w > area.Dx()-2 {
		content = style.Width(area.Dx() - 2).Render(t.message)
		w = lipgloss.Width(content)
	}
	h := lipgloss.Height(content)
	x := area.Max.X - w - 1
	y := area.Max.Y - h - 1
	if x < area.Min.X {
		x = area.Min.X
	}
	if y < area.Min.Y {
		y = area.Min.Y
	}
	uv.NewStyledString(content).Draw(scr, uv.Rect(x, y, w, h))
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// GetMessage returns the current toast message (empty if not visible).
func (t *Toast) GetMessage() string {
	if !t.visible {
		return ""
	}
	return t.message
}
