package tui

import (
	"strings"

	"github.com/mark3labs/styleai/internal/tui/theme"
)

// Button represents a single button in the button bar.
type Button struct {
	Label    string
	Disabled bool
}

// ButtonBar manages a row of buttons with one focused slot.
type ButtonBar struct {
	buttons []Button
	focus   int
}

// NewButtonBar creates a new button bar focused on the first enabled button.
func NewButtonBar(buttons ...Button) *ButtonBar {
	b := &ButtonBar{buttons: buttons}
	b.focus = b.nextEnabled(-1, 1)
	return b
}

// SetButtons replaces the buttons, keeping focus when the slot still exists.
func (b *ButtonBar) SetButtons(buttons ...Button) {
	b.buttons = buttons
	if b.focus >= len(buttons) || b.focus < 0 || buttons[b.focus].Disabled {
		b.focus = b.nextEnabled(-1, 1)
	}
}

// SetDisabled toggles a button by index.
func (b *ButtonBar) SetDisabled(i int, disabled bool) {
	if i < 0 || i >= len(b.buttons) {
		return
	}
	b.buttons[i].Disabled = disabled
	if disabled && b.focus == i {
		b.focus = b.nextEnabled(i, 1)
	}
	if b.focus < 0 && !disabled {
		b.focus = i
	}
}

func (b *ButtonBar) nextEnabled(from, dir int) int {
	n := len(b.buttons)
	for step := 1; step <= n; step++ {
		i := ((from+dir*step)%n + n) % n
		if !b.buttons[i].Disabled {
			return i
		}
	}
	return -1
}

// FocusNext moves focus right, wrapping around.
func (b *ButtonBar) FocusNext() {
	if i := b.nextEnabled(b.focus, 1); i >= 0 {
		b.focus = i
	}
}

// FocusPrev moves focus left, wrapping around.
func (b *ButtonBar) FocusPrev() {
	if i := b.nextEnabled(b.focus, -1); i >= 0 {
		b.focus = i
	}
}

// Focus jumps to the button with label if it is enabled.
func (b *ButtonBar) Focus(label string) {
	for i, btn := range b.buttons {
		if btn.Label == label && !btn.Disabled {
			b.focus = i
			return
		}
	}
}

// Focused returns the label of the focused button, or "" if none is enabled.
func (b *ButtonBar) Focused() string {
	if b.focus < 0 || b.focus >= len(b.buttons) || b.buttons[b.focus].Disabled {
		return ""
	}
	return b.buttons[b.focus].Label
}

// Render renders the button bar.
func (b *ButtonBar) Render() string {
	s := theme.Current().S()
	parts := make([]string, 0, len(b.buttons))
	for i, btn := range b.buttons {
		switch {
		case btn.Disabled:
			parts = append(parts, s.ButtonDisabled.Render(btn.Label))
		case i == b.focus:
			parts = append(parts, s.ButtonFocused.Render(btn.Label))
		default:
			parts = append(parts, s.Button.Render(btn.Label))
		}
	}
	return strings.Join(parts, "")
}
