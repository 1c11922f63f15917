package tui

import (
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyUpDown   = "↑/↓"
	KeyArrows   = "←↑↓→"
	KeyLeftRt   = "←/→"
	KeyEnter    = "enter"
	KeySpace    = "space"
	KeyEsc      = "esc"
	KeyTab      = "tab"
	KeyCtrlC    = "ctrl+c"
	KeyPgUpDown = "pgup/pgdn"
)

// RenderHint renders a single key-description pair.
// Example: RenderHint("enter", "select") -> "enter select"
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
}

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Pairs are separated by " • ".
// Example: RenderHintBar("↑/↓", "move", "enter", "select")
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var result string
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += " " + s.HintSeparator.Render("•") + " "
		}
		result += s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1])
	}
	return result
}

// HintModal returns the standard overlay hints.
func HintModal() string {
	return RenderHintBar(KeyEsc, "close")
}

// HintScroll returns hints for scrollable viewports.
func HintScroll() string {
	return RenderHintBar(KeyUpDown, "scroll", KeyPgUpDown, "page")
}

// HintQuit is appended to most hint bars.
func HintQuit() string {
	return RenderHint(KeyCtrlC, "quit")
}
