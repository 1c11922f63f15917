package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// Chooser is a cursor over a fixed option grid. Selection state lives with
// the caller; the chooser only tracks which cell is under the cursor.
type Chooser struct {
	options []stylist.Option
	columns int
	cursor  int
}

// NewChooser lays options out in the given number of columns.
func NewChooser(options []stylist.Option, columns int) *Chooser {
	if columns < 1 {
		columns = 1
	}
	return &Chooser{options: options, columns: columns}
}

// NewStringChooser wraps plain labels as options with equal value and label.
func NewStringChooser(labels []string, columns int) *Chooser {
	options := make([]stylist.Option, len(labels))
	for i, l := range labels {
		options[i] = stylist.Option{Value: l, Label: l}
	}
	return NewChooser(options, columns)
}

// Len returns the number of options.
func (c *Chooser) Len() int { return len(c.options) }

// Cursor returns the highlighted index.
func (c *Chooser) Cursor() int { return c.cursor }

// Current returns the highlighted option value.
func (c *Chooser) Current() string {
	if len(c.options) == 0 {
		return ""
	}
	return c.options[c.cursor].Value
}

// SetCursor moves the cursor to the option with value, if present.
func (c *Chooser) SetCursor(value string) {
	for i, o := range c.options {
		if o.Value == value {
			c.cursor = i
			return
		}
	}
}

// Move handles a navigation key and reports whether the cursor moved.
// Callers use a false result on up/down to leave the grid.
func (c *Chooser) Move(key string) bool {
	n := len(c.options)
	if n == 0 {
		return false
	}
	old := c.cursor
	switch key {
	case "left", "h":
		if c.cursor%c.columns > 0 {
			c.cursor--
		}
	case "right", "l":
		if c.cursor%c.columns < c.columns-1 && c.cursor < n-1 {
			c.cursor++
		}
	case "up", "k":
		if c.cursor-c.columns >= 0 {
			c.cursor -= c.columns
		}
	case "down", "j":
		if c.cursor+c.columns < n {
			c.cursor += c.columns
		}
	case "home":
		c.cursor = 0
	case "end":
		c.cursor = n - 1
	default:
		return false
	}
	return c.cursor != old
}

// Cycle advances the cursor by delta with wrap-around. It backs the
// dropdown-style fields that cycle through their values.
func (c *Chooser) Cycle(delta int) string {
	n := len(c.options)
	if n == 0 {
		return ""
	}
	c.cursor = ((c.cursor+delta)%n + n) % n
	return c.Current()
}

// Render draws the grid. selected reports which values are chosen; focused
// controls whether the cursor is highlighted.
func (c *Chooser) Render(selected func(string) bool, focused bool) string {
	s := theme.Current().S()

	cellWidth := 0
	for _, o := range c.options {
		if w := lipgloss.Width(o.Label) + 4; w > cellWidth {
			cellWidth = w
		}
	}

	var rows []string
	var row []string
	for i, o := range c.options {
		mark := "○ "
		style := s.Option
		chosen := selected != nil && selected(o.Value)
		if chosen {
			mark = "● "
			style = s.OptionSelected
		}
		if focused && i == c.cursor {
			if chosen {
				style = style.Underline(true)
			} else {
				style = s.OptionFocused
			}
		}
		row = append(row, style.Width(cellWidth).Render(mark+o.Label))
		if len(row) == c.columns || i == len(c.options)-1 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	return strings.Join(rows, "\n")
}

// RenderDropdown renders a single-line "‹ label ›" cycler for the chosen value.
func RenderDropdown(options []stylist.Option, value string, placeholder string, focused bool) string {
	s := theme.Current().S()
	label := placeholder
	for _, o := range options {
		if o.Value == value {
			label = o.Label
		}
	}
	style := s.Option
	if value == "" {
		style = s.Muted.Padding(0, 1)
	}
	if focused {
		style = s.OptionFocused
	}
	return style.Render("‹ " + label + " ›")
}
