package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// Brand is the product name shown in every header.
const Brand = "StyleAI"

// NavLink is one entry of the header navigation.
type NavLink struct {
	Label string
	Path  string
}

// linkRegion tracks the hit region for a clickable nav link.
type linkRegion struct {
	path   string
	startX int // inclusive
	endX   int // exclusive
}

// Header renders the brand on the left and navigation links or a short
// status on the right, underlined by a rule.
type Header struct {
	tagline    string
	links      []NavLink
	active     string
	right      string
	layoutMode LayoutMode
	area       uv.Rectangle
	regions    []linkRegion
}

// NewHeader creates a header with the given tagline.
func NewHeader(tagline string) *Header {
	return &Header{tagline: tagline}
}

// SetLinks installs the navigation links.
func (h *Header) SetLinks(links []NavLink) {
	h.links = links
}

// SetActive highlights the link whose path matches.
func (h *Header) SetActive(path string) {
	h.active = path
}

// SetRight sets free text shown on the right when there are no links.
func (h *Header) SetRight(text string) {
	h.right = text
}

// SetLayoutMode updates the layout mode (desktop/compact).
func (h *Header) SetLayoutMode(mode LayoutMode) {
	h.layoutMode = mode
}

// Draw renders the header to the screen at the given area.
func (h *Header) Draw(scr uv.Screen, area uv.Rectangle) {
	if area.Dy() < 1 {
		return
	}
	h.area = area
	s := theme.Current().S()
	th := theme.Current()

	left := theme.ApplyGradient("✦ "+Brand, th.Primary, th.Secondary)
	left = s.HeaderTitle.Render(left)
	if h.layoutMode == LayoutDesktop && h.tagline != "" {
		left += "  " + s.HeaderTagline.Render(h.tagline)
	}

	right := h.buildRight(area.Dx() - lipgloss.Width(left) - 3)
	padding := area.Dx() - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	// Hit regions sit after the left padding, the brand and the spacer.
	offset := area.Min.X + 1 + lipgloss.Width(left) + padding
	for i := range h.regions {
		h.regions[i].startX += offset
		h.regions[i].endX += offset
	}

	row := " " + left + strings.Repeat(" ", padding) + right
	DrawText(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1), row)
	if area.Dy() > 1 {
		rule := s.Muted.Render(strings.Repeat("─", area.Dx()))
		DrawText(scr, uv.Rect(area.Min.X, area.Min.Y+1, area.Dx(), 1), rule)
	}
}

// buildRight renders the links, recording regions relative to the start of
// the right side. Links that do not fit are dropped from the end.
func (h *Header) buildRight(available int) string {
	h.regions = nil
	s := theme.Current().S()
	if len(h.links) == 0 {
		if h.right == "" {
			return ""
		}
		return s.Muted.Render(h.right)
	}

	var parts []string
	x := 0
	for _, l := range h.links {
		style := s.NavLink
		if l.Path == h.active {
			style = s.NavLinkActive
		}
		rendered := style.Render(l.Label)
		w := lipgloss.Width(rendered)
		gap := 0
		if len(parts) > 0 {
			gap = 1
		}
		if x+gap+w > available {
			break
		}
		x += gap
		h.regions = append(h.regions, linkRegion{path: l.Path, startX: x, endX: x + w})
		parts = append(parts, rendered)
		x += w
	}
	return strings.Join(parts, " ")
}

// LinkAtPosition returns the path of the link at screen coordinates, or
// "" when none is there.
func (h *Header) LinkAtPosition(x, y int) string {
	if y != h.area.Min.Y {
		return ""
	}
	for _, r := range h.regions {
		if x >= r.startX && x < r.endX {
			return r.path
		}
	}
	return ""
}
