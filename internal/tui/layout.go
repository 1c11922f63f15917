package tui

import uv "github.com/charmbracelet/ultraviolet"

// Layout breakpoints and dimensions
const (
	// CompactWidthBreakpoint is the minimum width for desktop mode
	CompactWidthBreakpoint = 90
	// CompactHeightBreakpoint is the minimum height for desktop mode
	CompactHeightBreakpoint = 24
	// HeaderHeight is the brand row plus its underline
	HeaderHeight = 2
	// StatusHeight is the height of the status bar in rows
	StatusHeight = 1
	// FooterHeight is the height of the footer in rows
	FooterHeight = 1
	// ContentMaxWidth caps the centered main column
	ContentMaxWidth = 110
)

// LayoutMode represents the layout mode based on terminal size
type LayoutMode int

const (
	// LayoutDesktop shows taglines and two-column sections
	LayoutDesktop LayoutMode = iota
	// LayoutCompact stacks everything in one column
	LayoutCompact
)

// Layout defines the rectangular regions for all UI components
type Layout struct {
	Mode   LayoutMode
	Area   uv.Rectangle
	Header uv.Rectangle
	Main   uv.Rectangle
	Status uv.Rectangle
	Footer uv.Rectangle
}

// IsCompact returns true if the layout is in compact mode
func (l Layout) IsCompact() bool {
	return l.Mode == LayoutCompact
}

// CalculateLayout computes the layout rectangles based on terminal dimensions.
// The main column is centered and capped at ContentMaxWidth.
func CalculateLayout(width, height int) Layout {
	mode := LayoutDesktop
	if width < CompactWidthBreakpoint || height < CompactHeightBreakpoint {
		mode = LayoutCompact
	}

	area := uv.Rectangle{
		Max: uv.Position{X: width, Y: height},
	}

	chrome := HeaderHeight + StatusHeight + FooterHeight
	if area.Dy() < chrome {
		return Layout{Mode: LayoutCompact, Area: area, Main: area}
	}

	// Split vertically: header | content | status+footer
	headerRect, rest := uv.SplitVertical(area, uv.Fixed(HeaderHeight))
	contentRect, bottom := uv.SplitVertical(rest, uv.Fixed(rest.Dy()-StatusHeight-FooterHeight))
	statusRect, footerRect := uv.SplitVertical(bottom, uv.Fixed(StatusHeight))

	mainRect := contentRect
	if mainRect.Dx() > ContentMaxWidth {
		margin := (mainRect.Dx() - ContentMaxWidth) / 2
		mainRect.Min.X += margin
		mainRect.Max.X = mainRect.Min.X + ContentMaxWidth
	}
	// 1-char gutter so cards don't touch the terminal edge
	if mainRect.Dx() > 4 {
		mainRect.Min.X++
		mainRect.Max.X--
	}

	return Layout{
		Mode:   mode,
		Area:   area,
		Header: headerRect,
		Main:   mainRect,
		Status: statusRect,
		Footer: footerRect,
	}
}
