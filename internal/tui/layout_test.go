package tui

import (
	"testing"
)

// TestCalculateLayout_Compact tests layout below the desktop breakpoint
func TestCalculateLayout_Compact(t *testing.T) {
	width, height := 80, 24
	layout := CalculateLayout(width, height)

	if layout.Mode != LayoutCompact {
		t.Errorf("Expected LayoutCompact mode at %dx%d, got %v", width, height, layout.Mode)
	}
	if layout.Area.Dx() != width || layout.Area.Dy() != height {
		t.Errorf("Area size mismatch: got %dx%d, want %dx%d",
			layout.Area.Dx(), layout.Area.Dy(), width, height)
	}
	if layout.Header.Dy() != HeaderHeight {
		t.Errorf("Header height mismatch: got %d, want %d", layout.Header.Dy(), HeaderHeight)
	}
	if layout.Status.Dy() != StatusHeight {
		t.Errorf("Status height mismatch: got %d, want %d", layout.Status.Dy(), StatusHeight)
	}
	if layout.Footer.Dy() != FooterHeight {
		t.Errorf("Footer height mismatch: got %d, want %d", layout.Footer.Dy(), FooterHeight)
	}

	// Main keeps a one column gutter on each side
	if layout.Main.Dx() != width-2 {
		t.Errorf("Main width mismatch: got %d, want %d", layout.Main.Dx(), width-2)
	}
	expectedMainHeight := height - HeaderHeight - StatusHeight - FooterHeight
	if layout.Main.Dy() != expectedMainHeight {
		t.Errorf("Main height mismatch: got %d, want %d", layout.Main.Dy(), expectedMainHeight)
	}
}

// TestCalculateLayout_Desktop tests layout at the canonical test size
func TestCalculateLayout_Desktop(t *testing.T) {
	layout := CalculateLayout(100, 30)

	if layout.Mode != LayoutDesktop {
		t.Errorf("Expected LayoutDesktop mode at 100x30, got %v", layout.Mode)
	}
	if layout.IsCompact() {
		t.Error("IsCompact should be false in desktop mode")
	}

	// Regions stack without gaps
	if layout.Main.Min.Y != layout.Header.Max.Y {
		t.Errorf("Main should start below header: main.Min.Y=%d header.Max.Y=%d",
			layout.Main.Min.Y, layout.Header.Max.Y)
	}
	if layout.Status.Min.Y != layout.Main.Max.Y {
		t.Errorf("Status should start below main: status.Min.Y=%d main.Max.Y=%d",
			layout.Status.Min.Y, layout.Main.Max.Y)
	}
	if layout.Footer.Max.Y != 30 {
		t.Errorf("Footer should end at the bottom row: got %d", layout.Footer.Max.Y)
	}
}

// TestCalculateLayout_WideTerminalCentersMain tests the content width cap
func TestCalculateLayout_WideTerminalCentersMain(t *testing.T) {
	width := 200
	layout := CalculateLayout(width, 40)

	if layout.Main.Dx() != ContentMaxWidth-2 {
		t.Errorf("Main width should be capped: got %d, want %d", layout.Main.Dx(), ContentMaxWidth-2)
	}

	left := layout.Main.Min.X
	right := width - layout.Main.Max.X
	if diff := left - right; diff < -1 || diff > 1 {
		t.Errorf("Main should be centered: left margin %d, right margin %d", left, right)
	}

	// Chrome still spans the full width
	if layout.Header.Dx() != width || layout.Footer.Dx() != width {
		t.Errorf("Header and footer should span full width: header %d, footer %d",
			layout.Header.Dx(), layout.Footer.Dx())
	}
}

// TestCalculateLayout_TooShort tests a terminal shorter than the chrome
func TestCalculateLayout_TooShort(t *testing.T) {
	layout := CalculateLayout(80, 3)

	if layout.Mode != LayoutCompact {
		t.Errorf("Expected LayoutCompact mode, got %v", layout.Mode)
	}
	if layout.Main != layout.Area {
		t.Errorf("Main should take the whole area: got %v, want %v", layout.Main, layout.Area)
	}
	if layout.Header.Dy() != 0 || layout.Footer.Dy() != 0 {
		t.Error("Header and footer should be empty when the terminal is too short")
	}
}

// TestCalculateLayout_Breakpoints tests the mode boundaries
func TestCalculateLayout_Breakpoints(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   LayoutMode
	}{
		{"at both breakpoints", CompactWidthBreakpoint, CompactHeightBreakpoint, LayoutDesktop},
		{"one column narrow", CompactWidthBreakpoint - 1, CompactHeightBreakpoint, LayoutCompact},
		{"one row short", CompactWidthBreakpoint, CompactHeightBreakpoint - 1, LayoutCompact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateLayout(tt.width, tt.height).Mode; got != tt.want {
				t.Errorf("CalculateLayout(%d, %d).Mode = %v, want %v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}
