package theme

import (
	"fmt"
	"image/color"
	"sort"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string
	Secondary string
	Tertiary  string
	Accent    string

	// Background hierarchy (dark→light)
	BgCrust    string
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string
	BgOverlay  string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() *Theme{
		"catppuccin-mocha": NewCatppuccinMocha,
		"catppuccin-latte": NewCatppuccinLatte,
	}
	current = NewCatppuccinMocha()
)

// Current returns the active theme.
func Current() *Theme {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return current
}

// SetCurrent switches the active theme by name.
func SetCurrent(name string) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	ctor, ok := registry[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, namesLocked())
	}
	current = ctor()
	return nil
}

// Names lists registered themes in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HexToColor converts a "#rrggbb" string into a color.Color.
func HexToColor(hex string) color.Color {
	return lipgloss.Color(hex)
}
