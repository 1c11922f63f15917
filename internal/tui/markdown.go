package tui

import (
	"strings"
	"sync"

	"charm.land/glamour/v2"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

type markdownKey struct {
	content string
	width   int
	dark    bool
}

var (
	markdownMu    sync.Mutex
	markdownCache = map[markdownKey]string{}
)

// RenderMarkdown renders markdown with glamour, caching by content and width.
// Falls back to the raw text if rendering fails.
func RenderMarkdown(content string, width int) string {
	// Cap width to 120 for readability
	if width > 120 {
		width = 120
	}
	if width < 20 {
		width = 20
	}

	style := "dark"
	dark := theme.Current().IsDark
	if !dark {
		style = "light"
	}
	key := markdownKey{content: content, width: width, dark: dark}

	markdownMu.Lock()
	defer markdownMu.Unlock()
	if out, ok := markdownCache[key]; ok {
		return out
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	out := strings.Trim(rendered, "\n")
	markdownCache[key] = out
	return out
}
