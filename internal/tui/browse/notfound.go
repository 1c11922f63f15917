package browse

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

const btnBackHome = "⌂ Back to Home"

// notFoundPage is shown for any path the router does not know.
type notFoundPage struct {
	path string
}

func (p *notFoundPage) enter(loc Location) tea.Cmd {
	p.path = loc.Path
	return nil
}

func (p *notFoundPage) update(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "enter", "space":
		return navigate(PathHome, nil), true
	}
	return nil, false
}

func (p *notFoundPage) render(width int) pageView {
	s := theme.Current().S()
	th := theme.Current()

	var b strings.Builder
	b.WriteString(s.Title.Render(theme.ApplyGradient("404", th.Primary, th.Secondary)))
	b.WriteString("\n\n")
	b.WriteString(s.Subtitle.Render("Page Not Found"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(p.path))
	b.WriteString("\n\n")
	b.WriteString(s.Body.Width(min(width, 60)).Render(
		"Oops! The page you're looking for doesn't exist. Let's get you back to exploring fashion."))
	b.WriteString("\n\n")
	b.WriteString(s.ButtonFocused.Render(btnBackHome))
	return pageView{content: b.String()}
}

func (p *notFoundPage) overlay(int) string { return "" }

func (p *notFoundPage) hints() string {
	return tui.RenderHintBar(tui.KeyEnter, "home", tui.KeyEsc, "back", "q", "quit")
}
