package browse

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// homeStats are the headline numbers under the feature cards.
var homeStats = []struct{ value, label string }{
	{"1M+", "Style Recommendations"},
	{"50K+", "Happy Users"},
	{"99%", "Satisfaction Rate"},
}

// homeAction is a focusable entry on the home page: the two hero buttons
// followed by one "Explore" link per feature.
type homeAction struct {
	label string
	path  string
}

type homePage struct {
	env     *env
	actions []homeAction
	cursor  int
}

func newHomePage(e *env) *homePage {
	p := &homePage{env: e}
	p.actions = []homeAction{
		{label: "Get Started", path: PathQuiz},
		{label: "Upload Image", path: PathAnalysis},
	}
	for _, f := range e.catalog.Features {
		p.actions = append(p.actions, homeAction{label: f.Title, path: f.Link})
	}
	return p
}

func (p *homePage) enter(Location) tea.Cmd {
	p.cursor = 0
	return nil
}

func (p *homePage) update(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "right", "down", "tab", "l", "j":
		p.cursor = (p.cursor + 1) % len(p.actions)
	case "left", "up", "shift+tab", "h", "k":
		p.cursor = (p.cursor - 1 + len(p.actions)) % len(p.actions)
	case "enter", "space":
		return navigate(p.actions[p.cursor].path, nil), true
	default:
		return nil, false
	}
	return nil, true
}

func (p *homePage) render(width int) pageView {
	s := theme.Current().S()
	th := theme.Current()
	var v pageView

	var b strings.Builder
	b.WriteString(s.Title.Render("Your Personal"))
	b.WriteString("\n")
	b.WriteString(s.Title.Render(theme.ApplyGradient("AI Stylist", th.Primary, th.Secondary)))
	b.WriteString("\n\n")
	b.WriteString(s.Body.Width(min(width, 72)).Render(
		"Experience the future of fashion with AI-powered personalized styling, " +
			"intelligent outfit recommendations, and trend-aware insights."))
	b.WriteString("\n\n")

	var buttons []string
	for i, a := range p.actions[:2] {
		style := s.Button
		if i == p.cursor {
			style = s.ButtonFocused
		}
		buttons = append(buttons, style.Render(a.label))
	}
	if p.cursor < 2 {
		v.focusTop = lineCount(&b)
	}
	b.WriteString(strings.Join(buttons, ""))
	b.WriteString("\n\n")

	b.WriteString(tui.Rule("AI-Powered Features", width))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Discover personalized fashion recommendations designed just for you"))
	b.WriteString("\n\n")

	for i, f := range p.env.catalog.Features {
		idx := i + 2
		card := s.Card
		explore := s.Muted.Render("Explore →")
		if idx == p.cursor {
			card = s.CardFocused
			explore = s.Accent.Render("Explore →")
			v.focusTop = lineCount(&b)
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			s.Subtitle.Render(f.Title),
			s.Body.Render(f.Description),
			explore,
		)
		b.WriteString(card.Width(min(width, 80)).Render(body))
		b.WriteString("\n")
		if idx == p.cursor {
			v.focusBottom = lineCount(&b) - 1
		}
	}
	if p.cursor < 2 {
		v.focusBottom = v.focusTop
	}
	b.WriteString("\n")

	stats := make([]string, len(homeStats))
	for i, st := range homeStats {
		stats[i] = lipgloss.JoinVertical(lipgloss.Center,
			s.Accent.Bold(true).Render(st.value),
			s.Muted.Render(st.label))
	}
	b.WriteString(joinSpaced(stats, 6))

	v.content = b.String()
	return v
}

func (p *homePage) overlay(int) string { return "" }

func (p *homePage) hints() string {
	return tui.RenderHintBar(tui.KeyArrows, "select", tui.KeyEnter, "open", "1-5", "pages", "q", "quit")
}

// joinSpaced joins blocks side by side with gap columns between them.
func joinSpaced(blocks []string, gap int) string {
	spaced := make([]string, 0, len(blocks)*2)
	for i, blk := range blocks {
		if i > 0 {
			spaced = append(spaced, strings.Repeat(" ", gap))
		}
		spaced = append(spaced, blk)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}
