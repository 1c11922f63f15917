package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// trendsPage lists current trends with a selectable detail panel, then
// predictions and global stats.
type trendsPage struct {
	env      *env
	cursor   int
	selected string // trend ID, "" when none
}

func newTrendsPage(e *env) *trendsPage {
	return &trendsPage{env: e}
}

func (p *trendsPage) enter(Location) tea.Cmd {
	p.cursor = 0
	p.selected = ""
	return nil
}

func (p *trendsPage) update(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	trends := p.env.catalog.Trends
	if len(trends) == 0 {
		return nil, false
	}
	if p.selected != "" {
		switch msg.String() {
		case "esc", "enter", "space", "q":
			p.selected = ""
		}
		return nil, true
	}
	switch msg.String() {
	case "down", "j", "right", "l", "tab":
		p.cursor = (p.cursor + 1) % len(trends)
	case "up", "k", "left", "h", "shift+tab":
		p.cursor = (p.cursor - 1 + len(trends)) % len(trends)
	case "enter", "space":
		p.toggle(trends[p.cursor].ID)
	default:
		return nil, false
	}
	return nil, true
}

// toggle selects the trend, or clears the selection if it was selected.
func (p *trendsPage) toggle(id string) {
	if p.selected == id {
		p.selected = ""
		return
	}
	p.selected = id
}

func (p *trendsPage) render(width int) pageView {
	s := theme.Current().S()
	cat := p.env.catalog
	var v pageView

	var b strings.Builder
	b.WriteString(s.Chip.Render("↗ AI Trend Forecasting"))
	b.WriteString("\n\n")
	b.WriteString(s.Title.Render("Fashion Trend Insights"))
	b.WriteString("\n")
	b.WriteString(s.Body.Width(min(width, 80)).Render(
		"Stay ahead of the curve with AI-powered trend analysis and predictions based on global fashion data."))
	b.WriteString("\n\n")

	b.WriteString(tui.Rule("Trending Now", width))
	b.WriteString("\n")
	for i, t := range cat.Trends {
		card := s.Card
		if i == p.cursor {
			card = s.CardFocused
			v.focusTop = lineCount(&b)
		}
		tags := make([]string, len(t.Tags))
		for j, tag := range t.Tags {
			tags[j] = s.Chip.Render(tag)
		}
		head := s.Subtitle.Render(t.Title) + "  " + stars(t.Stars()) + "  " + s.Muted.Render(t.Season)
		explore := s.Muted.Render("Explore Trend →")
		if i == p.cursor {
			explore = s.Link.Render("Explore Trend →")
		}
		b.WriteString(card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
			head,
			s.Body.Width(width-4).Render(t.Description),
			strings.Join(tags, " "),
			explore,
		)))
		b.WriteString("\n")
		if i == p.cursor {
			v.focusBottom = lineCount(&b) - 1
		}
	}
	b.WriteString("\n")

	b.WriteString(tui.Rule("AI Predictions", width))
	b.WriteString("\n")
	for _, pr := range cat.Predictions {
		b.WriteString(fmt.Sprintf("%s  %s\n", s.Body.Render(pr.Title), s.Muted.Render(pr.Timeline)))
		b.WriteString(fmt.Sprintf("%s %s\n", tui.RenderMeter(pr.Strength(), 100, 30), s.Accent.Render(pr.Prediction)))
	}
	b.WriteString("\n")

	b.WriteString(tui.Rule("Global Fashion Insights", width))
	b.WriteString("\n")
	stats := make([]string, len(cat.Stats))
	for i, st := range cat.Stats {
		stats[i] = lipgloss.JoinVertical(lipgloss.Center,
			s.Accent.Bold(true).Render(st.Value),
			s.Muted.Render(st.Label))
	}
	b.WriteString(joinSpaced(stats, 4))

	v.content = b.String()
	return v
}

// stars renders the five-bar popularity rating.
func stars(n int) string {
	s := theme.Current().S()
	n = max(0, min(5, n))
	return s.Accent.Render(strings.Repeat("▮", n)) + s.ProgressEmpty.Render(strings.Repeat("▯", 5-n))
}

func (p *trendsPage) overlay(width int) string {
	if p.selected == "" {
		return ""
	}
	t, ok := p.env.catalog.Trend(p.selected)
	if !ok {
		return ""
	}
	md := fmt.Sprintf("%s\n\n**Popularity:** %d%%  \n**Season:** %s\n\n", t.Description, t.Popularity, t.Season)
	for _, tag := range t.Tags {
		md += "- " + tag + "\n"
	}
	modal := tui.Modal{
		Title:  t.Title + "  " + stars(t.Stars()),
		Body:   strings.TrimSpace(tui.RenderMarkdown(md, 56)),
		Footer: tui.RenderHintBar(tui.KeyEnter, "close"),
		Width:  64,
	}
	return modal.Render(width)
}

func (p *trendsPage) hints() string {
	if p.selected != "" {
		return tui.RenderHintBar(tui.KeyEnter, "close", tui.KeyEsc, "close")
	}
	return tui.RenderHintBar(tui.KeyUpDown, "move", tui.KeyEnter, "explore", tui.KeyEsc, "back")
}
