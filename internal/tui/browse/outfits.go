package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

const (
	btnAddWardrobe = "Add to Wardrobe"
	btnLike        = "♡ Like"
	btnLiked       = "♥ Liked"
)

// Header subtitles; the gallery itself does not depend on the answers.
const (
	outfitsIntro       = "Discover outfit combinations tailored to your unique style and preferences."
	outfitsIntroQuiz   = "Based on your style preferences, we've curated these personalized recommendations just for you."
	outfitCardMinWidth = 34
)

type outfitsPage struct {
	env      *env
	prefs    *stylist.QuizPreferences
	liked    map[string]bool
	cursor   int
	columns  int
	selected *catalog.GalleryOutfit
	detail   *tui.ButtonBar
}

func newOutfitsPage(e *env) *outfitsPage {
	return &outfitsPage{env: e, columns: 1}
}

func (p *outfitsPage) enter(loc Location) tea.Cmd {
	p.prefs = nil
	if prefs, ok := loc.State.(stylist.QuizPreferences); ok {
		p.prefs = &prefs
	}
	p.liked = make(map[string]bool)
	p.cursor = 0
	p.selected = nil
	return nil
}

func (p *outfitsPage) gallery() []catalog.GalleryOutfit {
	return p.env.catalog.Gallery
}

// toggleLike flips the liked state of the outfit with id.
func (p *outfitsPage) toggleLike(id string) {
	if p.liked[id] {
		delete(p.liked, id)
	} else {
		p.liked[id] = true
	}
}

func (p *outfitsPage) update(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if p.selected != nil {
		return p.updateDetail(msg)
	}

	n := len(p.gallery())
	if n == 0 {
		return nil, false
	}
	switch msg.String() {
	case "left", "h":
		if p.cursor%p.columns > 0 {
			p.cursor--
		}
	case "right", "l":
		if p.cursor%p.columns < p.columns-1 && p.cursor < n-1 {
			p.cursor++
		}
	case "up", "k":
		if p.cursor-p.columns >= 0 {
			p.cursor -= p.columns
		}
	case "down", "j":
		if p.cursor+p.columns < n {
			p.cursor += p.columns
		}
	case "tab":
		p.cursor = (p.cursor + 1) % n
	case "shift+tab":
		p.cursor = (p.cursor - 1 + n) % n
	case "space", "f":
		p.toggleLike(p.gallery()[p.cursor].ID)
	case "enter":
		o := p.gallery()[p.cursor]
		p.selected = &o
		p.detail = tui.NewButtonBar(tui.Button{Label: btnAddWardrobe}, tui.Button{Label: p.likeLabel(o.ID)})
	default:
		return nil, false
	}
	return nil, true
}

func (p *outfitsPage) updateDetail(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "esc", "q":
		p.selected = nil
	case "left", "h", "shift+tab":
		p.detail.FocusPrev()
	case "right", "l", "tab":
		p.detail.FocusNext()
	case "space", "f":
		p.toggleLike(p.selected.ID)
		p.refreshDetail()
	case "enter":
		if p.detail.Focused() == btnAddWardrobe {
			return p.env.toast.Show("Wardrobe is coming soon"), true
		}
		p.toggleLike(p.selected.ID)
		p.refreshDetail()
	}
	// The modal swallows every key.
	return nil, true
}

func (p *outfitsPage) refreshDetail() {
	focused := p.detail.Focused()
	p.detail.SetButtons(tui.Button{Label: btnAddWardrobe}, tui.Button{Label: p.likeLabel(p.selected.ID)})
	if focused == btnAddWardrobe {
		p.detail.Focus(btnAddWardrobe)
	} else {
		p.detail.Focus(p.likeLabel(p.selected.ID))
	}
}

func (p *outfitsPage) likeLabel(id string) string {
	if p.liked[id] {
		return btnLiked
	}
	return btnLike
}

func (p *outfitsPage) render(width int) pageView {
	s := theme.Current().S()
	var v pageView

	var b strings.Builder
	b.WriteString(s.Chip.Render("✦ AI-Powered Recommendations"))
	b.WriteString("\n\n")
	b.WriteString(s.Title.Render("Your Perfect Outfits"))
	b.WriteString("\n")
	intro := outfitsIntro
	if p.prefs != nil {
		intro = outfitsIntroQuiz
	}
	b.WriteString(s.Body.Width(min(width, 80)).Render(intro))
	b.WriteString("\n\n")

	p.columns = max(1, min(3, (width+1)/(outfitCardMinWidth+1)))
	cardWidth := (width - (p.columns - 1)) / p.columns

	gallery := p.gallery()
	for start := 0; start < len(gallery); start += p.columns {
		end := min(len(gallery), start+p.columns)
		var cards []string
		for i := start; i < end; i++ {
			cards = append(cards, p.renderCard(gallery[i], i == p.cursor, cardWidth))
		}
		row := joinSpaced(cards, 1)
		focused := p.cursor >= start && p.cursor < end
		if focused {
			v.focusTop = lineCount(&b)
		}
		b.WriteString(row)
		b.WriteString("\n")
		if focused {
			v.focusBottom = lineCount(&b) - 1
		}
	}

	v.content = strings.TrimRight(b.String(), "\n")
	return v
}

func (p *outfitsPage) renderCard(o catalog.GalleryOutfit, focused bool, width int) string {
	s := theme.Current().S()
	card := s.Card
	if focused {
		card = s.CardFocused
	}
	inner := width - 4

	heart := s.Muted.Render("♡")
	if p.liked[o.ID] {
		heart = s.Error.Render("♥")
	}
	match := s.Accent.Render(fmt.Sprintf("%d%% Match", o.StyleMatch))
	title := s.Subtitle.Render(o.Title)
	gap := max(1, inner-lipgloss.Width(title)-lipgloss.Width(match)-2)
	head := title + strings.Repeat(" ", gap) + match + " " + heart

	details := s.Muted.Render("View Details")
	if focused {
		details = s.Link.Render("View Details →")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		head,
		s.Chip.Render(o.Occasion)+" "+s.Chip.Render(o.Season),
		s.Body.Width(inner).Render(o.Description),
		details,
	)
	return card.Width(width).Render(body)
}

func (p *outfitsPage) overlay(width int) string {
	if p.selected == nil {
		return ""
	}
	s := theme.Current().S()
	o := p.selected

	var b strings.Builder
	b.WriteString(s.Accent.Render(fmt.Sprintf("%d%% Match", o.StyleMatch)))
	b.WriteString("  ")
	b.WriteString(s.Chip.Render(o.Occasion) + " " + s.Chip.Render(o.Season))
	b.WriteString("\n\n")
	b.WriteString(s.Body.Render(o.Description))
	b.WriteString("\n\n")
	b.WriteString(s.Subtitle.Render("Outfit Items:"))
	b.WriteString("\n")
	for _, item := range o.Items {
		b.WriteString(s.Success.Render("• ") + s.Body.Render(item) + "\n")
	}

	modal := tui.Modal{
		Title:  o.Title,
		Body:   strings.TrimRight(b.String(), "\n"),
		Footer: p.detail.Render(),
		Width:  64,
	}
	return modal.Render(width)
}

func (p *outfitsPage) hints() string {
	if p.selected != nil {
		return tui.RenderHintBar(tui.KeyLeftRt, "button", tui.KeyEnter, "press", tui.KeySpace, "like", tui.KeyEsc, "close")
	}
	return tui.RenderHintBar(tui.KeyArrows, "move", tui.KeySpace, "like", tui.KeyEnter, "details", tui.KeyEsc, "back")
}
