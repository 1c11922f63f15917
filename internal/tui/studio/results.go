package studio

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// refreshResults rebuilds the results viewport for the current width.
func (m *Model) refreshResults() {
	r := m.wizard.Result()
	if r == nil {
		m.results.SetContent("")
		return
	}
	m.results.SetContent(renderResults(*r, m.wizard.Preferences(), m.shopMarkdown(), max(40, m.results.Width())))
}

// shopMarkdown lists the catalog's retailers as markdown links.
func (m *Model) shopMarkdown() string {
	var b strings.Builder
	b.WriteString("Find curated pieces from top retailers that match your style profile\n\n")
	for _, shop := range m.catalog.Shops {
		fmt.Fprintf(&b, "- **[%s](%s)**: %s\n", shop.Name, shop.URL, shop.Description)
	}
	return b.String()
}

// renderResults lays out the analysis result top to bottom.
func renderResults(r stylist.AnalysisResult, prefs stylist.Preferences, shops string, width int) string {
	s := theme.Current().S()
	var sections []string

	heading := s.Title.Render("Your Perfect Style") + "\n" +
		s.Muted.Render("Personalized recommendations curated just for you")
	if prefs.Complete() {
		heading += "\n" + s.Muted.Render(fmt.Sprintf("%s · %s · %s · %s",
			stylist.Label(stylist.FieldGender, prefs.Gender),
			stylist.Label(stylist.FieldStyle, prefs.Style),
			stylist.Label(stylist.FieldOccasion, prefs.Occasion),
			stylist.Label(stylist.FieldBudget, prefs.Budget)))
	}
	sections = append(sections, heading)

	sections = append(sections, tui.Rule("Skin Tone Analysis", width)+"\n"+renderSkinTone(r.SkinTone, width))
	sections = append(sections, tui.Rule("Outfit Recommendations", width)+"\n"+renderOutfits(r.Recommendations.Outfits, width))

	colors := make([]string, len(r.Recommendations.Colors))
	for i, c := range r.Recommendations.Colors {
		colors[i] = s.Chip.Render(c)
	}
	sections = append(sections, tui.Rule("Best Colors for You", width)+"\n"+wrapChips(colors, width))

	var acc strings.Builder
	for _, a := range r.Recommendations.Accessories {
		acc.WriteString(s.Accent.Render("◆ ") + s.Body.Render(a) + "\n")
	}
	sections = append(sections, tui.Rule("Recommended Accessories", width)+"\n"+strings.TrimRight(acc.String(), "\n"))

	sections = append(sections, tui.Rule("Hairstyle Tip", width)+"\n"+s.Body.Width(width).Render(r.Recommendations.Hairstyle))
	sections = append(sections, tui.Rule("Shop Your Style", width)+"\n"+strings.TrimRight(tui.RenderMarkdown(shops, width), "\n"))

	return strings.Join(sections, "\n\n")
}

func renderSkinTone(tone stylist.SkinTone, width int) string {
	s := theme.Current().S()
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(tone.Color)).Render("      ")
	swatch = swatch + "\n" + swatch

	info := s.Subtitle.Render(tone.Name) + "\n" +
		s.Muted.Render(fmt.Sprintf("Confidence: %d%%", tone.Confidence))
	top := lipgloss.JoinHorizontal(lipgloss.Top, swatch, "  ", info)

	meterWidth := min(30, max(10, width-30))
	meter := s.Body.Render("Match Confidence ") + tui.RenderMeter(tone.Confidence, 100, meterWidth) +
		s.Accent.Render(fmt.Sprintf(" %d%%", tone.Confidence))

	var palette []string
	for _, hex := range tone.Palette {
		palette = append(palette, lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(lipgloss.Color(theme.ContrastText(hex))).
			Render(" "+hex+" "))
	}

	return top + "\n\n" + meter + "\n\n" +
		s.Body.Render("Recommended Color Palette") + "\n" + wrapChips(palette, width)
}

// renderOutfits draws outfit cards two per row, or one per row when narrow.
func renderOutfits(outfits []stylist.Outfit, width int) string {
	s := theme.Current().S()
	perRow := 2
	if width < 70 {
		perRow = 1
	}
	cardWidth := width/perRow - 1

	cards := make([]string, len(outfits))
	for i, o := range outfits {
		var b strings.Builder
		b.WriteString(s.Subtitle.Render(o.Title) + "\n")
		b.WriteString(s.Muted.Render(o.Description) + "\n\n")
		for _, item := range o.Items {
			b.WriteString(s.Accent.Render("• ") + s.Body.Render(item) + "\n")
		}
		cards[i] = s.Card.Width(cardWidth).Render(strings.TrimRight(b.String(), "\n"))
	}

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, interleave(cards[i:end], " ")...))
	}
	return strings.Join(rows, "\n")
}

// wrapChips flows chips left to right, wrapping at width.
func wrapChips(chips []string, width int) string {
	var lines []string
	var line string
	for _, c := range chips {
		if line != "" && lipgloss.Width(line)+1+lipgloss.Width(c) > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += c
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
