package studio

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// heroStats are the headline numbers on the home screen.
var heroStats = []struct{ value, label string }{
	{"98%", "Accuracy"},
	{"50K+", "Users"},
	{"2M+", "Styles"},
}

func (m *Model) drawHome(scr uv.Screen, area uv.Rectangle) {
	s := theme.Current().S()
	th := theme.Current()
	w := area.Dx()

	var b strings.Builder
	b.WriteString(s.Chip.Render("⚡ AI-Powered Fashion Intelligence"))
	b.WriteString("\n\n")
	b.WriteString(s.Title.Render("Your Personal"))
	b.WriteString("\n")
	b.WriteString(s.Title.Render(theme.ApplyGradient("AI Stylist", th.Primary, th.Secondary)))
	b.WriteString("\n\n")
	b.WriteString(s.Body.Width(min(w, 72)).Render(
		"Upload a photo and receive personalized fashion recommendations powered by " +
			"advanced AI. Discover your perfect style, colors, and shopping curations."))
	b.WriteString("\n\n")

	stats := make([]string, len(heroStats))
	for i, st := range heroStats {
		stats[i] = lipgloss.JoinVertical(lipgloss.Left, s.Accent.Bold(true).Render(st.value), s.Muted.Render(st.label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, interleave(stats, "     ")...))
	b.WriteString("\n\n")

	// The assistant button is hidden while the chat panel is open.
	if m.wizard.ChatOpen() {
		b.WriteString(s.Button.Render(btnGetStarted))
	} else {
		b.WriteString(m.homeButtons.Render())
	}
	b.WriteString("\n\n")

	b.WriteString(tui.Rule("How It Works", w))
	b.WriteString("\n")
	for i, step := range m.catalog.Steps {
		num := s.Accent.Render(fmt.Sprintf("%02d", i+1))
		b.WriteString(fmt.Sprintf("%s  %s  %s\n", num, s.Subtitle.Render(step.Title), s.Muted.Render(step.Description)))
	}
	b.WriteString("\n")
	b.WriteString(tui.Rule("Why StyleAI", w))
	b.WriteString("\n")
	for _, h := range m.catalog.Highlights {
		b.WriteString(fmt.Sprintf("%s %s  %s\n", s.Success.Render("✓"), s.Body.Render(h.Title), s.Muted.Render(h.Description)))
	}

	tui.DrawText(scr, area, b.String())
}

func (m *Model) drawUpload(scr uv.Screen, area uv.Rectangle) {
	s := theme.Current().S()
	w := min(area.Dx(), 80)

	var b strings.Builder
	b.WriteString(s.Title.Render("Upload Your Photo"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Take a selfie or upload a clear photo of yourself for best results"))
	b.WriteString("\n\n")

	card := s.Card
	if m.uploadFocus == focusPicker || m.camera != nil {
		card = s.CardFocused
	}
	b.WriteString(card.Width(w).Render(m.uploadCardBody()))
	b.WriteString("\n")

	if m.camera == nil && !m.cameraPending {
		label := s.Muted.Render("Path ")
		if m.uploadFocus == focusPath {
			label = s.Accent.Render("Path ")
		}
		b.WriteString(label + m.pathInput.View())
		b.WriteString("\n")
	}
	if m.cameraHint != "" {
		b.WriteString(s.Warning.Render("⚠ " + m.cameraHint))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.uploadButtons.Render())

	tui.DrawText(scr, area, b.String())
}

func (m *Model) uploadCardBody() string {
	s := theme.Current().S()
	switch {
	case m.camera != nil:
		return s.Success.Render("● Camera live") + "\n\n" +
			s.Body.Render("Frame yourself, then choose Capture Photo.")
	case m.cameraPending:
		return m.spinner.View() + " " + s.Body.Render("Starting camera...")
	}
	head := s.Subtitle.Render("⬆  Drag & drop your photo") + "\n" +
		s.Muted.Render("   or click to browse: pick a file below, or paste a path") + "\n\n"
	return head + m.picker.View()
}

func (m *Model) drawPreferences(scr uv.Screen, area uv.Rectangle) {
	s := theme.Current().S()

	var b strings.Builder
	b.WriteString(s.Title.Render("Tell Us Your Style"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Help us personalize your recommendations"))
	b.WriteString("\n\n")
	if img := m.wizard.Image(); !img.Empty() {
		b.WriteString(s.Chip.Render(imageCaption(img)))
		b.WriteString("  " + s.Muted.Render("esc to change photo"))
		b.WriteString("\n\n")
	}

	b.WriteString(m.prefLabel(prefGender, "Gender"))
	b.WriteString(m.prefGrid(stylist.FieldGender, prefGender))
	b.WriteString("\n\n")
	b.WriteString(m.prefLabel(prefStyle, "Style Preference"))
	b.WriteString(m.prefGrid(stylist.FieldStyle, prefStyle))
	b.WriteString("\n\n")

	occasion := m.prefLabel(prefOccasion, "Occasion") +
		tui.RenderDropdown(stylist.OccasionOptions, m.wizard.Selected(stylist.FieldOccasion), "Select occasion", m.prefFocus == prefOccasion)
	budget := m.prefLabel(prefBudget, "Budget Range") +
		tui.RenderDropdown(stylist.BudgetOptions, m.wizard.Selected(stylist.FieldBudget), "Select budget", m.prefFocus == prefBudget)
	if m.layout.IsCompact() {
		b.WriteString(occasion + "\n\n" + budget)
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(36).Render(occasion), budget))
	}
	b.WriteString("\n\n")

	if missing := m.wizard.Preferences().Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		b.WriteString(s.Muted.Render("Still needed: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(m.prefButtons.Render())

	tui.DrawText(scr, area, b.String())
}

func (m *Model) prefLabel(section int, label string) string {
	s := theme.Current().S()
	if m.prefFocus == section {
		return s.Accent.Render("▸ "+label) + "\n"
	}
	return s.Subtitle.Render("  "+label) + "\n"
}

func (m *Model) prefGrid(field stylist.Field, section int) string {
	selected := m.wizard.Selected(field)
	return m.choosers[field].Render(func(v string) bool { return v == selected }, m.prefFocus == section)
}

// imageCaption summarises a captured image in one line.
func imageCaption(img *stylist.CapturedImage) string {
	icon := "🖼 "
	if img.Source == stylist.SourceCamera {
		icon = "📷"
	}
	caption := icon + " " + img.Name
	if img.Width > 0 && img.Height > 0 {
		caption += fmt.Sprintf(" · %d×%d", img.Width, img.Height)
	}
	return caption + " · " + string(img.Source)
}

func (m *Model) drawAnalyzing(scr uv.Screen, area uv.Rectangle) {
	s := theme.Current().S()
	p := m.wizard.Progress()
	width := min(area.Dx()-4, 60)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("Analyzing Your Style"),
		"",
		m.spinner.View()+" "+s.Body.Render(p.Message),
		"",
		tui.RenderProgressBar(displayPercent(p.Percent), width),
	)
	tui.DrawCentered(scr, area, content)
}

func (m *Model) drawResults(scr uv.Screen, area uv.Rectangle) {
	top, bottom := tui.SplitRows(area, max(0, area.Dy()-2))
	m.results.SetWidth(top.Dx())
	m.results.SetHeight(top.Dy())
	tui.DrawText(scr, top, m.results.View())
	tui.DrawText(scr, uv.Rect(bottom.Min.X, bottom.Min.Y+1, bottom.Dx(), 1), m.resultButtons.Render())
}

// interleave joins parts with sep between each pair.
func interleave(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}
