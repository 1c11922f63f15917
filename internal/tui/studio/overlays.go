package studio

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

const chatGreeting = "Hi! I'm your AI style assistant. I can help you with fashion advice, " +
	"color matching, and outfit suggestions. How can I help you today?"

// chatMessage is one bubble of the chat panel.
type chatMessage struct {
	fromUser bool
	text     string
}

// arViews are the placeholder angles of the AR preview.
var arViews = []string{"Front View", "Side View", "Back View"}

const (
	arModalWidth = 64
	chatWidth    = 44
)

// arModal builds the AR preview modal.
func (m *Model) arModal() tui.Modal {
	s := theme.Current().S()
	inner := arModalWidth - 6

	stage := s.Card.Width(inner).Align(lipgloss.Center).Render(
		s.Subtitle.Render("AR Experience Preview") + "\n\n" +
			s.Muted.Render(arViews[m.arView]) + "\n\n" +
			s.Muted.Render("◌  camera overlay  ◌"))

	tabs := make([]string, len(arViews))
	for i, v := range arViews {
		if i == m.arView {
			tabs[i] = s.OptionSelected.Render(v)
		} else {
			tabs[i] = s.Option.Render(v)
		}
	}

	body := s.Muted.Render("Coming soon - Try on outfits virtually with augmented reality") + "\n\n" +
		stage + "\n\n" + strings.Join(tabs, " ") + "\n\n" + m.arButtons.Render()

	return tui.Modal{
		Title:  "AR Virtual Try-On",
		Body:   body,
		Footer: tui.RenderHintBar(tui.KeyLeftRt, "view", tui.KeyEsc, "close"),
		Width:  arModalWidth,
	}
}

// arRect is where the AR modal lands inside area. Clicks outside close it.
func (m *Model) arRect(area uv.Rectangle) uv.Rectangle {
	content := m.arModal().Render(area.Dx())
	w, h := lipgloss.Width(content), lipgloss.Height(content)
	x := max(0, (area.Dx()-w)/2)
	y := max(0, (area.Dy()-h)/2)
	return uv.Rect(area.Min.X+x, area.Min.Y+y, w, h)
}

func (m *Model) drawAR(scr uv.Screen, area uv.Rectangle) {
	m.arModal().Draw(scr, area)
}

// drawChat draws the chat panel in the bottom-right corner of area.
func (m *Model) drawChat(scr uv.Screen, area uv.Rectangle) {
	s := theme.Current().S()
	width := min(chatWidth, area.Dx())
	inner := width - 4

	var b strings.Builder
	b.WriteString(s.Subtitle.Render("Style Assistant") + "\n")
	b.WriteString(s.Success.Render("● ") + s.Muted.Render("Online now") + "\n\n")
	for _, msg := range m.chat {
		if msg.fromUser {
			b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Right, s.Chip.Width(min(inner-4, lipgloss.Width(msg.text)+2)).Render(msg.text)))
		} else {
			b.WriteString(s.Body.Width(inner).Render(msg.text))
		}
		b.WriteString("\n\n")
	}
	m.chatInput.SetWidth(inner - 2)
	b.WriteString(m.chatInput.View())

	panel := s.ModalContainer.Width(width).Padding(0, 1).Render(b.String())
	w, h := lipgloss.Width(panel), lipgloss.Height(panel)
	h = min(h, area.Dy())
	rect := uv.Rect(area.Max.X-w, area.Max.Y-h, w, h)
	uv.NewStyledString(panel).Draw(scr, rect)
}
