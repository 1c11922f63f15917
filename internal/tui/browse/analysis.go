package browse

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/events"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

const btnUploadDifferent = "Upload Different Image"

// analysisPage scans one picked or dropped image and shows the mock
// insight.
type analysisPage struct {
	env      *env
	picker   *tui.FilePicker
	image    *stylist.CapturedImage
	progress stylist.Progress
	insight  *catalog.Insight
	task     *stylist.Task
	seq      int
	spinner  tui.Spinner
	height   int
}

func newAnalysisPage(e *env) *analysisPage {
	return &analysisPage{
		env:     e,
		spinner: tui.NewSpinner(spinner.Dot),
		height:  10,
	}
}

func (p *analysisPage) enter(Location) tea.Cmd {
	p.reset()
	return nil
}

func (p *analysisPage) leave() {
	p.cancel()
}

// reset drops the image and any result, returning to the picker.
func (p *analysisPage) reset() {
	p.cancel()
	p.image = nil
	p.insight = nil
	p.progress = stylist.Progress{}
	p.picker = tui.NewFilePicker(p.env.startDir)
	p.picker.SetHeight(p.height)
}

func (p *analysisPage) cancel() {
	if p.task != nil {
		p.task.Cancel()
		p.task = nil
	}
}

func (p *analysisPage) scanning() bool {
	return p.task != nil
}

func (p *analysisPage) setHeight(h int) {
	p.height = max(3, h)
	if p.picker != nil {
		p.picker.SetHeight(p.height)
	}
}

func (p *analysisPage) update(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if p.image == nil {
		switch msg.String() {
		case "up", "down", "k", "j", "enter", "backspace":
			return p.picker.Update(msg), true
		}
		return nil, false
	}
	switch msg.String() {
	case "enter", "space", "u":
		p.reset()
		return nil, true
	}
	return nil, false
}

// paste treats pasted text as a dropped file.
func (p *analysisPage) paste(text string) tea.Cmd {
	if text == "" || p.image != nil {
		return nil
	}
	return loadDrop(text)
}

func (p *analysisPage) fileSelected(path string) tea.Cmd {
	if p.image != nil {
		return nil
	}
	return loadImage(path)
}

func (p *analysisPage) imageLoaded(msg imageLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		if !errors.Is(msg.Err, capture.ErrNotImage) {
			logger.Warn("image analysis: %v", msg.Err)
		}
		return nil
	}
	if p.image != nil {
		return nil
	}
	p.image = msg.Image
	p.env.record(events.Event{
		Type:   events.EventTypeCapture,
		Action: "scan",
		Data:   fmt.Sprintf("%s %s %dx%d", msg.Image.Source, msg.Image.Name, msg.Image.Width, msg.Image.Height),
	})

	p.seq++
	p.task = p.env.startTask(p.seq)
	return p.spinner.Tick()
}

func (p *analysisPage) scanProgress(msg scanProgressMsg) {
	if msg.Seq != p.seq || p.task == nil {
		return
	}
	p.progress = msg.Progress
}

func (p *analysisPage) scanDone(msg scanDoneMsg) {
	if msg.Seq != p.seq || p.task == nil {
		return
	}
	p.task = nil
	insight := p.env.catalog.Insight
	p.insight = &insight
	p.env.record(events.Event{Type: events.EventTypeCapture, Action: "analyzed", Data: insight.Style})
}

func (p *analysisPage) tick(msg spinner.TickMsg) tea.Cmd {
	if !p.scanning() {
		return nil
	}
	return p.spinner.Update(msg)
}

func (p *analysisPage) render(width int) pageView {
	s := theme.Current().S()
	var b strings.Builder
	b.WriteString(s.Chip.Render("✦ AI Image Analysis"))
	b.WriteString("\n\n")
	b.WriteString(s.Title.Render("Analyze Your Style"))
	b.WriteString("\n")
	b.WriteString(s.Body.Width(min(width, 80)).Render(
		"Upload a photo and let our AI analyze your outfit, identify items, and provide personalized styling recommendations."))
	b.WriteString("\n\n")
	top := lineCount(&b)

	if width >= 96 {
		col := (width - 2) / 2
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			s.Card.Width(col).Render(p.uploadPanel(col-4)),
			"  ",
			s.Card.Width(col).Render(p.resultPanel(col-4)),
		))
	} else {
		b.WriteString(s.Card.Width(width).Render(p.uploadPanel(width - 4)))
		b.WriteString("\n")
		b.WriteString(s.Card.Width(width).Render(p.resultPanel(width - 4)))
	}
	return pageView{content: b.String(), focusTop: top, focusBottom: top}
}

func (p *analysisPage) uploadPanel(width int) string {
	s := theme.Current().S()
	var b strings.Builder
	b.WriteString(s.Subtitle.Render("Upload Your Image"))
	b.WriteString("\n\n")

	if p.image == nil {
		b.WriteString(s.Body.Width(width).Render("Drag and drop an image here, or choose a file below"))
		b.WriteString("\n\n")
		b.WriteString(p.picker.View())
		return b.String()
	}

	img := p.image
	b.WriteString(s.Accent.Render("🖼  " + img.Name))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("%s · %d×%d · %s", img.MIME, img.Width, img.Height, humanSize(img.Size))))
	b.WriteString("\n\n")
	if p.scanning() {
		msg := p.progress.Message
		if msg == "" {
			msg = "Analyzing your style..."
		}
		b.WriteString(p.spinner.View() + " " + s.Body.Render(msg))
		b.WriteString("\n")
		b.WriteString(tui.RenderProgressBar(p.progress.Percent, width))
		b.WriteString("\n\n")
	}
	b.WriteString(s.ButtonFocused.Render(btnUploadDifferent))
	return b.String()
}

func (p *analysisPage) resultPanel(width int) string {
	s := theme.Current().S()
	if p.insight == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Subtitle.Render("No Analysis Yet"),
			s.Muted.Width(width).Render("Upload an image to see AI-powered style analysis"),
		)
	}

	in := p.insight
	var b strings.Builder
	b.WriteString(s.Subtitle.Render("Colors Detected"))
	b.WriteString("\n")
	chips := make([]string, len(in.Colors))
	for i, c := range in.Colors {
		chips[i] = s.Chip.Render(c)
	}
	b.WriteString(strings.Join(chips, " "))
	b.WriteString("\n\n")

	b.WriteString(s.Subtitle.Render("Style Classification"))
	b.WriteString("\n")
	b.WriteString(s.Accent.Bold(true).Render(in.Style))
	b.WriteString("\n\n")

	b.WriteString(s.Subtitle.Render("Items Identified"))
	b.WriteString("\n")
	for _, item := range in.Items {
		b.WriteString(s.Success.Render("✓ ") + s.Body.Render(item) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(s.Subtitle.Render("AI Styling Suggestions"))
	b.WriteString("\n")
	for i, sug := range in.Suggestions {
		b.WriteString(s.Accent.Render(fmt.Sprintf("%d. ", i+1)) + s.Body.Width(width-3).Render(sug) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(s.Subtitle.Render("Suitable Occasions"))
	b.WriteString("\n")
	occasions := make([]string, len(in.Occasions))
	for i, o := range in.Occasions {
		occasions[i] = s.Chip.Render(o)
	}
	b.WriteString(strings.Join(occasions, " "))
	return b.String()
}

func (p *analysisPage) overlay(int) string { return "" }

func (p *analysisPage) hints() string {
	if p.image == nil {
		return tui.RenderHintBar(tui.KeyUpDown, "browse", tui.KeyEnter, "open", "paste", "drop file", tui.KeyEsc, "back")
	}
	return tui.RenderHintBar(tui.KeyEnter, "upload different image", tui.KeyEsc, "back")
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
