package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/styleai/internal/events"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

const (
	btnQuizBack = "← Back"
	btnQuizNext = "Next →"
	btnQuizDone = "See Recommendations →"
)

type quizPage struct {
	env          *env
	quiz         *stylist.Quiz
	chooser      *tui.Chooser
	buttons      *tui.ButtonBar
	focusButtons bool
}

func newQuizPage(e *env) *quizPage {
	return &quizPage{env: e}
}

func (p *quizPage) enter(Location) tea.Cmd {
	p.quiz = stylist.NewQuiz()
	p.showStep()
	p.env.record(events.Event{Type: events.EventTypeQuiz, Action: "started"})
	return nil
}

// showStep rebuilds the option grid for the current step.
func (p *quizPage) showStep() {
	p.chooser = tui.NewStringChooser(p.quiz.Question().Options, 2)
	p.focusButtons = false
	p.refreshButtons()
}

// refreshButtons enables Back past step one and Next once answered.
func (p *quizPage) refreshButtons() {
	next := btnQuizNext
	if p.quiz.IsLastStep() {
		next = btnQuizDone
	}
	p.buttons = tui.NewButtonBar(
		tui.Button{Label: btnQuizBack, Disabled: p.quiz.Step() == 1},
		tui.Button{Label: next, Disabled: !p.quiz.CanProceed()},
	)
	if p.quiz.CanProceed() {
		p.buttons.Focus(next)
	}
	if p.buttons.Focused() == "" {
		p.focusButtons = false
	}
}

func (p *quizPage) update(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case "tab", "shift+tab":
		p.focusButtons = !p.focusButtons && p.buttons.Focused() != ""
		return nil, true
	case "esc":
		if p.back() {
			return nil, true
		}
		return nil, false
	}

	if p.focusButtons {
		switch key {
		case "left", "h":
			p.buttons.FocusPrev()
		case "right", "l":
			p.buttons.FocusNext()
		case "up", "k":
			p.focusButtons = false
		case "enter", "space":
			if p.buttons.Focused() == btnQuizBack {
				p.back()
				return nil, true
			}
			return p.next(), true
		default:
			return nil, false
		}
		return nil, true
	}

	switch key {
	case "space", "enter":
		p.toggle(p.chooser.Current())
		return nil, true
	case "down", "j":
		if !p.chooser.Move(key) && p.buttons.Focused() != "" {
			p.focusButtons = true
		}
		return nil, true
	}
	if p.chooser.Move(key) {
		return nil, true
	}
	return nil, false
}

func (p *quizPage) toggle(option string) {
	field := p.quiz.Question().Field
	if err := p.quiz.Select(option); err != nil {
		logger.Warn("quiz: %v", err)
		return
	}
	p.env.record(events.Event{
		Type:   events.EventTypeQuiz,
		Action: "select",
		Data:   fmt.Sprintf("%s=%s", field, option),
	})
	p.refreshButtons()
}

func (p *quizPage) back() bool {
	if !p.quiz.Back() {
		return false
	}
	p.showStep()
	return true
}

// next advances the quiz. The last step navigates to the outfit gallery
// carrying the answers.
func (p *quizPage) next() tea.Cmd {
	prefs, done, err := p.quiz.Next()
	if err != nil {
		return nil
	}
	if done {
		p.env.record(events.Event{Type: events.EventTypeQuiz, Action: "completed"})
		return navigate(PathOutfits, prefs)
	}
	p.env.record(events.Event{
		Type:   events.EventTypeQuiz,
		Action: "step",
		Data:   fmt.Sprintf("%d/%d", p.quiz.Step(), p.quiz.TotalSteps()),
	})
	p.showStep()
	return nil
}

func (p *quizPage) render(width int) pageView {
	s := theme.Current().S()
	w := min(width, 80)
	q := p.quiz.Question()
	var v pageView

	var b strings.Builder
	b.WriteString(s.Muted.Render(fmt.Sprintf("Step %d of %d", p.quiz.Step(), p.quiz.TotalSteps())))
	b.WriteString("\n")
	b.WriteString(tui.RenderProgressBar(float64(p.quiz.Percent()), w))
	b.WriteString("\n\n")
	b.WriteString(s.Title.Render(q.Title))
	b.WriteString("\n")
	if q.Multi {
		b.WriteString(s.Muted.Render("Select all that apply"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	v.focusTop = lineCount(&b)
	b.WriteString(p.chooser.Render(p.quiz.IsSelected, !p.focusButtons))
	b.WriteString("\n\n")
	if p.focusButtons {
		v.focusTop = lineCount(&b)
	}
	b.WriteString(p.buttonRow())
	v.focusBottom = lineCount(&b)

	v.content = b.String()
	return v
}

// buttonRow shows the bar unfocused while the option grid has focus.
func (p *quizPage) buttonRow() string {
	if p.focusButtons {
		return p.buttons.Render()
	}
	s := theme.Current().S()
	back := s.Button.Render(btnQuizBack)
	if p.quiz.Step() == 1 {
		back = s.ButtonDisabled.Render(btnQuizBack)
	}
	label := btnQuizNext
	if p.quiz.IsLastStep() {
		label = btnQuizDone
	}
	next := s.ButtonDisabled.Render(label)
	if p.quiz.CanProceed() {
		next = s.Button.Render(label)
	}
	return back + next
}

func (p *quizPage) overlay(int) string { return "" }

func (p *quizPage) hints() string {
	if p.focusButtons {
		return tui.RenderHintBar(tui.KeyLeftRt, "button", tui.KeyEnter, "press", tui.KeyTab, "options", tui.KeyEsc, "back")
	}
	return tui.RenderHintBar(tui.KeyArrows, "move", tui.KeySpace, "select", tui.KeyTab, "buttons", tui.KeyEsc, "back")
}
