package tui

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/events"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// ActivityEventMsg carries one live event from the bus.
type ActivityEventMsg struct {
	Event events.Event
}

// activityHistoryMsg carries the stored events loaded at startup.
type activityHistoryMsg struct {
	events []events.Event
}

// ActivityLog is an overlay listing the session's recorded events. It
// follows the bus live while the program runs.
type ActivityLog struct {
	bus      *events.Bus
	ctx      context.Context
	activity *events.Activity
	seen     map[string]bool
	ch       chan events.Event
	viewport viewport.Model
	visible  bool
}

// NewActivityLog creates an overlay for session. bus may be nil, in which
// case the overlay only shows a notice.
func NewActivityLog(ctx context.Context, bus *events.Bus, session string) *ActivityLog {
	return &ActivityLog{
		bus:      bus,
		ctx:      ctx,
		activity: events.NewActivity(session, 200),
		seen:     make(map[string]bool),
		ch:       make(chan events.Event, 256),
		viewport: viewport.New(viewport.WithWidth(60), viewport.WithHeight(12)),
	}
}

// Start subscribes to live events and loads history.
func (a *ActivityLog) Start() tea.Cmd {
	if a.bus == nil {
		return nil
	}
	if err := a.bus.Subscribe(a.ctx, a.activity.Session, a.ch); err != nil {
		logger.Warn("activity log disabled: %v", err)
		return nil
	}
	return tea.Batch(a.loadHistory(), a.waitForEvents())
}

func (a *ActivityLog) loadHistory() tea.Cmd {
	bus, ctx, session := a.bus, a.ctx, a.activity.Session
	return func() tea.Msg {
		history, err := bus.History(ctx, session)
		if err != nil {
			logger.Warn("loading activity history: %v", err)
			return nil
		}
		return activityHistoryMsg{events: history}
	}
}

// waitForEvents blocks for the next live event or until the program ends.
func (a *ActivityLog) waitForEvents() tea.Cmd {
	ch, ctx := a.ch, a.ctx
	return func() tea.Msg {
		select {
		case event := <-ch:
			return ActivityEventMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update folds events into the log and scrolls when visible.
func (a *ActivityLog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ActivityEventMsg:
		a.apply(msg.Event)
		a.refresh()
		return a.waitForEvents()
	case activityHistoryMsg:
		for _, e := range msg.events {
			a.apply(e)
		}
		a.refresh()
		return nil
	case tea.KeyPressMsg:
		if !a.visible {
			return nil
		}
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (a *ActivityLog) apply(e events.Event) {
	if e.ID != "" {
		if a.seen[e.ID] {
			return
		}
		a.seen[e.ID] = true
	}
	a.activity.Apply(e)
}

func (a *ActivityLog) refresh() {
	s := theme.Current().S()
	lines := a.activity.Lines()
	if len(lines) == 0 {
		a.viewport.SetContent(s.Muted.Render("No activity yet"))
		return
	}
	a.viewport.SetContent(s.Body.Render(strings.Join(lines, "\n")))
	a.viewport.GotoBottom()
}

// Toggle shows or hides the overlay.
func (a *ActivityLog) Toggle() {
	a.visible = !a.visible
	if a.visible {
		a.refresh()
	}
}

// IsVisible reports whether the overlay is shown.
func (a *ActivityLog) IsVisible() bool { return a.visible }

// Lines exposes the rendered entries.
func (a *ActivityLog) Lines() []string { return a.activity.Lines() }

// Draw renders the overlay centered over area.
func (a *ActivityLog) Draw(scr uv.Screen, area uv.Rectangle) {
	if !a.visible {
		return
	}
	width := 70
	if width > area.Dx()-4 {
		width = area.Dx() - 4
	}
	height := area.Dy() - 10
	if height < 4 {
		height = 4
	}
	a.viewport.SetWidth(width - 6)
	a.viewport.SetHeight(height)

	body := a.viewport.View()
	if a.bus == nil {
		body = theme.Current().S().Muted.Render("Event recording is disabled (events: false)")
	}
	title := "Activity"
	if a.activity.Phase != "" {
		title += " · " + a.activity.Phase
	}
	Modal{
		Title:  title,
		Body:   body,
		Footer: RenderHintBar(KeyUpDown, "scroll", "ctrl+l", "close"),
		Width:  width,
	}.Draw(scr, area)
}
