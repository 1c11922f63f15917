package browse

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/events"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui"
)

// page is one routed screen. Pages are rebuilt on every visit, so state
// does not survive navigating away.
type page interface {
	// enter is called each time the router lands on the page.
	enter(loc Location) tea.Cmd
	// update handles a key and reports whether it was consumed.
	update(msg tea.KeyPressMsg) (tea.Cmd, bool)
	// render returns the scrollable page body for width.
	render(width int) pageView
	// overlay returns a modal drawn over the page, or "".
	overlay(width int) string
	hints() string
}

// leaver is implemented by pages that hold resources while visible.
type leaver interface {
	leave()
}

// pageView is rendered page content plus the line range holding focus,
// which the scroller keeps on screen.
type pageView struct {
	content     string
	focusTop    int
	focusBottom int
}

// lineCount is the index the next written line will have.
func lineCount(b *strings.Builder) int {
	return strings.Count(b.String(), "\n")
}

// navigateMsg asks the model to move to Path.
type navigateMsg struct {
	Path  string
	State any
}

func navigate(path string, state any) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{Path: path, State: state}
	}
}

// scanProgressMsg and scanDoneMsg are posted by the image analysis task.
type scanProgressMsg struct {
	Seq      int
	Progress stylist.Progress
}

type scanDoneMsg struct {
	Seq int
}

// imageLoadedMsg carries a decoded image for the analysis page.
type imageLoadedMsg struct {
	Image *stylist.CapturedImage
	Err   error
}

func loadImage(path string) tea.Cmd {
	return func() tea.Msg {
		img, err := capture.LoadFile(path, stylist.SourceFile)
		return imageLoadedMsg{Image: img, Err: err}
	}
}

func loadDrop(text string) tea.Cmd {
	return func() tea.Msg {
		img, err := capture.LoadDrop(text)
		if errors.Is(err, capture.ErrNoPath) {
			err = capture.ErrNotImage
		}
		return imageLoadedMsg{Image: img, Err: err}
	}
}

// env is what pages share with the model.
type env struct {
	ctx      context.Context
	catalog  *catalog.Catalog
	scan     stylist.TaskConfig
	program  tui.ProgramSender
	recorder *events.Recorder
	session  string
	startDir string
	toast    *tui.Toast
	started  []*stylist.Task
}

func (e *env) send(msg tea.Msg) {
	if e.program != nil {
		e.program.Send(msg)
	}
}

// record publishes an event for this session when recording is enabled.
func (e *env) record(ev events.Event) {
	if e.recorder == nil {
		return
	}
	ev.Session = e.session
	e.recorder.Record(ev)
}

// startTask runs a progress task whose callbacks post messages tagged
// with seq.
func (e *env) startTask(seq int) *stylist.Task {
	t := stylist.StartTask(e.ctx, e.scan, stylist.Callbacks{
		OnProgress: func(p stylist.Progress) {
			e.send(scanProgressMsg{Seq: seq, Progress: p})
		},
		OnComplete: func() {
			e.send(scanDoneMsg{Seq: seq})
		},
	})
	e.started = append(e.started, t)
	return t
}

// scroller keeps a focused line range inside a fixed-height window.
type scroller struct {
	offset int
}

func (s *scroller) reset() {
	s.offset = 0
}

func (s *scroller) window(v pageView, height int) string {
	lines := strings.Split(v.content, "\n")
	if height <= 0 {
		return ""
	}
	if v.focusBottom >= s.offset+height {
		s.offset = v.focusBottom - height + 1
	}
	if v.focusTop < s.offset {
		s.offset = v.focusTop
	}
	s.offset = max(0, min(s.offset, len(lines)-height))
	end := min(len(lines), s.offset+height)
	return strings.Join(lines[s.offset:end], "\n")
}
