// Package browse is the routed variant: a navigation bar over home, style
// quiz, image analysis, outfit gallery and trend pages.
package browse

import (
	"context"
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/google/uuid"
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/config"
	"github.com/mark3labs/styleai/internal/events"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// Options configures the browse program.
type Options struct {
	Scan      stylist.TaskConfig // zero value uses the configured scan delay
	Catalog   *catalog.Catalog   // nil uses the embedded catalog
	Bus       *events.Bus        // nil disables event recording
	StartPage string             // initial path; "" is home
	StartDir  string             // file picker root; "" is the working directory
}

// Model is the browse program's bubbletea model.
type Model struct {
	env      *env
	router   *Router
	pages    map[string]page
	notFound *notFoundPage
	page     page

	width    int
	height   int
	layout   tui.Layout
	header   *tui.Header
	footer   *tui.Footer
	status   *tui.StatusBar
	activity *tui.ActivityLog
	scroll   scroller

	analysis *analysisPage
	quitting bool
}

// New builds the model and navigates to the start page.
func New(ctx context.Context, opts Options) *Model {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Scan.Interval <= 0 || opts.Scan.Step <= 0 {
		opts.Scan = config.Default().ScanTask()
	}
	if opts.StartPage == "" {
		opts.StartPage = PathHome
	}

	e := &env{
		ctx:      ctx,
		catalog:  opts.Catalog,
		scan:     opts.Scan,
		session:  uuid.NewString(),
		startDir: opts.StartDir,
		toast:    tui.NewToast(),
	}
	if opts.Bus != nil {
		e.recorder = events.NewRecorder(opts.Bus)
	}

	m := &Model{
		env:      e,
		router:   NewRouter(Routes()),
		notFound: &notFoundPage{},
		header:   tui.NewHeader("Your Personal AI Stylist"),
		footer:   tui.NewFooter(),
		status:   tui.NewStatusBar(e.session, opts.Bus != nil),
		activity: tui.NewActivityLog(ctx, opts.Bus, e.session),
	}
	m.analysis = newAnalysisPage(e)
	m.pages = map[string]page{
		PathHome:     newHomePage(e),
		PathQuiz:     newQuizPage(e),
		PathAnalysis: m.analysis,
		PathOutfits:  newOutfitsPage(e),
		PathTrends:   newTrendsPage(e),
	}

	links := make([]tui.NavLink, 0, len(m.router.Routes()))
	for _, r := range m.router.Routes() {
		links = append(links, tui.NavLink{Label: r.Title, Path: r.Path})
	}
	m.header.SetLinks(links)

	m.setSize(100, 30)
	m.Navigate(opts.StartPage, nil)
	return m
}

// SetProgram stores the sender used by background callbacks.
func (m *Model) SetProgram(p tui.ProgramSender) {
	m.env.program = p
}

// Router exposes the router, mostly for tests.
func (m *Model) Router() *Router {
	return m.router
}

// Session returns the ID events are recorded under.
func (m *Model) Session() string {
	return m.env.session
}

// Navigate moves to path and enters its page. Unknown paths show the
// not-found page.
func (m *Model) Navigate(path string, state any) tea.Cmd {
	if l, ok := m.page.(leaver); ok {
		l.leave()
	}
	from := m.router.Current().Path
	loc, ok := m.router.Navigate(path, state)
	return m.show(from, loc, ok, "navigate")
}

func (m *Model) back() tea.Cmd {
	if !m.router.CanGoBack() {
		return nil
	}
	if l, ok := m.page.(leaver); ok {
		l.leave()
	}
	from := m.router.Current().Path
	loc, _ := m.router.Back()
	_, ok := m.router.Match(loc.Path)
	return m.show(from, loc, ok, "back")
}

func (m *Model) show(from string, loc Location, known bool, action string) tea.Cmd {
	m.page = m.notFound
	if known {
		m.page = m.pages[loc.Path]
	}
	m.scroll.reset()
	m.header.SetActive(loc.Path)
	m.status.SetLocation(loc.Path)
	m.env.record(events.Event{
		Type:   events.EventTypeRoute,
		Action: action,
		From:   from,
		To:     loc.Path,
	})
	return m.page.enter(loc)
}

// Init starts the activity feed.
func (m *Model) Init() tea.Cmd {
	return m.activity.Start()
}

// Update routes messages: global keys, the activity overlay, then the page.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.PasteMsg:
		if m.page == m.analysis {
			return m, m.analysis.paste(tui.SanitizePaste(msg.Content))
		}
		return m, nil

	case tea.MouseClickMsg:
		return m, m.handleClick(msg)

	case navigateMsg:
		return m, m.Navigate(msg.Path, msg.State)

	case tui.FileSelectedMsg:
		return m, m.analysis.fileSelected(msg.Path)

	case imageLoadedMsg:
		if m.page != m.analysis {
			return m, nil
		}
		cmd := m.analysis.imageLoaded(msg)
		m.status.SetBusy(m.analysis.scanning())
		if m.analysis.scanning() {
			cmd = tea.Batch(cmd, m.status.Spinner().Tick())
		}
		return m, cmd

	case scanProgressMsg:
		m.analysis.scanProgress(msg)
		return m, nil

	case scanDoneMsg:
		m.analysis.scanDone(msg)
		m.status.SetBusy(m.analysis.scanning())
		return m, nil

	case spinner.TickMsg:
		if !m.analysis.scanning() {
			return m, nil
		}
		return m, tea.Batch(m.analysis.tick(msg), m.status.Spinner().Update(msg))

	case tui.ToastDismissMsg:
		return m, m.env.toast.Update(msg)

	case tui.ActivityEventMsg:
		return m, m.activity.Update(msg)
	}

	return m, m.activity.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c":
		m.quit()
		return tea.Quit
	case "ctrl+l":
		m.activity.Toggle()
		return nil
	}

	if m.activity.IsVisible() {
		if key == "esc" {
			m.activity.Toggle()
			return nil
		}
		return m.activity.Update(msg)
	}

	cmd, handled := m.page.update(msg)
	// Upload Different Image cancels a running scan.
	m.status.SetBusy(m.analysis.scanning())
	if handled {
		return cmd
	}

	switch key {
	case "q":
		m.quit()
		return tea.Quit
	case "esc", "backspace":
		return m.back()
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.router.Routes()) {
		return m.Navigate(m.router.Routes()[n-1].Path, nil)
	}
	return nil
}

// handleClick follows nav bar links.
func (m *Model) handleClick(msg tea.MouseClickMsg) tea.Cmd {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft || m.activity.IsVisible() {
		return nil
	}
	if path := m.header.LinkAtPosition(mouse.X, mouse.Y); path != "" {
		return m.Navigate(path, nil)
	}
	return nil
}

func (m *Model) quit() {
	m.quitting = true
	m.analysis.cancel()
	m.status.SetBusy(false)
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.layout = tui.CalculateLayout(width, height)
	m.header.SetLayoutMode(m.layout.Mode)
	m.footer.SetLayoutMode(m.layout.Mode)
	m.analysis.setHeight(m.layout.Main.Dy() - 14)
}

// View renders the current page onto a screen buffer.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if m.quitting {
		view.AltScreen = false
		view.MouseMode = 0
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(m.width, m.height)
	m.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)
	return view
}

// Draw renders the chrome, the current page and overlays to scr.
func (m *Model) Draw(scr uv.Screen, area uv.Rectangle) {
	m.footer.SetHints(m.hints())
	m.header.Draw(scr, m.layout.Header)
	m.status.Draw(scr, m.layout.Status)
	m.footer.Draw(scr, m.layout.Footer)

	main := m.layout.Main
	body := m.scroll.window(m.page.render(main.Dx()), main.Dy())
	tui.DrawText(scr, main, body)

	if overlay := m.page.overlay(area.Dx()); overlay != "" {
		tui.DrawCentered(scr, area, overlay)
	}
	for _, d := range []tui.Drawable{m.activity, m.env.toast} {
		d.Draw(scr, area)
	}
}

func (m *Model) hints() string {
	if m.activity.IsVisible() {
		return tui.RenderHintBar(tui.KeyUpDown, "scroll", "ctrl+l", "close")
	}
	return m.page.hints()
}

// Run starts the browse program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	m.SetProgram(p)

	defer func() {
		m.analysis.cancel()
		for _, t := range m.env.started {
			t.Stop()
		}
		if m.env.recorder != nil {
			m.env.recorder.Close()
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}
	return nil
}
