// Package studio is the single-screen wizard: home, photo upload,
// preferences, simulated analysis and results, with the AR preview and chat
// overlays.
package studio

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/config"
	"github.com/mark3labs/styleai/internal/events"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui"
	"github.com/mark3labs/styleai/internal/tui/theme"
)

// Options configures the studio program.
type Options struct {
	Task     stylist.TaskConfig // zero value uses the configured defaults
	Catalog  *catalog.Catalog   // nil uses the embedded catalog
	Camera   capture.Camera     // nil disables "Use Camera"
	Bus      *events.Bus        // nil disables event recording
	StartDir string             // file picker root; "" is the working directory
}

// Upload focus targets.
type uploadFocus int

const (
	focusPicker uploadFocus = iota
	focusPath
	focusUploadButtons
)

// Preference focus targets, in tab order.
const (
	prefGender = iota
	prefStyle
	prefOccasion
	prefBudget
	prefButtons
	prefSections
)

// Button labels double as action identifiers.
const (
	btnGetStarted   = "Get Started"
	btnAssistant    = "Style Assistant"
	btnUseCamera    = "Use Camera"
	btnCapture      = "Capture Photo"
	btnCancel       = "Cancel"
	btnBackHome     = "← Back to Home"
	btnBack         = "← Back"
	btnAnalyze      = "Analyze My Style"
	btnARPreview    = "AR Preview"
	btnTryAnother   = "Try Another Photo"
	btnSaveResults  = "Save Results"
	btnClosePreview = "Close Preview"
)

// Model is the studio's bubbletea model. Update is the single owner of the
// wizard; background work reports back through messages.
type Model struct {
	ctx      context.Context
	opts     Options
	catalog  *catalog.Catalog
	wizard   *stylist.Wizard
	recorder *events.Recorder
	program  tui.ProgramSender

	width    int
	height   int
	layout   tui.Layout
	header   *tui.Header
	footer   *tui.Footer
	status   *tui.StatusBar
	toast    *tui.Toast
	activity *tui.ActivityLog

	homeButtons *tui.ButtonBar

	picker        *tui.FilePicker
	pathInput     textinput.Model
	uploadFocus   uploadFocus
	uploadButtons *tui.ButtonBar
	camera        *capture.Session
	cameraPending bool
	cameraHint    string
	cameraSeq     int
	cameraAbort   context.CancelFunc

	prefFocus   int
	choosers    map[stylist.Field]*tui.Chooser
	prefButtons *tui.ButtonBar

	task    *stylist.Task
	started []*stylist.Task
	seq     int
	spinner tui.Spinner

	results       viewport.Model
	resultButtons *tui.ButtonBar
	arView        int
	arButtons     *tui.ButtonBar

	chatInput textinput.Model
	chat      []chatMessage

	quitting bool
}

// New builds a studio model on the home phase.
func New(ctx context.Context, opts Options) *Model {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Task.Interval <= 0 || opts.Task.Step <= 0 {
		opts.Task = config.Default().AnalysisTask()
	}

	m := &Model{
		ctx:     ctx,
		opts:    opts,
		catalog: opts.Catalog,
		wizard:  stylist.NewWizard(),
		header:  tui.NewHeader("Powered by Advanced AI"),
		footer:  tui.NewFooter(),
		toast:   tui.NewToast(),
		spinner: tui.NewSpinner(spinner.Dot),
		results: viewport.New(viewport.WithWidth(80), viewport.WithHeight(20)),
	}
	m.status = tui.NewStatusBar(m.wizard.Session(), opts.Bus != nil)
	m.activity = tui.NewActivityLog(ctx, opts.Bus, m.wizard.Session())
	if opts.Bus != nil {
		m.recorder = events.NewRecorder(opts.Bus)
		m.wizard.SetObserver(m.recorder)
	}

	m.homeButtons = tui.NewButtonBar(tui.Button{Label: btnGetStarted}, tui.Button{Label: btnAssistant})
	m.picker = tui.NewFilePicker(opts.StartDir)
	m.pathInput = tui.NewTextInput("path/to/photo.jpg", 50)
	m.uploadButtons = tui.NewButtonBar()
	m.refreshUploadButtons()

	m.choosers = map[stylist.Field]*tui.Chooser{
		stylist.FieldGender:   tui.NewChooser(stylist.GenderOptions, 3),
		stylist.FieldStyle:    tui.NewChooser(stylist.StyleOptions, 3),
		stylist.FieldOccasion: tui.NewChooser(stylist.OccasionOptions, 1),
		stylist.FieldBudget:   tui.NewChooser(stylist.BudgetOptions, 1),
	}
	m.prefButtons = tui.NewButtonBar(tui.Button{Label: btnBack}, tui.Button{Label: btnAnalyze, Disabled: true})
	m.resultButtons = tui.NewButtonBar(
		tui.Button{Label: btnARPreview},
		tui.Button{Label: btnTryAnother},
		tui.Button{Label: btnSaveResults},
	)
	m.arButtons = tui.NewButtonBar(tui.Button{Label: btnClosePreview})

	m.chatInput = tui.NewTextInput("Ask me anything...", 36)
	m.chat = []chatMessage{{text: chatGreeting}}

	m.setSize(100, 30)
	return m
}

// SetProgram stores the sender used by background callbacks.
func (m *Model) SetProgram(p tui.ProgramSender) {
	m.program = p
}

// Wizard exposes the state container, mostly for tests.
func (m *Model) Wizard() *stylist.Wizard {
	return m.wizard
}

// Init starts the activity feed.
func (m *Model) Init() tea.Cmd {
	return m.activity.Start()
}

// Update routes messages. Global keys first, then overlays, then the
// current phase.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.PasteMsg:
		return m, m.handlePaste(msg)

	case tea.MouseClickMsg:
		return m, m.handleClick(msg)

	case tea.MouseWheelMsg:
		if m.wizard.InPhase(stylist.PhaseResults) && !m.wizard.AROpen() {
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		// Each spinner ignores ticks carrying another spinner's ID.
		var cmds []tea.Cmd
		if m.wizard.InPhase(stylist.PhaseAnalyzing) || m.cameraPending {
			cmds = append(cmds, m.spinner.Update(msg))
		}
		if m.task != nil {
			cmds = append(cmds, m.status.Spinner().Update(msg))
		}
		return m, tea.Batch(cmds...)

	case progressMsg:
		return m, m.handleProgress(msg)

	case analysisDoneMsg:
		return m, m.handleAnalysisDone(msg)

	case imageLoadedMsg:
		return m, m.handleImageLoaded(msg)

	case tui.FileSelectedMsg:
		m.cameraHint = ""
		return m, loadImage(msg.Path, stylist.SourceFile)

	case cameraOpenedMsg:
		return m, m.handleCameraOpened(msg)

	case cameraCapturedMsg:
		return m, m.handleCameraCaptured(msg)

	case tui.ToastDismissMsg:
		return m, m.toast.Update(msg)

	case tui.ActivityEventMsg:
		return m, m.activity.Update(msg)
	}

	// History and other activity internals.
	return m, m.activity.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c":
		m.quitting = true
		m.teardown()
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

	if m.wizard.AROpen() {
		return m.updateAR(msg)
	}
	if m.wizard.ChatOpen() {
		return m.updateChat(msg)
	}

	switch m.wizard.Phase() {
	case stylist.PhaseHome:
		return m.updateHome(msg)
	case stylist.PhaseUpload:
		return m.updateUpload(msg)
	case stylist.PhasePreferences:
		return m.updatePreferences(msg)
	case stylist.PhaseResults:
		return m.updateResults(msg)
	}
	return nil
}

// handlePaste treats pasted text on the upload screen as a dropped file. In
// the chat panel it is typed into the input.
func (m *Model) handlePaste(msg tea.PasteMsg) tea.Cmd {
	content := tui.SanitizePaste(msg.Content)
	if m.wizard.ChatOpen() {
		m.chatInput.SetValue(m.chatInput.Value() + tui.CollapseNewlines(content))
		m.chatInput.CursorEnd()
		return nil
	}
	if !m.wizard.InPhase(stylist.PhaseUpload) || content == "" {
		return nil
	}
	if m.uploadFocus == focusPath {
		m.pathInput.SetValue(tui.CollapseNewlines(content))
		m.pathInput.CursorEnd()
		return nil
	}
	return loadDrop(content)
}

// handleClick closes the AR modal when the click lands outside it.
func (m *Model) handleClick(msg tea.MouseClickMsg) tea.Cmd {
	if !m.wizard.AROpen() {
		return nil
	}
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	if !uv.Pos(mouse.X, mouse.Y).In(m.arRect(m.layout.Area)) {
		m.wizard.ToggleAR()
	}
	return nil
}

// beginAnalysis starts the progress task. Callbacks run on the task
// goroutine and only post messages.
func (m *Model) beginAnalysis() tea.Cmd {
	if err := m.wizard.BeginAnalysis(); err != nil {
		logger.Warn("analysis not started: %v", err)
		return nil
	}
	m.cancelTask()
	m.seq++
	seq := m.seq
	program := m.program
	m.task = stylist.StartTask(m.ctx, m.opts.Task, stylist.Callbacks{
		OnProgress: func(p stylist.Progress) {
			if program != nil {
				program.Send(progressMsg{Seq: seq, Progress: p})
			}
		},
		OnComplete: func() {
			if program != nil {
				program.Send(analysisDoneMsg{Seq: seq})
			}
		},
	})
	m.started = append(m.started, m.task)
	m.status.SetBusy(true)
	return tea.Batch(m.spinner.Tick(), m.status.Spinner().Tick())
}

func (m *Model) handleProgress(msg progressMsg) tea.Cmd {
	if msg.Seq != m.seq {
		return nil
	}
	if m.wizard.ApplyProgress(msg.Progress) {
		m.record(events.Event{
			Type:   events.EventTypeProgress,
			Action: "tick",
			Data:   fmt.Sprintf("%.0f%% %s", displayPercent(msg.Progress.Percent), msg.Progress.Message),
		})
	}
	return nil
}

func (m *Model) handleAnalysisDone(msg analysisDoneMsg) tea.Cmd {
	if msg.Seq != m.seq {
		return nil
	}
	m.task = nil
	m.status.SetBusy(false)
	if m.wizard.Complete(m.catalog.Result()) {
		m.resultButtons.Focus(btnARPreview)
		m.refreshResults()
		m.results.GotoTop()
	}
	return nil
}

// cancelTask stops the running analysis without waiting. Waiting here could
// deadlock: the task may be blocked in Send while Update runs.
func (m *Model) cancelTask() {
	if m.task != nil {
		m.task.Cancel()
		m.task = nil
	}
	m.status.SetBusy(false)
}

// releaseCamera cancels any live camera session.
func (m *Model) releaseCamera() {
	if m.camera != nil {
		if err := m.camera.Cancel(); err != nil {
			logger.Warn("releasing camera: %v", err)
		}
		m.camera = nil
	}
	m.abortCameraOpen()
	m.refreshUploadButtons()
}

// abortCameraOpen drops any in-flight open. Its result is ignored and its
// session is released by the cancelled context.
func (m *Model) abortCameraOpen() {
	if m.cameraAbort != nil {
		m.cameraAbort()
		m.cameraAbort = nil
	}
	m.cameraSeq++
	m.cameraPending = false
}

// teardown releases everything the model owns. It is safe to call more
// than once.
func (m *Model) teardown() {
	m.cancelTask()
	if m.camera != nil {
		_ = m.camera.Close()
		m.camera = nil
	}
	m.abortCameraOpen()
}

// record publishes a non-transition event for this session.
func (m *Model) record(e events.Event) {
	if m.recorder == nil {
		return
	}
	e.Session = m.wizard.Session()
	m.recorder.Record(e)
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.layout = tui.CalculateLayout(width, height)
	m.header.SetLayoutMode(m.layout.Mode)
	m.footer.SetLayoutMode(m.layout.Mode)

	main := m.layout.Main
	m.picker.SetHeight(max(3, main.Dy()-16))
	m.pathInput.SetWidth(max(20, min(60, main.Dx()-10)))
	m.results.SetWidth(main.Dx())
	m.results.SetHeight(max(3, main.Dy()-2))
	if m.wizard.Result() != nil {
		m.refreshResults()
	}
}

// View renders the current phase and overlays onto a screen buffer.
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
	view.Cursor = m.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)
	return view
}

// Draw renders every component to scr.
func (m *Model) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	phase := m.wizard.Phase()
	m.header.SetRight(phaseCaption(phase))
	m.status.SetLocation(phase.String())
	m.footer.SetHints(m.hints())

	m.header.Draw(scr, m.layout.Header)
	m.status.Draw(scr, m.layout.Status)
	m.footer.Draw(scr, m.layout.Footer)

	switch phase {
	case stylist.PhaseHome:
		m.drawHome(scr, m.layout.Main)
	case stylist.PhaseUpload:
		m.drawUpload(scr, m.layout.Main)
	case stylist.PhasePreferences:
		m.drawPreferences(scr, m.layout.Main)
	case stylist.PhaseAnalyzing:
		m.drawAnalyzing(scr, m.layout.Main)
	case stylist.PhaseResults:
		m.drawResults(scr, m.layout.Main)
	}

	if m.wizard.ChatOpen() {
		m.drawChat(scr, m.layout.Main)
	}
	if m.wizard.AROpen() {
		m.drawAR(scr, area)
	}
	m.activity.Draw(scr, area)
	m.toast.Draw(scr, area)
	// Inputs render a virtual cursor.
	return nil
}

// phaseCaption is the header's right-hand text.
func phaseCaption(p stylist.Phase) string {
	switch p {
	case stylist.PhaseUpload:
		return "Step 1 of 4 · Photo"
	case stylist.PhasePreferences:
		return "Step 2 of 4 · Preferences"
	case stylist.PhaseAnalyzing:
		return "Step 3 of 4 · Analysis"
	case stylist.PhaseResults:
		return "Step 4 of 4 · Results"
	}
	return "Award Winning"
}

// hints is the footer hint bar for the current state.
func (m *Model) hints() string {
	switch {
	case m.activity.IsVisible():
		return tui.RenderHintBar(tui.KeyUpDown, "scroll", "ctrl+l", "close")
	case m.wizard.AROpen():
		return tui.RenderHintBar(tui.KeyLeftRt, "view", tui.KeyEsc, "close")
	case m.wizard.ChatOpen():
		return tui.RenderHintBar(tui.KeyEnter, "send", tui.KeyEsc, "close chat")
	}

	switch m.wizard.Phase() {
	case stylist.PhaseHome:
		return tui.RenderHintBar(tui.KeyLeftRt, "select", tui.KeyEnter, "go", "c", "chat", "q", "quit")
	case stylist.PhaseUpload:
		if m.camera != nil {
			return tui.RenderHintBar(tui.KeyEnter, "capture", tui.KeyEsc, "cancel")
		}
		return tui.RenderHintBar(tui.KeyTab, "focus", tui.KeyEnter, "open", "paste", "drop file", tui.KeyEsc, "home")
	case stylist.PhasePreferences:
		return tui.RenderHintBar(tui.KeyTab, "next field", tui.KeyArrows, "move", tui.KeySpace, "select", tui.KeyEsc, "back")
	case stylist.PhaseAnalyzing:
		return tui.RenderHintBar("ctrl+l", "activity") + "  " + tui.HintQuit()
	case stylist.PhaseResults:
		return tui.RenderHintBar(tui.KeyUpDown, "scroll", tui.KeyTab, "action", "a", "AR preview", tui.KeyEnter, "go")
	}
	return tui.HintQuit()
}

// displayPercent clamps progress for display; the raw value can pass 100.
func displayPercent(p float64) float64 {
	return min(p, 100)
}

// Run starts the studio program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	m.SetProgram(p)

	defer func() {
		m.teardown()
		// Cancelled tasks may still be inside a callback; wait them out.
		for _, t := range m.started {
			t.Stop()
		}
		if m.recorder != nil {
			m.recorder.Close()
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("studio failed: %w", err)
	}
	return nil
}
