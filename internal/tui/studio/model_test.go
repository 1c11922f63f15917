package studio

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestModel(t *testing.T, opts Options) (*Model, *testfixtures.Sender) {
	t.Helper()
	if opts.Task.Interval == 0 {
		opts.Task = testfixtures.FastTask()
	}
	if opts.StartDir == "" {
		opts.StartDir = t.TempDir()
	}
	m := New(context.Background(), opts)
	sender := testfixtures.NewSender()
	m.SetProgram(sender)
	m.Update(tea.WindowSizeMsg{Width: testfixtures.TestTermWidth, Height: testfixtures.TestTermHeight})
	return m, sender
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func keyMsg(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+l":
		return tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

// toPreferences drives the model from home to the preference form.
func toPreferences(t *testing.T, m *Model) {
	t.Helper()
	press(m, "enter")
	require.Equal(t, stylist.PhaseUpload, m.Wizard().Phase())
	m.Update(imageLoadedMsg{Image: testfixtures.TestImage(stylist.SourceFile)})
	require.Equal(t, stylist.PhasePreferences, m.Wizard().Phase())
}

// choosePreferences selects female / classic / work / mid with the keyboard.
func choosePreferences(m *Model) {
	// Gender: Female.
	press(m, "enter")
	// Style grid: Classic sits below and right of Casual.
	press(m, "tab", "down", "right", "right", "enter")
	// Dropdowns: the first press picks the highlighted option.
	press(m, "tab", "right", "right")
	press(m, "tab", "right", "right")
}

func render(m *Model) string {
	return testfixtures.Render(func(scr uv.Screen, area uv.Rectangle) {
		m.Draw(scr, area)
	})
}

// cameraOpened runs the device open batched by startCamera.
func cameraOpened(t *testing.T, cmd tea.Cmd) cameraOpenedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "startCamera batches the open with a spinner tick")
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(cameraOpenedMsg); ok {
			return msg
		}
	}
	t.Fatal("no camera open in batch")
	return cameraOpenedMsg{}
}

func isDone(msg tea.Msg) bool {
	_, ok := msg.(analysisDoneMsg)
	return ok
}

func TestModel_ExampleScenario(t *testing.T) {
	defer goleak.VerifyNone(t)

	m, sender := newTestModel(t, Options{})
	toPreferences(t, m)
	choosePreferences(m)

	require.Equal(t, testfixtures.ExamplePreferences, m.Wizard().Preferences())
	require.True(t, m.Wizard().CanAnalyze())
	require.Equal(t, btnAnalyze, m.prefButtons.Focused())

	press(m, "tab")
	require.Equal(t, prefButtons, m.prefFocus)
	press(m, "enter")
	require.Equal(t, stylist.PhaseAnalyzing, m.Wizard().Phase())
	assert.Contains(t, render(m), "Analyzing Your Style")

	sender.Pump(t, func(msg tea.Msg) { m.Update(msg) }, isDone)
	m.started[0].Stop()

	require.Equal(t, stylist.PhaseResults, m.Wizard().Phase())
	result := m.Wizard().Result()
	require.NotNil(t, result)
	assert.Equal(t, 94, result.SkinTone.Confidence)
	assert.Len(t, result.Recommendations.Outfits, 4)
	assert.Equal(t, 7, m.Wizard().Progress().Tick)
	assert.True(t, m.Wizard().Progress().Done)

	out := render(m)
	assert.Contains(t, out, "Your Perfect Style")
	assert.Contains(t, out, "Medium Warm")
	assert.Contains(t, out, "Try Another Photo")
}

func TestModel_AnalyzeDisabledUntilComplete(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, Options{})
	toPreferences(t, m)
	press(m, "enter") // gender only

	m.prefFocus = prefButtons
	require.Equal(t, btnBack, m.prefButtons.Focused())
	press(m, "right")
	require.Equal(t, btnBack, m.prefButtons.Focused(), "disabled analyze button must not take focus")
	press(m, "enter")
	require.Equal(t, stylist.PhaseUpload, m.Wizard().Phase(), "back keeps the form reachable")
	require.Equal(t, "female", m.Wizard().Selected(stylist.FieldGender))
}

func TestModel_StaleMessagesDropped(t *testing.T) {
	m, sender := newTestModel(t, Options{})
	toPreferences(t, m)
	choosePreferences(m)
	require.NotNil(t, m.beginAnalysis())

	stale := m.seq - 1
	m.Update(progressMsg{Seq: stale, Progress: stylist.Progress{Tick: 3, Percent: 42.9}})
	assert.NotEqual(t, 42.9, m.Wizard().Progress().Percent)
	m.Update(analysisDoneMsg{Seq: stale})
	assert.Equal(t, stylist.PhaseAnalyzing, m.Wizard().Phase())

	sender.Pump(t, func(msg tea.Msg) { m.Update(msg) }, isDone)
	m.started[0].Stop()
	assert.Equal(t, stylist.PhaseResults, m.Wizard().Phase())
}

func TestModel_TryAnotherPhotoResets(t *testing.T) {
	m, sender := newTestModel(t, Options{})
	toPreferences(t, m)
	choosePreferences(m)
	m.beginAnalysis()
	sender.Pump(t, func(msg tea.Msg) { m.Update(msg) }, isDone)
	m.started[0].Stop()

	m.resultButtons.Focus(btnTryAnother)
	press(m, "enter")

	w := m.Wizard()
	assert.Equal(t, stylist.PhaseUpload, w.Phase())
	assert.False(t, w.HasImage())
	assert.Equal(t, stylist.Preferences{}, w.Preferences())
	assert.Nil(t, w.Result())
	assert.Zero(t, w.Progress().Percent)
}

func TestModel_QuitCancelsRunningAnalysis(t *testing.T) {
	defer goleak.VerifyNone(t)

	opts := Options{Task: testfixtures.FastTask()}
	opts.Task.Interval = 50 * opts.Task.Interval
	m, _ := newTestModel(t, opts)
	toPreferences(t, m)
	choosePreferences(m)
	m.beginAnalysis()
	task := m.task
	require.NotNil(t, task)

	cmd := press(m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.Nil(t, m.task)
	assert.True(t, m.quitting)

	// Cancel never blocks; Stop waits for the goroutine.
	task.Stop()
	assert.False(t, task.Completed())
}

func TestModel_NonImageIgnoredSilently(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, Options{})
	press(m, "enter")

	path := testfixtures.WriteText(t, t.TempDir(), "notes.txt")
	msg := loadImage(path, stylist.SourceFile)()
	loaded := msg.(imageLoadedMsg)
	require.ErrorIs(t, loaded.Err, capture.ErrNotImage)

	m.Update(loaded)
	assert.Equal(t, stylist.PhaseUpload, m.Wizard().Phase())
	assert.False(t, m.Wizard().HasImage())
	assert.Empty(t, m.cameraHint)
}

func TestModel_PasteDropsImage(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, Options{})
	press(m, "enter")

	path := testfixtures.WritePNG(t, t.TempDir(), "my photo.png")
	escaped := strings.ReplaceAll(path, " ", `\ `)
	_, cmd := m.Update(tea.PasteMsg{Content: escaped + "\n"})
	require.NotNil(t, cmd)

	m.Update(cmd())
	require.Equal(t, stylist.PhasePreferences, m.Wizard().Phase())
	img := m.Wizard().Image()
	assert.Equal(t, stylist.SourceDrop, img.Source)
	assert.Equal(t, 4, img.Width)
}

func TestModel_PathInputLoadsFile(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, Options{})
	press(m, "enter", "tab")
	require.Equal(t, focusPath, m.uploadFocus)

	path := testfixtures.WritePNG(t, t.TempDir(), "me.png")
	m.pathInput.SetValue(path)
	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, stylist.PhasePreferences, m.Wizard().Phase())
	assert.Equal(t, stylist.SourceFile, m.Wizard().Image().Source)
}

func TestModel_CameraCapture(t *testing.T) {
	t.Parallel()

	cam := testfixtures.NewCamera()
	m, _ := newTestModel(t, Options{Camera: cam})
	press(m, "enter")

	cmd := m.startCamera()
	require.True(t, m.cameraPending)
	m.Update(cameraOpened(t, cmd))
	require.NotNil(t, m.camera)
	assert.Contains(t, render(m), "Camera live")

	cmd = press(m, "enter")
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, stylist.PhasePreferences, m.Wizard().Phase())
	assert.Equal(t, stylist.SourceCamera, m.Wizard().Image().Source)
	assert.Nil(t, m.camera)
	assert.Equal(t, 1, cam.Stream().Stops())
}

func TestModel_CameraCancelReleasesTracks(t *testing.T) {
	t.Parallel()

	cam := testfixtures.NewCamera()
	m, _ := newTestModel(t, Options{Camera: cam})
	press(m, "enter")
	m.Update(cameraOpened(t, m.startCamera()))
	require.NotNil(t, m.camera)
	session := m.camera

	press(m, "esc")
	assert.Nil(t, m.camera)
	assert.True(t, session.Released())
	assert.Equal(t, stylist.PhaseUpload, m.Wizard().Phase())

	// Teardown after cancel must not stop the track again.
	m.teardown()
	assert.Equal(t, 1, cam.Stream().Stops())
}

func TestModel_CameraErrorShowsHint(t *testing.T) {
	t.Parallel()

	cam := testfixtures.NewCamera()
	cam.OpenErr = testfixtures.ErrNoDevice
	m, _ := newTestModel(t, Options{Camera: cam})
	press(m, "enter")

	m.Update(cameraOpened(t, m.startCamera()))

	assert.Equal(t, stylist.PhaseUpload, m.Wizard().Phase())
	assert.Nil(t, m.camera)
	assert.False(t, m.cameraPending)
	assert.Equal(t, cameraHintText, m.cameraHint)
	assert.Contains(t, render(m), "Camera unavailable")
}

func TestModel_QuitWhileCameraOpening(t *testing.T) {
	t.Parallel()

	cam := testfixtures.NewCamera()
	m, _ := newTestModel(t, Options{Camera: cam})
	press(m, "enter")
	cmd := m.startCamera()
	require.True(t, m.cameraPending)

	press(m, "ctrl+c")
	assert.False(t, m.cameraPending)

	// The device finishes opening after the program has gone. Nobody
	// receives the result, so the stream must release itself.
	msg := cameraOpened(t, cmd)
	require.NoError(t, msg.Err)
	testfixtures.WaitFor(t, func() bool { return msg.Session.Released() }, "late session released")
	assert.Equal(t, 1, cam.Stream().Stops())

	// Delivered anyway, it is not adopted.
	m.Update(msg)
	assert.Nil(t, m.camera)
	assert.Equal(t, 1, cam.Stream().Stops())
}

func TestModel_AbandonedCameraOpenNotAdopted(t *testing.T) {
	t.Parallel()

	cam := testfixtures.NewCamera()
	m, _ := newTestModel(t, Options{Camera: cam})
	press(m, "enter")
	cmd := m.startCamera()

	// Home and back to upload before the device answers.
	press(m, "esc")
	require.Equal(t, stylist.PhaseHome, m.Wizard().Phase())
	press(m, "enter")
	require.Equal(t, stylist.PhaseUpload, m.Wizard().Phase())
	assert.False(t, m.cameraPending)

	msg := cameraOpened(t, cmd)
	m.Update(msg)
	assert.Nil(t, m.camera)
	assert.NotContains(t, render(m), "Camera live")
	testfixtures.WaitFor(t, func() bool { return cam.Stream().Stops() == 1 }, "abandoned stream stopped")

	// A fresh open still works.
	m.Update(cameraOpened(t, m.startCamera()))
	require.NotNil(t, m.camera)
	assert.Equal(t, 2, cam.Opens())
}

func TestModel_CameraDisabledWithoutDevice(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, Options{})
	press(m, "enter")
	assert.Nil(t, m.startCamera())
	assert.NotEqual(t, btnUseCamera, m.uploadButtons.Focused())
}

func TestModel_ChatOnlyOnHome(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, Options{})
	press(m, "c")
	require.True(t, m.Wizard().ChatOpen())
	out := render(m)
	assert.Contains(t, out, "Style Assistant")
	assert.Contains(t, out, "Online now")

	for _, r := range "hello" {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	press(m, "enter")
	require.Len(t, m.chat, 2)
	assert.Equal(t, "hello", m.chat[1].text)
	assert.Equal(t, "", m.chatInput.Value())

	press(m, "esc")
	assert.False(t, m.Wizard().ChatOpen())

	press(m, "enter")
	require.Equal(t, stylist.PhaseUpload, m.Wizard().Phase())
	press(m, "c")
	assert.False(t, m.Wizard().ChatOpen(), "chat is only offered on home")
}

func TestModel_ARPreviewOverlay(t *testing.T) {
	m, sender := newTestModel(t, Options{})
	toPreferences(t, m)
	choosePreferences(m)
	m.beginAnalysis()
	sender.Pump(t, func(msg tea.Msg) { m.Update(msg) }, isDone)
	m.started[0].Stop()

	press(m, "a")
	require.True(t, m.Wizard().AROpen())
	out := render(m)
	assert.Contains(t, out, "AR Virtual Try-On")
	assert.Contains(t, out, "Front View")

	press(m, "right")
	assert.Equal(t, 1, m.arView)

	// A click inside the modal keeps it open.
	rect := m.arRect(m.layout.Area)
	m.Update(tea.MouseClickMsg{X: rect.Min.X + rect.Dx()/2, Y: rect.Min.Y + rect.Dy()/2, Button: tea.MouseLeft})
	assert.True(t, m.Wizard().AROpen())

	// A click outside the modal closes it.
	m.Update(tea.MouseClickMsg{X: 0, Y: 0, Button: tea.MouseLeft})
	assert.False(t, m.Wizard().AROpen())
}

func TestModel_SaveResultsShowsToast(t *testing.T) {
	m, sender := newTestModel(t, Options{})
	toPreferences(t, m)
	choosePreferences(m)
	m.beginAnalysis()
	sender.Pump(t, func(msg tea.Msg) { m.Update(msg) }, isDone)
	m.started[0].Stop()

	m.resultButtons.Focus(btnSaveResults)
	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.toast.IsVisible())
	assert.Equal(t, stylist.PhaseResults, m.Wizard().Phase())
}

func TestModel_EscapeNavigation(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, Options{})
	toPreferences(t, m)

	press(m, "esc")
	assert.Equal(t, stylist.PhaseUpload, m.Wizard().Phase())
	assert.True(t, m.Wizard().HasImage(), "back keeps the image")

	press(m, "esc")
	assert.Equal(t, stylist.PhaseHome, m.Wizard().Phase())
}

func TestModel_ActivityOverlayWithoutBus(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, Options{})
	press(m, "ctrl+l")
	require.True(t, m.activity.IsVisible())
	assert.Contains(t, render(m), "Event recording is disabled")

	// Keys go to the overlay, not the wizard.
	press(m, "enter")
	assert.Equal(t, stylist.PhaseHome, m.Wizard().Phase())

	press(m, "esc")
	assert.False(t, m.activity.IsVisible())
}

func TestDisplayPercentClamps(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 100.0, displayPercent(100.1))
	assert.Equal(t, 42.9, displayPercent(42.9))
}
