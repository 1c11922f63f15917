package studio

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/events"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/mark3labs/styleai/internal/tui"
)

// cameraHintText is shown on the upload screen when the camera fails.
const cameraHintText = "Camera unavailable. Check the device and camera_command, or pick a file instead."

func (m *Model) updateHome(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.quitting = true
		m.teardown()
		return tea.Quit
	case "left", "shift+tab", "h":
		m.homeButtons.FocusPrev()
	case "right", "tab", "l":
		m.homeButtons.FocusNext()
	case "c":
		return m.openChat()
	case "s", "u":
		m.startUpload()
	case "enter", "space":
		switch m.homeButtons.Focused() {
		case btnGetStarted:
			m.startUpload()
		case btnAssistant:
			return m.openChat()
		}
	}
	return nil
}

func (m *Model) startUpload() {
	if err := m.wizard.Start(); err != nil {
		logger.Warn("start: %v", err)
		return
	}
	m.uploadFocus = focusPicker
	m.pathInput.Blur()
}

func (m *Model) openChat() tea.Cmd {
	if m.wizard.ChatOpen() || !m.wizard.ToggleChat() {
		return nil
	}
	return m.chatInput.Focus()
}

func (m *Model) updateChat(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.chatInput.Blur()
		m.wizard.ToggleChat()
		return nil
	case "enter":
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" {
			return nil
		}
		// Questions are accepted but the assistant does not answer yet.
		m.chat = append(m.chat, chatMessage{fromUser: true, text: text})
		m.chatInput.Reset()
		logger.Debug("chat message accepted (%d chars)", len(text))
		return nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return cmd
}

func (m *Model) updateUpload(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if m.camera != nil {
		switch key {
		case "enter", "space":
			if m.uploadButtons.Focused() == btnCancel {
				m.cancelCamera()
				return nil
			}
			return m.captureCamera()
		case "esc":
			m.cancelCamera()
		case "left", "shift+tab":
			m.uploadButtons.FocusPrev()
		case "right", "tab":
			m.uploadButtons.FocusNext()
		}
		return nil
	}

	switch key {
	case "esc":
		m.releaseCamera()
		if err := m.wizard.GoHome(); err != nil {
			logger.Warn("home: %v", err)
		}
		return nil
	case "tab":
		return m.focusUpload((m.uploadFocus + 1) % 3)
	case "shift+tab":
		return m.focusUpload((m.uploadFocus + 2) % 3)
	}

	switch m.uploadFocus {
	case focusPicker:
		return m.picker.Update(msg)
	case focusPath:
		if key == "enter" {
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				return nil
			}
			return loadImage(path, stylist.SourceFile)
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return cmd
	case focusUploadButtons:
		switch key {
		case "left", "h":
			m.uploadButtons.FocusPrev()
		case "right", "l":
			m.uploadButtons.FocusNext()
		case "enter", "space":
			switch m.uploadButtons.Focused() {
			case btnUseCamera:
				return m.startCamera()
			case btnBackHome:
				if err := m.wizard.GoHome(); err != nil {
					logger.Warn("home: %v", err)
				}
			}
		}
	}
	return nil
}

func (m *Model) focusUpload(f uploadFocus) tea.Cmd {
	m.uploadFocus = f
	if f == focusPath {
		return m.pathInput.Focus()
	}
	m.pathInput.Blur()
	return nil
}

func (m *Model) refreshUploadButtons() {
	if m.camera != nil {
		m.uploadButtons.SetButtons(tui.Button{Label: btnCapture}, tui.Button{Label: btnCancel})
		m.uploadButtons.Focus(btnCapture)
		return
	}
	m.uploadButtons.SetButtons(
		tui.Button{Label: btnUseCamera, Disabled: m.opts.Camera == nil || m.cameraPending},
		tui.Button{Label: btnBackHome},
	)
}

func (m *Model) startCamera() tea.Cmd {
	if m.opts.Camera == nil || m.cameraPending || m.camera != nil {
		return nil
	}
	m.cameraSeq++
	ctx, cancel := context.WithCancel(m.ctx)
	m.cameraAbort = cancel
	m.cameraPending = true
	m.cameraHint = ""
	m.refreshUploadButtons()
	m.record(events.Event{Type: events.EventTypeCapture, Action: "camera", Data: "opening"})
	return tea.Batch(openCamera(ctx, m.opts.Camera, m.cameraSeq), m.spinner.Tick())
}

func (m *Model) handleCameraOpened(msg cameraOpenedMsg) tea.Cmd {
	// Abandoned by cancel, navigation or quit.
	if msg.Seq != m.cameraSeq || m.quitting {
		if msg.Session != nil {
			_ = msg.Session.Close()
		}
		return nil
	}
	m.cameraPending = false
	if msg.Err != nil {
		m.abortCameraOpen()
		m.cameraHint = cameraHintText
		m.refreshUploadButtons()
		m.record(events.Event{Type: events.EventTypeCapture, Action: "camera", Data: "unavailable"})
		return nil
	}
	// The user left the upload screen while the device was starting.
	if !m.wizard.InPhase(stylist.PhaseUpload) {
		_ = msg.Session.Close()
		m.abortCameraOpen()
		m.refreshUploadButtons()
		return nil
	}
	m.camera = msg.Session
	m.refreshUploadButtons()
	return nil
}

func (m *Model) captureCamera() tea.Cmd {
	if m.camera == nil {
		return nil
	}
	session := m.camera
	return captureFrame(m.ctx, session)
}

func (m *Model) cancelCamera() {
	m.releaseCamera()
	m.record(events.Event{Type: events.EventTypeCapture, Action: "camera", Data: "cancelled"})
}

func (m *Model) handleCameraCaptured(msg cameraCapturedMsg) tea.Cmd {
	if msg.Session != m.camera {
		return nil
	}
	// Capture released the stream on every path.
	m.camera = nil
	m.abortCameraOpen()
	m.refreshUploadButtons()
	if msg.Err != nil {
		m.cameraHint = cameraHintText
		return nil
	}
	return m.acceptImage(msg.Image)
}

func (m *Model) handleImageLoaded(msg imageLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		// Non-images are ignored silently; anything else is only logged.
		if !errors.Is(msg.Err, capture.ErrNotImage) {
			logger.Warn("loading %s: %v", msg.Path, msg.Err)
		}
		return nil
	}
	return m.acceptImage(msg.Image)
}

// acceptImage installs img and moves on to the preference form.
func (m *Model) acceptImage(img *stylist.CapturedImage) tea.Cmd {
	if !m.wizard.InPhase(stylist.PhaseUpload, stylist.PhasePreferences) {
		return nil
	}
	if err := m.wizard.SetImage(img); err != nil {
		logger.Warn("set image: %v", err)
		return nil
	}
	m.cameraHint = ""
	m.pathInput.Blur()
	m.pathInput.Reset()
	m.record(events.Event{Type: events.EventTypeCapture, Action: string(img.Source), Data: img.Name})
	m.prefFocus = prefGender
	m.refreshPrefButtons()
	return nil
}

func (m *Model) updatePreferences(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "esc":
		return m.backToUpload()
	case "tab", "down":
		if key == "tab" || m.prefFocus >= prefOccasion {
			m.prefFocus = (m.prefFocus + 1) % prefSections
			return nil
		}
	case "shift+tab", "up":
		if key == "shift+tab" || m.prefFocus >= prefOccasion {
			m.prefFocus = (m.prefFocus + prefSections - 1) % prefSections
			return nil
		}
	}

	switch m.prefFocus {
	case prefGender, prefStyle:
		field := prefField(m.prefFocus)
		chooser := m.choosers[field]
		if key == "enter" || key == "space" {
			m.selectPreference(field, chooser.Current())
			return nil
		}
		if !chooser.Move(key) && (key == "down" || key == "up") {
			// Falling off the grid moves to the next field.
			if key == "down" {
				m.prefFocus++
			} else if m.prefFocus > prefGender {
				m.prefFocus--
			}
		}
	case prefOccasion, prefBudget:
		field := prefField(m.prefFocus)
		chooser := m.choosers[field]
		switch key {
		case "left", "h":
			m.selectPreference(field, m.cycleValue(field, chooser, -1))
		case "right", "l":
			m.selectPreference(field, m.cycleValue(field, chooser, 1))
		case "enter", "space":
			if m.wizard.Selected(field) == "" {
				m.selectPreference(field, chooser.Current())
			} else {
				m.prefFocus++
			}
		}
	case prefButtons:
		switch key {
		case "left", "h":
			m.prefButtons.FocusPrev()
		case "right", "l":
			m.prefButtons.FocusNext()
		case "enter", "space":
			switch m.prefButtons.Focused() {
			case btnBack:
				return m.backToUpload()
			case btnAnalyze:
				return m.beginAnalysis()
			}
		}
	}
	return nil
}

// cycleValue moves a dropdown. The first press on an empty dropdown picks
// the highlighted option instead of skipping it.
func (m *Model) cycleValue(field stylist.Field, chooser *tui.Chooser, delta int) string {
	if m.wizard.Selected(field) == "" {
		return chooser.Current()
	}
	return chooser.Cycle(delta)
}

func (m *Model) selectPreference(field stylist.Field, value string) {
	if err := m.wizard.Select(field, value); err != nil {
		logger.Warn("select %s: %v", field, err)
		return
	}
	m.choosers[field].SetCursor(value)
	m.refreshPrefButtons()
}

func (m *Model) refreshPrefButtons() {
	m.prefButtons.SetDisabled(1, !m.wizard.CanAnalyze())
	if m.wizard.CanAnalyze() {
		m.prefButtons.Focus(btnAnalyze)
	}
}

func (m *Model) backToUpload() tea.Cmd {
	if err := m.wizard.Back(); err != nil {
		logger.Warn("back: %v", err)
		return nil
	}
	m.uploadFocus = focusPicker
	m.refreshUploadButtons()
	return nil
}

func prefField(focus int) stylist.Field {
	return stylist.Fields[focus]
}

func (m *Model) updateResults(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "a":
		m.toggleAR()
		return nil
	case "left", "shift+tab", "h":
		m.resultButtons.FocusPrev()
		return nil
	case "right", "tab", "l":
		m.resultButtons.FocusNext()
		return nil
	case "enter", "space":
		switch m.resultButtons.Focused() {
		case btnARPreview:
			m.toggleAR()
		case btnTryAnother:
			m.tryAnother()
		case btnSaveResults:
			return m.toast.Show("Saving results is coming soon")
		}
		return nil
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return cmd
}

func (m *Model) toggleAR() {
	if m.wizard.ToggleAR() && m.wizard.AROpen() {
		m.arView = 0
	}
}

// tryAnother clears everything and returns to upload.
func (m *Model) tryAnother() {
	m.cancelTask()
	m.releaseCamera()
	m.wizard.Reset()
	for _, field := range stylist.Fields {
		m.choosers[field].SetCursor(stylist.OptionsFor(field)[0].Value)
	}
	m.prefButtons.SetDisabled(1, true)
	m.uploadFocus = focusPicker
	m.results.SetContent("")
	m.refreshUploadButtons()
}

func (m *Model) updateAR(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "a", "q":
		m.wizard.ToggleAR()
	case "left", "h":
		m.arView = (m.arView + len(arViews) - 1) % len(arViews)
	case "right", "l", "tab":
		m.arView = (m.arView + 1) % len(arViews)
	case "enter", "space":
		if m.arButtons.Focused() == btnClosePreview {
			m.wizard.ToggleAR()
		}
	}
	return nil
}
