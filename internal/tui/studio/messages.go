package studio

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
)

// progressMsg is posted by the analysis task on every tick. Seq identifies
// the run that produced it; messages from an earlier run are dropped.
type progressMsg struct {
	Seq      int
	Progress stylist.Progress
}

// analysisDoneMsg is posted once when the task finishes its settle delay.
type analysisDoneMsg struct {
	Seq int
}

// imageLoadedMsg carries the result of decoding a picked, typed or dropped
// file.
type imageLoadedMsg struct {
	Image *stylist.CapturedImage
	Path  string
	Err   error
}

// cameraOpenedMsg carries a freshly opened camera session.
type cameraOpenedMsg struct {
	Session *capture.Session
	Seq     int
	Err     error
}

// cameraCapturedMsg carries the snapshot taken from session. Captures from a
// session that is no longer current are ignored.
type cameraCapturedMsg struct {
	Session *capture.Session
	Image   *stylist.CapturedImage
	Err     error
}

// loadImage decodes path off the Update loop.
func loadImage(path string, source stylist.Source) tea.Cmd {
	return func() tea.Msg {
		img, err := capture.LoadFile(path, source)
		return imageLoadedMsg{Image: img, Path: path, Err: err}
	}
}

// loadDrop parses pasted text as a dropped file.
func loadDrop(text string) tea.Cmd {
	return func() tea.Msg {
		img, err := capture.LoadDrop(text)
		if errors.Is(err, capture.ErrNoPath) {
			err = capture.ErrNotImage
		}
		return imageLoadedMsg{Image: img, Path: text, Err: err}
	}
}

// openCamera starts the device stream. The session is released once ctx
// is done, so an open nobody waits for anymore cannot hold the device.
func openCamera(ctx context.Context, cam capture.Camera, seq int) tea.Cmd {
	return func() tea.Msg {
		session, err := capture.OpenSession(ctx, cam)
		return cameraOpenedMsg{Session: session, Seq: seq, Err: err}
	}
}

// captureFrame snapshots session, which releases it.
func captureFrame(ctx context.Context, session *capture.Session) tea.Cmd {
	return func() tea.Msg {
		img, err := session.Capture(ctx)
		if err != nil {
			logger.Warn("camera capture: %v", err)
		}
		return cameraCapturedMsg{Session: session, Image: img, Err: err}
	}
}
