// Package testfixtures provides mock implementations and test utilities for TUI testing.
//
// This file contains mocks for the dependencies the programs talk to:
//   - Sender: records messages posted through tui.ProgramSender
//   - Camera: a capture.Camera whose streams count track stops
//
// All mocks are thread-safe and provide verification methods for assertions in tests.
//
// Example usage:
//
//	func TestMyComponent(t *testing.T) {
//	    sender := testfixtures.NewSender()
//	    cam := testfixtures.NewCamera()
//
//	    // Use mocks in your test...
//	    msg := sender.Next(t)
//	    require.Equal(t, 1, cam.Stream().Stops())
//	}
package testfixtures

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/stylist"
)

// ErrNoDevice is returned by a Camera configured to fail.
var ErrNoDevice = errors.New("no such device")

// Sender is a tui.ProgramSender that queues messages for the test to feed
// back into Update.
type Sender struct {
	ch chan tea.Msg
}

// NewSender creates a sender with room for plenty of progress ticks.
func NewSender() *Sender {
	return &Sender{ch: make(chan tea.Msg, 256)}
}

// Send implements tui.ProgramSender.
func (s *Sender) Send(msg tea.Msg) {
	s.ch <- msg
}

// Next returns the next message or fails the test after DefaultWaitDuration.
func (s *Sender) Next(t *testing.T) tea.Msg {
	t.Helper()
	select {
	case msg := <-s.ch:
		return msg
	case <-time.After(DefaultWaitDuration):
		t.Fatal("timed out waiting for a message")
		return nil
	}
}

// Pump feeds every received message to update until done reports true for
// one of them.
func (s *Sender) Pump(t *testing.T, update func(tea.Msg), done func(tea.Msg) bool) {
	t.Helper()
	for {
		msg := s.Next(t)
		update(msg)
		if done(msg) {
			return
		}
	}
}

// Pending returns how many messages are queued.
func (s *Sender) Pending() int {
	return len(s.ch)
}

// Track counts how often it is stopped.
type Track struct {
	id    string
	stops atomic.Int32
}

// ID implements capture.Track.
func (t *Track) ID() string { return t.id }

// Stop implements capture.Track.
func (t *Track) Stop() error {
	t.stops.Add(1)
	return nil
}

// Stops returns the number of Stop calls.
func (t *Track) Stops() int {
	return int(t.stops.Load())
}

// Stream is a fake live capture with one video track.
type Stream struct {
	track   *Track
	SnapErr error
}

// Tracks implements capture.Stream.
func (s *Stream) Tracks() []capture.Track {
	return []capture.Track{s.track}
}

// Snapshot implements capture.Stream.
func (s *Stream) Snapshot(context.Context) (*stylist.CapturedImage, error) {
	if s.SnapErr != nil {
		return nil, s.SnapErr
	}
	img := TestImage(stylist.SourceCamera)
	img.Name = "camera.jpg"
	img.MIME = "image/jpeg"
	return img, nil
}

// Stops returns how often the stream's track was stopped.
func (s *Stream) Stops() int {
	return s.track.Stops()
}

// Camera is a capture.Camera that hands out fake streams.
type Camera struct {
	mu      sync.Mutex
	OpenErr error
	SnapErr error
	streams []*Stream
}

// NewCamera creates a working fake camera.
func NewCamera() *Camera {
	return &Camera{}
}

// Open implements capture.Camera.
func (c *Camera) Open(context.Context) (capture.Stream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.OpenErr != nil {
		return nil, c.OpenErr
	}
	s := &Stream{track: &Track{id: "video-0"}, SnapErr: c.SnapErr}
	c.streams = append(c.streams, s)
	return s, nil
}

// Stream returns the most recently opened stream, or nil.
func (c *Camera) Stream() *Stream {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.streams) == 0 {
		return nil
	}
	return c.streams[len(c.streams)-1]
}

// Opens returns how many streams were opened.
func (c *Camera) Opens() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.streams)
}
