package capture

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrack struct {
	id    string
	stops atomic.Int32
}

func (t *fakeTrack) ID() string { return t.id }

func (t *fakeTrack) Stop() error {
	t.stops.Add(1)
	return nil
}

type fakeStream struct {
	tracks  []*fakeTrack
	snapErr error
	closed  atomic.Int32
}

func newFakeStream(n int) *fakeStream {
	s := &fakeStream{}
	for i := 0; i < n; i++ {
		s.tracks = append(s.tracks, &fakeTrack{id: fmt.Sprintf("track-%d", i)})
	}
	return s
}

func (s *fakeStream) Tracks() []Track {
	out := make([]Track, len(s.tracks))
	for i, t := range s.tracks {
		out[i] = t
	}
	return out
}

func (s *fakeStream) Snapshot(context.Context) (*stylist.CapturedImage, error) {
	if s.snapErr != nil {
		return nil, s.snapErr
	}
	return &stylist.CapturedImage{MIME: "image/jpeg", DataURL: "data:image/jpeg;base64,AA", Source: stylist.SourceCamera}, nil
}

func (s *fakeStream) Close() error {
	s.closed.Add(1)
	return nil
}

func requireStoppedOnce(t *testing.T, s *fakeStream) {
	t.Helper()
	for _, tr := range s.tracks {
		assert.Equal(t, int32(1), tr.stops.Load(), tr.id)
	}
	assert.Equal(t, int32(1), s.closed.Load())
}

type fakeCamera struct {
	stream *fakeStream
	err    error
}

func (c *fakeCamera) Open(context.Context) (Stream, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.stream, nil
}

func TestSession_CaptureReleases(t *testing.T) {
	t.Parallel()

	stream := newFakeStream(2)
	s, err := OpenSession(context.Background(), &fakeCamera{stream: stream})
	require.NoError(t, err)

	img, err := s.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stylist.SourceCamera, img.Source)
	assert.True(t, s.Released())

	// Every later exit path is a no-op.
	require.NoError(t, s.Cancel())
	require.NoError(t, s.Close())
	_, err = s.Capture(context.Background())
	require.ErrorIs(t, err, ErrReleased)

	requireStoppedOnce(t, stream)
}

func TestSession_CaptureFailureStillReleases(t *testing.T) {
	t.Parallel()

	stream := newFakeStream(1)
	stream.snapErr = ErrNoFrame
	s := NewSession(stream)

	_, err := s.Capture(context.Background())
	require.ErrorIs(t, err, ErrNoFrame)
	assert.True(t, s.Released())
	requireStoppedOnce(t, stream)
}

func TestSession_CancelAndCloseConcurrently(t *testing.T) {
	t.Parallel()

	stream := newFakeStream(3)
	s := NewSession(stream)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = s.Cancel()
			} else {
				_ = s.Close()
			}
		}(i)
	}
	wg.Wait()

	requireStoppedOnce(t, stream)
}

func TestOpenSession_ReleasedWhenContextEnds(t *testing.T) {
	t.Parallel()

	stream := newFakeStream(1)
	ctx, cancel := context.WithCancel(context.Background())
	s, err := OpenSession(ctx, &fakeCamera{stream: stream})
	require.NoError(t, err)
	assert.False(t, s.Released())

	cancel()
	select {
	case <-s.released:
	case <-time.After(2 * time.Second):
		t.Fatal("session not released after context cancel")
	}
	require.NoError(t, s.Close())
	requireStoppedOnce(t, stream)
}

func TestOpenSession_AlreadyCancelledContext(t *testing.T) {
	t.Parallel()

	// The open outlived its caller, so nobody will ever adopt the stream.
	stream := newFakeStream(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := OpenSession(ctx, &fakeCamera{stream: stream})
	require.NoError(t, err)

	select {
	case <-s.released:
	case <-time.After(2 * time.Second):
		t.Fatal("session opened on a cancelled context was not released")
	}
	requireStoppedOnce(t, stream)
}

func TestOpenSession_CaptureThenCancelStopsOnce(t *testing.T) {
	t.Parallel()

	stream := newFakeStream(1)
	ctx, cancel := context.WithCancel(context.Background())
	s, err := OpenSession(ctx, &fakeCamera{stream: stream})
	require.NoError(t, err)

	_, err = s.Capture(context.Background())
	require.NoError(t, err)
	cancel()
	requireStoppedOnce(t, stream)
}

func TestOpenSession_Unavailable(t *testing.T) {
	t.Parallel()

	_, err := OpenSession(context.Background(), &fakeCamera{err: ErrCameraUnavailable})
	require.ErrorIs(t, err, ErrCameraUnavailable)
}

func TestDeviceCamera_MissingBinary(t *testing.T) {
	t.Parallel()

	cam := NewDeviceCamera("styleai-no-such-grabber", "virtual")
	_, err := cam.Open(context.Background())
	require.True(t, errors.Is(err, ErrCameraUnavailable), "got %v", err)
}

func TestDeviceCamera_MissingDevice(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("device probing is linux-only")
	}
	t.Parallel()

	cam := NewDeviceCamera("ffmpeg", "/dev/styleai-missing-video")
	_, err := cam.Open(context.Background())
	require.ErrorIs(t, err, ErrCameraUnavailable)
}

func TestDeviceCamera_TemplateCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	t.Parallel()

	src := writeJPEG(t, t.TempDir(), "frame-source.jpg", 16, 9)
	cam := &DeviceCamera{
		Command:     fmt.Sprintf("sh -c 'cp %s {{output}} && exec sleep 30'", src),
		Device:      "virtual",
		WaitTimeout: 5 * time.Second,
	}

	s, err := OpenSession(context.Background(), cam)
	require.NoError(t, err)
	track := s.stream.(*deviceStream).track

	img, err := s.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIME)
	assert.Equal(t, stylist.SourceCamera, img.Source)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 9, img.Height)

	select {
	case <-track.exited:
	case <-time.After(5 * time.Second):
		t.Fatal("grabber process still running after capture")
	}
	require.NoError(t, s.Close())
}

func TestDeviceCamera_GrabberExitsWithoutFrame(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	t.Parallel()

	cam := &DeviceCamera{Command: "sh -c 'exit 3' {{device}}", Device: "virtual", WaitTimeout: 5 * time.Second}
	s, err := OpenSession(context.Background(), cam)
	require.NoError(t, err)

	_, err = s.Capture(context.Background())
	require.ErrorIs(t, err, ErrCameraUnavailable)
	assert.True(t, s.Released())
}
