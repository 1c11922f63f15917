package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
)

var (
	// ErrCameraUnavailable covers a missing device, missing grabber binary
	// or a grabber that exits before producing a frame.
	ErrCameraUnavailable = errors.New("camera unavailable")
	// ErrNoFrame means no frame arrived before the snapshot deadline.
	ErrNoFrame = errors.New("no frame captured")
	// ErrReleased means the stream was used after release.
	ErrReleased = errors.New("camera released")
)

// Camera opens live video streams.
type Camera interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream is a live capture. Releasing it is the Session's job.
type Stream interface {
	// Tracks lists the resources held by the stream.
	Tracks() []Track
	// Snapshot encodes the current frame as a JPEG image.
	Snapshot(ctx context.Context) (*stylist.CapturedImage, error)
}

// Track is one acquired media resource. Stop must be safe to call more
// than once.
type Track interface {
	ID() string
	Stop() error
}

// DeviceCamera grabs frames with an external command that keeps
// overwriting a single JPEG file.
//
// Command is either a bare binary name, in which case ffmpeg arguments
// for the current OS are supplied, or a shell template using {{device}}
// and {{output}} placeholders.
type DeviceCamera struct {
	Command     string
	Device      string
	WaitTimeout time.Duration
}

// NewDeviceCamera returns a camera for device using command.
func NewDeviceCamera(command, device string) *DeviceCamera {
	return &DeviceCamera{Command: command, Device: device, WaitTimeout: 5 * time.Second}
}

// Open starts the frame grabber.
func (c *DeviceCamera) Open(ctx context.Context) (Stream, error) {
	if runtime.GOOS == "linux" && strings.HasPrefix(c.Device, "/dev/") {
		if _, err := os.Stat(c.Device); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
		}
	}

	dir, err := os.MkdirTemp("", "styleai-camera-")
	if err != nil {
		return nil, fmt.Errorf("creating frame dir: %w", err)
	}
	output := filepath.Join(dir, "frame.jpg")

	cmd, err := c.command(ctx, output)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	track, err := startProcessTrack(cmd)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	logger.Info("camera %s opened (track %s)", c.Device, track.ID())

	return &deviceStream{
		dir:     dir,
		output:  output,
		track:   track,
		timeout: c.WaitTimeout,
	}, nil
}

// command builds the grabber process. It is killed when ctx is done.
func (c *DeviceCamera) command(ctx context.Context, output string) (*exec.Cmd, error) {
	command := strings.TrimSpace(c.Command)
	if command == "" {
		command = "ffmpeg"
	}

	if strings.Contains(command, "{{") || strings.ContainsAny(command, " \t") {
		expanded := expandVariables(command, map[string]string{
			"{{device}}": c.Device,
			"{{output}}": output,
		})
		return exec.CommandContext(ctx, "sh", "-c", "exec "+expanded), nil
	}

	bin, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	return exec.CommandContext(ctx, bin, ffmpegArgs(c.Device, output)...), nil
}

// ffmpegArgs grabs a few frames per second, overwriting output each time.
func ffmpegArgs(device, output string) []string {
	var input []string
	switch runtime.GOOS {
	case "darwin":
		input = []string{"-f", "avfoundation", "-framerate", "30", "-i", device}
	case "windows":
		input = []string{"-f", "dshow", "-i", "video=" + device}
	default:
		input = []string{"-f", "v4l2", "-i", device}
	}
	args := []string{"-hide_banner", "-loglevel", "error", "-y"}
	args = append(args, input...)
	return append(args, "-vf", "fps=5", "-update", "1", "-q:v", "3", output)
}

func expandVariables(command string, vars map[string]string) string {
	result := command
	for placeholder, value := range vars {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

type deviceStream struct {
	dir     string
	output  string
	track   *processTrack
	timeout time.Duration

	mu       sync.Mutex
	released bool
}

func (s *deviceStream) Tracks() []Track {
	return []Track{s.track}
}

// Snapshot waits for the grabber's first frame, then re-encodes it.
func (s *deviceStream) Snapshot(ctx context.Context) (*stylist.CapturedImage, error) {
	s.mu.Lock()
	released := s.released
	s.mu.Unlock()
	if released {
		return nil, ErrReleased
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if img, err := s.readFrame(); err == nil {
			return img, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrNoFrame, ctx.Err())
		case <-s.track.exited:
			if img, err := s.readFrame(); err == nil {
				return img, nil
			}
			return nil, fmt.Errorf("%w: grabber exited: %v", ErrCameraUnavailable, s.track.waitErr)
		case <-ticker.C:
		}
	}
}

// readFrame decodes the latest frame. A frame that is mid-write fails to
// decode and is retried on the next poll.
func (s *deviceStream) readFrame() (*stylist.CapturedImage, error) {
	data, err := os.ReadFile(s.output)
	if err != nil {
		return nil, err
	}
	frame, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	b := frame.Bounds()
	return &stylist.CapturedImage{
		Name:    "camera-" + time.Now().Format("20060102-150405") + ".jpg",
		MIME:    "image/jpeg",
		DataURL: DataURL("image/jpeg", buf.Bytes()),
		Source:  stylist.SourceCamera,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Size:    buf.Len(),
	}, nil
}

// Close removes the frame directory. Session calls it after stopping
// every track.
func (s *deviceStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	return os.RemoveAll(s.dir)
}

// processTrack is a running grabber process.
type processTrack struct {
	id      string
	cmd     *exec.Cmd
	exited  chan struct{}
	waitErr error

	stopOnce sync.Once
	stopErr  error
}

func startProcessTrack(cmd *exec.Cmd) (*processTrack, error) {
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	t := &processTrack{
		id:     uuid.NewString(),
		cmd:    cmd,
		exited: make(chan struct{}),
	}
	go func() {
		t.waitErr = cmd.Wait()
		close(t.exited)
	}()
	return t, nil
}

func (t *processTrack) ID() string { return t.id }

// Stop interrupts the process and kills it if it doesn't exit promptly.
func (t *processTrack) Stop() error {
	t.stopOnce.Do(func() {
		select {
		case <-t.exited:
			return
		default:
		}
		if err := t.cmd.Process.Signal(os.Interrupt); err != nil {
			t.stopErr = t.cmd.Process.Kill()
		}
		select {
		case <-t.exited:
		case <-time.After(2 * time.Second):
			t.stopErr = t.cmd.Process.Kill()
			<-t.exited
		}
		logger.Debug("camera track %s stopped", t.id)
	})
	return t.stopErr
}
