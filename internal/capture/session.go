package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
)

// Session scopes one camera stream. Every exit path (Capture, Cancel,
// Close) releases the stream, and each track is stopped exactly once no
// matter how many of them run.
type Session struct {
	stream Stream

	once     sync.Once
	released chan struct{}
	err      error

	mu      sync.Mutex
	unwatch func() bool
}

// OpenSession opens cam and wraps the stream. The session is released
// when ctx is done, including when ctx ends before the open returns.
func OpenSession(ctx context.Context, cam Camera) (*Session, error) {
	stream, err := cam.Open(ctx)
	if err != nil {
		logger.Warn("camera open failed: %v", err)
		return nil, err
	}
	s := NewSession(stream)
	s.mu.Lock()
	s.unwatch = context.AfterFunc(ctx, func() { _ = s.Close() })
	s.mu.Unlock()
	return s, nil
}

// NewSession takes ownership of stream.
func NewSession(stream Stream) *Session {
	return &Session{stream: stream, released: make(chan struct{})}
}

// Capture snapshots the current frame and releases the stream, whether or
// not the snapshot succeeded.
func (s *Session) Capture(ctx context.Context) (*stylist.CapturedImage, error) {
	if s.Released() {
		return nil, ErrReleased
	}
	img, err := s.stream.Snapshot(ctx)
	relErr := s.release()
	if err != nil {
		logger.Warn("camera snapshot failed: %v", err)
		return nil, err
	}
	if relErr != nil {
		logger.Warn("camera release after capture: %v", relErr)
	}
	return img, nil
}

// Cancel releases the stream without capturing.
func (s *Session) Cancel() error {
	return s.release()
}

// Close releases the stream on teardown.
func (s *Session) Close() error {
	return s.release()
}

// Released reports whether the stream has been released.
func (s *Session) Released() bool {
	select {
	case <-s.released:
		return true
	default:
		return false
	}
}

func (s *Session) release() error {
	s.once.Do(func() {
		s.mu.Lock()
		if s.unwatch != nil {
			s.unwatch()
		}
		s.mu.Unlock()

		var errs []error
		for _, track := range s.stream.Tracks() {
			if err := track.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("stopping track %s: %w", track.ID(), err))
			}
		}
		if c, ok := s.stream.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		s.err = errors.Join(errs...)
		close(s.released)
		logger.Debug("camera session released")
	})
	return s.err
}
