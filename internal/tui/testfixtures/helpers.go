package testfixtures

import (
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	uv "github.com/charmbracelet/ultraviolet"
)

// Initialize test environment
func init() {
	// Only affects lipgloss's own print helpers. Screen buffers keep their
	// cell styles, so Render strips them separately.
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// Conservative timeout for WaitFor (CI compatibility)
const (
	DefaultWaitDuration  = 5 * time.Second
	DefaultCheckInterval = 10 * time.Millisecond
)

// Render draws into a screen buffer of the canonical size and returns the
// rendered text with all escape sequences removed.
func Render(draw func(scr uv.Screen, area uv.Rectangle)) string {
	canvas := uv.NewScreenBuffer(TestTermWidth, TestTermHeight)
	draw(canvas, canvas.Bounds())
	return ansi.Strip(canvas.Render())
}

// WaitFor polls cond until it returns true or DefaultWaitDuration passes.
func WaitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(DefaultWaitDuration)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(DefaultCheckInterval)
	}
	t.Fatalf("timed out waiting: %s", msg)
}

// RetryTest retries a test function up to maxAttempts times if it fails.
// Useful for handling flaky tests due to timing issues.
func RetryTest(t *testing.T, maxAttempts int, fn func() error) {
	t.Helper()
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return
		}
		lastErr = err
		if attempt < maxAttempts {
			t.Logf("Attempt %d/%d failed: %v (retrying...)", attempt, maxAttempts, err)
		}
	}
	t.Fatalf("Test failed after %d attempts: %v", maxAttempts, lastErr)
}
