package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"err", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for input %q", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v for input %q", tt.expected, got, tt.input)
			}
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("phase changed")
	l.Info("image captured")
	l.Warn("camera unavailable")
	l.Error("tick after cancel")

	output := buf.String()
	if strings.Contains(output, "phase changed") || strings.Contains(output, "image captured") {
		t.Errorf("messages below WARN should be dropped, got %q", output)
	}
	if !strings.Contains(output, "[WARN ] camera unavailable") {
		t.Errorf("missing warn line in %q", output)
	}
	if !strings.Contains(output, "[ERROR] tick after cancel") {
		t.Errorf("missing error line in %q", output)
	}
}

func TestLogger_Enabled(t *testing.T) {
	l := New()
	l.SetLevel(LevelInfo)

	if l.Enabled(LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
	if !l.Enabled(LevelInfo) || !l.Enabled(LevelError) {
		t.Error("info and above should be enabled at info level")
	}
	if got := Level(42).String(); got != "UNKNOWN" {
		t.Errorf("expected UNKNOWN for out-of-range level, got %q", got)
	}
}

func TestLogger_EnvVars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styleai.log")
	t.Setenv("STYLEAI_LOG_LEVEL", "debug")
	t.Setenv("STYLEAI_LOG_FILE", path)

	l := New()
	if l.level != LevelDebug {
		t.Errorf("expected debug level from env var, got %v", l.level)
	}

	l.Debug("progress %d%%", 42)
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "progress 42%") {
		t.Errorf("log file missing message, got %q", content)
	}
}

func TestLogger_Configure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configured.log")
	l := New()

	if err := l.Configure("loud", ""); err == nil {
		t.Error("expected error for invalid level")
	}
	if err := l.Configure("error", path); err != nil {
		t.Fatalf("configure: %v", err)
	}
	// Reconfiguring with the same file keeps the handle.
	if err := l.Configure("", path); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}

	l.Warn("dropped")
	l.Error("kept")
	_ = l.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(content), "dropped") || !strings.Contains(string(content), "kept") {
		t.Errorf("unexpected log content %q", content)
	}
}

func TestLogger_CloseTwice(t *testing.T) {
	t.Setenv("STYLEAI_LOG_FILE", filepath.Join(t.TempDir(), "twice.log"))
	l := New()
	if err := l.Close(); err != nil {
		t.Errorf("unexpected error closing logger: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	Default.SetOutput(&buf)
	Default.SetLevel(LevelDebug)

	Debug("debug %s", "test")
	Info("info %s", "test")
	Warn("warn %s", "test")
	Error("error %s", "test")

	output := buf.String()
	for _, want := range []string{"debug test", "info test", "warn test", "error test"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q", want)
		}
	}
}
