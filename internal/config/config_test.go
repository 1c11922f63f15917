package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// isolate points XDG and the working directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	require.Equal(t, "/custom/config/styleai/styleai.yml", GlobalPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	require.True(t, filepath.IsAbs(got), "GlobalPath() should be absolute, got %s", got)
	require.Equal(t, "styleai.yml", filepath.Base(got))
}

func TestProjectPath(t *testing.T) {
	require.Equal(t, "styleai.yml", ProjectPath())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultTickInterval, cfg.TickInterval)
	require.InDelta(t, DefaultProgressStep, cfg.ProgressStep, 1e-9)
	require.Equal(t, DefaultSettleDelay, cfg.SettleDelay)
	require.Equal(t, DefaultScanDelay, cfg.ScanDelay)
	require.Equal(t, DefaultCameraDevice, cfg.CameraDevice)
	require.Equal(t, "/", cfg.StartPage)
	require.True(t, cfg.Events)
	require.False(t, Exists())
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	global := Default()
	global.TickInterval = 250 * time.Millisecond
	global.LogLevel = "warn"
	require.NoError(t, WriteGlobal(global))

	project := Default()
	project.TickInterval = 100 * time.Millisecond
	project.LogLevel = "warn"
	project.StartPage = "/trends"
	require.NoError(t, WriteProject(project))

	t.Setenv("STYLEAI_LOG_LEVEL", "debug")
	t.Setenv("STYLEAI_EVENTS", "false")

	cfg, err := LoadWith(func(v *viper.Viper) error {
		v.Set("settle_delay", "50ms")
		return nil
	})
	require.NoError(t, err)
	require.True(t, Exists())
	require.Equal(t, 100*time.Millisecond, cfg.TickInterval, "project overrides global")
	require.Equal(t, "/trends", cfg.StartPage)
	require.Equal(t, "debug", cfg.LogLevel, "env overrides files")
	require.False(t, cfg.Events)
	require.Equal(t, 50*time.Millisecond, cfg.SettleDelay, "flags override everything")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("STYLEAI_PROGRESS_STEP", "0")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "progress_step")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "zero tick", mutate: func(c *Config) { c.TickInterval = 0 }, wantErr: "tick_interval"},
		{name: "step above 100", mutate: func(c *Config) { c.ProgressStep = 101 }, wantErr: "progress_step"},
		{name: "negative settle", mutate: func(c *Config) { c.SettleDelay = -time.Second }, wantErr: "settle_delay"},
		{name: "zero scan", mutate: func(c *Config) { c.ScanDelay = 0 }, wantErr: "scan_delay"},
		{name: "relative start page", mutate: func(c *Config) { c.StartPage = "trends" }, wantErr: "start_page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMarshal_HumanDurations(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	content := string(data)
	for _, field := range []string{
		"tick_interval: 400ms",
		"progress_step: 14.3",
		"settle_delay: 500ms",
		"scan_delay: 2s",
		"camera_device: /dev/video0",
		"events: true",
	} {
		require.True(t, strings.Contains(content, field), "missing %q in:\n%s", field, content)
	}
}

func TestWriteFile_RoundTripsThroughLoad(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.ScanDelay = 3 * time.Second
	cfg.CameraCommand = "fswebcam"
	require.NoError(t, WriteProject(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, loaded.ScanDelay)
	require.Equal(t, "fswebcam", loaded.CameraCommand)
}

func TestTaskConfigs(t *testing.T) {
	cfg := Default()

	analysis := cfg.AnalysisTask()
	require.Equal(t, 400*time.Millisecond, analysis.Interval)
	require.Equal(t, 14.3, analysis.Step)
	require.Equal(t, 500*time.Millisecond, analysis.Settle)
	require.Nil(t, analysis.Messages)

	scan := cfg.ScanTask()
	require.Equal(t, 2*time.Second, scan.Interval)
	require.Equal(t, 100.0, scan.Step)
	require.Zero(t, scan.Settle)
	require.Len(t, scan.Messages, 1)
}
