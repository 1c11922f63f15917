// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/styleai/internal/stylist"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default values shared by Load, setup and tests.
const (
	DefaultTickInterval  = stylist.DefaultInterval
	DefaultProgressStep  = stylist.DefaultStep
	DefaultSettleDelay   = 500 * time.Millisecond
	DefaultScanDelay     = 2 * time.Second
	DefaultCameraDevice  = "/dev/video0"
	DefaultCameraCommand = "ffmpeg"
	DefaultStartPage     = "/"
)

// Config holds all configuration values for styleai.
type Config struct {
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string        `mapstructure:"log_file" yaml:"log_file"`
	TickInterval  time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	ProgressStep  float64       `mapstructure:"progress_step" yaml:"progress_step"`
	SettleDelay   time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`
	ScanDelay     time.Duration `mapstructure:"scan_delay" yaml:"scan_delay"`
	CameraDevice  string        `mapstructure:"camera_device" yaml:"camera_device"`
	CameraCommand string        `mapstructure:"camera_command" yaml:"camera_command"`
	StartPage     string        `mapstructure:"start_page" yaml:"start_page"`
	Events        bool          `mapstructure:"events" yaml:"events"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		TickInterval:  DefaultTickInterval,
		ProgressStep:  DefaultProgressStep,
		SettleDelay:   DefaultSettleDelay,
		ScanDelay:     DefaultScanDelay,
		CameraDevice:  DefaultCameraDevice,
		CameraCommand: DefaultCameraCommand,
		StartPage:     DefaultStartPage,
		Events:        true,
	}
}

// envKeys lists every key bound to a STYLEAI_ environment variable.
var envKeys = []string{
	"log_level",
	"log_file",
	"tick_interval",
	"progress_step",
	"settle_delay",
	"scan_delay",
	"camera_device",
	"camera_command",
	"start_page",
	"events",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	return LoadWith(nil)
}

// LoadWith is Load with a hook to bind CLI flags before unmarshaling.
func LoadWith(bind func(v *viper.Viper) error) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("styleai")

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("tick_interval", def.TickInterval)
	v.SetDefault("progress_step", def.ProgressStep)
	v.SetDefault("settle_delay", def.SettleDelay)
	v.SetDefault("scan_delay", def.ScanDelay)
	v.SetDefault("camera_device", def.CameraDevice)
	v.SetDefault("camera_command", def.CameraCommand)
	v.SetDefault("start_page", def.StartPage)
	v.SetDefault("events", def.Events)

	v.SetEnvPrefix("STYLEAI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key, "STYLEAI_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	if bind != nil {
		if err := bind(v); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the progress simulator cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval))
	}
	if c.ProgressStep <= 0 || c.ProgressStep > 100 {
		errs = append(errs, fmt.Errorf("progress_step must be in (0, 100], got %g", c.ProgressStep))
	}
	if c.SettleDelay < 0 {
		errs = append(errs, fmt.Errorf("settle_delay must not be negative, got %s", c.SettleDelay))
	}
	if c.ScanDelay <= 0 {
		errs = append(errs, fmt.Errorf("scan_delay must be positive, got %s", c.ScanDelay))
	}
	if !strings.HasPrefix(c.StartPage, "/") {
		errs = append(errs, fmt.Errorf("start_page must be an absolute route, got %q", c.StartPage))
	}
	return errors.Join(errs...)
}

// AnalysisTask is the progress run behind the studio's analyzing phase.
func (c *Config) AnalysisTask() stylist.TaskConfig {
	return stylist.TaskConfig{
		Interval: c.TickInterval,
		Step:     c.ProgressStep,
		Settle:   c.SettleDelay,
	}
}

// ScanTask is the single-shot run behind the image analysis page: one tick
// after scan_delay that reaches 100% and completes without settling.
func (c *Config) ScanTask() stylist.TaskConfig {
	return stylist.TaskConfig{
		Interval: c.ScanDelay,
		Step:     100,
		Messages: []string{"Analyzing your image..."},
	}
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/styleai/styleai.yml or $XDG_CONFIG_HOME/styleai/styleai.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "styleai", "styleai.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "styleai", "styleai.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "styleai.yml"
}

// Marshal renders cfg as YAML with human-readable durations.
func Marshal(cfg *Config) ([]byte, error) {
	doc := yaml.Node{Kind: yaml.MappingNode}
	add := func(key, value string, tag string) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: tag},
		)
	}
	add("log_level", cfg.LogLevel, "!!str")
	add("log_file", cfg.LogFile, "!!str")
	add("tick_interval", cfg.TickInterval.String(), "!!str")
	add("progress_step", fmt.Sprintf("%g", cfg.ProgressStep), "!!float")
	add("settle_delay", cfg.SettleDelay.String(), "!!str")
	add("scan_delay", cfg.ScanDelay.String(), "!!str")
	add("camera_device", cfg.CameraDevice, "!!str")
	add("camera_command", cfg.CameraCommand, "!!str")
	add("start_page", cfg.StartPage, "!!str")
	add("events", fmt.Sprintf("%t", cfg.Events), "!!bool")

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	return WriteFile(GlobalPath(), cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return WriteFile(ProjectPath(), cfg)
}

// WriteFile writes cfg to path, creating parent directories.
func WriteFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
