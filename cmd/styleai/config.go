package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/styleai/internal/config"
	"github.com/mark3labs/styleai/internal/events"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps config keys to the CLI flags that override them. Commands
// only bind the flags they actually define.
var flagKeys = map[string]string{
	"log_level":     "log-level",
	"log_file":      "log-file",
	"events":        "events",
	"start_page":    "page",
	"tick_interval": "tick",
	"camera_device": "camera-device",
}

// loadConfig loads config with the command's flags on top, then applies the
// log settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWith(func(v *viper.Viper) error {
		for key, name := range flagKeys {
			f := cmd.Flags().Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	logger.Debug("config loaded: tick=%s step=%g scan=%s events=%t",
		cfg.TickInterval, cfg.ProgressStep, cfg.ScanDelay, cfg.Events)
	return cfg, nil
}

// openBus starts the embedded event bus when events are enabled. A nil bus
// means recording is off.
func openBus(ctx context.Context, cfg *config.Config) (*events.Bus, error) {
	if !cfg.Events {
		return nil, nil
	}
	bus, err := events.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start event bus: %w", err)
	}
	return bus, nil
}

// closeBus is deferred by every command that opened a bus.
func closeBus(bus *events.Bus) {
	if bus == nil {
		return
	}
	if err := bus.Close(); err != nil {
		logger.Warn("closing event bus: %v", err)
	}
}
