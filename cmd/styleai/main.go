package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀ ▀█▀ █▄█ █   █▀▀ ▄▀█ █"
	logoText2 = "▄█  █   █  █▄▄ ██▄ █▀█ █"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootFlags struct {
	logLevel string
	logFile  string
	events   bool
}

var rootCmd = &cobra.Command{
	Use:   "styleai",
	Short: "AI fashion stylist demo for the terminal",
	Args:  cobra.NoArgs,
	RunE:  runStudio,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

styleai is a personal AI stylist demo. Upload or capture a photo, pick your
style preferences, and get a simulated skin tone analysis with outfit,
colour, accessory and hairstyle recommendations.

Every analysis is mocked: results come from an embedded catalog and never
depend on the image. Running styleai with no command opens the studio.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.events, "events", true, "Record session events on the embedded bus")

	rootCmd.AddCommand(studioCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(setupCmd)
}
