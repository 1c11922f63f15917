package main

import (
	"github.com/mark3labs/styleai/internal/capture"
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/tui/studio"
	"github.com/spf13/cobra"
)

var studioFlags struct {
	dir          string
	tick         string
	cameraDevice string
}

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Open the single-screen styling studio",
	Long: `Open the single-screen styling studio.

The studio walks through upload, preferences, a simulated analysis and the
results, with an AR preview and a style assistant chat. This is also what
runs when styleai is started without a command.`,
	Args: cobra.NoArgs,
	RunE: runStudio,
}

func init() {
	studioCmd.Flags().StringVarP(&studioFlags.dir, "dir", "d", "", "Directory the file picker opens in (default: current directory)")
	studioCmd.Flags().StringVar(&studioFlags.tick, "tick", "", "Progress tick interval, e.g. 400ms")
	studioCmd.Flags().StringVar(&studioFlags.cameraDevice, "camera-device", "", "Camera device passed to the frame grabber")
}

func runStudio(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	bus, err := openBus(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBus(bus)

	return studio.Run(ctx, studio.Options{
		Task:     cfg.AnalysisTask(),
		Catalog:  catalog.Default(),
		Camera:   capture.NewDeviceCamera(cfg.CameraCommand, cfg.CameraDevice),
		Bus:      bus,
		StartDir: studioFlags.dir,
	})
}
