package main

import (
	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/tui/browse"
	"github.com/spf13/cobra"
)

var browseFlags struct {
	page string
	dir  string
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the multi-page stylist",
	Long: `Browse the multi-page stylist: home, style quiz, image analysis, outfit
gallery and trend insights, with a navigation bar and back history.

Use --page to open a specific route, e.g. --page /style-quiz.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseFlags.page, "page", "p", "", "Route to open first (default: /)")
	browseCmd.Flags().StringVarP(&browseFlags.dir, "dir", "d", "", "Directory the file picker opens in (default: current directory)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
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

	return browse.Run(ctx, browse.Options{
		Scan:      cfg.ScanTask(),
		Catalog:   catalog.Default(),
		Bus:       bus,
		StartPage: cfg.StartPage,
		StartDir:  browseFlags.dir,
	})
}
