package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/styleai/internal/catalog"
	"github.com/mark3labs/styleai/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	tick string
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the stylist as MCP tools over stdio",
	Long: `Serve the stylist as MCP tools over stdio.

Tools: analyze-style, preference-options, style-quiz, list-outfits and
list-trends. Logs never go to stdout; use --log-file to capture them.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFlags.tick, "tick", "", "Progress tick interval for analyze-style, e.g. 50ms")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	srv := mcpserver.New(catalog.Default(), cfg.AnalysisTask(), version)
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("mcp server failed: %w", err)
	}
	return nil
}
