package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/x/editor"
	"github.com/fatih/color"
	"github.com/mark3labs/styleai/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
	edit    bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create styleai configuration file",
	Long: `Create a styleai configuration file with sensible defaults.

By default, creates a global config at ~/.config/styleai/styleai.yml.
Use --project to create a project-local config in the current directory.
With --force an existing file is overwritten and the changes are shown.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().BoolVarP(&setupFlags.edit, "edit", "e", false, "Open the written config in $EDITOR")
}

func runSetup(cmd *cobra.Command, args []string) error {
	// Determine target path
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	var existing []byte
	if fileExists(targetPath) {
		if !setupFlags.force {
			return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
		}
		data, err := os.ReadFile(targetPath)
		if err != nil {
			return fmt.Errorf("failed to read existing config: %w", err)
		}
		existing = data
	}

	cfg := config.Default()
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	if existing != nil {
		printDiff(targetPath, string(existing), string(data))
	}

	if err := config.WriteFile(targetPath, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Config written to: %s\n", targetPath)

	if setupFlags.edit {
		if err := editConfig(targetPath); err != nil {
			return err
		}
	}

	fmt.Println("\nRun 'styleai' to open the studio or 'styleai browse' for the full site.")
	return nil
}

// printDiff shows what overwriting the file changes.
func printDiff(path, before, after string) {
	if before == after {
		fmt.Println("Existing config already matches the defaults.")
		return
	}
	diff := udiff.Unified(path, path+" (new)", before, after)
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	dim := color.New(color.FgHiBlack)
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			_, _ = add.Println(line)
		case strings.HasPrefix(line, "-"):
			_, _ = del.Println(line)
		default:
			_, _ = dim.Println(line)
		}
	}
	fmt.Println()
}

// editConfig opens path in the user's editor and validates the result.
func editConfig(path string) error {
	c, err := editor.Command("styleai", path)
	if err != nil {
		return fmt.Errorf("failed to prepare editor: %w", err)
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if _, err := config.Load(); err != nil {
		return fmt.Errorf("edited config is invalid: %w", err)
	}
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
