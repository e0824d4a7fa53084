// Package cli provides the Cobra command structure for inkwell.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwellco/inkwell/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root inkwell command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "inkwell",
		Short: "A Markdown editor core with preview, search, and export tooling",
		Long: `inkwell is the text-processing core of a Markdown editor, exposed as a
command-line toolkit.

The same engine that drives the editor - incremental Markdown parsing,
syntax highlighting, search and replace through the undo history - backs
the commands here: render documents in the terminal, extract outlines
and statistics, search or rewrite files, and export to HTML or PDF.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newOutlineCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
