package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwellco/inkwell/internal/ui/pretty"
	"github.com/inkwellco/inkwell/pkg/export"
)

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [paths...]",
		Short: "Show word counts and reading time",
		Long: `Count words, blocks, headings, and estimated reading time for Markdown
files. Directories are searched recursively; with no paths the current
directory is used.

Examples:
  inkwell stats README.md
  inkwell stats docs/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args)
		},
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	files, err := export.Discover(ctx, export.BatchOptions{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
	})
	if err != nil {
		return err
	}

	var rows []pretty.StatsRow
	for _, path := range files {
		_, tree, err := parseDocument(ctx, path)
		if err != nil {
			return err
		}
		rows = append(rows, pretty.StatsRow{
			Path:  displayPath(path, workDir),
			Stats: tree.Stats(),
		})
	}

	styles := commandStyles(cmd)
	if _, err := fmt.Fprint(cmd.OutOrStdout(), styles.FormatStatsTable(rows)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
