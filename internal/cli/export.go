package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwellco/inkwell/internal/logging"
	"github.com/inkwellco/inkwell/pkg/config"
	"github.com/inkwellco/inkwell/pkg/export"
)

type exportFlags struct {
	format   string
	outDir   string
	jobs     int
	style    string
	pageSize string
	theme    string
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Export Markdown files to HTML, PDF, or normalized Markdown",
		Long: `Render Markdown files to another format. Directories are searched
recursively; with no paths the current directory is used.

Files are exported concurrently. Each output is written next to its
source unless --out names a directory.

Examples:
  inkwell export README.md
  inkwell export --format pdf docs/
  inkwell export --format html --out build/ --jobs 8 .`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "html", "output format: markdown, html, pdf")
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", "", "directory for rendered files")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = number of CPUs)")
	cmd.Flags().StringVar(&flags.style, "style", "", "chroma style for HTML code blocks")
	cmd.Flags().StringVar(&flags.pageSize, "page-size", "", "PDF page size (A4, Letter, ...)")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "HTML colour theme: light, dark")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, flags *exportFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithComponent(ctx, "export")

	format, err := export.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}

	opts := export.Options{
		Format:   format,
		Style:    cfg.Export.HTMLStyle,
		PageSize: cfg.Export.PDFPageSize,
		Theme:    cfg.View.Theme,
		TabSize:  cfg.Editor.TabSize,
	}
	if flags.style != "" {
		opts.Style = flags.style
	}
	if flags.pageSize != "" {
		opts.PageSize = flags.pageSize
	}
	if flags.theme != "" {
		theme := config.Theme(flags.theme)
		if !theme.IsValid() {
			return fmt.Errorf("unknown theme %q; valid themes: light, dark, system", flags.theme)
		}
		opts.Theme = theme
	}
	// Exporters have no host platform to ask, so system means light.
	if opts.Theme == config.ThemeSystem {
		opts.Theme = config.ThemeLight
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	runner, err := export.NewRunner(opts, buildRegistry(cfg), logger)
	if err != nil {
		return err
	}

	logger.Debug("starting export",
		logging.FieldFormat, format.String(),
		logging.FieldJobs, flags.jobs,
	)

	result, err := runner.Run(ctx, export.BatchOptions{
		Paths:        args,
		WorkingDir:   workDir,
		OutDir:       flags.outDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         flags.jobs,
	})
	if err != nil {
		return err
	}

	styles := commandStyles(cmd)
	out := cmd.OutOrStdout()
	for _, file := range result.Files {
		if file.Err != nil {
			fmt.Fprintf(out, "%s %s: %v\n",
				styles.Failure.Render("FAIL"),
				displayPath(file.Path, workDir), file.Err)
			continue
		}
		fmt.Fprintf(out, "%s -> %s\n",
			styles.FilePath.Render(displayPath(file.Path, workDir)),
			displayPath(file.Output, workDir))
	}
	fmt.Fprintf(out, "\n%s %d exported, %d failed (%d files)\n",
		styles.SummaryTitle.Render("Export:"),
		result.Stats.FilesExported,
		result.Stats.FilesErrored,
		result.Stats.FilesDiscovered)

	if result.Stats.FilesErrored > 0 {
		return fmt.Errorf("%d of %d files failed to export",
			result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	return nil
}
