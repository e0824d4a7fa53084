package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/inkwellco/inkwell/internal/logging"
	"github.com/inkwellco/inkwell/internal/ui/pretty"
	"github.com/inkwellco/inkwell/pkg/config"
	"github.com/inkwellco/inkwell/pkg/export"
	"github.com/inkwellco/inkwell/pkg/fsutil"
	"github.com/inkwellco/inkwell/pkg/search"
	"github.com/inkwellco/inkwell/pkg/textbuf"
)

type searchFlags struct {
	regex      bool
	ignoreCase bool
	replace    string
	write      bool
}

func newSearchCommand() *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search PATTERN [paths...]",
		Short: "Search Markdown files, optionally replacing matches",
		Long: `Search Markdown files for a literal string or regular expression.

With --replace, matches are rewritten through the editor's buffer and
undo machinery; each file's replacement is a single atomic edit. Nothing
is written without --write, so a plain --replace run is a preview.

The regular-expression dialect is Go's RE2 syntax.

Examples:
  inkwell search TODO docs/
  inkwell search --regex 'v[0-9]+\.[0-9]+' README.md
  inkwell search old-name --replace new-name --write`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], args[1:], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.regex, "regex", "e", false, "interpret PATTERN as a regular expression")
	cmd.Flags().BoolVarP(&flags.ignoreCase, "ignore-case", "i", false, "fold case while matching")
	cmd.Flags().StringVar(&flags.replace, "replace", "", "replacement text for every match")
	cmd.Flags().BoolVar(&flags.write, "write", false, "write replacements back to the files")

	return cmd
}

func runSearch(cmd *cobra.Command, pattern string, paths []string, flags *searchFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	replaceMode := cmd.Flags().Changed("replace")
	if flags.write && !replaceMode {
		return fmt.Errorf("--write requires --replace")
	}

	matcher, err := search.Compile(search.Query{
		Pattern:    pattern,
		Regex:      flags.regex,
		IgnoreCase: flags.ignoreCase,
	})
	if err != nil {
		return fmt.Errorf("compile query: %w", err)
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
		Paths:        paths,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
	})
	if err != nil {
		return err
	}

	styles := commandStyles(cmd)
	out := cmd.OutOrStdout()
	totalMatches := 0
	filesWithMatches := 0

	for _, path := range files {
		text, _, err := fsutil.Load(ctx, path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		shown := displayPath(path, workDir)

		if replaceMode {
			n, err := replaceInFile(ctx, matcher, path, text, flags, cfg, logger)
			if err != nil {
				return err
			}
			if n > 0 {
				totalMatches += n
				filesWithMatches++
				fmt.Fprintf(out, "%s: %d\n", styles.FilePath.Render(shown), n)
			}
			continue
		}

		matches := matcher.FindAll(text)
		if len(matches) == 0 {
			continue
		}
		totalMatches += len(matches)
		filesWithMatches++

		buf := textbuf.New(text)
		for _, m := range matches {
			line, err := buf.LineOf(m.Start)
			if err != nil {
				continue
			}
			lineStart, err := buf.OffsetOf(line)
			if err != nil {
				continue
			}
			lineText, _ := buf.LineText(line)
			fmt.Fprintln(out, styles.FormatMatch(pretty.MatchLine{
				Path:  shown,
				Line:  line + 1,
				Col:   m.Start - lineStart + 1,
				Text:  lineText,
				Start: m.Start - lineStart,
				End:   m.End - lineStart,
			}))
		}
	}

	if replaceMode {
		fmt.Fprint(out, styles.FormatReplaceSummary(totalMatches, filesWithMatches, !flags.write))
	} else {
		fmt.Fprint(out, styles.FormatSearchSummary(totalMatches, filesWithMatches))
	}

	if totalMatches == 0 {
		return ErrNoMatches
	}
	return nil
}

// replaceInFile runs one file's replacement through the buffer path,
// so the edit applies exactly as it would inside the editor. Without
// --write the buffer is mutated and discarded (a preview).
func replaceInFile(
	ctx context.Context,
	matcher *search.Matcher,
	path, text string,
	flags *searchFlags,
	cfg *config.Config,
	logger *log.Logger,
) (int, error) {
	buf := textbuf.New(text)
	n, _, err := matcher.ReplaceAll(buf, flags.replace)
	if err != nil {
		return 0, fmt.Errorf("replace in %s: %w", path, err)
	}
	if n == 0 || !flags.write {
		return n, nil
	}

	backupCfg := fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	if _, err := fsutil.CreateBackup(ctx, path, backupCfg); err != nil {
		return 0, fmt.Errorf("backup %s: %w", path, err)
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(buf.Text()), fsutil.DefaultFileMode); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	logger.Debug("replaced matches",
		logging.FieldPath, path,
		logging.FieldReplacements, n,
	)
	return n, nil
}
