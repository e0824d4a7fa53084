package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inkwellco/inkwell/internal/configloader"
	"github.com/inkwellco/inkwell/internal/logging"
	"github.com/inkwellco/inkwell/internal/ui/pretty"
	"github.com/inkwellco/inkwell/pkg/config"
	"github.com/inkwellco/inkwell/pkg/fsutil"
	"github.com/inkwellco/inkwell/pkg/highlight"
	"github.com/inkwellco/inkwell/pkg/mddoc"
	"github.com/inkwellco/inkwell/pkg/mdparse"
)

// resolveConfig loads and merges configuration for a command run,
// honoring the root --config flag. cliCfg carries flag-level overrides
// and may be nil.
func resolveConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	logger := logging.Default()
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// buildRegistry creates the highlight registry with the configured
// language aliases applied.
func buildRegistry(cfg *config.Config) *highlight.Registry {
	reg := highlight.NewRegistry()
	for tag, target := range cfg.Highlight.Aliases {
		if !reg.Alias(tag, target) {
			logging.Default().Warn("unknown alias target",
				logging.FieldLanguage, target)
		}
	}
	return reg
}

// parseDocument loads a file and parses it into a tree.
func parseDocument(ctx context.Context, path string) (string, *mddoc.Tree, error) {
	text, _, err := fsutil.Load(ctx, path)
	if err != nil {
		return "", nil, fmt.Errorf("load %s: %w", path, err)
	}
	tree, err := mdparse.New().Parse(ctx, text, 0)
	if err != nil {
		return "", nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return text, tree, nil
}

// commandStyles builds the pretty styles for a command, honoring the
// root --color flag against the command's output writer.
func commandStyles(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}

// displayPath shortens an absolute path to be relative to the working
// directory when that makes it shorter to read.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}
