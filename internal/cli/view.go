package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inkwellco/inkwell/internal/ui/pretty"
	"github.com/inkwellco/inkwell/pkg/preview"
)

func newViewCommand() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Render a Markdown file in the terminal",
		Long: `Parse a Markdown file and render it as styled terminal output, with
syntax-highlighted code blocks.

The render goes through the same parse tree and preview model the editor
uses, so what you see is what the preview pane would show.

Examples:
  inkwell view README.md
  inkwell view --width 100 docs/guide.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], width)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "render width (0 = terminal width)")

	return cmd
}

func runView(cmd *cobra.Command, path string, width int) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}

	_, tree, err := parseDocument(ctx, path)
	if err != nil {
		return err
	}

	blocks := preview.BuildModel(tree, buildRegistry(cfg))

	if width <= 0 {
		width = terminalWidth(os.Stdout)
	}

	renderer := pretty.NewDocumentRenderer(commandStyles(cmd), width)
	if _, err := fmt.Fprint(cmd.OutOrStdout(), renderer.Render(blocks)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// terminalWidth reports the width of the terminal behind f, or zero
// when f is not a terminal (the renderer then uses its default).
func terminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}
