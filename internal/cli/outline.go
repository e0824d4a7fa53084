package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwellco/inkwell/internal/ui/pretty"
	"github.com/inkwellco/inkwell/pkg/textbuf"
)

func newOutlineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline FILE",
		Short: "Print a document's heading outline",
		Long: `Print the table of contents of a Markdown file: every heading with
its level and source line number.

Examples:
  inkwell outline README.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, args[0])
		},
	}

	return cmd
}

func runOutline(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	text, tree, err := parseDocument(ctx, path)
	if err != nil {
		return err
	}

	// The buffer's line index turns heading offsets into line numbers.
	buf := textbuf.New(text)
	var rows []pretty.OutlineRow
	for _, entry := range tree.Outline() {
		line, err := buf.LineOf(entry.Offset)
		if err != nil {
			continue
		}
		rows = append(rows, pretty.OutlineRow{
			Level: entry.Level,
			Text:  entry.Text,
			Line:  line + 1,
		})
	}

	styles := commandStyles(cmd)
	if _, err := fmt.Fprint(cmd.OutOrStdout(), styles.FormatOutline(path, rows)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
