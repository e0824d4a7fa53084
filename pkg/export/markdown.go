package export

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Compile-time interface check for MarkdownExporter.
var _ Exporter = (*MarkdownExporter)(nil)

// MarkdownExporter writes the normalized source through unchanged.
// Loading already normalized line endings to LF, so exporting a document
// to markdown is the canonical form of the file.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a markdown passthrough exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export implements Exporter.
func (e *MarkdownExporter) Export(ctx context.Context, doc *Document, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export cancelled: %w", err)
	}

	if _, err := io.WriteString(w, doc.Source); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	// End with exactly one newline, matching how editors save files.
	if doc.Source != "" && !strings.HasSuffix(doc.Source, "\n") {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
	}

	return nil
}
