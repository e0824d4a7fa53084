// Package export renders parsed documents to interchange formats.
//
// Exporters consume the same block model the preview pane renders, so a
// document is parsed once and every format sees identical structure. The
// markdown exporter passes the normalized source through untouched; HTML
// and PDF walk the blocks.
package export

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/inkwellco/inkwell/pkg/fsutil"
	"github.com/inkwellco/inkwell/pkg/highlight"
	"github.com/inkwellco/inkwell/pkg/mddoc"
	"github.com/inkwellco/inkwell/pkg/preview"
)

// Document is the parsed input an exporter renders.
type Document struct {
	// Path is the source file path, empty for unnamed buffers.
	Path string

	// Title is the first heading, falling back to the file name.
	Title string

	// Source is the normalized markdown text.
	Source string

	// Tree is the parse tree the blocks were derived from.
	Tree *mddoc.Tree

	// Blocks is the render model, one entry per top-level block.
	Blocks []preview.Block
}

// NewDocument projects a parse tree into the shape exporters consume.
// reg resolves code-fence language tags; nil leaves code plain.
func NewDocument(path, source string, tree *mddoc.Tree, reg *highlight.Registry) *Document {
	doc := &Document{
		Path:   path,
		Source: source,
		Tree:   tree,
		Blocks: preview.BuildModel(tree, reg),
	}
	doc.Title = documentTitle(tree, path)
	return doc
}

// documentTitle picks the first heading, then the file name, then a stub.
func documentTitle(tree *mddoc.Tree, path string) string {
	if outline := tree.Outline(); len(outline) > 0 && outline[0].Text != "" {
		return outline[0].Text
	}
	if path != "" {
		base := filepath.Base(path)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "Untitled"
}

// Exporter renders a document to a writer.
type Exporter interface {
	// Export writes the rendered document to w.
	Export(ctx context.Context, doc *Document, w io.Writer) error
}

// New creates an Exporter for the specified options.
func New(opts Options) (Exporter, error) {
	format := opts.Format
	if format == "" {
		format = FormatHTML
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatMarkdown:
		return NewMarkdownExporter(), nil
	case FormatHTML:
		return NewHTMLExporter(opts), nil
	case FormatPDF:
		return NewPDFExporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// OutputPath derives the destination file for a source path. With outDir
// empty the output lands next to the source; otherwise under outDir.
func OutputPath(srcPath, outDir string, format Format) string {
	base := filepath.Base(srcPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := fsutil.SanitizeFilename(stem) + format.Extension()

	if outDir == "" {
		return filepath.Join(filepath.Dir(srcPath), name)
	}
	return filepath.Join(outDir, name)
}
