package export

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/inkwellco/inkwell/pkg/config"
	"github.com/inkwellco/inkwell/pkg/mddoc"
	"github.com/inkwellco/inkwell/pkg/preview"
)

// Compile-time interface check for HTMLExporter.
var _ Exporter = (*HTMLExporter)(nil)

// HTMLExporter renders a document as a standalone HTML page. Code
// blocks are highlighted with chroma using inline styles, so the
// output needs no external stylesheet.
type HTMLExporter struct {
	opts      Options
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHTMLExporter creates an HTML exporter with the given options.
func NewHTMLExporter(opts Options) *HTMLExporter {
	return &HTMLExporter{
		opts:  opts,
		style: styles.Get(opts.Style),
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),
			chromahtml.TabWidth(opts.effectiveTabSize()),
		),
	}
}

// Export implements Exporter.
func (e *HTMLExporter) Export(ctx context.Context, doc *Document, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export cancelled: %w", err)
	}

	var b strings.Builder
	e.writeHead(&b, doc.Title)

	for i := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("export cancelled: %w", err)
		}
		if err := e.writeBlock(&b, &doc.Blocks[i]); err != nil {
			return err
		}
	}

	b.WriteString("</body>\n</html>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

func (e *HTMLExporter) writeHead(b *strings.Builder, title string) {
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>\n")
	if e.opts.Theme == config.ThemeDark {
		b.WriteString(darkCSS)
	} else {
		b.WriteString(lightCSS)
	}
	b.WriteString(baseCSS)
	b.WriteString("</style>\n</head>\n<body>\n")
}

func (e *HTMLExporter) writeBlock(b *strings.Builder, blk *preview.Block) error {
	switch blk.Kind {
	case mddoc.NodeHeading:
		level := blk.Level
		if level < 1 || level > 6 {
			level = 1
		}
		fmt.Fprintf(b, "<h%d>%s</h%d>\n", level, html.EscapeString(blk.Text), level)

	case mddoc.NodeParagraph:
		fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(blk.Text))

	case mddoc.NodeBlockQuote:
		fmt.Fprintf(b, "<blockquote><p>%s</p></blockquote>\n", html.EscapeString(blk.Text))

	case mddoc.NodeCodeBlock:
		return e.writeCode(b, blk)

	case mddoc.NodeList:
		e.writeList(b, blk)

	case mddoc.NodeTable:
		e.writeTable(b, blk)

	case mddoc.NodeThematicBreak:
		b.WriteString("<hr>\n")
	}
	return nil
}

// writeCode highlights the block body with chroma. Unknown languages
// and tokenizer failures fall back to an escaped <pre> block.
func (e *HTMLExporter) writeCode(b *strings.Builder, blk *preview.Block) error {
	lexer := lexers.Get(blk.Lang)
	if lexer == nil {
		e.writePlainCode(b, blk.Code)
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, blk.Code)
	if err != nil {
		e.writePlainCode(b, blk.Code)
		return nil
	}
	if err := e.formatter.Format(b, e.style, it); err != nil {
		return fmt.Errorf("format code block: %w", err)
	}
	b.WriteString("\n")
	return nil
}

func (e *HTMLExporter) writePlainCode(b *strings.Builder, code string) {
	fmt.Fprintf(b, "<pre><code>%s</code></pre>\n", html.EscapeString(code))
}

func (e *HTMLExporter) writeList(b *strings.Builder, blk *preview.Block) {
	if blk.Ordered {
		if blk.Start != 1 {
			fmt.Fprintf(b, "<ol start=\"%d\">\n", blk.Start)
		} else {
			b.WriteString("<ol>\n")
		}
	} else {
		b.WriteString("<ul>\n")
	}
	for _, item := range blk.Items {
		fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(item))
	}
	if blk.Ordered {
		b.WriteString("</ol>\n")
	} else {
		b.WriteString("</ul>\n")
	}
}

func (e *HTMLExporter) writeTable(b *strings.Builder, blk *preview.Block) {
	b.WriteString("<table>\n")
	if len(blk.Header) > 0 {
		b.WriteString("<thead><tr>")
		for i, cell := range blk.Header {
			fmt.Fprintf(b, "<th%s>%s</th>", alignAttr(blk.Alignments, i), html.EscapeString(cell))
		}
		b.WriteString("</tr></thead>\n")
	}
	b.WriteString("<tbody>\n")
	for _, row := range blk.Rows {
		b.WriteString("<tr>")
		for i, cell := range row {
			fmt.Fprintf(b, "<td%s>%s</td>", alignAttr(blk.Alignments, i), html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
}

func alignAttr(alignments []mddoc.Alignment, col int) string {
	if col >= len(alignments) {
		return ""
	}
	switch alignments[col] {
	case mddoc.AlignLeft:
		return ` style="text-align:left"`
	case mddoc.AlignCenter:
		return ` style="text-align:center"`
	case mddoc.AlignRight:
		return ` style="text-align:right"`
	default:
		return ""
	}
}

const baseCSS = `body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem;
  font-family: -apple-system, "Segoe UI", Roboto, sans-serif; line-height: 1.6; }
pre { padding: 0.75rem; border-radius: 4px; overflow-x: auto; }
blockquote { margin-left: 0; padding-left: 1rem; border-left: 3px solid #9a9a9a; }
table { border-collapse: collapse; }
th, td { border: 1px solid #9a9a9a; padding: 0.3rem 0.6rem; }
hr { border: none; border-top: 1px solid #9a9a9a; }
`

const lightCSS = `body { background: #ffffff; color: #1f2328; }
`

const darkCSS = `body { background: #0d1117; color: #e6edf3; }
`
