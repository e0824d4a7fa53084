// Package preview derives the flat render model the preview pane
// consumes and keeps editor and preview positions in sync.
//
// The parse tree is the source of truth; this package projects its
// top-level blocks into renderer-friendly values (heading text with
// markers stripped, styled code bodies, table cells) and maintains the
// offset table that maps editor positions to preview blocks and back.
package preview

import (
	"github.com/inkwellco/inkwell/pkg/highlight"
	"github.com/inkwellco/inkwell/pkg/langdetect"
	"github.com/inkwellco/inkwell/pkg/mddoc"
)

// Block is one renderable unit of the preview, derived from a
// top-level document block. Kind says which of the optional fields
// are meaningful.
type Block struct {
	Index int
	Kind  mddoc.NodeKind

	// Span is the block's source range in rune offsets.
	Span mddoc.Span

	// Level is the heading level, 1 through 6.
	Level int

	// Text is the inline content with syntax markers stripped, for
	// headings, paragraphs, and quotes.
	Text string

	// Lang is the resolved language tag of a code block. Detected
	// marks tags guessed from the body rather than read off the
	// fence.
	Lang     string
	Detected bool

	// Code is the raw code-block body; Spans is its styling.
	Code  string
	Spans []highlight.StyledSpan

	// Items holds the rendered text of each list item.
	Items   []string
	Ordered bool
	Start   int

	// Header and Rows hold table cells; Alignments has one entry per
	// column.
	Header     []string
	Rows       [][]string
	Alignments []mddoc.Alignment
}

// BuildModel projects a parse tree into preview blocks. reg resolves
// code-fence language tags; untagged fences are run through language
// detection so they still style. A nil reg leaves code plain.
func BuildModel(tree *mddoc.Tree, reg *highlight.Registry) []Block {
	refs := tree.Blocks()
	blocks := make([]Block, 0, len(refs))
	for _, ref := range refs {
		b := Block{Index: ref.Index, Kind: ref.Node.Kind, Span: ref.Span}
		switch ref.Node.Kind {
		case mddoc.NodeHeading:
			b.Level = ref.Node.HeadingLevel()
			b.Text = tree.InnerText(ref.Node, ref.Span.Start)
		case mddoc.NodeParagraph, mddoc.NodeBlockQuote:
			b.Text = tree.InnerText(ref.Node, ref.Span.Start)
		case mddoc.NodeCodeBlock:
			fillCode(&b, tree, ref, reg)
		case mddoc.NodeList:
			if la := ref.Node.ListAttrs(); la != nil {
				b.Ordered = la.Ordered
				b.Start = la.Start
			}
			for _, c := range ref.Node.Children {
				if c.Node.Kind == mddoc.NodeListItem {
					b.Items = append(b.Items, tree.InnerText(c.Node, ref.Span.Start+c.Off))
				}
			}
		case mddoc.NodeTable:
			if ta := ref.Node.TableAttrs(); ta != nil {
				b.Header = ta.Header
				b.Rows = ta.Rows
				b.Alignments = ta.Alignments
			}
		case mddoc.NodeThematicBreak:
			// Nothing beyond kind and span.
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// fillCode resolves the language and styles the body of a code block.
func fillCode(b *Block, tree *mddoc.Tree, ref mddoc.BlockRef, reg *highlight.Registry) {
	b.Code = tree.CodeBody(ref)

	if attrs := ref.Node.CodeAttrs(); attrs != nil {
		b.Lang = attrs.Lang
	}
	if b.Lang == "" && b.Code != "" {
		if tag := langdetect.Detect(b.Code); tag != langdetect.Unknown {
			b.Lang = tag
			b.Detected = true
		}
	}

	var rules *highlight.Ruleset
	if reg != nil {
		rules, _ = reg.Lookup(b.Lang)
	}
	b.Spans = highlight.Highlight(rules, b.Code)
}
