// Package mdparse parses Markdown source into a mddoc tree, either from
// scratch or incrementally around an edited window.
//
// The parser is total: any input yields a valid tree, with malformed
// constructs degraded to literal text and the degradation recorded on the
// tree's Recovered flag. Parsing runs in two passes per block: a line-based
// block partition, then an inline pass over each block's content. Every
// source rune, markers and blank lines included, lands in exactly one leaf,
// so the tree losslessly tiles the document.
//
// The dialect is CommonMark-shaped rather than CommonMark-complete: ATX and
// setext headings, fenced and indented code, tight lists, block quotes,
// thematic breaks, pipe tables, emphasis and strong with flanking checks,
// code spans, inline links, images, and autolinks. Delimiter runs longer
// than two, reference-style links, and strikethrough stay literal text.
package mdparse

import (
	"context"
	"errors"

	"github.com/inkwellco/inkwell/pkg/mddoc"
)

// Parser turns Markdown source into mddoc trees. A Parser is stateless and
// safe for concurrent use; per-parse state lives in the block parser.
type Parser struct{}

// New returns a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse builds a tree for the whole source. version tags the tree with the
// buffer state it was parsed from. The only error is context cancellation.
func (p *Parser) Parse(ctx context.Context, source string, version uint64) (*mddoc.Tree, error) {
	src := []rune(source)
	root, recovered, err := parseDoc(ctx, src)
	if err != nil {
		return nil, err
	}
	tree := mddoc.NewTree(root, src, version)
	tree.Recovered = recovered
	return tree, nil
}

// parseDoc runs the block partition over src and returns the document root.
func parseDoc(ctx context.Context, src []rune) (*mddoc.Node, bool, error) {
	bp := &blockParser{
		src:   src,
		lines: scanLines(src),
		doc:   mddoc.NewNode(mddoc.NodeDocument, 0),
	}
	if err := bp.run(ctx); err != nil {
		return nil, false, err
	}
	return bp.doc, bp.recovered, nil
}

// lineSpan frames one physical line, newline included.
type lineSpan struct {
	start int
	end   int // past the '\n', or end of source for the final line
}

// scanLines splits src into physical lines. A trailing newline does not
// open an extra empty line here; the line index in textbuf handles cursor
// semantics, while the parser only needs the written lines.
func scanLines(src []rune) []lineSpan {
	var lines []lineSpan
	start := 0
	for i, r := range src {
		if r == '\n' {
			lines = append(lines, lineSpan{start: start, end: i + 1})
			start = i + 1
		}
	}
	if start < len(src) {
		lines = append(lines, lineSpan{start: start, end: len(src)})
	}
	return lines
}

// ErrBadWindow reports a reparse window inconsistent with the previous tree
// and new source. Callers fall back to a full parse.
var ErrBadWindow = errors.New("reparse window does not cover the source")
