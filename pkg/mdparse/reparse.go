package mdparse

import (
	"context"
	"strings"

	"github.com/inkwellco/inkwell/pkg/mddoc"
)

// Window bounds an incremental reparse. Prefix and Suffix count top-level
// segments of the previous tree reused verbatim; Start and End frame the
// rune range of the new source that gets parsed fresh. Start always equals
// the total length of the prefix segments, and End equals the new source
// length minus the suffix segments, which Reparse verifies.
type Window struct {
	Prefix int
	Suffix int
	Start  int
	End    int
}

// Whole reports whether the window covers the entire document.
func (w Window) Whole() bool {
	return w.Prefix == 0 && w.Suffix == 0
}

// ComputeWindow picks the smallest safe reparse window for an edit against
// prev. dirtyStart and dirtyEnd give the edited range in the previous
// source's offsets (for an insertion both are the insertion point); removed
// and inserted carry the edited text; src is the new source.
//
// The window grows from the segments the edit touches to whole blank-line
// delimited groups, then takes one intact blank run on each side. Blank
// runs are the only boundaries no block can parse across, so anything less
// risks stitching a paragraph, setext heading, or list differently than a
// full parse would. Edits that add or remove fence delimiters, or that
// leave an unterminated fence inside the window, extend the window to the
// end of the document instead, since an open fence swallows everything
// after it.
func ComputeWindow(prev *mddoc.Tree, dirtyStart, dirtyEnd int, removed, inserted string, src []rune) Window {
	whole := Window{Start: 0, End: len(src)}
	if prev == nil {
		return whole
	}
	segs := prev.Root.Children
	n := len(segs)
	if n == 0 {
		return whole
	}
	oldLen := prev.SourceLen()
	dirtyStart = clamp(dirtyStart, 0, oldLen)
	dirtyEnd = clamp(dirtyEnd, dirtyStart, oldLen)

	segStart := func(k int) int { return segs[k].Off }
	segEnd := func(k int) int { return segs[k].Off + segs[k].Node.Len }
	// A blank run is intact when the edit did not touch any of its runes.
	// Intact blank runs are the only safe window boundaries.
	intactBlank := func(k int) bool {
		if segs[k].Node.Kind != mddoc.NodeBlank {
			return false
		}
		return segEnd(k) <= dirtyStart || segStart(k) >= dirtyEnd
	}

	// Segments touching the dirty range, boundaries included so that an
	// insertion between two segments pulls in both.
	i0 := 0
	for i0 < n-1 && segEnd(i0) < dirtyStart {
		i0++
	}
	i1 := n - 1
	for i1 > i0 && segStart(i1) > dirtyEnd {
		i1--
	}

	for i0 > 0 && !intactBlank(i0-1) {
		i0--
	}
	for i1 < n-1 && !intactBlank(i1+1) {
		i1++
	}
	if i0 > 0 {
		i0--
	}
	if i1 < n-1 {
		i1++
	}

	w := Window{Prefix: i0, Suffix: n - 1 - i1, Start: segStart(i0)}
	suffixLen := 0
	for k := i1 + 1; k < n; k++ {
		suffixLen += segs[k].Node.Len
	}
	w.End = len(src) - suffixLen

	if w.Suffix > 0 {
		if containsFenceDelimiter(removed) || containsFenceDelimiter(inserted) ||
			hasOpenFence(src, w.Start, w.End) {
			w.Suffix = 0
			w.End = len(src)
		}
	}
	return w
}

// Reparse rebuilds the tree for the new source, parsing only the window
// and reattaching the previous tree's prefix and suffix segments by
// reference. Segment offsets shift through the new parents while the nodes
// themselves are shared untouched. ErrBadWindow reports a window that does
// not line up with prev and the new source; callers recover with Parse.
func (p *Parser) Reparse(ctx context.Context, prev *mddoc.Tree, w Window, source string, version uint64) (*mddoc.Tree, error) {
	src := []rune(source)
	segs := prev.Root.Children
	if w.Prefix < 0 || w.Suffix < 0 || w.Prefix+w.Suffix > len(segs) {
		return nil, ErrBadWindow
	}
	start := 0
	for k := 0; k < w.Prefix; k++ {
		start += segs[k].Node.Len
	}
	suffixLen := 0
	for k := len(segs) - w.Suffix; k < len(segs); k++ {
		suffixLen += segs[k].Node.Len
	}
	end := len(src) - suffixLen
	if start != w.Start || end != w.End || start > end {
		return nil, ErrBadWindow
	}

	midRoot, recovered, err := parseDoc(ctx, src[start:end])
	if err != nil {
		return nil, err
	}
	root := mddoc.NewNode(mddoc.NodeDocument, 0)
	for k := 0; k < w.Prefix; k++ {
		root.Extend(segs[k].Node)
	}
	for _, c := range midRoot.Children {
		root.Extend(c.Node)
	}
	for k := len(segs) - w.Suffix; k < len(segs); k++ {
		root.Extend(segs[k].Node)
	}
	if root.Len != len(src) {
		return nil, ErrBadWindow
	}
	tree := mddoc.NewTree(root, src, version)
	// Recovered stays sticky across incremental parses; a full parse is
	// what clears it once the malformed region is gone.
	tree.Recovered = recovered || prev.Recovered
	return tree, nil
}

// containsFenceDelimiter reports whether s could add or remove a code
// fence. Checking for the raw delimiter runs anywhere in the text
// over-triggers on prose, which only costs a larger window.
func containsFenceDelimiter(s string) bool {
	return strings.Contains(s, "```") || strings.Contains(s, "~~~")
}

// hasOpenFence reports whether src[start:end) ends inside an unclosed
// fenced code block. The window is run through the block parser rather
// than scanned line by line: a fence-looking line can be consumed as a
// list-item continuation or table row, so only the real parse knows
// which fences take effect. An unterminated fence swallows every line
// after it, which makes it the window's last block.
func hasOpenFence(src []rune, start, end int) bool {
	window := src[start:end]
	bp := &blockParser{
		src:   window,
		lines: scanLines(window),
		doc:   mddoc.NewNode(mddoc.NodeDocument, 0),
	}
	for bp.i < len(bp.lines) {
		bp.parseBlock()
	}
	kids := bp.doc.Children
	if len(kids) == 0 {
		return false
	}
	last := kids[len(kids)-1].Node
	if last.Kind != mddoc.NodeCodeBlock {
		return false
	}
	attrs := last.CodeAttrs()
	return attrs != nil && !attrs.Closed
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
