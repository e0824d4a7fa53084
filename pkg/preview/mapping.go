package preview

import (
	"sort"

	"github.com/inkwellco/inkwell/pkg/mddoc"
)

// Coordinate locates a position in the preview: a block index plus a
// rune offset local to that block's source range. Local may equal the
// block's length, which addresses the boundary just past it.
type Coordinate struct {
	Block int
	Local int
}

// Mapping is the ordered table the sync controller searches: one entry
// per preview block, holding its source range. It is immutable once
// built; structural edits replace it wholesale.
type Mapping struct {
	entries []entry
}

type entry struct {
	span  mddoc.Span
	block int
}

// NewMapping builds the offset table for a parse tree.
func NewMapping(tree *mddoc.Tree) *Mapping {
	m := &Mapping{}
	for _, ref := range tree.Blocks() {
		m.entries = append(m.entries, entry{span: ref.Span, block: ref.Index})
	}
	return m
}

// Blocks returns the number of mapped preview blocks.
func (m *Mapping) Blocks() int { return len(m.entries) }

// BlockSpan returns the source range of preview block index.
func (m *Mapping) BlockSpan(index int) (mddoc.Span, bool) {
	if index < 0 || index >= len(m.entries) {
		return mddoc.Span{}, false
	}
	return m.entries[index].span, true
}

// ToPreview maps an editor offset to a preview coordinate. Offsets
// inside a block map exactly; offsets in the blank gaps between
// blocks snap to the nearest block boundary, and offsets past the
// last block snap to its end. ok is false only when the document has
// no blocks.
func (m *Mapping) ToPreview(offset int) (Coordinate, bool) {
	if len(m.entries) == 0 {
		return Coordinate{}, false
	}
	// First block ending after offset.
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].span.End > offset })
	if i == len(m.entries) {
		last := m.entries[len(m.entries)-1]
		return Coordinate{Block: last.block, Local: last.span.Len()}, true
	}
	e := m.entries[i]
	if offset >= e.span.Start {
		return Coordinate{Block: e.block, Local: offset - e.span.Start}, true
	}
	// In the gap before block i: snap to whichever boundary is
	// closer, preferring the following block's start on a tie.
	if i > 0 {
		prev := m.entries[i-1]
		if offset-prev.span.End < e.span.Start-offset {
			return Coordinate{Block: prev.block, Local: prev.span.Len()}, true
		}
	}
	return Coordinate{Block: e.block, Local: 0}, true
}

// ToOffset maps a preview coordinate back to an editor offset. Stale
// coordinates, such as a block index left over from before a block
// was removed, snap to the nearest valid boundary rather than
// failing. ok is false only when the document has no blocks.
func (m *Mapping) ToOffset(c Coordinate) (int, bool) {
	if len(m.entries) == 0 {
		return 0, false
	}
	b := min(max(c.Block, 0), len(m.entries)-1)
	e := m.entries[b]
	local := min(max(c.Local, 0), e.span.Len())
	return e.span.Start + local, true
}

// matchesTree reports whether the mapping still describes the tree's
// block structure: same count, same order, same source ranges.
func (m *Mapping) matchesTree(tree *mddoc.Tree) bool {
	blocks := tree.Blocks()
	if len(blocks) != len(m.entries) {
		return false
	}
	for i, ref := range blocks {
		if ref.Span != m.entries[i].span {
			return false
		}
	}
	return true
}
