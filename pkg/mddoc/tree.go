package mddoc

import (
	"sort"
	"strings"
)

// Tree pairs a parsed document root with the source it was parsed from.
// The source travels with the tree because nodes hold no text, only spans;
// consumers slice the tree's own source so a stale tree never reads a newer
// document.
type Tree struct {
	// Root is the NodeDocument container.
	Root *Node

	// Version is the buffer version the tree was parsed from.
	Version uint64

	// Recovered reports that at least one malformed construct degraded to
	// literal text during parsing.
	Recovered bool

	src    []rune
	blocks []BlockRef
}

// BlockRef is a materialized view of one top-level block: the node handle,
// its absolute span, and its index among renderable blocks.
type BlockRef struct {
	Node  *Node
	Span  Span
	Index int
}

// NewTree wraps a document root over its source. The block index covers the
// renderable top-level children; Blank runs are indexed separately for
// adjacency queries.
func NewTree(root *Node, src []rune, version uint64) *Tree {
	t := &Tree{Root: root, Version: version, src: src}
	for _, c := range root.Children {
		if c.Node.Kind != NodeBlank {
			t.blocks = append(t.blocks, BlockRef{
				Node:  c.Node,
				Span:  Span{Start: c.Off, End: c.Off + c.Node.Len},
				Index: len(t.blocks),
			})
		}
	}
	return t
}

// SourceLen returns the source length in runes.
func (t *Tree) SourceLen() int {
	return len(t.src)
}

// Source returns the source text the tree was parsed from.
func (t *Tree) Source() string {
	return string(t.src)
}

// SpanText returns the source text covered by span. Spans outside the
// source are clipped; the tree's own spans always lie inside.
func (t *Tree) SpanText(span Span) string {
	start := max(span.Start, 0)
	end := min(span.End, len(t.src))
	if end <= start {
		return ""
	}
	return string(t.src[start:end])
}

// Blocks returns the renderable top-level blocks in order.
func (t *Tree) Blocks() []BlockRef {
	return t.blocks
}

// BlockCount returns the number of renderable top-level blocks.
func (t *Tree) BlockCount() int {
	return len(t.blocks)
}

// Block returns the block at index.
func (t *Tree) Block(index int) (BlockRef, bool) {
	if index < 0 || index >= len(t.blocks) {
		return BlockRef{}, false
	}
	return t.blocks[index], true
}

// BlockAt resolves a document offset to the block containing it. Offsets
// inside a blank run or past the last block snap to the nearest following
// block, then to the last block, so any offset in a non-empty document
// resolves. ok is false only when the document has no blocks.
func (t *Tree) BlockAt(pos int) (BlockRef, bool) {
	if len(t.blocks) == 0 {
		return BlockRef{}, false
	}
	// First block ending after pos.
	i := sort.Search(len(t.blocks), func(i int) bool { return t.blocks[i].Span.End > pos })
	if i == len(t.blocks) {
		return t.blocks[len(t.blocks)-1], true
	}
	return t.blocks[i], true
}

// InnerText concatenates the text leaves under n, skipping syntax markers
// and blanks. Heading and paragraph text for outlines and previews.
func (t *Tree) InnerText(n *Node, base int) string {
	var sb strings.Builder
	_ = Walk(n, base, func(node *Node, span Span) error {
		if node.Kind == NodeText && node.IsLeaf() {
			sb.WriteString(t.SpanText(span))
		}
		return nil
	})
	return strings.TrimRight(sb.String(), "\n")
}

// CodeBody returns the content of a code block node (the text between the
// fences, or the dedented body of an indented block is returned raw).
func (t *Tree) CodeBody(ref BlockRef) string {
	if ref.Node.Kind != NodeCodeBlock {
		return ""
	}
	var sb strings.Builder
	_ = Walk(ref.Node, ref.Span.Start, func(node *Node, span Span) error {
		if node.Kind == NodeText && node.IsLeaf() {
			sb.WriteString(t.SpanText(span))
		}
		return nil
	})
	return sb.String()
}

// Validate checks the tree's structural invariants: tiling children and a
// root covering the source exactly.
func (t *Tree) Validate() bool {
	return t.Root != nil && t.Root.Kind == NodeDocument &&
		t.Root.Len == len(t.src) && t.Root.Validate()
}
