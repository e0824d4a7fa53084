// Package mddoc defines the document tree produced by parsing Markdown
// source: immutable nodes whose children record offsets relative to their
// parent. Because a node never stores an absolute position, an unchanged
// subtree can be attached to a new tree after an edit shifted it, which is
// what makes incremental reparsing share structure instead of copying.
//
// Offsets and lengths are rune counts. The children of a container tile its
// span exactly, so concatenating every leaf span in order reproduces the
// source rune for rune: syntax markers, blank lines, and newlines all live
// in leaves (NodeSyntax, NodeBlank, NodeText).
package mddoc

// NodeKind classifies a document tree node.
type NodeKind uint8

// Node kinds for block-level, inline-level, and structural elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockQuote
	NodeCodeBlock
	NodeThematicBreak
	NodeTable

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage

	// Structural leaves. Syntax covers marker and delimiter runes (fence
	// lines, heading hashes, emphasis markers); Blank covers blank-line
	// runs between blocks. Renderers skip both.
	NodeSyntax
	NodeBlank
)

// String returns a stable lowercase name for the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "document"
	case NodeParagraph:
		return "paragraph"
	case NodeHeading:
		return "heading"
	case NodeList:
		return "list"
	case NodeListItem:
		return "list_item"
	case NodeBlockQuote:
		return "block_quote"
	case NodeCodeBlock:
		return "code_block"
	case NodeThematicBreak:
		return "thematic_break"
	case NodeTable:
		return "table"
	case NodeText:
		return "text"
	case NodeEmphasis:
		return "emphasis"
	case NodeStrong:
		return "strong"
	case NodeCodeSpan:
		return "code_span"
	case NodeLink:
		return "link"
	case NodeImage:
		return "image"
	case NodeSyntax:
		return "syntax"
	case NodeBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// IsBlock reports whether the kind is a block-level element.
func (k NodeKind) IsBlock() bool {
	switch k {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockQuote, NodeCodeBlock, NodeThematicBreak, NodeTable, NodeBlank:
		return true
	default:
		return false
	}
}

// IsInline reports whether the kind is an inline-level element.
func (k NodeKind) IsInline() bool {
	switch k {
	case NodeText, NodeEmphasis, NodeStrong, NodeCodeSpan, NodeLink, NodeImage:
		return true
	default:
		return false
	}
}

// Child places a node at an offset relative to its parent's start.
type Child struct {
	Off  int
	Node *Node
}

// Node is one tree node. Nodes are built by the parser and treated as
// immutable afterwards; a reparse never modifies a node it reuses.
type Node struct {
	// Kind identifies the element.
	Kind NodeKind

	// Len is the number of source runes the node covers. For containers it
	// equals the sum of the children's lengths: children tile the span.
	Len int

	// Children in source order. Empty for leaves.
	Children []Child

	// Block carries attributes for block kinds, nil otherwise.
	Block *BlockAttrs

	// Inline carries attributes for inline kinds, nil otherwise.
	Inline *InlineAttrs
}

// NewNode constructs a leaf of the given kind covering length runes.
func NewNode(kind NodeKind, length int) *Node {
	return &Node{Kind: kind, Len: length}
}

// Extend appends child at the node's current covered end and grows the
// node's length, keeping the tiling invariant by construction.
func (n *Node) Extend(child *Node) {
	n.Children = append(n.Children, Child{Off: n.Len, Node: child})
	n.Len += child.Len
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// HeadingLevel returns the heading level, or 0 for non-headings.
func (n *Node) HeadingLevel() int {
	if n.Kind == NodeHeading && n.Block != nil {
		return n.Block.HeadingLevel
	}
	return 0
}

// CodeAttrs returns fence attributes for code blocks, nil otherwise.
func (n *Node) CodeAttrs() *CodeAttrs {
	if n.Kind == NodeCodeBlock && n.Block != nil {
		return n.Block.Code
	}
	return nil
}

// ListAttrs returns list attributes for lists, nil otherwise.
func (n *Node) ListAttrs() *ListAttrs {
	if n.Kind == NodeList && n.Block != nil {
		return n.Block.List
	}
	return nil
}

// TableAttrs returns table attributes for tables, nil otherwise.
func (n *Node) TableAttrs() *TableAttrs {
	if n.Kind == NodeTable && n.Block != nil {
		return n.Block.Table
	}
	return nil
}

// LinkAttrs returns link attributes for links and images, nil otherwise.
func (n *Node) LinkAttrs() *LinkAttrs {
	if (n.Kind == NodeLink || n.Kind == NodeImage) && n.Inline != nil {
		return n.Inline.Link
	}
	return nil
}

// Validate checks the tiling invariant recursively: children offsets are
// ascending from 0 and cover the parent exactly, and lengths are
// non-negative. Parsers must produce valid trees; tests and fuzzing call
// this.
func (n *Node) Validate() bool {
	if n == nil || n.Len < 0 {
		return false
	}
	if len(n.Children) == 0 {
		return true
	}
	at := 0
	for _, c := range n.Children {
		if c.Off != at || c.Node == nil {
			return false
		}
		if !c.Node.Validate() {
			return false
		}
		at += c.Node.Len
	}
	return at == n.Len
}
