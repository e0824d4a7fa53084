package mddoc

// BlockAttrs carries kind-specific data for block nodes. Only the field
// matching the node's kind is set.
type BlockAttrs struct {
	// HeadingLevel is 1 through 6 for headings.
	HeadingLevel int

	// Setext marks a heading written with an underline instead of hashes.
	Setext bool

	// List holds list container attributes.
	List *ListAttrs

	// Code holds code block attributes.
	Code *CodeAttrs

	// Table holds parsed table content.
	Table *TableAttrs
}

// ListAttrs describes a list container.
type ListAttrs struct {
	// Ordered lists use numeric markers; bullet lists use -, + or *.
	Ordered bool

	// Start is the first ordinal of an ordered list.
	Start int

	// Marker is the bullet rune, or the delimiter after the number
	// ('.' or ')') for ordered lists.
	Marker rune
}

// CodeAttrs describes a fenced or indented code block.
type CodeAttrs struct {
	// FenceChar is '`' or '~'; 0 for indented blocks.
	FenceChar rune

	// FenceLength is the opening fence run length (at least 3).
	FenceLength int

	// Info is the raw info string following the opening fence.
	Info string

	// Lang is the first word of Info, lowercased. Empty when untagged.
	Lang string

	// Indented marks a four-space indented block.
	Indented bool

	// Closed reports whether a matching closing fence was found. An open
	// fence runs to end of document and is the reparse-window hazard.
	Closed bool
}

// Alignment is a table column alignment from the delimiter row.
type Alignment uint8

// Column alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "none"
	}
}

// TableAttrs holds the parsed cell content of a table. The node's leaf
// children keep the raw source; cells are the trimmed view renderers want.
type TableAttrs struct {
	Header     []string
	Alignments []Alignment
	Rows       [][]string
}

// InlineAttrs carries kind-specific data for inline nodes.
type InlineAttrs struct {
	// Link is set for links and images.
	Link *LinkAttrs

	// Marker is the delimiter rune of emphasis and strong nodes
	// ('*' or '_').
	Marker rune
}

// LinkAttrs describes a link or image target.
type LinkAttrs struct {
	// Destination is the URL between the parentheses, or the autolink
	// target.
	Destination string

	// Title is the optional quoted title.
	Title string

	// Auto marks an autolink written as <destination>.
	Auto bool
}

// WithBlock attaches block attributes and returns the node for chaining
// during construction.
func (n *Node) WithBlock(attrs *BlockAttrs) *Node {
	n.Block = attrs
	return n
}

// WithInline attaches inline attributes and returns the node for chaining
// during construction.
func (n *Node) WithInline(attrs *InlineAttrs) *Node {
	n.Inline = attrs
	return n
}
