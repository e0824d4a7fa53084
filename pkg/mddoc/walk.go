package mddoc

import "errors"

// errStopWalk terminates a traversal early without reporting an error to
// the caller.
var errStopWalk = errors.New("stop walk")

// Visitor is called for each node with the node's absolute source span.
// Return a non-nil error to stop the walk.
type Visitor func(n *Node, span Span) error

// Walk performs a pre-order traversal from root. Absolute spans are
// computed on the way down from the given base offset, since nodes
// themselves store only relative positions.
func Walk(root *Node, base int, fn Visitor) error {
	err := walk(root, base, fn)
	if errors.Is(err, errStopWalk) {
		return nil
	}
	return err
}

func walk(n *Node, start int, fn Visitor) error {
	if n == nil {
		return nil
	}
	if err := fn(n, Span{Start: start, End: start + n.Len}); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := walk(c.Node, start+c.Off, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkEnterLeave traverses with separate enter and leave callbacks, for
// consumers that emit nested output such as HTML tags. Either callback may
// be nil. An error from enter skips the subtree's leave as the walk stops.
func WalkEnterLeave(root *Node, base int, enter, leave Visitor) error {
	err := walkEnterLeave(root, base, enter, leave)
	if errors.Is(err, errStopWalk) {
		return nil
	}
	return err
}

func walkEnterLeave(n *Node, start int, enter, leave Visitor) error {
	if n == nil {
		return nil
	}
	span := Span{Start: start, End: start + n.Len}
	if enter != nil {
		if err := enter(n, span); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := walkEnterLeave(c.Node, start+c.Off, enter, leave); err != nil {
			return err
		}
	}
	if leave != nil {
		if err := leave(n, span); err != nil {
			return err
		}
	}
	return nil
}

// Match pairs a found node with its absolute span.
type Match struct {
	Node *Node
	Span Span
}

// FindAll returns every node under root, in pre-order, for which pred is
// true.
func FindAll(root *Node, base int, pred func(*Node) bool) []Match {
	var out []Match
	_ = Walk(root, base, func(n *Node, span Span) error {
		if pred(n) {
			out = append(out, Match{Node: n, Span: span})
		}
		return nil
	})
	return out
}

// FindFirst returns the first node in pre-order for which pred is true.
func FindFirst(root *Node, base int, pred func(*Node) bool) (Match, bool) {
	var (
		out   Match
		found bool
	)
	_ = Walk(root, base, func(n *Node, span Span) error {
		if pred(n) {
			out = Match{Node: n, Span: span}
			found = true
			return errStopWalk
		}
		return nil
	})
	return out, found
}

// FindByKind returns every node of the given kind under root.
func FindByKind(root *Node, base int, kind NodeKind) []Match {
	return FindAll(root, base, func(n *Node) bool { return n.Kind == kind })
}

// LeafSpans returns the absolute spans of all leaves in order. For a valid
// tree these tile the whole covered range.
func LeafSpans(root *Node, base int) []Span {
	var out []Span
	_ = Walk(root, base, func(n *Node, span Span) error {
		if n.IsLeaf() {
			out = append(out, span)
		}
		return nil
	})
	return out
}
