package textbuf

import "unicode/utf8"

// OpKind distinguishes the two primitive edits.
type OpKind uint8

const (
	// OpInsert places Text at Pos.
	OpInsert OpKind = iota
	// OpDelete removes Text (which must match the document) at Pos.
	OpDelete
)

// EditOp is one primitive edit. Ops carry the full affected text so every op
// knows its own inverse.
type EditOp struct {
	Kind OpKind
	Pos  int
	Text string
}

// Inverse returns the op that exactly undoes op.
func (op EditOp) Inverse() EditOp {
	switch op.Kind {
	case OpInsert:
		return EditOp{Kind: OpDelete, Pos: op.Pos, Text: op.Text}
	default:
		return EditOp{Kind: OpInsert, Pos: op.Pos, Text: op.Text}
	}
}

// EditGroup is an ordered sequence of ops applied atomically: one undo/redo
// step. Ops use the document coordinates in effect at their turn, so a group
// replays front to back and undoes back to front.
type EditGroup struct {
	// Label names the user action for history UIs ("typing", "replace all").
	Label string
	Ops   []EditOp
}

// history holds bounded undo/redo stacks of EditGroups.
type history struct {
	undo  []EditGroup
	redo  []EditGroup
	limit int
}

// push records a completed group and invalidates the redo stack.
func (h *history) push(g EditGroup) {
	h.undo = append(h.undo, g)
	if len(h.undo) > h.limit {
		// Drop the oldest group. The shift is O(depth) but only runs at the
		// cap, where depth is the configured bound.
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:len(h.undo)-1]
	}
	h.redo = h.redo[:0]
}

func (h *history) popUndo() (EditGroup, bool) {
	if len(h.undo) == 0 {
		return EditGroup{}, false
	}
	g := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return g, true
}

func (h *history) popRedo() (EditGroup, bool) {
	if len(h.redo) == 0 {
		return EditGroup{}, false
	}
	g := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return g, true
}

// record routes a completed op either into the open group or into history as
// a single-op group.
func (b *Buffer) record(op EditOp) {
	if b.group != nil {
		b.group.Ops = append(b.group.Ops, op)
		return
	}
	b.history.push(EditGroup{Ops: []EditOp{op}})
}

// BeginGroup opens an EditGroup: every mutation until the matching EndGroup
// becomes a single undo step. Nested calls are flattened into the outermost
// group.
func (b *Buffer) BeginGroup(label string) {
	b.groupDepth++
	if b.groupDepth == 1 {
		b.group = &EditGroup{Label: label}
	}
}

// EndGroup closes the current group and commits it to history if it
// contains any ops.
func (b *Buffer) EndGroup() {
	if b.groupDepth == 0 {
		return
	}
	b.groupDepth--
	if b.groupDepth > 0 {
		return
	}
	g := b.group
	b.group = nil
	if g != nil && len(g.Ops) > 0 {
		b.history.push(*g)
	}
}

// Apply runs a prebuilt group atomically: if any op is out of bounds the
// ops already applied are rolled back and the buffer is unchanged. On
// success the group becomes a single undo step and the merged change is
// returned.
func (b *Buffer) Apply(g EditGroup) (Change, error) {
	var (
		applied []EditOp
		merged  Change
	)
	for _, op := range g.Ops {
		ch, err := b.checkOp(op)
		if err != nil {
			// Roll back in reverse without touching history.
			for i := len(applied) - 1; i >= 0; i-- {
				b.applyRaw(applied[i].Inverse())
			}
			b.publish()
			return Change{}, err
		}
		applied = append(applied, op)
		merged = mergeChanges(merged, ch)
	}
	if len(applied) == 0 {
		return Change{}, nil
	}
	b.history.push(EditGroup{Label: g.Label, Ops: applied})
	b.publish()
	return merged, nil
}

// checkOp validates op against the current document and applies it.
func (b *Buffer) checkOp(op EditOp) (Change, error) {
	n := utf8.RuneCountInString(op.Text)
	switch op.Kind {
	case OpInsert:
		if op.Pos < 0 || op.Pos > b.Len() {
			return Change{}, posErr("insert", op.Pos, b.Len())
		}
	default:
		if op.Pos < 0 || op.Pos+n > b.Len() {
			return Change{}, rangeErr("delete", op.Pos, op.Pos+n, b.Len())
		}
	}
	return b.applyRaw(op), nil
}

// applyRaw applies a pre-validated op without recording history.
func (b *Buffer) applyRaw(op EditOp) Change {
	if op.Text == "" {
		return Change{Start: op.Pos, OldEnd: op.Pos, NewEnd: op.Pos, Version: b.version}
	}
	if op.Kind == OpInsert {
		return b.insertRaw(op.Pos, op.Text)
	}
	return b.deleteRaw(op.Pos, utf8.RuneCountInString(op.Text))
}

// CanUndo reports whether an undo step is available.
func (b *Buffer) CanUndo() bool {
	return len(b.history.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (b *Buffer) CanRedo() bool {
	return len(b.history.redo) > 0
}

// Undo reverts the most recent edit group. It reports ok=false, changing
// nothing, when the undo stack is empty.
func (b *Buffer) Undo() (Change, bool) {
	g, ok := b.history.popUndo()
	if !ok {
		return Change{}, false
	}
	var merged Change
	for i := len(g.Ops) - 1; i >= 0; i-- {
		merged = mergeChanges(merged, b.applyRaw(g.Ops[i].Inverse()))
	}
	b.history.redo = append(b.history.redo, g)
	b.publish()
	return merged, true
}

// Redo reapplies the most recently undone group. It reports ok=false,
// changing nothing, when the redo stack is empty.
func (b *Buffer) Redo() (Change, bool) {
	g, ok := b.history.popRedo()
	if !ok {
		return Change{}, false
	}
	var merged Change
	for _, op := range g.Ops {
		merged = mergeChanges(merged, b.applyRaw(op))
	}
	b.history.undo = append(b.history.undo, g)
	b.publish()
	return merged, true
}

// LastGroupLabel returns the label of the group a subsequent Undo would
// revert, for history UIs.
func (b *Buffer) LastGroupLabel() (string, bool) {
	if len(b.history.undo) == 0 {
		return "", false
	}
	return b.history.undo[len(b.history.undo)-1].Label, true
}
