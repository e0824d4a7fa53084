// Package textbuf implements the mutable text of one open document: a rune
// gap buffer with an incrementally maintained line index and grouped
// undo/redo history.
//
// All positions are rune offsets into the document. Mutating operations
// never clamp: a position outside the current bounds is rejected with
// ErrOutOfBounds and the buffer is left untouched. Lines are 0-based and a
// line's span includes its terminating newline; the final line has no
// newline. Callers are expected to normalize line endings to "\n" before
// constructing a buffer (see pkg/fsutil).
//
// A Buffer is owned by a single goroutine. The one concession to
// concurrency is Snapshot, which returns an immutable Revision published
// atomically after every mutation so that auto-save and background parsing
// can read the document without coordinating with the owner.
package textbuf

import (
	"sync/atomic"
)

// minGap is the initial and minimum free span kept inside the storage
// array. Grown geometrically when an insert does not fit.
const minGap = 64

// DefaultHistoryLimit bounds the number of undo groups retained when
// Options.HistoryLimit is unset.
const DefaultHistoryLimit = 1000

// Options controls buffer behavior.
type Options struct {
	// HistoryLimit bounds the number of EditGroups kept on the undo stack.
	// Oldest groups are discarded first. 0 or negative means
	// DefaultHistoryLimit.
	HistoryLimit int
}

func (o Options) effectiveHistoryLimit() int {
	if o.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return o.HistoryLimit
}

// Buffer is a rune gap buffer. The zero value is not usable; construct with
// New.
type Buffer struct {
	data     []rune // storage; the gap occupies data[gapStart:gapEnd]
	gapStart int
	gapEnd   int

	lines   lineIndex
	history history
	version uint64

	snap atomic.Pointer[Revision]

	group      *EditGroup // open group, nil outside BeginGroup/EndGroup
	groupDepth int
}

// New constructs a buffer holding text.
func New(text string, opts ...Options) *Buffer {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	runes := []rune(text)
	data := make([]rune, len(runes)+minGap)
	copy(data, runes)

	b := &Buffer{
		data:     data,
		gapStart: len(runes),
		gapEnd:   len(data),
	}
	b.lines.build(runes)
	b.history.limit = o.effectiveHistoryLimit()
	b.publish()
	return b
}

// Len returns the document length in runes.
func (b *Buffer) Len() int {
	return len(b.data) - (b.gapEnd - b.gapStart)
}

// Version returns a counter incremented by every mutation. It identifies
// the document state a derived artifact (parse tree, snapshot) was computed
// from.
func (b *Buffer) Version() uint64 {
	return b.version
}

// Text returns the full document as a string.
func (b *Buffer) Text() string {
	return string(b.runes(0, b.Len()))
}

// Slice returns the text in [start, end).
func (b *Buffer) Slice(start, end int) (string, error) {
	if start < 0 || end < start || end > b.Len() {
		return "", rangeErr("slice", start, end, b.Len())
	}
	return string(b.runes(start, end)), nil
}

// RuneAt returns the rune at pos.
func (b *Buffer) RuneAt(pos int) (rune, error) {
	if pos < 0 || pos >= b.Len() {
		return 0, posErr("index", pos, b.Len())
	}
	if pos < b.gapStart {
		return b.data[pos], nil
	}
	return b.data[pos+(b.gapEnd-b.gapStart)], nil
}

// Insert places text at pos and returns the resulting change. Inserting at
// Len() appends. An empty text is a validated no-op.
func (b *Buffer) Insert(pos int, text string) (Change, error) {
	if pos < 0 || pos > b.Len() {
		return Change{}, posErr("insert", pos, b.Len())
	}
	if text == "" {
		return Change{Start: pos, OldEnd: pos, NewEnd: pos, Version: b.version}, nil
	}
	ch := b.insertRaw(pos, text)
	b.record(EditOp{Kind: OpInsert, Pos: pos, Text: text})
	b.publish()
	return ch, nil
}

// Delete removes n runes starting at pos and returns the resulting change,
// including the removed text. A zero-length delete is a validated no-op.
func (b *Buffer) Delete(pos, n int) (Change, error) {
	if n < 0 || pos < 0 || pos+n > b.Len() {
		return Change{}, rangeErr("delete", pos, pos+n, b.Len())
	}
	if n == 0 {
		return Change{Start: pos, OldEnd: pos, NewEnd: pos, Version: b.version}, nil
	}
	ch := b.deleteRaw(pos, n)
	b.record(EditOp{Kind: OpDelete, Pos: pos, Text: ch.Removed})
	b.publish()
	return ch, nil
}

// Replace substitutes the n runes at pos with text. The delete and insert
// form a single undo step.
func (b *Buffer) Replace(pos, n int, text string) (Change, error) {
	if n < 0 || pos < 0 || pos+n > b.Len() {
		return Change{}, rangeErr("replace", pos, pos+n, b.Len())
	}
	b.BeginGroup("replace")
	del, err := b.Delete(pos, n)
	if err != nil {
		b.EndGroup()
		return Change{}, err
	}
	ins, err := b.Insert(pos, text)
	if err != nil {
		b.EndGroup()
		return Change{}, err
	}
	b.EndGroup()
	return mergeChanges(del, ins), nil
}

// insertRaw performs the gap-buffer insert without touching history or the
// published snapshot. pos must be valid.
func (b *Buffer) insertRaw(pos int, text string) Change {
	runes := []rune(text)
	b.moveGap(pos)
	if b.gapEnd-b.gapStart < len(runes) {
		b.growGap(len(runes))
	}
	copy(b.data[b.gapStart:], runes)
	b.gapStart += len(runes)

	b.lines.insert(pos, runes)
	b.version++
	return Change{
		Start:    pos,
		OldEnd:   pos,
		NewEnd:   pos + len(runes),
		Inserted: text,
		Version:  b.version,
	}
}

// deleteRaw performs the gap-buffer delete without touching history or the
// published snapshot. The range must be valid and non-empty.
func (b *Buffer) deleteRaw(pos, n int) Change {
	removed := b.runes(pos, pos+n)
	b.moveGap(pos)
	b.gapEnd += n // absorb the n runes following the gap

	b.lines.delete(pos, removed)
	b.version++
	return Change{
		Start:   pos,
		OldEnd:  pos + n,
		NewEnd:  pos,
		Removed: string(removed),
		Version: b.version,
	}
}

// runes copies out [start, end), which must be valid.
func (b *Buffer) runes(start, end int) []rune {
	out := make([]rune, 0, end-start)
	gap := b.gapEnd - b.gapStart
	switch {
	case end <= b.gapStart:
		out = append(out, b.data[start:end]...)
	case start >= b.gapStart:
		out = append(out, b.data[start+gap:end+gap]...)
	default:
		out = append(out, b.data[start:b.gapStart]...)
		out = append(out, b.data[b.gapEnd:end+gap]...)
	}
	return out
}

// moveGap relocates the gap so that it starts at pos.
func (b *Buffer) moveGap(pos int) {
	switch {
	case pos < b.gapStart:
		n := b.gapStart - pos
		copy(b.data[b.gapEnd-n:b.gapEnd], b.data[pos:b.gapStart])
		b.gapStart = pos
		b.gapEnd -= n
	case pos > b.gapStart:
		n := pos - b.gapStart
		copy(b.data[b.gapStart:], b.data[b.gapEnd:b.gapEnd+n])
		b.gapStart += n
		b.gapEnd += n
	}
}

// growGap reallocates storage so the gap can hold at least need runes.
func (b *Buffer) growGap(need int) {
	docLen := b.Len()
	newCap := docLen*2 + need + minGap
	grown := make([]rune, newCap)

	copy(grown, b.data[:b.gapStart])
	tail := b.data[b.gapEnd:]
	copy(grown[newCap-len(tail):], tail)

	b.gapEnd = newCap - len(tail)
	b.data = grown
}
