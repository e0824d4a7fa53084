package textbuf

import "sort"

// lineIndex caches the rune offset of every line start. starts[0] is always
// 0; an empty document has exactly one (empty) line. The index is patched in
// place on every edit: only entries at or after the edit point move.
type lineIndex struct {
	starts []int
}

func (li *lineIndex) build(text []rune) {
	li.starts = li.starts[:0]
	li.starts = append(li.starts, 0)
	for i, r := range text {
		if r == '\n' {
			li.starts = append(li.starts, i+1)
		}
	}
}

// lineOf returns the line containing pos. pos == docLen is treated as
// belonging to the final line so a cursor past the last rune still resolves.
func (li *lineIndex) lineOf(pos int) int {
	// First index whose start exceeds pos, minus one.
	i := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > pos })
	return i - 1
}

// insert patches the index for text inserted at pos.
func (li *lineIndex) insert(pos int, inserted []rune) {
	n := len(inserted)
	if n == 0 {
		return
	}
	// Entries strictly after pos shift right; the line start at pos itself,
	// if any, keeps its offset because the insertion lands at the head of
	// that line.
	k := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > pos })
	for i := k; i < len(li.starts); i++ {
		li.starts[i] += n
	}
	var added []int
	for i, r := range inserted {
		if r == '\n' {
			added = append(added, pos+i+1)
		}
	}
	if len(added) == 0 {
		return
	}
	li.starts = append(li.starts, added...)
	copy(li.starts[k+len(added):], li.starts[k:])
	copy(li.starts[k:], added)
}

// delete patches the index for removed runes deleted from pos.
func (li *lineIndex) delete(pos int, removed []rune) {
	n := len(removed)
	if n == 0 {
		return
	}
	// Entries in (pos, pos+n] correspond to newlines inside the removed
	// range and disappear; later entries shift left.
	lo := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > pos })
	hi := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > pos+n })
	for i := hi; i < len(li.starts); i++ {
		li.starts[i] -= n
	}
	if lo != hi {
		li.starts = append(li.starts[:lo], li.starts[hi:]...)
	}
}

// LineCount returns the number of lines. A document with no newline has one
// line; a trailing newline opens a final empty line.
func (b *Buffer) LineCount() int {
	return len(b.lines.starts)
}

// LineOf returns the 0-based line containing pos. pos == Len() resolves to
// the last line.
func (b *Buffer) LineOf(pos int) (int, error) {
	if pos < 0 || pos > b.Len() {
		return 0, posErr("line of", pos, b.Len())
	}
	return b.lines.lineOf(pos), nil
}

// OffsetOf returns the rune offset of the first rune of line.
func (b *Buffer) OffsetOf(line int) (int, error) {
	if line < 0 || line >= len(b.lines.starts) {
		return 0, lineErr(line, len(b.lines.starts))
	}
	return b.lines.starts[line], nil
}

// LineSpan returns the half-open rune range of line, including its
// terminating newline when present.
func (b *Buffer) LineSpan(line int) (start, end int, err error) {
	if line < 0 || line >= len(b.lines.starts) {
		return 0, 0, lineErr(line, len(b.lines.starts))
	}
	start = b.lines.starts[line]
	if line+1 < len(b.lines.starts) {
		end = b.lines.starts[line+1]
	} else {
		end = b.Len()
	}
	return start, end, nil
}

// LineText returns the content of line without its terminating newline.
func (b *Buffer) LineText(line int) (string, error) {
	start, end, err := b.LineSpan(line)
	if err != nil {
		return "", err
	}
	text := b.runes(start, end)
	if n := len(text); n > 0 && text[n-1] == '\n' {
		text = text[:n-1]
	}
	return string(text), nil
}
