package textbuf

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestLineOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		pos  int
		want int
	}{
		{name: "empty document", text: "", pos: 0, want: 0},
		{name: "first line", text: "ab\ncd", pos: 1, want: 0},
		{name: "newline belongs to its line", text: "ab\ncd", pos: 2, want: 0},
		{name: "second line start", text: "ab\ncd", pos: 3, want: 1},
		{name: "end of document", text: "ab\ncd", pos: 5, want: 1},
		{name: "after trailing newline", text: "ab\n", pos: 3, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := New(tt.text)
			got, err := b.LineOf(tt.pos)
			if err != nil {
				t.Fatalf("LineOf(%d) error = %v", tt.pos, err)
			}
			if got != tt.want {
				t.Errorf("LineOf(%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}

	b := New("ab")
	for _, pos := range []int{-1, 3} {
		if _, err := b.LineOf(pos); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("LineOf(%d) error = %v, want ErrOutOfBounds", pos, err)
		}
	}
}

func TestOffsetOf(t *testing.T) {
	t.Parallel()

	b := New("ab\ncd\n\nx")
	wants := []int{0, 3, 6, 7}
	if got := b.LineCount(); got != len(wants) {
		t.Fatalf("LineCount() = %d, want %d", got, len(wants))
	}
	for line, want := range wants {
		got, err := b.OffsetOf(line)
		if err != nil {
			t.Fatalf("OffsetOf(%d) error = %v", line, err)
		}
		if got != want {
			t.Errorf("OffsetOf(%d) = %d, want %d", line, got, want)
		}
	}
	for _, line := range []int{-1, 4} {
		if _, err := b.OffsetOf(line); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("OffsetOf(%d) error = %v, want ErrOutOfBounds", line, err)
		}
	}
}

func TestLineOfAndOffsetOfAreInverses(t *testing.T) {
	t.Parallel()

	b := New("first\nsecond\n\nfourth line\nlast")
	for line := 0; line < b.LineCount(); line++ {
		off, err := b.OffsetOf(line)
		if err != nil {
			t.Fatalf("OffsetOf(%d) error = %v", line, err)
		}
		back, err := b.LineOf(off)
		if err != nil {
			t.Fatalf("LineOf(%d) error = %v", off, err)
		}
		if back != line {
			t.Errorf("LineOf(OffsetOf(%d)) = %d", line, back)
		}
	}
}

func TestLineSpanAndText(t *testing.T) {
	t.Parallel()

	b := New("ab\ncdef\n")

	tests := []struct {
		line       int
		start, end int
		text       string
	}{
		{line: 0, start: 0, end: 3, text: "ab"},
		{line: 1, start: 3, end: 8, text: "cdef"},
		{line: 2, start: 8, end: 8, text: ""},
	}
	for _, tt := range tests {
		start, end, err := b.LineSpan(tt.line)
		if err != nil {
			t.Fatalf("LineSpan(%d) error = %v", tt.line, err)
		}
		if start != tt.start || end != tt.end {
			t.Errorf("LineSpan(%d) = [%d,%d), want [%d,%d)", tt.line, start, end, tt.start, tt.end)
		}
		text, err := b.LineText(tt.line)
		if err != nil {
			t.Fatalf("LineText(%d) error = %v", tt.line, err)
		}
		if text != tt.text {
			t.Errorf("LineText(%d) = %q, want %q", tt.line, text, tt.text)
		}
	}
}

// TestLineIndexPatching checks that the incrementally patched index always
// matches an index rebuilt from scratch, across a random edit script that
// inserts and removes newlines.
func TestLineIndexPatching(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	b := New("alpha\nbeta\ngamma\n")

	pieces := []string{"x", "\n", "one\ntwo", "\n\n", "word ", "tail\n"}
	for step := 0; step < 1500; step++ {
		if rng.Intn(2) == 0 || b.Len() == 0 {
			pos := rng.Intn(b.Len() + 1)
			if _, err := b.Insert(pos, pieces[rng.Intn(len(pieces))]); err != nil {
				t.Fatalf("step %d: %v", step, err)
			}
		} else {
			pos := rng.Intn(b.Len())
			n := rng.Intn(b.Len()-pos) + 1
			if n > 7 {
				n = 7
			}
			if _, err := b.Delete(pos, n); err != nil {
				t.Fatalf("step %d: %v", step, err)
			}
		}

		var fresh lineIndex
		fresh.build([]rune(b.Text()))
		if len(fresh.starts) != len(b.lines.starts) {
			t.Fatalf("step %d: line count %d, want %d", step, len(b.lines.starts), len(fresh.starts))
		}
		for i := range fresh.starts {
			if b.lines.starts[i] != fresh.starts[i] {
				t.Fatalf("step %d: starts[%d] = %d, want %d (text %q)",
					step, i, b.lines.starts[i], fresh.starts[i], b.Text())
			}
		}
	}
}

func TestLineCountTracksNewlines(t *testing.T) {
	t.Parallel()

	b := New("")
	if got := b.LineCount(); got != 1 {
		t.Fatalf("empty document LineCount() = %d, want 1", got)
	}

	if _, err := b.Insert(0, strings.Repeat("line\n", 4)); err != nil {
		t.Fatal(err)
	}
	if got := b.LineCount(); got != 5 {
		t.Errorf("LineCount() = %d, want 5", got)
	}

	// Deleting a newline merges two lines.
	if _, err := b.Delete(4, 1); err != nil {
		t.Fatal(err)
	}
	if got := b.LineCount(); got != 4 {
		t.Errorf("LineCount() after merge = %d, want 4", got)
	}
}
