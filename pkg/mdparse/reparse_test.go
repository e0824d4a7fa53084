package mdparse

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// applyEdit splices an edit into doc at rune offsets and returns the new
// text alongside the removed substring.
func applyEdit(doc string, start, oldEnd int, inserted string) (string, string) {
	old := []rune(doc)
	removed := string(old[start:oldEnd])
	return string(old[:start]) + inserted + string(old[oldEnd:]), removed
}

func TestComputeWindow_EditInsideParagraph(t *testing.T) {
	t.Parallel()
	doc := "p1\n\np2\n\np3\n"
	prev := mustParse(t, doc)

	newDoc, removed := applyEdit(doc, 5, 5, "x")
	w := ComputeWindow(prev, 5, 5, removed, "x", []rune(newDoc))

	want := Window{Prefix: 1, Suffix: 1, Start: 3, End: 9}
	if w != want {
		t.Errorf("window = %+v, want %+v", w, want)
	}
}

func TestComputeWindow_EditInBlankMergesNeighbors(t *testing.T) {
	t.Parallel()
	doc := "p1\n\np2\n"
	prev := mustParse(t, doc)

	// Typing into the separating blank line can merge both paragraphs, so
	// the window must span the whole document.
	newDoc, removed := applyEdit(doc, 3, 3, "x")
	w := ComputeWindow(prev, 3, 3, removed, "x", []rune(newDoc))

	if !w.Whole() {
		t.Errorf("window = %+v, want whole document", w)
	}
}

func TestComputeWindow_FenceDelimiterExtendsToEnd(t *testing.T) {
	t.Parallel()
	doc := "p1\n\np2\n\np3\n"
	prev := mustParse(t, doc)

	newDoc, removed := applyEdit(doc, 5, 5, "```")
	w := ComputeWindow(prev, 5, 5, removed, "```", []rune(newDoc))

	if w.Suffix != 0 {
		t.Errorf("suffix = %d, want 0 after fence insertion", w.Suffix)
	}
	if w.End != len([]rune(newDoc)) {
		t.Errorf("end = %d, want end of document %d", w.End, len([]rune(newDoc)))
	}
	if w.Prefix != 1 {
		t.Errorf("prefix = %d, want 1: leading group is unaffected", w.Prefix)
	}
}

func TestComputeWindow_DeleteAcrossGroups(t *testing.T) {
	t.Parallel()
	doc := "p1\n\np2\n"
	prev := mustParse(t, doc)

	newDoc, removed := applyEdit(doc, 1, 5, "")
	w := ComputeWindow(prev, 1, 5, removed, "", []rune(newDoc))

	if !w.Whole() {
		t.Errorf("window = %+v, want whole document", w)
	}
}

func TestComputeWindow_EmptyPreviousTree(t *testing.T) {
	t.Parallel()
	prev := mustParse(t, "")
	w := ComputeWindow(prev, 0, 0, "", "hello", []rune("hello"))
	if !w.Whole() || w.End != 5 {
		t.Errorf("window = %+v, want whole document of 5 runes", w)
	}
}

func TestReparse_MatchesFullParse(t *testing.T) {
	t.Parallel()
	doc := "# Title\n\nFirst paragraph with *em*.\n\n- one\n- two\n\n```go\nmain()\n```\n\n> quote\n\nLast line.\n"
	p := New()
	ctx := context.Background()
	prev, err := p.Parse(ctx, doc, 0)
	if err != nil {
		t.Fatal(err)
	}

	fragments := []string{
		"x", " word", "\n", "\n\n", "# H\n", "- li\n", "```", "`code`", "**s**",
		"> q\n", "---\n", "| a |\n|---|\n", "*", "====\n", "    ind\n",
		"- ", "  ```\n",
	}
	rng := rand.New(rand.NewSource(11))

	for step := 0; step < 400; step++ {
		old := []rune(doc)
		var start, oldEnd int
		var inserted string
		if rng.Intn(2) == 0 || len(old) == 0 {
			start = rng.Intn(len(old) + 1)
			oldEnd = start
			inserted = fragments[rng.Intn(len(fragments))]
		} else {
			start = rng.Intn(len(old))
			n := rng.Intn(min(20, len(old)-start)) + 1
			oldEnd = start + n
		}
		newDoc, removed := applyEdit(doc, start, oldEnd, inserted)

		w := ComputeWindow(prev, start, oldEnd, removed, inserted, []rune(newDoc))
		inc, err := p.Reparse(ctx, prev, w, newDoc, uint64(step+1))
		if err != nil {
			t.Fatalf("step %d: reparse window %+v: %v", step, w, err)
		}
		full, err := p.Parse(ctx, newDoc, uint64(step+1))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(full.Root, inc.Root); diff != "" {
			t.Fatalf("step %d: edit [%d,%d)->%q window %+v (-full +incremental):\n%s",
				step, start, oldEnd, inserted, w, diff)
		}
		if !inc.Validate() {
			t.Fatalf("step %d: incremental tree does not validate", step)
		}
		doc = newDoc
		prev = inc // chain incremental parses on top of each other
	}
}

func TestReparse_FenceSwallowedByListContinuation(t *testing.T) {
	t.Parallel()
	doc := "a\n  ```\nx\n```\n\ntail\n"
	p := New()
	ctx := context.Background()
	prev, err := p.Parse(ctx, doc, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Turning the first line into a list item pulls the indented fence
	// line into the item as a continuation, which leaves the second
	// fence unclosed even though the edit itself contains no delimiter.
	// The unclosed fence swallows the trailing paragraph, so the window
	// must give up its suffix and extend to the end of the document.
	newDoc, removed := applyEdit(doc, 0, 0, "- ")
	w := ComputeWindow(prev, 0, 0, removed, "- ", []rune(newDoc))
	if w.Suffix != 0 {
		t.Errorf("window = %+v, want no reused suffix", w)
	}
	if w.End != len([]rune(newDoc)) {
		t.Errorf("end = %d, want end of document %d", w.End, len([]rune(newDoc)))
	}

	inc, err := p.Reparse(ctx, prev, w, newDoc, 1)
	if err != nil {
		t.Fatal(err)
	}
	full, err := p.Parse(ctx, newDoc, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(full.Root, inc.Root); diff != "" {
		t.Errorf("incremental parse differs from full parse (-full +incremental):\n%s", diff)
	}
}

func TestReparse_SharesUntouchedBlocks(t *testing.T) {
	t.Parallel()
	doc := "# One\n\npara one\n\n# Two\n\npara two\n"
	p := New()
	ctx := context.Background()
	prev, err := p.Parse(ctx, doc, 0)
	if err != nil {
		t.Fatal(err)
	}

	newDoc, removed := applyEdit(doc, 11, 11, "x")
	w := ComputeWindow(prev, 11, 11, removed, "x", []rune(newDoc))
	if w.Prefix == 0 || w.Suffix == 0 {
		t.Fatalf("window = %+v, want reused prefix and suffix", w)
	}
	inc, err := p.Reparse(ctx, prev, w, newDoc, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Reused segments are the same nodes, not copies.
	for k := 0; k < w.Prefix; k++ {
		if inc.Root.Children[k].Node != prev.Root.Children[k].Node {
			t.Errorf("prefix segment %d was rebuilt", k)
		}
	}
	offNew := len(inc.Root.Children) - w.Suffix
	offOld := len(prev.Root.Children) - w.Suffix
	for k := 0; k < w.Suffix; k++ {
		if inc.Root.Children[offNew+k].Node != prev.Root.Children[offOld+k].Node {
			t.Errorf("suffix segment %d was rebuilt", k)
		}
	}

	// And the suffix spans shifted by the edit's delta.
	last := inc.Root.Children[len(inc.Root.Children)-1]
	if last.Off+last.Node.Len != len([]rune(newDoc)) {
		t.Error("suffix segments do not reach the new end of document")
	}
}

func TestReparse_BadWindow(t *testing.T) {
	t.Parallel()
	p := New()
	ctx := context.Background()
	prev, err := p.Parse(ctx, "a\n\nb\n", 0)
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Reparse(ctx, prev, Window{Prefix: 2, Suffix: 2}, "a\n\nb\n", 1)
	if !errors.Is(err, ErrBadWindow) {
		t.Errorf("err = %v, want ErrBadWindow", err)
	}
}

func TestReparse_WholeWindowEqualsParse(t *testing.T) {
	t.Parallel()
	p := New()
	ctx := context.Background()
	prev, err := p.Parse(ctx, "old\n", 0)
	if err != nil {
		t.Fatal(err)
	}
	newDoc := "# brand new\n"
	w := Window{Start: 0, End: len([]rune(newDoc))}
	inc, err := p.Reparse(ctx, prev, w, newDoc, 1)
	if err != nil {
		t.Fatal(err)
	}
	full, err := p.Parse(ctx, newDoc, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(full.Root, inc.Root); diff != "" {
		t.Errorf("whole-window reparse differs from parse:\n%s", diff)
	}
}

func TestHasOpenFence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"no fence", "plain\n", false},
		{"closed", "```\nx\n```\n", false},
		{"open", "```\nx\n", true},
		{"reopened", "```\nx\n```\n~~~\n", true},
		{"tilde closed", "~~~\nx\n~~~\n", false},
		// A fence line consumed as a list-item continuation never opens,
		// so the next fence line is the opener here.
		{"fence inside list item", "- a\n  ```\nx\n", false},
		{"list then open fence", "- a\n  ```\nx\n```\nx\n", true},
		{"open fence after list", "- a\n\n```\nx\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := []rune(tt.src)
			if got := hasOpenFence(src, 0, len(src)); got != tt.want {
				t.Errorf("hasOpenFence(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}
