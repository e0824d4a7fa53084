package mdparse

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// FuzzParse checks that parsing is total: no input panics, every tree
// validates, and the leaves always reconstruct the source.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"## Heading ##\n",
		"- list item\n  cont\n- two",
		"1. ordered item",
		"> blockquote\n> more",
		"```\ncode\n```",
		"```go\nfunc main() {}\n",
		"    indented\n    code\n",
		"*emphasis* **strong** ***both***",
		"`code` ``and `` more",
		"[link](url \"title\") ![image](src)",
		"<https://example.com> <not a link",
		"---",
		"***",
		"Title\n=====",
		"Sub\n---",
		"| a | b |\n|--:|---|\n| 1 | 2 |",
		"\\*escaped\\*",
		"a\n\n\n\nb",
		"line1\r\nline2",
		"# Tøp\n\nünïcode ⚙ text\n",
		"[",
		"![",
		"`",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data string) {
		tree, err := New().Parse(context.Background(), data, 1)
		if err != nil {
			t.Fatalf("parse returned error without cancellation: %v", err)
		}
		if !tree.Validate() {
			t.Errorf("tree does not validate for %q", data)
		}
		// Invalid UTF-8 input normalizes through the rune conversion, so
		// compare against the tree's own source.
		if got := reconstruct(tree); got != tree.Source() {
			t.Errorf("leaves reconstruct %q, want %q", got, tree.Source())
		}
	})
}

// FuzzReparse checks the incremental path against a full parse for an
// arbitrary insertion.
func FuzzReparse(f *testing.F) {
	f.Add("# a\n\nb\n", 3, "x")
	f.Add("p\n\n```\nc\n```\n", 1, "```")
	f.Add("one\n\ntwo\n\nthree\n", 6, "\n\n")
	f.Add("- a\n- b\n", 4, "# ")
	f.Add("text\n", 0, "~~~\n")
	f.Add("a\n\nb\n", 2, "")

	f.Fuzz(func(t *testing.T, doc string, pos int, inserted string) {
		p := New()
		ctx := context.Background()
		prev, err := p.Parse(ctx, doc, 0)
		if err != nil {
			t.Fatal(err)
		}
		old := []rune(prev.Source())
		if pos < 0 {
			pos = -pos
		}
		if len(old) > 0 {
			pos %= len(old) + 1
		} else {
			pos = 0
		}
		newDoc := string(old[:pos]) + inserted + string(old[pos:])

		w := ComputeWindow(prev, pos, pos, "", inserted, []rune(newDoc))
		inc, err := p.Reparse(ctx, prev, w, newDoc, 1)
		if err != nil {
			t.Fatalf("reparse window %+v: %v", w, err)
		}
		full, err := p.Parse(ctx, newDoc, 1)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(full.Root, inc.Root); diff != "" {
			t.Errorf("insert %q at %d, window %+v (-full +incremental):\n%s",
				inserted, pos, w, diff)
		}
		if !inc.Validate() {
			t.Error("incremental tree does not validate")
		}
	})
}
