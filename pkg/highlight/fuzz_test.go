package highlight

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// enterStates is a representative set of resume states for fuzzing.
var enterStates = []LineState{
	{},
	{Mode: ModeComment},
	{Mode: ModeString, Delim: '"'},
	{Mode: ModeString, Delim: '\''},
	{Mode: ModeString, Delim: '`'},
}

func FuzzTokenizeLine(f *testing.F) {
	seeds := []string{
		"",
		"x := 1 // done\n",
		`s = "unterminated`,
		"/* comment */ code /* again\n",
		"SELECT 'a''b' FROM t\n",
		"key: value # note\n",
		"\"\"\"docstring\n",
		"`backtick\n",
		"0x1F 2.5e3 1_000\n",
		"päivä := \"syksy\"\n",
		"\\\\\\\"\n",
		"\t\t  \n",
	}
	for _, s := range seeds {
		f.Add(s, 0)
	}

	reg := NewRegistry()
	names := reg.Names()

	f.Fuzz(func(t *testing.T, line string, pick int) {
		// pick selects a ruleset; one extra slot exercises the nil
		// (plain) path.
		n := len(names) + 1
		pick = ((pick % n) + n) % n
		var rules *Ruleset
		if pick < len(names) {
			rules, _ = reg.Lookup(names[pick])
		}

		width := len([]rune(line))
		for _, enter := range enterStates {
			spans, _ := TokenizeLine(rules, line, enter)
			checkSpans(t, spans, width)
		}
	})
}

func FuzzMarkdownLine(f *testing.F) {
	seeds := []string{
		"",
		"# Title\n",
		"- [ ] task **bold** `code`\n",
		"> > *deep* quote\n",
		"```rust\n",
		"1937. year or list\n",
		"\\*escaped\\* ~~gone~~\n",
		"*** * ** ~~ ~\n",
		"###### six\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, line string) {
		spans := MarkdownLine(line)
		checkSpans(t, spans, len([]rune(line)))
	})
}

// FuzzBlockUpdate checks that restyling one line incrementally, with
// its cascade, matches restyling the whole block from scratch.
func FuzzBlockUpdate(f *testing.F) {
	f.Add("x := 1\ny := 2\nz := 3\n", 0, "/* open\n")
	f.Add("/* a\nb\n*/ c\nd\n", 0, "a\n")
	f.Add("s := `raw\nmore\nend`\n", 2, "still raw\n")
	f.Add("a\nb\nc", 2, "tail without newline")
	f.Add("// solo\n", 0, "x := \"s\n")

	rules, ok := NewRegistry().Lookup("go")
	if !ok {
		f.Fatal("go ruleset missing")
	}

	f.Fuzz(func(t *testing.T, content string, idx int, repl string) {
		b := NewBlock(rules, content)
		if b.Lines() == 0 {
			return
		}
		idx = ((idx % b.Lines()) + b.Lines()) % b.Lines()

		// UpdateLine takes a single line: interior lines must keep
		// exactly one trailing newline.
		repl = strings.ReplaceAll(repl, "\n", "")
		if idx < b.Lines()-1 {
			repl += "\n"
		} else if repl == "" {
			// Dropping the last line changes the line count, which
			// is a Reset-level edit, not a line edit.
			return
		}
		b.UpdateLine(idx, repl)

		want := NewBlock(rules, b.Text())
		if diff := cmp.Diff(want.Spans(), b.Spans()); diff != "" {
			t.Fatalf("incremental restyle of line %d differs from full restyle (-want +got):\n%s", idx, diff)
		}
		if b.Lines() != want.Lines() {
			t.Fatalf("line count %d after update, full restyle has %d", b.Lines(), want.Lines())
		}
		for i := 0; i < b.Lines(); i++ {
			if be, we := b.lines[i].exit, want.lines[i].exit; be != we {
				t.Fatalf("line %d exit state %v, full restyle has %v", i, be, we)
			}
		}
		checkSpans(t, b.Spans(), len([]rune(b.Text())))
	})
}
