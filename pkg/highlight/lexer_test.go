package highlight

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// checkSpans verifies the core output invariant: spans are sorted,
// non-overlapping, non-empty, and cover [0, length) with no gaps.
func checkSpans(t *testing.T, spans []StyledSpan, length int) {
	t.Helper()
	at := 0
	for i, s := range spans {
		if s.Start != at {
			t.Fatalf("span %d starts at %d, want %d (spans %+v)", i, s.Start, at, spans)
		}
		if s.End <= s.Start {
			t.Fatalf("span %d is empty or inverted: %+v", i, s)
		}
		if s.Style == "" {
			t.Fatalf("span %d has no style", i)
		}
		at = s.End
	}
	if at != length {
		t.Fatalf("spans cover [0, %d), want [0, %d) (spans %+v)", at, length, spans)
	}
}

func mustRules(t *testing.T, tag string) *Ruleset {
	t.Helper()
	rs, ok := NewRegistry().Lookup(tag)
	if !ok {
		t.Fatalf("no ruleset registered for %q", tag)
	}
	return rs
}

func TestTokenizeLine_Go(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		enter    LineState
		want     []StyledSpan
		wantExit LineState
	}{
		{
			name: "assignment with line comment",
			line: "x := 1 // done\n",
			want: []StyledSpan{
				{0, 5, StylePlain},
				{5, 6, StyleNumber},
				{6, 7, StylePlain},
				{7, 15, StyleComment},
			},
		},
		{
			name: "string literal",
			line: `s := "hi" + name` + "\n",
			want: []StyledSpan{
				{0, 5, StylePlain},
				{5, 9, StyleString},
				{9, 17, StylePlain},
			},
		},
		{
			name: "keywords",
			line: "return nil\n",
			want: []StyledSpan{
				{0, 6, StyleKeyword},
				{6, 7, StylePlain},
				{7, 10, StyleKeyword},
				{10, 11, StylePlain},
			},
		},
		{
			name: "numbers",
			line: "n := 0x1F + 2.5\n",
			want: []StyledSpan{
				{0, 5, StylePlain},
				{5, 9, StyleNumber},
				{9, 12, StylePlain},
				{12, 15, StyleNumber},
				{15, 16, StylePlain},
			},
		},
		{
			name: "block comment left open",
			line: "a /* c\n",
			want: []StyledSpan{
				{0, 2, StylePlain},
				{2, 7, StyleComment},
			},
			wantExit: LineState{Mode: ModeComment},
		},
		{
			name:  "block comment closed on resume",
			line:  "b */ x\n",
			enter: LineState{Mode: ModeComment},
			want: []StyledSpan{
				{0, 4, StyleComment},
				{4, 7, StylePlain},
			},
		},
		{
			name: "raw string left open",
			line: "q := `raw\n",
			want: []StyledSpan{
				{0, 5, StylePlain},
				{5, 10, StyleString},
			},
			wantExit: LineState{Mode: ModeString, Delim: '`'},
		},
		{
			name:  "raw string closed on resume",
			line:  "end` tail\n",
			enter: LineState{Mode: ModeString, Delim: '`'},
			want: []StyledSpan{
				{0, 4, StyleString},
				{4, 10, StylePlain},
			},
		},
		{
			name: "escaped quote stays inside string",
			line: `f("a\"b")` + "\n",
			want: []StyledSpan{
				{0, 2, StylePlain},
				{2, 8, StyleString},
				{8, 10, StylePlain},
			},
		},
	}

	rules := mustRules(t, "go")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, exit := TokenizeLine(rules, tt.line, tt.enter)
			checkSpans(t, spans, len([]rune(tt.line)))
			if diff := cmp.Diff(tt.want, spans); diff != "" {
				t.Errorf("spans mismatch (-want +got):\n%s", diff)
			}
			if exit != tt.wantExit {
				t.Errorf("exit state = %v, want %v", exit, tt.wantExit)
			}
		})
	}
}

func TestTokenizeLine_Python(t *testing.T) {
	rules := mustRules(t, "python")

	spans, exit := TokenizeLine(rules, `s = """doc`+"\n", LineState{})
	checkSpans(t, spans, 11)
	if exit != (LineState{Mode: ModeString, Delim: '"'}) {
		t.Fatalf("triple quote exit = %v, want open string", exit)
	}
	if got := spans[len(spans)-1]; got.Style != StyleString || got.Start != 4 {
		t.Fatalf("docstring span = %+v, want string from 4", got)
	}

	spans, exit = TokenizeLine(rules, `end"""`+"\n", LineState{Mode: ModeString, Delim: '"'})
	checkSpans(t, spans, 7)
	if exit != (LineState{}) {
		t.Fatalf("exit after closing triple quote = %v, want normal", exit)
	}
	want := []StyledSpan{{0, 6, StyleString}, {6, 7, StylePlain}}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}

	// A plain double-quoted string does not carry across lines.
	_, exit = TokenizeLine(rules, `s = "x`+"\n", LineState{})
	if exit != (LineState{}) {
		t.Fatalf("single-line string exit = %v, want normal", exit)
	}
}

func TestTokenizeLine_SQLFoldsCase(t *testing.T) {
	rules := mustRules(t, "sql")

	spans, _ := TokenizeLine(rules, "SELECT id FROM t -- all\n", LineState{})
	checkSpans(t, spans, 24)
	want := []StyledSpan{
		{0, 6, StyleKeyword},
		{6, 10, StylePlain},
		{10, 14, StyleKeyword},
		{14, 17, StylePlain},
		{17, 24, StyleComment},
	}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeLine_CommentNeedsBoundary(t *testing.T) {
	rules := mustRules(t, "yaml")

	spans, _ := TokenizeLine(rules, "url: http://x#y # note\n", LineState{})
	checkSpans(t, spans, 23)
	want := []StyledSpan{
		{0, 16, StylePlain},
		{16, 23, StyleComment},
	}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeLine_JSON(t *testing.T) {
	rules := mustRules(t, "json")

	spans, _ := TokenizeLine(rules, `{"a": 1}`+"\n", LineState{})
	checkSpans(t, spans, 9)
	want := []StyledSpan{
		{0, 1, StylePlain},
		{1, 4, StyleString},
		{4, 6, StylePlain},
		{6, 7, StyleNumber},
		{7, 9, StylePlain},
	}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeLine_NilRulesetStylesPlain(t *testing.T) {
	spans, exit := TokenizeLine(nil, "anything at all // not a comment\n", LineState{})
	if exit != (LineState{}) {
		t.Fatalf("exit = %v, want zero state", exit)
	}
	want := []StyledSpan{{0, 33, StylePlain}}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeLine_EmptyLine(t *testing.T) {
	rules := mustRules(t, "go")

	spans, exit := TokenizeLine(rules, "", LineState{})
	if len(spans) != 0 || exit != (LineState{}) {
		t.Fatalf("empty line: spans = %+v, exit = %v", spans, exit)
	}

	// An empty line inside an open construct keeps the state.
	_, exit = TokenizeLine(rules, "", LineState{Mode: ModeComment})
	if exit != (LineState{Mode: ModeComment}) {
		t.Fatalf("empty line in comment: exit = %v, want comment", exit)
	}
	_, exit = TokenizeLine(rules, "\n", LineState{Mode: ModeString, Delim: '`'})
	if exit != (LineState{Mode: ModeString, Delim: '`'}) {
		t.Fatalf("blank line in raw string: exit = %v, want open string", exit)
	}
}

func TestTokenizeLine_UnknownResumeDelimRestartsClean(t *testing.T) {
	rules := mustRules(t, "go")

	// A ModeString state whose delimiter the ruleset has no multiline
	// form for came from a different language; the line restarts.
	spans, exit := TokenizeLine(rules, "x := 1\n", LineState{Mode: ModeString, Delim: '#'})
	checkSpans(t, spans, 7)
	if exit != (LineState{}) {
		t.Fatalf("exit = %v, want zero state", exit)
	}
	if spans[1].Style != StyleNumber {
		t.Fatalf("line was not rescanned normally: %+v", spans)
	}
}

func TestTokenizeLine_CoversEveryLanguage(t *testing.T) {
	samples := []string{
		"x = 1 # note\n",
		`if a != "b" { return 0 }` + "\n",
		"SELECT * FROM t WHERE a = 'x';\n",
		"key: value # trailing\n",
		"/* open comment\n",
		"echo \"$HOME\" # done\n",
		"\tconst π = 3.14159\n",
		"no syntax here\n",
		"",
	}

	reg := NewRegistry()
	for _, name := range reg.Names() {
		rules, ok := reg.Lookup(name)
		if !ok {
			t.Fatalf("registry names %q but lookup fails", name)
		}
		for _, line := range samples {
			spans, _ := TokenizeLine(rules, line, LineState{})
			checkSpans(t, spans, len([]rune(line)))
		}
	}
}
