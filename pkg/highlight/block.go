package highlight

import "strings"

// Block caches the styling of one fenced code block line by line,
// together with each line's exit state. Replacing a single line
// re-styles that line and cascades down only while entry states keep
// changing, so a keystroke inside a large block touches one line in
// the common case.
//
// A Block belongs to the document's owner goroutine and is not safe
// for concurrent use.
type Block struct {
	rules *Ruleset
	lines []blockLine
}

type blockLine struct {
	text string
	// width is the line length in runes, cached for Spans.
	width int
	// spans are relative to the line start.
	spans []StyledSpan
	exit  LineState
}

// NewBlock styles content under rules. A nil ruleset yields plain
// spans covering the whole content.
func NewBlock(rules *Ruleset, content string) *Block {
	b := &Block{rules: rules}
	b.Reset(content)
	return b
}

// Reset replaces the whole block content and restyles it from the
// zero state.
func (b *Block) Reset(content string) {
	raw := splitLines(content)
	b.lines = make([]blockLine, len(raw))
	state := LineState{}
	for i, text := range raw {
		spans, exit := TokenizeLine(b.rules, text, state)
		b.lines[i] = blockLine{text: text, width: len([]rune(text)), spans: spans, exit: exit}
		state = exit
	}
}

// Lines returns the number of cached lines.
func (b *Block) Lines() int { return len(b.lines) }

// LineText returns the text of line i, trailing newline included.
func (b *Block) LineText(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i].text
}

// LineSpans returns the cached spans of line i, relative to the line
// start. The slice is owned by the block; callers must not modify it.
func (b *Block) LineSpans(i int) []StyledSpan {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i].spans
}

// UpdateLine replaces the text of line i, restyles it from the cached
// entry state, and cascades to following lines while their entry
// state differs from the cached pass. It returns the number of lines
// restyled; out-of-range indexes restyle nothing.
//
// text must stay a single line: interior lines keep their trailing
// newline, and edits that add or remove lines go through Reset.
func (b *Block) UpdateLine(i int, text string) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	b.lines[i].text = text
	b.lines[i].width = len([]rune(text))

	state := b.enterState(i)
	restyled := 0
	for j := i; j < len(b.lines); j++ {
		spans, exit := TokenizeLine(b.rules, b.lines[j].text, state)
		stable := exit == b.lines[j].exit
		b.lines[j].spans = spans
		b.lines[j].exit = exit
		restyled++
		if stable {
			break
		}
		state = exit
	}
	return restyled
}

// enterState is the state line i starts in.
func (b *Block) enterState(i int) LineState {
	if i == 0 {
		return LineState{}
	}
	return b.lines[i-1].exit
}

// Spans returns the styled spans for the whole block, offsets relative
// to the block start, with adjacent same-style spans merged.
func (b *Block) Spans() []StyledSpan {
	var out []StyledSpan
	base := 0
	for i := range b.lines {
		for _, s := range b.lines[i].spans {
			out = append(out, StyledSpan{Start: base + s.Start, End: base + s.End, Style: s.Style})
		}
		base += b.lines[i].width
	}
	return coalesce(out)
}

// Text returns the block content as the concatenation of its lines.
func (b *Block) Text() string {
	var sb strings.Builder
	for i := range b.lines {
		sb.WriteString(b.lines[i].text)
	}
	return sb.String()
}

// Highlight styles one code block in a single pass. It is the
// non-caching path for callers that do not keep a Block around.
func Highlight(rules *Ruleset, content string) []StyledSpan {
	return NewBlock(rules, content).Spans()
}

// splitLines splits content into lines, each keeping its trailing
// newline. The final line has none when content does not end with
// one. Empty content yields no lines.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			out = append(out, content[start:i+1])
			start = i + 1
		}
	}
	if start < len(content) {
		out = append(out, content[start:])
	}
	return out
}
