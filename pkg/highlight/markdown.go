package highlight

// mdLine styles a single line of raw Markdown source for the editor
// pane. It is a line-local approximation of the block parser's
// dialect: delimiter runs toggle inline styles from line start, and
// block prefixes are recognized without document context. That keeps
// per-keystroke styling O(line) while the full parse catches up. The
// delimiters themselves get StyleMarker so the raw syntax stays
// visible but visually recessed.
type mdLine struct {
	src   []rune
	spans []StyledSpan
	pos   int
	from  int

	code   bool
	bold   bool
	italic bool
	strike bool
}

// MarkdownLine styles one line of Markdown source. Lines may keep
// their trailing newline. The returned spans are sorted,
// non-overlapping, and cover the whole line; an empty line yields
// none. Fenced code bodies are styled by TokenizeLine, not here; this
// path styles everything the editor shows as Markdown, including the
// fence delimiter lines themselves.
func MarkdownLine(line string) []StyledSpan {
	src := []rune(line)
	if len(src) == 0 {
		return nil
	}
	m := &mdLine{src: src}
	m.lineStart()
	m.run()
	return coalesce(m.spans)
}

// lineStart consumes block-level prefixes: heading markers, fence
// lines, rule lines, quote prefixes, and list markers.
func (m *mdLine) lineStart() {
	m.skipIndent()
	if m.tryHeading() {
		return
	}
	if m.tryFenceLine() {
		return
	}
	if m.tryRuleLine() {
		return
	}
	m.tryQuotePrefix()
	m.skipIndent()
	m.tryListMarker()
}

// run scans the remaining inline content, toggling styles at
// delimiter runs the way the preview would interpret them.
func (m *mdLine) run() {
	for m.pos < len(m.src) {
		r := m.src[m.pos]
		if m.code {
			if r == '`' {
				m.marker(1)
				m.code = false
			} else {
				m.pos++
			}
			continue
		}
		switch r {
		case '`':
			m.marker(1)
			m.code = true
		case '*', '_':
			n := 1
			if m.pos+1 < len(m.src) && m.src[m.pos+1] == r {
				n = 2
			}
			m.marker(n)
			if n == 2 {
				m.bold = !m.bold
			} else {
				m.italic = !m.italic
			}
		case '~':
			if m.pos+1 < len(m.src) && m.src[m.pos+1] == '~' {
				m.marker(2)
				m.strike = !m.strike
			} else {
				m.pos++
			}
		case '\\':
			// The escaped rune stays in the current text run.
			m.pos += 2
		default:
			m.pos++
		}
	}
	m.flushText(len(m.src))
}

// textStyle is the style of plain text under the current toggles.
// Code wins over everything; strike over weight; bold over italic.
func (m *mdLine) textStyle() Style {
	switch {
	case m.code:
		return StyleCode
	case m.strike:
		return StyleStrike
	case m.bold:
		return StyleStrong
	case m.italic:
		return StyleEmphasis
	}
	return StylePlain
}

// flushText emits the pending text run up to upto in the current
// toggle style.
func (m *mdLine) flushText(upto int) {
	if upto > m.from {
		m.spans = append(m.spans, StyledSpan{Start: m.from, End: upto, Style: m.textStyle()})
	}
	m.from = upto
}

// marker flushes pending text and emits n runes of StyleMarker at the
// current position.
func (m *mdLine) marker(n int) {
	m.flushText(m.pos)
	m.spans = append(m.spans, StyledSpan{Start: m.pos, End: m.pos + n, Style: StyleMarker})
	m.pos += n
	m.from = m.pos
}

// styleRest flushes pending text and styles everything from the
// current position to end of line.
func (m *mdLine) styleRest(style Style) {
	m.flushText(m.pos)
	if m.pos < len(m.src) {
		m.spans = append(m.spans, StyledSpan{Start: m.pos, End: len(m.src), Style: style})
	}
	m.pos = len(m.src)
	m.from = m.pos
}

func (m *mdLine) skipIndent() {
	for m.pos < len(m.src) && (m.src[m.pos] == ' ' || m.src[m.pos] == '\t') {
		m.pos++
	}
}

// tryHeading matches an ATX marker of one to six hashes followed by a
// space or end of line. The marker span includes one following space;
// the rest of the line is StyleHeading.
func (m *mdLine) tryHeading() bool {
	n := 0
	for m.pos+n < len(m.src) && m.src[m.pos+n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	j := m.pos + n
	if j < len(m.src) && m.src[j] != ' ' && m.src[j] != '\t' && m.src[j] != '\n' {
		return false
	}
	if j < len(m.src) && (m.src[j] == ' ' || m.src[j] == '\t') {
		j++
	}
	m.marker(j - m.pos)
	m.styleRest(StyleHeading)
	return true
}

// tryFenceLine matches a code-fence delimiter line and styles it
// whole, info tag included, as StyleMarker.
func (m *mdLine) tryFenceLine() bool {
	if m.pos >= len(m.src) {
		return false
	}
	c := m.src[m.pos]
	if c != '`' && c != '~' {
		return false
	}
	n := 0
	for m.pos+n < len(m.src) && m.src[m.pos+n] == c {
		n++
	}
	if n < 3 {
		return false
	}
	m.styleRest(StyleMarker)
	return true
}

// tryRuleLine matches lines made of a single delimiter kind plus
// whitespace: thematic breaks (---, ***, ___, three or more) and
// setext underlines (=). The whole line becomes StyleMarker.
func (m *mdLine) tryRuleLine() bool {
	var c rune
	count := 0
	for i := m.pos; i < len(m.src); i++ {
		r := m.src[i]
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		if c == 0 && (r == '-' || r == '*' || r == '_' || r == '=') {
			c = r
		}
		if r != c {
			return false
		}
		count++
	}
	if c == 0 {
		return false
	}
	if c != '=' && count < 3 {
		return false
	}
	m.styleRest(StyleMarker)
	return true
}

// tryQuotePrefix consumes a run of '>' markers, each with an optional
// following space, as one StyleMarker span.
func (m *mdLine) tryQuotePrefix() {
	j := m.pos
	for j < len(m.src) && m.src[j] == '>' {
		j++
		if j < len(m.src) && m.src[j] == ' ' {
			j++
		}
	}
	if j > m.pos {
		m.marker(j - m.pos)
	}
}

// tryListMarker consumes a bullet or ordered-list marker plus one
// following space as StyleMarker. A bullet needs a space or end of
// line after it, which is what separates "- item" from "*emphasis*".
func (m *mdLine) tryListMarker() {
	i := m.pos
	if i >= len(m.src) {
		return
	}
	switch r := m.src[i]; {
	case r == '-' || r == '+' || r == '*':
		j := i + 1
		if j < len(m.src) && m.src[j] != ' ' && m.src[j] != '\t' && m.src[j] != '\n' {
			return
		}
		if j < len(m.src) && (m.src[j] == ' ' || m.src[j] == '\t') {
			j++
		}
		m.marker(j - i)
	case isDigitRune(r):
		j := i
		for j < len(m.src) && isDigitRune(m.src[j]) && j-i < 9 {
			j++
		}
		if j >= len(m.src) || (m.src[j] != '.' && m.src[j] != ')') {
			return
		}
		j++
		if j < len(m.src) && m.src[j] != ' ' && m.src[j] != '\t' && m.src[j] != '\n' {
			return
		}
		if j < len(m.src) && (m.src[j] == ' ' || m.src[j] == '\t') {
			j++
		}
		m.marker(j - i)
	}
}
