package highlight

import "unicode"

// lexer styles a single line of code-block content. It produces a
// contiguous, non-overlapping span sequence covering [0, len(src)) in
// rune offsets. Runes that match no rule accumulate into a pending
// plain run which is flushed whenever a styled token starts.
type lexer struct {
	rules *Ruleset
	src   []rune
	pos   int
	spans []StyledSpan
	state LineState

	// plainFrom marks the start of the pending unstyled run.
	plainFrom int
}

// TokenizeLine styles one line under rules, resuming from the state
// the previous line exited in. Lines keep their trailing newline; the
// newline rune is styled with whatever construct is open across it.
// The returned spans are sorted, non-overlapping, and cover the whole
// line. A nil ruleset styles the line plain and always exits in the
// zero state.
func TokenizeLine(rules *Ruleset, line string, enter LineState) ([]StyledSpan, LineState) {
	src := []rune(line)
	if rules == nil {
		if len(src) == 0 {
			return nil, LineState{}
		}
		return []StyledSpan{{Start: 0, End: len(src), Style: StylePlain}}, LineState{}
	}
	lx := &lexer{rules: rules, src: src, state: enter}
	lx.run()
	return lx.spans, lx.state
}

func (lx *lexer) run() {
	switch lx.state.Mode {
	case ModeComment:
		lx.scanBlockCommentBody(0)
	case ModeString:
		lx.resumeString()
	}
	for lx.pos < len(lx.src) {
		lx.step()
	}
	lx.flushPlain(len(lx.src))
}

func (lx *lexer) step() {
	r := lx.src[lx.pos]
	switch {
	case lx.tryLineComment():
	case lx.tryBlockComment():
	case lx.tryQuote():
	case isDigitRune(r):
		lx.scanNumber()
	case isWordStart(r):
		lx.scanWord()
	default:
		lx.pos++
	}
}

// flushPlain emits the pending unstyled run up to upto.
func (lx *lexer) flushPlain(upto int) {
	if upto > lx.plainFrom {
		lx.spans = append(lx.spans, StyledSpan{Start: lx.plainFrom, End: upto, Style: StylePlain})
	}
	lx.plainFrom = upto
}

// emit flushes pending plain text and styles [start, end).
func (lx *lexer) emit(start, end int, style Style) {
	lx.flushPlain(start)
	if end > start {
		lx.spans = append(lx.spans, StyledSpan{Start: start, End: end, Style: style})
	}
	lx.plainFrom = end
}

func (lx *lexer) tryLineComment() bool {
	for _, open := range lx.rules.LineComments {
		if !lx.hasPrefix(open) {
			continue
		}
		if lx.rules.CommentNeedsBoundary && lx.pos > 0 {
			prev := lx.src[lx.pos-1]
			if prev != ' ' && prev != '\t' {
				return false
			}
		}
		lx.emit(lx.pos, len(lx.src), StyleComment)
		lx.pos = len(lx.src)
		return true
	}
	return false
}

func (lx *lexer) tryBlockComment() bool {
	if lx.rules.BlockStart == "" || !lx.hasPrefix(lx.rules.BlockStart) {
		return false
	}
	start := lx.pos
	lx.pos += runeCount(lx.rules.BlockStart)
	lx.scanBlockCommentBody(start)
	return true
}

// scanBlockCommentBody styles from start through the closing delimiter
// or, if the comment stays open, to end of line with ModeComment as
// the exit state.
func (lx *lexer) scanBlockCommentBody(start int) {
	end, ok := lx.indexFrom(lx.pos, lx.rules.BlockEnd)
	if !ok {
		lx.emit(start, len(lx.src), StyleComment)
		lx.pos = len(lx.src)
		lx.state = LineState{Mode: ModeComment}
		return
	}
	close := end + runeCount(lx.rules.BlockEnd)
	lx.emit(start, close, StyleComment)
	lx.pos = close
	lx.state = LineState{}
}

func (lx *lexer) tryQuote() bool {
	r := lx.src[lx.pos]
	for i := range lx.rules.Quotes {
		q := &lx.rules.Quotes[i]
		if q.Char != r {
			continue
		}
		if q.Triple && !lx.hasRun(q.Char, 3) {
			continue
		}
		start := lx.pos
		lx.pos += q.openLen()
		lx.scanStringBody(start, q)
		return true
	}
	return false
}

// scanStringBody styles a string from its opening delimiter (already
// consumed) through the closer. An unterminated multiline form exits
// in ModeString; other forms close at end of line.
func (lx *lexer) scanStringBody(start int, q *QuoteSpec) {
	for lx.pos < len(lx.src) {
		r := lx.src[lx.pos]
		if q.Escape && r == '\\' {
			lx.pos += 2
			continue
		}
		if r == q.Char && (!q.Triple || lx.hasRun(q.Char, 3)) {
			lx.pos += q.openLen()
			lx.emit(start, lx.pos, StyleString)
			lx.state = LineState{}
			return
		}
		lx.pos++
	}
	lx.emit(start, len(lx.src), StyleString)
	lx.pos = len(lx.src)
	if q.Multiline {
		lx.state = LineState{Mode: ModeString, Delim: q.Char}
	} else {
		lx.state = LineState{}
	}
}

// resumeString continues a multi-line string left open by the
// previous line. A delimiter the current ruleset does not know means
// the cached state belongs to another language; the line restarts
// clean rather than guessing.
func (lx *lexer) resumeString() {
	q := lx.rules.multilineQuote(lx.state.Delim)
	lx.state = LineState{}
	if q == nil {
		return
	}
	lx.scanStringBody(0, q)
}

func (lx *lexer) scanNumber() {
	start := lx.pos
	for lx.pos < len(lx.src) {
		r := lx.src[lx.pos]
		if !isDigitRune(r) && !unicode.IsLetter(r) && r != '.' && r != '_' {
			break
		}
		lx.pos++
	}
	lx.emit(start, lx.pos, StyleNumber)
}

func (lx *lexer) scanWord() {
	start := lx.pos
	for lx.pos < len(lx.src) && isWordRune(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.rules.isKeyword(string(lx.src[start:lx.pos])) {
		lx.emit(start, lx.pos, StyleKeyword)
	}
}

// hasPrefix reports whether s occurs at the current position.
func (lx *lexer) hasPrefix(s string) bool {
	return matchAt(lx.src, lx.pos, s)
}

// hasRun reports whether n copies of r occur at the current position.
func (lx *lexer) hasRun(r rune, n int) bool {
	if lx.pos+n > len(lx.src) {
		return false
	}
	for i := 0; i < n; i++ {
		if lx.src[lx.pos+i] != r {
			return false
		}
	}
	return true
}

// indexFrom finds the first occurrence of s at or after from.
func (lx *lexer) indexFrom(from int, s string) (int, bool) {
	if s == "" {
		return from, true
	}
	for i := from; i < len(lx.src); i++ {
		if matchAt(lx.src, i, s) {
			return i, true
		}
	}
	return 0, false
}

// matchAt reports whether s occurs in src at rune offset i.
func matchAt(src []rune, i int, s string) bool {
	for _, r := range s {
		if i >= len(src) || src[i] != r {
			return false
		}
		i++
	}
	return true
}

func runeCount(s string) int { return len([]rune(s)) }

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }

func isWordStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isWordRune(r rune) bool { return isWordStart(r) || isDigitRune(r) }
