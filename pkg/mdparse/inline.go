package mdparse

import (
	"strings"
	"unicode"

	"github.com/inkwellco/inkwell/pkg/mddoc"
)

// parseInline appends the inline parse of src[start:end) to parent. Runs of
// ordinary runes, newlines included, become text leaves between the
// recognized constructs, so the children tile the run exactly.
//
// Constructs that do not complete degrade to literal text and flip the
// recovered flag: an emphasis opener with no matching closer, a backtick
// run with no closing run of the same length, a bracket with no balanced
// "](...)" tail. Delimiter runs of three or more are ambiguous and always
// stay literal.
func (p *blockParser) parseInline(parent *mddoc.Node, start, end int) {
	i := start
	textFrom := start
	flush := func(to int) {
		if to > textFrom {
			parent.Extend(mddoc.NewNode(mddoc.NodeText, to-textFrom))
		}
	}
	for i < end {
		switch r := p.src[i]; r {
		case '\\':
			if i+1 < end && isEscapable(p.src[i+1]) {
				flush(i)
				parent.Extend(mddoc.NewNode(mddoc.NodeSyntax, 1))
				textFrom = i + 1
				i += 2
			} else {
				i++
			}
		case '`':
			n := p.runLen(i, end, '`')
			if j, ok := p.findBacktickCloser(i+n, end, n); ok {
				flush(i)
				cs := mddoc.NewNode(mddoc.NodeCodeSpan, 0)
				cs.Extend(mddoc.NewNode(mddoc.NodeSyntax, n))
				if j > i+n {
					cs.Extend(mddoc.NewNode(mddoc.NodeText, j-(i+n)))
				}
				cs.Extend(mddoc.NewNode(mddoc.NodeSyntax, n))
				parent.Extend(cs)
				i = j + n
				textFrom = i
			} else {
				p.recovered = true
				i += n
			}
		case '*', '_':
			i = p.parseEmphasis(parent, flush, &textFrom, i, end, r)
		case '[':
			i = p.parseLinkOrImage(parent, flush, &textFrom, i, end, false)
		case '!':
			if i+1 < end && p.src[i+1] == '[' {
				i = p.parseLinkOrImage(parent, flush, &textFrom, i, end, true)
			} else {
				i++
			}
		case '<':
			i = p.parseAutolink(parent, flush, &textFrom, i, end)
		default:
			i++
		}
	}
	flush(end)
}

// parseEmphasis handles a delimiter run at i. Runs of one or two runes with
// a matching closer become emphasis or strong nodes; everything else stays
// literal text. Returns the position to continue scanning from.
func (p *blockParser) parseEmphasis(parent *mddoc.Node, flush func(int), textFrom *int, i, end int, marker rune) int {
	m := p.runLen(i, end, marker)
	if m > 2 {
		p.recovered = true
		return i + m
	}
	if !p.canOpen(i, i+m, end, marker) {
		return i + m
	}
	j, ok := p.findEmphasisCloser(i+m, end, marker, m)
	if !ok {
		p.recovered = true
		return i + m
	}
	flush(i)
	kind := mddoc.NodeEmphasis
	if m == 2 {
		kind = mddoc.NodeStrong
	}
	node := mddoc.NewNode(kind, 0).WithInline(&mddoc.InlineAttrs{Marker: marker})
	node.Extend(mddoc.NewNode(mddoc.NodeSyntax, m))
	p.parseInline(node, i+m, j)
	node.Extend(mddoc.NewNode(mddoc.NodeSyntax, m))
	parent.Extend(node)
	*textFrom = j + m
	return j + m
}

// parseLinkOrImage handles "[label](dest \"title\")" and the image form
// with a leading bang. The label is parsed recursively; destination and
// title are carried on the node's attributes while the raw "](...)" tail
// becomes a single marker leaf.
func (p *blockParser) parseLinkOrImage(parent *mddoc.Node, flush func(int), textFrom *int, i, end int, image bool) int {
	openLen := 1
	if image {
		openLen = 2
	}
	lb := i + openLen - 1
	cb, ok := p.findClosingBracket(lb+1, end)
	if !ok {
		p.recovered = true
		return i + openLen
	}
	if cb+1 >= end || p.src[cb+1] != '(' {
		// "[1]" style prose, not a malformed link. Leave it as text.
		return i + openLen
	}
	pe, ok := p.findClosingParen(cb+2, end)
	if !ok {
		p.recovered = true
		return i + openLen
	}
	dest, title := splitLinkTarget(string(p.src[cb+2 : pe]))

	kind := mddoc.NodeLink
	if image {
		kind = mddoc.NodeImage
	}
	flush(i)
	node := mddoc.NewNode(kind, 0).WithInline(&mddoc.InlineAttrs{
		Link: &mddoc.LinkAttrs{Destination: dest, Title: title},
	})
	node.Extend(mddoc.NewNode(mddoc.NodeSyntax, openLen))
	if cb > lb+1 {
		p.parseInline(node, lb+1, cb)
	}
	node.Extend(mddoc.NewNode(mddoc.NodeSyntax, (pe+1)-cb))
	parent.Extend(node)
	*textFrom = pe + 1
	return pe + 1
}

// parseAutolink handles "<scheme:...>" and "<user@host>" spans. Anything
// else starting with '<' is ordinary text.
func (p *blockParser) parseAutolink(parent *mddoc.Node, flush func(int), textFrom *int, i, end int) int {
	j := i + 1
	for j < end && p.src[j] != '>' {
		r := p.src[j]
		if r == '<' || r == '\n' || r == ' ' || r == '\t' {
			return i + 1
		}
		j++
	}
	if j >= end || j == i+1 {
		return i + 1
	}
	dest := string(p.src[i+1 : j])
	if !isAutolinkTarget(dest) {
		return i + 1
	}
	flush(i)
	node := mddoc.NewNode(mddoc.NodeLink, 0).WithInline(&mddoc.InlineAttrs{
		Link: &mddoc.LinkAttrs{Destination: dest, Auto: true},
	})
	node.Extend(mddoc.NewNode(mddoc.NodeSyntax, 1))
	node.Extend(mddoc.NewNode(mddoc.NodeText, j-(i+1)))
	node.Extend(mddoc.NewNode(mddoc.NodeSyntax, 1))
	parent.Extend(node)
	*textFrom = j + 1
	return j + 1
}

func isAutolinkTarget(s string) bool {
	if strings.Contains(s, "://") {
		return true
	}
	if strings.HasPrefix(s, "mailto:") {
		return true
	}
	at := strings.IndexByte(s, '@')
	return at > 0 && strings.IndexByte(s[at+1:], '.') > 0
}

// splitLinkTarget separates the destination from an optional quoted title.
func splitLinkTarget(s string) (dest, title string) {
	s = strings.TrimSpace(s)
	sp := strings.IndexAny(s, " \t")
	if sp < 0 {
		return s, ""
	}
	dest = s[:sp]
	rest := strings.TrimSpace(s[sp+1:])
	if len(rest) >= 2 {
		if q := rest[0]; (q == '"' || q == '\'') && rest[len(rest)-1] == q {
			title = rest[1 : len(rest)-1]
		}
	}
	return dest, title
}

// --- scanning helpers ---

// runLen counts consecutive occurrences of marker starting at i.
func (p *blockParser) runLen(i, end int, marker rune) int {
	n := 0
	for i+n < end && p.src[i+n] == marker {
		n++
	}
	return n
}

// escaped reports whether the rune at i is preceded by a backslash.
func (p *blockParser) escaped(i int) bool {
	return i > 0 && p.src[i-1] == '\\'
}

// canOpen applies left-flanking rules to the run [i, runEnd): the run must
// be followed by a non-space rune, and an underscore run must not sit
// inside a word.
func (p *blockParser) canOpen(i, runEnd, end int, marker rune) bool {
	if runEnd >= end {
		return false
	}
	next := p.src[runEnd]
	if unicode.IsSpace(next) {
		return false
	}
	if marker == '_' && i > 0 && isWordRune(p.src[i-1]) {
		return false
	}
	return true
}

// canClose applies right-flanking rules to a closer run starting at j.
func (p *blockParser) canClose(j, runEnd, end int, marker rune) bool {
	if j == 0 {
		return false
	}
	prev := p.src[j-1]
	if unicode.IsSpace(prev) {
		return false
	}
	if marker == '_' && runEnd < end && isWordRune(p.src[runEnd]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// findEmphasisCloser scans for the first unescaped run of exactly count
// markers that may close, skipping over code spans. Longer and shorter
// runs are passed over, which is what lets ambiguous runs degrade.
func (p *blockParser) findEmphasisCloser(from, end int, marker rune, count int) (int, bool) {
	j := from
	for j < end {
		switch p.src[j] {
		case '`':
			n := p.runLen(j, end, '`')
			if k, ok := p.findBacktickCloser(j+n, end, n); ok {
				j = k + n
				continue
			}
			j += n
		case marker:
			if p.escaped(j) {
				j++
				continue
			}
			n := p.runLen(j, end, marker)
			if n == count && p.canClose(j, j+n, end, marker) {
				return j, true
			}
			j += n
		default:
			j++
		}
	}
	return 0, false
}

// findBacktickCloser finds the next backtick run of exactly count runes.
func (p *blockParser) findBacktickCloser(from, end, count int) (int, bool) {
	j := from
	for j < end {
		if p.src[j] != '`' {
			j++
			continue
		}
		n := p.runLen(j, end, '`')
		if n == count {
			return j, true
		}
		j += n
	}
	return 0, false
}

// findClosingBracket matches the bracket opened just before from, honoring
// nesting and escapes.
func (p *blockParser) findClosingBracket(from, end int) (int, bool) {
	depth := 0
	for j := from; j < end; j++ {
		if p.escaped(j) {
			continue
		}
		switch p.src[j] {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return j, true
			}
			depth--
		}
	}
	return 0, false
}

// findClosingParen matches the paren opened just before from.
func (p *blockParser) findClosingParen(from, end int) (int, bool) {
	depth := 0
	for j := from; j < end; j++ {
		if p.escaped(j) {
			continue
		}
		switch p.src[j] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return j, true
			}
			depth--
		case '\n':
			return 0, false
		}
	}
	return 0, false
}

// isEscapable mirrors the ASCII punctuation set a backslash can escape.
func isEscapable(r rune) bool {
	return r < 128 && strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r)
}
