// Package search finds and replaces text in a document. Queries are
// literal substrings or Go regular expressions, matched over rune
// offsets so results line up with buffer and tree coordinates.
// Matching never mutates the document; replacement routes every edit
// through the buffer's grouped mutation path, so it invalidates
// parsing and highlighting exactly like typing does.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// ErrBadPattern reports a regex query that does not compile.
var ErrBadPattern = errors.New("bad search pattern")

// Query describes what to look for.
type Query struct {
	// Pattern is the literal text or, with Regex set, a Go regular
	// expression.
	Pattern string

	// Regex interprets Pattern as a regular expression.
	Regex bool

	// IgnoreCase folds case while matching.
	IgnoreCase bool
}

// Match is one occurrence: a rune-offset range and the matched text.
type Match struct {
	Start int
	End   int
	Text  string
}

// Matcher is a compiled query. It is read-only after Compile and safe
// to share across goroutines.
type Matcher struct {
	query  Query
	re     *regexp.Regexp // nil for literal queries
	needle []rune         // folded when the query ignores case
}

// Compile prepares a query for matching. A regex query that does not
// compile returns ErrBadPattern wrapping the regexp error.
func Compile(q Query) (*Matcher, error) {
	m := &Matcher{query: q}
	if !q.Regex {
		m.needle = []rune(q.Pattern)
		if q.IgnoreCase {
			for i, r := range m.needle {
				m.needle[i] = unicode.ToLower(r)
			}
		}
		return m, nil
	}
	pat := q.Pattern
	if q.IgnoreCase {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	m.re = re
	return m, nil
}

// Find returns the first match starting at or after from. With wrap
// set, a search that runs off the end continues from the top of the
// document, so an earlier match is still found.
func (m *Matcher) Find(text string, from int, wrap bool) (Match, bool) {
	matches := m.FindAll(text)
	for _, match := range matches {
		if match.Start >= from {
			return match, true
		}
	}
	if wrap && len(matches) > 0 {
		return matches[0], true
	}
	return Match{}, false
}

// Next returns the first match strictly after from, wrapping to the
// document's first match.
func (m *Matcher) Next(text string, from int) (Match, bool) {
	matches := m.FindAll(text)
	for _, match := range matches {
		if match.Start > from {
			return match, true
		}
	}
	if len(matches) > 0 {
		return matches[0], true
	}
	return Match{}, false
}

// Prev returns the last match strictly before from, wrapping to the
// document's last match.
func (m *Matcher) Prev(text string, from int) (Match, bool) {
	matches := m.FindAll(text)
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Start < from {
			return matches[i], true
		}
	}
	if len(matches) > 0 {
		return matches[len(matches)-1], true
	}
	return Match{}, false
}

// FindAll returns every non-overlapping match in order. An empty
// literal pattern matches nothing, and zero-width regex matches are
// dropped.
func (m *Matcher) FindAll(text string) []Match {
	if m.re != nil {
		return m.findAllRegex(text)
	}
	return m.findAllLiteral(text)
}

func (m *Matcher) findAllLiteral(text string) []Match {
	n := len(m.needle)
	if n == 0 {
		return nil
	}
	hay := []rune(text)
	var out []Match
	for i := 0; i+n <= len(hay); {
		if m.literalAt(hay, i) {
			out = append(out, Match{Start: i, End: i + n, Text: string(hay[i : i+n])})
			i += n
		} else {
			i++
		}
	}
	return out
}

func (m *Matcher) literalAt(hay []rune, i int) bool {
	for j, want := range m.needle {
		r := hay[i+j]
		if m.query.IgnoreCase {
			r = unicode.ToLower(r)
		}
		if r != want {
			return false
		}
	}
	return true
}

func (m *Matcher) findAllRegex(text string) []Match {
	idx := m.re.FindAllStringIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}
	conv := offsetConverter{text: text}
	out := make([]Match, 0, len(idx))
	for _, p := range idx {
		if p[0] == p[1] {
			continue
		}
		out = append(out, Match{
			Start: conv.runeOff(p[0]),
			End:   conv.runeOff(p[1]),
			Text:  text[p[0]:p[1]],
		})
	}
	return out
}

// offsetConverter turns ascending byte offsets into rune offsets
// without rescanning the prefix on every conversion. The regexp
// package reports byte offsets; the rest of the editor speaks runes.
type offsetConverter struct {
	text  string
	bytes int
	runes int
}

func (c *offsetConverter) runeOff(byteOff int) int {
	for c.bytes < byteOff {
		_, size := utf8.DecodeRuneInString(c.text[c.bytes:])
		c.bytes += size
		c.runes++
	}
	return c.runes
}
