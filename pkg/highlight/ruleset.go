package highlight

// Ruleset is a data-only description of one language's lexical
// surface: its keywords, comment openers, and string quote forms.
// A single engine interprets every ruleset; adding a language means
// adding data, not code.
type Ruleset struct {
	// Name is the canonical lowercase language tag.
	Name string

	// Aliases are alternate tags that resolve to this ruleset.
	Aliases []string

	// Keywords are matched against whole identifier words.
	Keywords map[string]bool

	// FoldCase lowercases words before the keyword lookup, for
	// case-insensitive languages such as SQL.
	FoldCase bool

	// LineComments are openers that style the rest of the line.
	LineComments []string

	// CommentNeedsBoundary restricts line comments to line start or
	// after whitespace, so "a#b" in shell or YAML stays plain text.
	CommentNeedsBoundary bool

	// BlockStart and BlockEnd delimit block comments. Empty means the
	// language has none. Block comments may span lines; the engine
	// carries ModeComment across the boundary.
	BlockStart string
	BlockEnd   string

	// Quotes lists string forms in match order. Triple-quote forms
	// must precede their single-quote counterparts.
	Quotes []QuoteSpec
}

// QuoteSpec describes one string-literal form.
type QuoteSpec struct {
	// Char is the delimiter character.
	Char rune

	// Escape allows backslash to escape the delimiter inside the
	// string.
	Escape bool

	// Triple means the delimiter is Char repeated three times.
	Triple bool

	// Multiline carries an unterminated string into the next line as
	// ModeString instead of closing it at end of line.
	Multiline bool
}

// openLen is the delimiter width in runes.
func (q *QuoteSpec) openLen() int {
	if q.Triple {
		return 3
	}
	return 1
}

// multilineQuote finds the quote form that a ModeString state with the
// given delimiter resumes. Nil means the state came from some other
// ruleset and the line restarts clean.
func (rs *Ruleset) multilineQuote(delim rune) *QuoteSpec {
	for i := range rs.Quotes {
		if rs.Quotes[i].Multiline && rs.Quotes[i].Char == delim {
			return &rs.Quotes[i]
		}
	}
	return nil
}

// isKeyword reports whether word is a keyword under this ruleset.
func (rs *Ruleset) isKeyword(word string) bool {
	if rs.FoldCase {
		word = lowerASCII(word)
	}
	return rs.Keywords[word]
}

// lowerASCII lowercases A-Z only. Keyword tables hold ASCII words, so
// full Unicode case folding is not needed on this path.
func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// words builds a keyword set from a list.
func words(list ...string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, w := range list {
		m[w] = true
	}
	return m
}
