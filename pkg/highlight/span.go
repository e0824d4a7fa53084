// Package highlight styles text as ordered, non-overlapping spans.
//
// Two kinds of content pass through here: fenced code-block bodies,
// styled line by line under a per-language Ruleset, and raw Markdown
// source lines, styled for the editor pane. Both paths emit
// StyledSpans that are sorted by start offset and cover their input
// with no gaps, so a renderer can paint a line left to right without
// consulting the text again.
//
// Styling is a total function over arbitrary text. Unknown languages
// and unrecognized syntax degrade to StylePlain; no input produces an
// error.
package highlight

// Style classifies what a span of text is, not how it should look.
// Renderers map styles to colors or attributes.
type Style string

const (
	StylePlain   Style = "plain"
	StyleKeyword Style = "keyword"
	StyleString  Style = "string"
	StyleNumber  Style = "number"
	StyleComment Style = "comment"

	// Markdown source-line styles used by the editor pane.
	StyleMarker   Style = "marker"
	StyleHeading  Style = "heading"
	StyleStrong   Style = "strong"
	StyleEmphasis Style = "emphasis"
	StyleCode     Style = "code"
	StyleStrike   Style = "strike"
)

// StyledSpan is a half-open range [Start, End) of rune offsets with a
// single style. Spans produced by one styling pass are contiguous,
// non-overlapping, and ordered by Start.
type StyledSpan struct {
	Start int
	End   int
	Style Style
}

// Len returns the number of runes the span covers.
func (s StyledSpan) Len() int { return s.End - s.Start }

// coalesce merges adjacent spans that share a style. The input must
// already be sorted and contiguous; the result stays that way.
func coalesce(spans []StyledSpan) []StyledSpan {
	if len(spans) < 2 {
		return spans
	}
	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.Style == last.Style && s.Start == last.End {
			last.End = s.End
			continue
		}
		out = append(out, s)
	}
	return out
}
