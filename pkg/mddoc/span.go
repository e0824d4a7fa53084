package mddoc

import "fmt"

// Span is a half-open rune range [Start, End) in document coordinates.
type Span struct {
	Start int
	End   int
}

// NewSpan returns the span [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of runes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span covers nothing.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Contains reports whether pos falls inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

// ContainsSpan reports whether other lies fully within s.
func (s Span) ContainsSpan(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Intersects reports whether the two spans share at least one position.
func (s Span) Intersects(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Shift returns the span moved by delta.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// Union returns the smallest span covering both.
func (s Span) Union(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// String formats the span as [start,end).
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
