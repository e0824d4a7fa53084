package highlight

// Mode says which construct, if any, a line left open.
type Mode uint8

const (
	// ModeNormal is the default scanning mode.
	ModeNormal Mode = iota
	// ModeComment means a block comment is still open.
	ModeComment
	// ModeString means a multi-line string is still open; the
	// LineState's Delim records its quote character.
	ModeString
)

// LineState is the tokenizer state carried across a line boundary.
// The zero value is the state at the start of a block. It is a
// comparable value type: two equal states style any following text
// identically, which is what lets an incremental pass stop cascading
// once a line's exit state matches the cached one.
type LineState struct {
	Mode  Mode
	Delim rune
}

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeComment:
		return "comment"
	case ModeString:
		return "string"
	}
	return "unknown"
}

func (s LineState) String() string {
	if s.Mode == ModeString {
		return "string(" + string(s.Delim) + ")"
	}
	return s.Mode.String()
}
