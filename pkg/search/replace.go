package search

import (
	"github.com/inkwellco/inkwell/pkg/textbuf"
)

// ReplaceAll replaces every match in the buffer, applied as a single
// EditGroup so one undo restores the pre-replace text exactly. Regex
// queries expand $1-style capture references in the replacement;
// literal queries insert it verbatim. It returns the match count and
// the merged change, which is empty when nothing matched.
func (m *Matcher) ReplaceAll(buf *textbuf.Buffer, replacement string) (int, textbuf.Change, error) {
	text := buf.Text()
	edits := m.plan(text, replacement)
	if len(edits) == 0 {
		return 0, textbuf.Change{}, nil
	}

	// Ops run back to front: replacing at a later offset leaves every
	// earlier offset intact, so each op's position is valid at its
	// turn in the replay.
	group := textbuf.EditGroup{Label: "replace all"}
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		group.Ops = append(group.Ops, textbuf.EditOp{
			Kind: textbuf.OpDelete, Pos: e.start, Text: e.old,
		})
		if e.new != "" {
			group.Ops = append(group.Ops, textbuf.EditOp{
				Kind: textbuf.OpInsert, Pos: e.start, Text: e.new,
			})
		}
	}
	ch, err := buf.Apply(group)
	if err != nil {
		return 0, textbuf.Change{}, err
	}
	return len(edits), ch, nil
}

// replaceEdit is one planned substitution in pre-edit coordinates.
type replaceEdit struct {
	start int // rune offset
	old   string
	new   string
}

func (m *Matcher) plan(text, replacement string) []replaceEdit {
	if m.re == nil {
		matches := m.findAllLiteral(text)
		edits := make([]replaceEdit, 0, len(matches))
		for _, match := range matches {
			edits = append(edits, replaceEdit{start: match.Start, old: match.Text, new: replacement})
		}
		return edits
	}

	idx := m.re.FindAllStringSubmatchIndex(text, -1)
	conv := offsetConverter{text: text}
	var edits []replaceEdit
	for _, sub := range idx {
		if sub[0] == sub[1] {
			continue
		}
		edits = append(edits, replaceEdit{
			start: conv.runeOff(sub[0]),
			old:   text[sub[0]:sub[1]],
			new:   string(m.re.ExpandString(nil, replacement, text, sub)),
		})
	}
	return edits
}
