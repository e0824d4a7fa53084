package mddoc

import "strings"

// OutlineEntry is one heading in document order.
type OutlineEntry struct {
	Level  int
	Text   string
	Offset int
}

// Outline returns the table of contents: every heading with its level,
// inner text, and document offset.
func (t *Tree) Outline() []OutlineEntry {
	var out []OutlineEntry
	for _, ref := range t.blocks {
		if ref.Node.Kind != NodeHeading {
			continue
		}
		out = append(out, OutlineEntry{
			Level:  ref.Node.HeadingLevel(),
			Text:   t.InnerText(ref.Node, ref.Span.Start),
			Offset: ref.Span.Start,
		})
	}
	return out
}

// wordsPerMinute is the average adult silent-reading rate used for the
// reading time estimate.
const wordsPerMinute = 200

// DocStats summarizes a document for status bars and the stats command.
type DocStats struct {
	Words          int
	Runes          int
	Blocks         int
	Headings       int
	CodeBlocks     int
	ReadingMinutes int
}

// Stats counts words across the document's text leaves. Syntax markers and
// code fences are not words; code block content is counted, matching how a
// reader skims it. Reading time is Words at 200 wpm, never below one
// minute for a non-empty document.
func (t *Tree) Stats() DocStats {
	st := DocStats{
		Runes:  len(t.src),
		Blocks: len(t.blocks),
	}
	_ = Walk(t.Root, 0, func(n *Node, span Span) error {
		switch n.Kind {
		case NodeHeading:
			st.Headings++
		case NodeCodeBlock:
			st.CodeBlocks++
		case NodeText:
			if n.IsLeaf() {
				st.Words += len(strings.Fields(t.SpanText(span)))
			}
		}
		return nil
	})
	if st.Words > 0 {
		st.ReadingMinutes = (st.Words + wordsPerMinute - 1) / wordsPerMinute
	}
	return st
}
