package pretty

import (
	"fmt"
	"strings"

	"github.com/inkwellco/inkwell/pkg/highlight"
	"github.com/inkwellco/inkwell/pkg/mddoc"
	"github.com/inkwellco/inkwell/pkg/preview"
)

const (
	defaultRenderWidth = 80
	minRenderWidth     = 20
	codeIndent         = "  "
)

// DocumentRenderer renders the preview block model as styled terminal
// text. It consumes the same model the GUI preview pane would, so the
// view command shows exactly what the parser produced.
type DocumentRenderer struct {
	styles *Styles
	width  int
}

// NewDocumentRenderer creates a renderer targeting the given terminal
// width. Widths below the minimum fall back to the default.
func NewDocumentRenderer(styles *Styles, width int) *DocumentRenderer {
	if width < minRenderWidth {
		width = defaultRenderWidth
	}
	return &DocumentRenderer{styles: styles, width: width}
}

// Render formats all blocks, separated by blank lines.
func (r *DocumentRenderer) Render(blocks []preview.Block) string {
	var parts []string
	for i := range blocks {
		if rendered := r.renderBlock(&blocks[i]); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func (r *DocumentRenderer) renderBlock(blk *preview.Block) string {
	switch blk.Kind {
	case mddoc.NodeHeading:
		marker := strings.Repeat("#", blk.Level) + " "
		return r.styles.HeadingMarker.Render(marker) + r.styles.Heading.Render(blk.Text)

	case mddoc.NodeParagraph:
		return r.wrap(r.styles.Paragraph, blk.Text, "")

	case mddoc.NodeBlockQuote:
		bar := r.styles.QuoteBar.Render("| ")
		return r.wrap(r.styles.Quote, blk.Text, bar)

	case mddoc.NodeCodeBlock:
		return r.renderCode(blk)

	case mddoc.NodeList:
		return r.renderList(blk)

	case mddoc.NodeTable:
		return r.renderTable(blk)

	case mddoc.NodeThematicBreak:
		return r.styles.Rule.Render(strings.Repeat("-", r.width))
	}
	return ""
}

// wrap word-wraps text to the renderer width and prefixes each line.
func (r *DocumentRenderer) wrap(style interface{ Render(...string) string }, text, prefix string) string {
	width := r.width - runeLen(prefix)
	var lines []string
	for _, line := range wrapText(text, width) {
		lines = append(lines, prefix+style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (r *DocumentRenderer) renderCode(blk *preview.Block) string {
	var b strings.Builder
	if blk.Lang != "" {
		label := blk.Lang
		if blk.Detected {
			label += " (detected)"
		}
		b.WriteString(r.styles.CodeLang.Render(label))
		b.WriteString("\n")
	}
	lines := r.styledCodeLines(blk.Code, blk.Spans)
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(codeIndent)
		b.WriteString(line)
	}
	return b.String()
}

// styledCodeLines applies span styles to the code body and splits the
// result into lines. Spans are sorted and gap-free over the body, so a
// single forward walk covers every rune.
func (r *DocumentRenderer) styledCodeLines(code string, spans []highlight.StyledSpan) []string {
	if code == "" {
		return nil
	}
	runes := []rune(code)

	var lines []string
	var cur strings.Builder
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
	}

	for _, sp := range spans {
		if sp.Start >= sp.End || sp.End > len(runes) {
			continue
		}
		style := r.styles.CodeStyle(sp.Style)
		seg := string(runes[sp.Start:sp.End])
		for {
			idx := strings.IndexByte(seg, '\n')
			if idx < 0 {
				if seg != "" {
					cur.WriteString(style.Render(seg))
				}
				break
			}
			if idx > 0 {
				cur.WriteString(style.Render(seg[:idx]))
			}
			flush()
			seg = seg[idx+1:]
		}
	}
	if cur.Len() > 0 {
		flush()
	}
	return lines
}

func (r *DocumentRenderer) renderList(blk *preview.Block) string {
	var lines []string
	for i, item := range blk.Items {
		marker := "- "
		if blk.Ordered {
			marker = fmt.Sprintf("%d. ", blk.Start+i)
		}
		indent := strings.Repeat(" ", runeLen(marker))
		wrapped := wrapText(item, r.width-runeLen(marker))
		for j, line := range wrapped {
			if j == 0 {
				lines = append(lines, r.styles.ListBullet.Render(marker)+line)
			} else {
				lines = append(lines, indent+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (r *DocumentRenderer) renderTable(blk *preview.Block) string {
	cols := len(blk.Header)
	for _, row := range blk.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(cells []string) {
		for i, cell := range cells {
			if w := runeLen(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(blk.Header)
	for _, row := range blk.Rows {
		measure(row)
	}

	var b strings.Builder
	if len(blk.Header) > 0 {
		b.WriteString(r.formatRow(blk.Header, widths, r.styles.TableHeader))
		b.WriteString("\n")
		var seps []string
		for _, w := range widths {
			seps = append(seps, strings.Repeat("-", w))
		}
		b.WriteString(r.styles.TableSeparator.Render(strings.Join(seps, "  ")))
		b.WriteString("\n")
	}
	for i, row := range blk.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.formatRow(row, widths, r.styles.Paragraph))
	}
	return b.String()
}

func (r *DocumentRenderer) formatRow(cells []string, widths []int, style interface{ Render(...string) string }) string {
	var parts []string
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts = append(parts, style.Render(pad(cell, w)))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// wrapText greedily word-wraps text to the given width. Words longer
// than the width get a line of their own rather than being split.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, word := range words {
		wl := runeLen(word)
		if curLen > 0 && curLen+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteString(" ")
			curLen++
		}
		cur.WriteString(word)
		curLen += wl
	}
	lines = append(lines, cur.String())
	return lines
}

func pad(s string, width int) string {
	if gap := width - runeLen(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func runeLen(s string) int {
	return len([]rune(s))
}
