package mdparse

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwellco/inkwell/pkg/mddoc"
)

// blockParser partitions the source into top-level blocks and hands each
// block's content to the inline pass. It walks the line table with a
// cursor; try* helpers either consume lines and append a block to doc or
// leave the cursor where it was.
type blockParser struct {
	src       []rune
	lines     []lineSpan
	i         int
	doc       *mddoc.Node
	recovered bool
}

func (p *blockParser) run(ctx context.Context) error {
	for p.i < len(p.lines) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("parse cancelled: %w", err)
		}
		p.parseBlock()
	}
	// Every parseBlock call consumes at least one full line and extends
	// doc by exactly the consumed span, so the children tile the source.
	// Tree.Validate rechecks this where trees are handed out.
	return nil
}

// parseBlock consumes one top-level block starting at the current line.
func (p *blockParser) parseBlock() {
	if p.isBlank(p.i) {
		p.parseBlankRun()
		return
	}
	if p.indentOf(p.i) >= 4 {
		p.parseIndentedCode()
		return
	}
	first, _ := p.firstNonSpace(p.i)
	switch first {
	case '`', '~':
		if p.tryFencedCode() {
			return
		}
	case '>':
		p.parseBlockQuote()
		return
	case '#':
		if p.tryATXHeading() {
			return
		}
	case '-', '*', '_', '+':
		if p.isThematicBreak(p.i) {
			p.parseThematicBreak()
			return
		}
		if _, ok := p.listMarkerAt(p.i); ok {
			p.parseList()
			return
		}
	default:
		if first >= '0' && first <= '9' {
			if _, ok := p.listMarkerAt(p.i); ok {
				p.parseList()
				return
			}
		}
	}
	if p.tryTable() {
		return
	}
	p.parseParagraph()
}

// --- line inspection helpers ---

func (p *blockParser) lineRunes(i int) []rune {
	l := p.lines[i]
	return p.src[l.start:l.end]
}

// contentRunes returns the line without its trailing newline.
func (p *blockParser) contentRunes(i int) []rune {
	l := p.lines[i]
	end := l.end
	if end > l.start && p.src[end-1] == '\n' {
		end--
	}
	return p.src[l.start:end]
}

func (p *blockParser) isBlank(i int) bool {
	for _, r := range p.contentRunes(i) {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

// indentOf measures leading whitespace in columns, tabs counting as four.
func (p *blockParser) indentOf(i int) int {
	cols := 0
	for _, r := range p.contentRunes(i) {
		switch r {
		case ' ':
			cols++
		case '\t':
			cols += 4
		default:
			return cols
		}
	}
	return cols
}

// firstNonSpace returns the first non-whitespace rune of line i and its
// offset within the line. ok is false for blank lines.
func (p *blockParser) firstNonSpace(i int) (rune, int) {
	for k, r := range p.contentRunes(i) {
		if r != ' ' && r != '\t' {
			return r, k
		}
	}
	return 0, -1
}

// --- blank runs ---

func (p *blockParser) parseBlankRun() {
	start := p.lines[p.i].start
	for p.i < len(p.lines) && p.isBlank(p.i) {
		p.i++
	}
	end := p.lines[p.i-1].end
	p.doc.Extend(mddoc.NewNode(mddoc.NodeBlank, end-start))
}

// --- ATX headings ---

// tryATXHeading consumes "# heading" lines: one to six hashes, then a space
// or end of line. The marker leaf covers indentation, hashes, and one
// following space; a closing hash sequence becomes a trailing marker leaf.
func (p *blockParser) tryATXHeading() bool {
	line := p.lines[p.i]
	content := p.contentRunes(p.i)
	_, off := p.firstNonSpace(p.i)
	level := 0
	k := off
	for k < len(content) && content[k] == '#' {
		level++
		k++
	}
	if level == 0 || level > 6 {
		return false
	}
	if k < len(content) && content[k] != ' ' && content[k] != '\t' {
		return false
	}
	if k < len(content) {
		k++ // the single space after the hashes belongs to the marker
	}
	h := mddoc.NewNode(mddoc.NodeHeading, 0).WithBlock(&mddoc.BlockAttrs{HeadingLevel: level})
	h.Extend(mddoc.NewNode(mddoc.NodeSyntax, k))

	textStart := line.start + k
	tail := p.closingHashTail(content, k)
	textEnd := line.start + tail
	if textEnd > textStart {
		p.parseInline(h, textStart, textEnd)
	}
	if line.end > line.start+tail {
		h.Extend(mddoc.NewNode(mddoc.NodeSyntax, line.end-(line.start+tail)))
	}
	p.doc.Extend(h)
	p.i++
	return true
}

// closingHashTail finds where an optional closing hash sequence starts, so
// "## Title ##" keeps "Title" as text. Returns len(content) when there is
// no closing sequence.
func (p *blockParser) closingHashTail(content []rune, from int) int {
	end := len(content)
	for end > from && (content[end-1] == ' ' || content[end-1] == '\t') {
		end--
	}
	h := end
	for h > from && content[h-1] == '#' {
		h--
	}
	if h == end {
		return len(content)
	}
	// The closing run must follow whitespace or start the text.
	if h > from && content[h-1] != ' ' && content[h-1] != '\t' {
		return len(content)
	}
	for h > from && (content[h-1] == ' ' || content[h-1] == '\t') {
		h--
	}
	return h
}

// --- fenced code ---

type fenceSpec struct {
	char   rune
	length int
	info   string
}

// fenceAt recognizes an opening fence on line i: at most three columns of
// indentation, then three or more backticks or tildes.
func (p *blockParser) fenceAt(i int) (fenceSpec, bool) {
	if p.indentOf(i) > 3 {
		return fenceSpec{}, false
	}
	content := p.contentRunes(i)
	first, off := p.firstNonSpace(i)
	if first != '`' && first != '~' {
		return fenceSpec{}, false
	}
	k := off
	for k < len(content) && content[k] == first {
		k++
	}
	if k-off < 3 {
		return fenceSpec{}, false
	}
	info := strings.TrimSpace(string(content[k:]))
	if first == '`' && strings.ContainsRune(info, '`') {
		return fenceSpec{}, false
	}
	return fenceSpec{char: first, length: k - off, info: info}, true
}

// closesFence reports whether line i closes the given fence: same rune, a
// run at least as long, and nothing but whitespace after it.
func (p *blockParser) closesFence(i int, spec fenceSpec) bool {
	if p.indentOf(i) > 3 {
		return false
	}
	content := p.contentRunes(i)
	first, off := p.firstNonSpace(i)
	if first != spec.char {
		return false
	}
	k := off
	for k < len(content) && content[k] == spec.char {
		k++
	}
	if k-off < spec.length {
		return false
	}
	for ; k < len(content); k++ {
		if content[k] != ' ' && content[k] != '\t' {
			return false
		}
	}
	return true
}

func (p *blockParser) tryFencedCode() bool {
	spec, ok := p.fenceAt(p.i)
	if !ok {
		return false
	}
	open := p.lines[p.i]
	j := p.i + 1
	closed := false
	for j < len(p.lines) {
		if p.closesFence(j, spec) {
			closed = true
			break
		}
		j++
	}

	lang := spec.info
	if f := strings.Fields(spec.info); len(f) > 0 {
		lang = strings.ToLower(f[0])
	}
	attrs := &mddoc.BlockAttrs{Code: &mddoc.CodeAttrs{
		FenceChar:   spec.char,
		FenceLength: spec.length,
		Info:        spec.info,
		Lang:        lang,
		Closed:      closed,
	}}
	cb := mddoc.NewNode(mddoc.NodeCodeBlock, 0).WithBlock(attrs)
	cb.Extend(mddoc.NewNode(mddoc.NodeSyntax, open.end-open.start))

	contentEnd := p.lines[len(p.lines)-1].end
	if closed {
		contentEnd = p.lines[j].start
	} else if j > p.i {
		contentEnd = p.lines[j-1].end
	}
	if contentEnd > open.end {
		cb.Extend(mddoc.NewNode(mddoc.NodeText, contentEnd-open.end))
	}
	if closed {
		close := p.lines[j]
		cb.Extend(mddoc.NewNode(mddoc.NodeSyntax, close.end-close.start))
		p.i = j + 1
	} else {
		p.recovered = true
		p.i = len(p.lines)
	}
	p.doc.Extend(cb)
	return true
}

// --- indented code ---

// parseIndentedCode consumes a run of lines indented four or more columns.
// Each line contributes a marker leaf for the first four columns and a text
// leaf for the rest, so stripping marker leaves yields the code body.
func (p *blockParser) parseIndentedCode() {
	attrs := &mddoc.BlockAttrs{Code: &mddoc.CodeAttrs{Indented: true, Closed: true}}
	cb := mddoc.NewNode(mddoc.NodeCodeBlock, 0).WithBlock(attrs)
	for p.i < len(p.lines) && !p.isBlank(p.i) && p.indentOf(p.i) >= 4 {
		line := p.lines[p.i]
		prefix := p.indentPrefixLen(p.i)
		cb.Extend(mddoc.NewNode(mddoc.NodeSyntax, prefix))
		if line.end-line.start > prefix {
			cb.Extend(mddoc.NewNode(mddoc.NodeText, line.end-line.start-prefix))
		}
		p.i++
	}
	p.doc.Extend(cb)
}

// indentPrefixLen counts the runes making up the first four columns of
// indentation on line i. A leading tab covers all four on its own.
func (p *blockParser) indentPrefixLen(i int) int {
	cols, runes := 0, 0
	for _, r := range p.contentRunes(i) {
		if cols >= 4 {
			break
		}
		switch r {
		case ' ':
			cols++
		case '\t':
			cols += 4
		default:
			return runes
		}
		runes++
	}
	return runes
}

// --- block quotes ---

// parseBlockQuote consumes consecutive '>' lines. Each line becomes a
// marker leaf for the quote prefix and an inline run for the rest. Nested
// '>' runs fold into the prefix rather than into nested quote nodes.
func (p *blockParser) parseBlockQuote() {
	q := mddoc.NewNode(mddoc.NodeBlockQuote, 0)
	for p.i < len(p.lines) && p.quoteAt(p.i) {
		line := p.lines[p.i]
		prefix := p.quotePrefixLen(p.i)
		q.Extend(mddoc.NewNode(mddoc.NodeSyntax, prefix))
		if line.end > line.start+prefix {
			p.parseInline(q, line.start+prefix, line.end)
		}
		p.i++
	}
	p.doc.Extend(q)
}

func (p *blockParser) quoteAt(i int) bool {
	if p.isBlank(i) || p.indentOf(i) > 3 {
		return false
	}
	first, _ := p.firstNonSpace(i)
	return first == '>'
}

// quotePrefixLen measures the quote marker: leading spaces, then one or
// more '>' each followed by at most one space.
func (p *blockParser) quotePrefixLen(i int) int {
	content := p.contentRunes(i)
	k := 0
	for k < len(content) && (content[k] == ' ' || content[k] == '\t') {
		k++
	}
	for k < len(content) && content[k] == '>' {
		k++
		if k < len(content) && content[k] == ' ' {
			k++
		}
	}
	return k
}

// --- thematic breaks ---

// isThematicBreak recognizes a line of three or more matching -, * or _
// runes, whitespace allowed between them.
func (p *blockParser) isThematicBreak(i int) bool {
	if p.indentOf(i) > 3 {
		return false
	}
	content := p.contentRunes(i)
	var marker rune
	count := 0
	for _, r := range content {
		switch r {
		case ' ', '\t':
			continue
		case '-', '*', '_':
			if marker == 0 {
				marker = r
			}
			if r != marker {
				return false
			}
			count++
		default:
			return false
		}
	}
	return count >= 3
}

func (p *blockParser) parseThematicBreak() {
	line := p.lines[p.i]
	p.doc.Extend(mddoc.NewNode(mddoc.NodeThematicBreak, line.end-line.start))
	p.i++
}

// --- lists ---

type listMarker struct {
	ordered bool
	number  int
	marker  rune // bullet rune, or the delimiter for ordered items
	// prefixLen counts runes from line start through the spaces after the
	// marker; contentCol is the column where item text begins.
	prefixLen  int
	contentCol int
}

// listMarkerAt recognizes a bullet ("-", "*", "+") or ordered ("1.", "1)")
// list marker followed by a space, at up to three columns of indentation.
func (p *blockParser) listMarkerAt(i int) (listMarker, bool) {
	if p.indentOf(i) > 3 {
		return listMarker{}, false
	}
	content := p.contentRunes(i)
	k := 0
	col := 0
	for k < len(content) && (content[k] == ' ' || content[k] == '\t') {
		if content[k] == '\t' {
			col += 4
		} else {
			col++
		}
		k++
	}
	if k >= len(content) {
		return listMarker{}, false
	}
	m := listMarker{}
	switch r := content[k]; r {
	case '-', '*', '+':
		m.marker = r
		k++
		col++
	default:
		if r < '0' || r > '9' {
			return listMarker{}, false
		}
		num := 0
		digits := 0
		for k < len(content) && content[k] >= '0' && content[k] <= '9' {
			num = num*10 + int(content[k]-'0')
			k++
			col++
			digits++
		}
		if digits == 0 || digits > 9 || k >= len(content) {
			return listMarker{}, false
		}
		if content[k] != '.' && content[k] != ')' {
			return listMarker{}, false
		}
		m.ordered = true
		m.number = num
		m.marker = content[k]
		k++
		col++
	}
	if k >= len(content) {
		return listMarker{}, false
	}
	if content[k] != ' ' && content[k] != '\t' {
		return listMarker{}, false
	}
	for k < len(content) && (content[k] == ' ' || content[k] == '\t') {
		if content[k] == '\t' {
			col += 4
		} else {
			col++
		}
		k++
	}
	if k >= len(content) {
		return listMarker{}, false
	}
	m.prefixLen = k
	m.contentCol = col
	return m, true
}

// parseList consumes a tight list: items share the same marker flavor, a
// blank line or a non-continuation line ends the list. Item text is one
// inline run from after the marker through the item's continuation lines.
func (p *blockParser) parseList() {
	first, _ := p.listMarkerAt(p.i)
	attrs := &mddoc.BlockAttrs{List: &mddoc.ListAttrs{
		Ordered: first.ordered,
		Start:   first.number,
		Marker:  first.marker,
	}}
	list := mddoc.NewNode(mddoc.NodeList, 0).WithBlock(attrs)
	for p.i < len(p.lines) {
		m, ok := p.listMarkerAt(p.i)
		if !ok || m.ordered != first.ordered || m.marker != first.marker {
			break
		}
		p.parseListItem(list, m)
	}
	p.doc.Extend(list)
}

func (p *blockParser) parseListItem(list *mddoc.Node, m listMarker) {
	item := mddoc.NewNode(mddoc.NodeListItem, 0)
	item.Extend(mddoc.NewNode(mddoc.NodeSyntax, m.prefixLen))
	start := p.lines[p.i].start + m.prefixLen
	end := p.lines[p.i].end
	p.i++
	for p.i < len(p.lines) && p.continuesListItem(p.i, m) {
		end = p.lines[p.i].end
		p.i++
	}
	p.parseInline(item, start, end)
	list.Extend(item)
}

// continuesListItem accepts lines indented to the item's content column.
// Blank lines and new markers end the item.
func (p *blockParser) continuesListItem(i int, m listMarker) bool {
	if p.isBlank(i) {
		return false
	}
	if _, ok := p.listMarkerAt(i); ok {
		return false
	}
	return p.indentOf(i) >= m.contentCol
}

// --- tables ---

// tryTable recognizes a GitHub-style pipe table: a header row containing
// '|', then a delimiter row of dashes and colons. Row lines become marker
// leaves; cell text is carried on the block's attributes.
func (p *blockParser) tryTable() bool {
	if p.i+1 >= len(p.lines) {
		return false
	}
	header := p.contentRunes(p.i)
	if !containsUnescapedPipe(header) {
		return false
	}
	aligns, ok := parseTableDelimiter(p.contentRunes(p.i + 1))
	if !ok {
		return false
	}
	headerCells := splitTableRow(header)
	if len(headerCells) != len(aligns) {
		return false
	}

	attrs := &mddoc.BlockAttrs{Table: &mddoc.TableAttrs{
		Header:     headerCells,
		Alignments: aligns,
	}}
	tbl := mddoc.NewNode(mddoc.NodeTable, 0)
	appendRowLeaf := func(i int) {
		line := p.lines[i]
		tbl.Extend(mddoc.NewNode(mddoc.NodeSyntax, line.end-line.start))
	}
	appendRowLeaf(p.i)
	appendRowLeaf(p.i + 1)
	p.i += 2
	for p.i < len(p.lines) && !p.isBlank(p.i) &&
		containsUnescapedPipe(p.contentRunes(p.i)) && !p.startsBlock(p.i) {
		attrs.Table.Rows = append(attrs.Table.Rows, splitTableRow(p.contentRunes(p.i)))
		appendRowLeaf(p.i)
		p.i++
	}
	p.doc.Extend(tbl.WithBlock(attrs))
	return true
}

func containsUnescapedPipe(content []rune) bool {
	for k, r := range content {
		if r == '|' && (k == 0 || content[k-1] != '\\') {
			return true
		}
	}
	return false
}

// parseTableDelimiter parses the |---|:---:| row into column alignments.
func parseTableDelimiter(content []rune) ([]mddoc.Alignment, bool) {
	cells := splitTableRow(content)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]mddoc.Alignment, 0, len(cells))
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			return nil, false
		}
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		dashes := strings.Trim(cell, ":")
		if dashes == "" || strings.Trim(dashes, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			aligns = append(aligns, mddoc.AlignCenter)
		case right:
			aligns = append(aligns, mddoc.AlignRight)
		case left:
			aligns = append(aligns, mddoc.AlignLeft)
		default:
			aligns = append(aligns, mddoc.AlignNone)
		}
	}
	return aligns, true
}

// splitTableRow splits a row on unescaped pipes, dropping the outer empty
// cells produced by leading and trailing pipes.
func splitTableRow(content []rune) []string {
	var cells []string
	var cell strings.Builder
	for k := 0; k < len(content); k++ {
		r := content[k]
		switch {
		case r == '\\' && k+1 < len(content) && content[k+1] == '|':
			cell.WriteRune('|')
			k++
		case r == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// --- paragraphs and setext headings ---

// parseParagraph collects lines until a blank line or a block opener. A
// setext underline promotes the collected lines to a heading whose
// underline becomes a trailing marker leaf.
func (p *blockParser) parseParagraph() {
	start := p.lines[p.i].start
	end := p.lines[p.i].end
	p.i++
	for p.i < len(p.lines) {
		if level := p.setextLevel(p.i); level > 0 {
			line := p.lines[p.i]
			h := mddoc.NewNode(mddoc.NodeHeading, 0).
				WithBlock(&mddoc.BlockAttrs{HeadingLevel: level, Setext: true})
			p.parseInline(h, start, end)
			h.Extend(mddoc.NewNode(mddoc.NodeSyntax, line.end-line.start))
			p.doc.Extend(h)
			p.i++
			return
		}
		if p.startsBlock(p.i) {
			break
		}
		end = p.lines[p.i].end
		p.i++
	}
	para := mddoc.NewNode(mddoc.NodeParagraph, 0)
	p.parseInline(para, start, end)
	p.doc.Extend(para)
}

// setextLevel reports the heading level a setext underline would produce,
// or zero when line i is not an underline.
func (p *blockParser) setextLevel(i int) int {
	if p.indentOf(i) > 3 {
		return 0
	}
	content := p.contentRunes(i)
	_, off := p.firstNonSpace(i)
	if off < 0 {
		return 0
	}
	content = content[off:]
	var marker rune
	count := 0
	for k, r := range content {
		switch r {
		case '=', '-':
			if marker == 0 {
				marker = r
			}
			if r != marker {
				return 0
			}
			count++
		case ' ', '\t':
			// trailing whitespace only
			for _, rest := range content[k:] {
				if rest != ' ' && rest != '\t' {
					return 0
				}
			}
			if count == 0 {
				return 0
			}
			if marker == '=' {
				return 1
			}
			return 2
		default:
			return 0
		}
	}
	if count == 0 {
		return 0
	}
	if marker == '=' {
		return 1
	}
	return 2
}

// startsBlock reports whether line i interrupts a paragraph. Indented code
// and tables do not; ordered lists only when numbered 1.
func (p *blockParser) startsBlock(i int) bool {
	if p.isBlank(i) {
		return true
	}
	if p.indentOf(i) > 3 {
		return false
	}
	if _, ok := p.fenceAt(i); ok {
		return true
	}
	if p.quoteAt(i) || p.isThematicBreak(i) {
		return true
	}
	first, off := p.firstNonSpace(i)
	if first == '#' {
		content := p.contentRunes(i)
		level := 0
		k := off
		for k < len(content) && content[k] == '#' {
			level++
			k++
		}
		if level <= 6 && (k >= len(content) || content[k] == ' ' || content[k] == '\t') {
			return true
		}
	}
	if m, ok := p.listMarkerAt(i); ok {
		return !m.ordered || m.number == 1
	}
	return false
}
