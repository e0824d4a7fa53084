package pretty

import (
	"fmt"
	"strings"
)

// OutlineRow is one heading prepared for display: level, inner text,
// and the 1-based source line it starts on.
type OutlineRow struct {
	Level int
	Text  string
	Line  int
}

// FormatOutline renders a document outline as an indented heading list
// with source line numbers in the gutter.
func (s *Styles) FormatOutline(path string, rows []OutlineRow) string {
	var b strings.Builder
	if path != "" {
		b.WriteString(s.FilePath.Render(path))
		b.WriteString("\n")
	}
	if len(rows) == 0 {
		b.WriteString(s.Dim.Render("(no headings)"))
		b.WriteString("\n")
		return b.String()
	}

	gutter := len(fmt.Sprintf("%d", maxLine(rows)))
	for _, row := range rows {
		loc := fmt.Sprintf("%*d", gutter, row.Line)
		b.WriteString(s.Location.Render(loc))
		b.WriteString("  ")
		b.WriteString(strings.Repeat("  ", row.Level-1))
		if row.Level == 1 {
			b.WriteString(s.Bold.Render(row.Text))
		} else {
			b.WriteString(row.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func maxLine(rows []OutlineRow) int {
	max := 1
	for _, row := range rows {
		if row.Line > max {
			max = row.Line
		}
	}
	return max
}
