package pretty

import (
	"fmt"
	"strings"
)

// MatchLine is one search hit prepared for display. Start and End are
// rune offsets of the match within Text; Line and Col are 1-based.
type MatchLine struct {
	Path  string
	Line  int
	Col   int
	Text  string
	Start int
	End   int
}

// FormatMatch renders a search hit grep-style, with the matched range
// highlighted inside the source line.
func (s *Styles) FormatMatch(m MatchLine) string {
	var b strings.Builder
	b.WriteString(s.FilePath.Render(m.Path))
	b.WriteString(s.Location.Render(fmt.Sprintf(":%d:%d:", m.Line, m.Col)))
	b.WriteString(" ")

	runes := []rune(strings.TrimRight(m.Text, "\n"))
	start := clampIndex(m.Start, len(runes))
	end := clampIndex(m.End, len(runes))
	if end < start {
		end = start
	}

	b.WriteString(string(runes[:start]))
	b.WriteString(s.MatchHit.Render(string(runes[start:end])))
	b.WriteString(string(runes[end:]))
	return b.String()
}

// FormatSearchSummary renders the closing line of a search run.
func (s *Styles) FormatSearchSummary(matches, files int) string {
	if matches == 0 {
		return s.Dim.Render("no matches") + "\n"
	}
	return s.Success.Render(fmt.Sprintf("%d %s in %d %s",
		matches, plural(matches, "match", "matches"),
		files, plural(files, "file", "files"))) + "\n"
}

// FormatReplaceSummary renders the closing line of a replace run.
func (s *Styles) FormatReplaceSummary(replacements, files int, dryRun bool) string {
	msg := fmt.Sprintf("%d %s in %d %s",
		replacements, plural(replacements, "replacement", "replacements"),
		files, plural(files, "file", "files"))
	if dryRun {
		return s.Dim.Render(msg+" (dry run, nothing written)") + "\n"
	}
	return s.Success.Render(msg) + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
