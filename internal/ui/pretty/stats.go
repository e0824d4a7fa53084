package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inkwellco/inkwell/pkg/mddoc"
)

// StatsRow pairs a document path with its statistics.
type StatsRow struct {
	Path  string
	Stats mddoc.DocStats
}

const statsDividerWidth = 40

// FormatStats renders one document's statistics as a summary block.
func (s *Styles) FormatStats(row StatsRow) string {
	var b strings.Builder

	b.WriteString(s.SummaryTitle.Render(row.Path))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", statsDividerWidth))
	b.WriteString("\n")

	st := row.Stats
	b.WriteString("  Words:         " + s.SummaryValue.Render(strconv.Itoa(st.Words)) + "\n")
	b.WriteString("  Characters:    " + s.SummaryValue.Render(strconv.Itoa(st.Runes)) + "\n")
	b.WriteString("  Blocks:        " + s.SummaryValue.Render(strconv.Itoa(st.Blocks)) + "\n")
	b.WriteString("  Headings:      " + s.SummaryValue.Render(strconv.Itoa(st.Headings)) + "\n")
	b.WriteString("  Code blocks:   " + s.SummaryValue.Render(strconv.Itoa(st.CodeBlocks)) + "\n")
	b.WriteString("  Reading time:  " + s.SummaryValue.Render(formatMinutes(st.ReadingMinutes)) + "\n")

	return b.String()
}

// FormatStatsTable renders statistics for several documents as an
// aligned table with a totals row.
func (s *Styles) FormatStatsTable(rows []StatsRow) string {
	if len(rows) == 0 {
		return s.Dim.Render("no documents") + "\n"
	}
	if len(rows) == 1 {
		return s.FormatStats(rows[0])
	}

	pathWidth := runeLen("TOTAL")
	for _, row := range rows {
		if w := runeLen(row.Path); w > pathWidth {
			pathWidth = w
		}
	}

	var b strings.Builder
	header := fmt.Sprintf("%s  %8s  %8s  %6s", pad("FILE", pathWidth), "WORDS", "BLOCKS", "TIME")
	b.WriteString(s.TableHeader.Render(header))
	b.WriteString("\n")
	b.WriteString(s.TableSeparator.Render(strings.Repeat("-", runeLen(header))))
	b.WriteString("\n")

	var total mddoc.DocStats
	for _, row := range rows {
		st := row.Stats
		total.Words += st.Words
		total.Blocks += st.Blocks
		total.ReadingMinutes += st.ReadingMinutes
		fmt.Fprintf(&b, "%s  %8d  %8d  %6s\n",
			pad(row.Path, pathWidth), st.Words, st.Blocks, formatMinutes(st.ReadingMinutes))
	}

	b.WriteString(s.TableSeparator.Render(strings.Repeat("-", runeLen(header))))
	b.WriteString("\n")
	totals := fmt.Sprintf("%s  %8d  %8d  %6s",
		pad("TOTAL", pathWidth), total.Words, total.Blocks, formatMinutes(total.ReadingMinutes))
	b.WriteString(s.Bold.Render(totals))
	b.WriteString("\n")

	return b.String()
}

func formatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
