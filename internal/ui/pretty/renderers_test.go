package pretty

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwellco/inkwell/pkg/mddoc"
)

func TestFormatOutline(t *testing.T) {
	styles := NewStyles(false)
	out := styles.FormatOutline("guide.md", []OutlineRow{
		{Level: 1, Text: "Guide", Line: 1},
		{Level: 2, Text: "Install", Line: 12},
		{Level: 3, Text: "From source", Line: 30},
	})

	assert.Contains(t, out, "guide.md")
	assert.Contains(t, out, " 1  Guide")
	assert.Contains(t, out, "12    Install")
	assert.Contains(t, out, "30      From source")
}

func TestFormatOutlineEmpty(t *testing.T) {
	out := NewStyles(false).FormatOutline("empty.md", nil)
	assert.Contains(t, out, "(no headings)")
}

func TestFormatStats(t *testing.T) {
	out := NewStyles(false).FormatStats(StatsRow{
		Path: "notes.md",
		Stats: mddoc.DocStats{
			Words: 420, Runes: 2600, Blocks: 9,
			Headings: 3, CodeBlocks: 1, ReadingMinutes: 3,
		},
	})

	assert.Contains(t, out, "notes.md")
	assert.Contains(t, out, "Words:         420")
	assert.Contains(t, out, "Reading time:  3m")
}

func TestFormatStatsTableTotals(t *testing.T) {
	rows := []StatsRow{
		{Path: "a.md", Stats: mddoc.DocStats{Words: 100, Blocks: 4, ReadingMinutes: 1}},
		{Path: "b.md", Stats: mddoc.DocStats{Words: 300, Blocks: 6, ReadingMinutes: 2}},
	}
	out := NewStyles(false).FormatStatsTable(rows)

	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "a.md")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "400")
	assert.Contains(t, out, "3m")
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "5m", formatMinutes(5))
	assert.Equal(t, "1h05m", formatMinutes(65))
}

func TestFormatMatch(t *testing.T) {
	out := NewStyles(false).FormatMatch(MatchLine{
		Path: "a.md", Line: 3, Col: 5,
		Text:  "the needle is here\n",
		Start: 4, End: 10,
	})

	assert.Contains(t, out, "a.md:3:5:")
	assert.Contains(t, out, "the needle is here")
	assert.NotContains(t, out, "\n")
}

func TestFormatMatchClampsStaleOffsets(t *testing.T) {
	out := NewStyles(false).FormatMatch(MatchLine{
		Path: "a.md", Line: 1, Col: 1,
		Text:  "short",
		Start: 3, End: 99,
	})
	assert.Contains(t, out, "short")
}

func TestFormatSearchSummary(t *testing.T) {
	styles := NewStyles(false)
	assert.Contains(t, styles.FormatSearchSummary(0, 0), "no matches")
	assert.Contains(t, styles.FormatSearchSummary(1, 1), "1 match in 1 file")
	assert.Contains(t, styles.FormatSearchSummary(5, 2), "5 matches in 2 files")
}

func TestFormatReplaceSummary(t *testing.T) {
	styles := NewStyles(false)
	assert.Contains(t, styles.FormatReplaceSummary(3, 2, true), "dry run")
	assert.Contains(t, styles.FormatReplaceSummary(3, 2, false), "3 replacements in 2 files")
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, IsColorEnabled("always", &buf))
	assert.False(t, IsColorEnabled("never", &buf))
	// Auto with a non-TTY writer.
	assert.False(t, IsColorEnabled("auto", &buf))
}
