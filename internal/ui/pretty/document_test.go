package pretty

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellco/inkwell/pkg/highlight"
	"github.com/inkwellco/inkwell/pkg/mdparse"
	"github.com/inkwellco/inkwell/pkg/preview"
)

func renderSource(t *testing.T, source string, width int) string {
	t.Helper()
	tree, err := mdparse.New().Parse(context.Background(), source, 0)
	require.NoError(t, err)
	blocks := preview.BuildModel(tree, highlight.NewRegistry())
	return NewDocumentRenderer(NewStyles(false), width).Render(blocks)
}

func TestRenderHeadingAndParagraph(t *testing.T) {
	out := renderSource(t, "## Setup\n\nInstall the binary.\n", 80)
	assert.Contains(t, out, "## Setup")
	assert.Contains(t, out, "Install the binary.")
}

func TestRenderWrapsParagraphs(t *testing.T) {
	long := strings.Repeat("word ", 30)
	out := renderSource(t, long+"\n", 40)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40)
	}
}

func TestRenderCodeBlock(t *testing.T) {
	out := renderSource(t, "```go\nfunc main() {}\n```\n", 80)
	assert.Contains(t, out, "go")
	assert.Contains(t, out, codeIndent+"func main() {}")
	assert.NotContains(t, out, "```")
}

func TestRenderList(t *testing.T) {
	out := renderSource(t, "1. first\n2. second\n", 80)
	assert.Contains(t, out, "1. first")
	assert.Contains(t, out, "2. second")

	out = renderSource(t, "- alpha\n- beta\n", 80)
	assert.Contains(t, out, "- alpha")
	assert.Contains(t, out, "- beta")
}

func TestRenderQuoteAndRule(t *testing.T) {
	out := renderSource(t, "> quoted text\n\n---\n", 40)
	assert.Contains(t, out, "| quoted text")
	assert.Contains(t, out, strings.Repeat("-", 40))
}

func TestRenderTable(t *testing.T) {
	out := renderSource(t, "| Name | Size |\n| ---- | ---- |\n| core | 12kb |\n", 80)
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "core")
	assert.Contains(t, out, "12kb")
	assert.NotContains(t, out, "|")
}

func TestRenderEmptyDocument(t *testing.T) {
	out := renderSource(t, "", 80)
	assert.Equal(t, "\n", out)
}

func TestStyledCodeLinesCoverBody(t *testing.T) {
	styles := NewStyles(false)
	r := NewDocumentRenderer(styles, 80)

	code := "// c\nx = \"s\"\n"
	spans := highlight.Highlight(mustRuleset(t, "go"), code)
	lines := r.styledCodeLines(code, spans)
	require.Len(t, lines, 2)
	assert.Equal(t, "// c", lines[0])
	assert.Equal(t, `x = "s"`, lines[1])
}

func mustRuleset(t *testing.T, tag string) *highlight.Ruleset {
	t.Helper()
	rules, ok := highlight.NewRegistry().Lookup(tag)
	require.True(t, ok)
	return rules
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, []string{""}},
		{"one two three", 7, []string{"one two", "three"}},
		{"superlongword", 4, []string{"superlongword"}},
		{"a b", 10, []string{"a b"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wrapText(tt.text, tt.width), "text %q width %d", tt.text, tt.width)
	}
}
