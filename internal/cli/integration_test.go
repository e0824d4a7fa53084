package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellco/inkwell/internal/cli"
	"github.com/inkwellco/inkwell/pkg/fsutil"
)

// testDocument exercises headings, code, and prose in one file.
const testDocument = `# Getting Started

Inkwell keeps notes in plain Markdown.

## Install

Run the installer and check the TODO list.

` + "```go\nfunc main() {}\n```" + `

## Usage

Another TODO lives here.
`

func testBuildInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

// writeTestConfig writes a minimal config file so runs do not pick up
// whatever config the host machine has lying around.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	cfgFile := filepath.Join(dir, ".inkwell.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("editor:\n  tab_size: 4\n"), 0644))
	return cfgFile
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func TestIntegration_Outline(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(testDocument), 0644))
	cfgFile := writeTestConfig(t, tmpDir)

	output, err := runCommand(t,
		"outline", "--config", cfgFile, "--color", "never", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "Getting Started")
	assert.Contains(t, output, "Install")
	assert.Contains(t, output, "Usage")
	// Headings sit on lines 1, 5, and 13 of the document.
	assert.Contains(t, output, "1")
	assert.Contains(t, output, "5")
	assert.Contains(t, output, "13")
}

func TestIntegration_Stats(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(testDocument), 0644))
	cfgFile := writeTestConfig(t, tmpDir)

	output, err := runCommand(t,
		"stats", "--config", cfgFile, "--color", "never", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "test.md")
	assert.Contains(t, output, "Words:")
	assert.Contains(t, output, "Reading time:")
}

func TestIntegration_StatsTable(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.md"), []byte("# A\n\nshort\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "b.md"), []byte("# B\n\nalso short\n"), 0644))
	cfgFile := writeTestConfig(t, tmpDir)

	output, err := runCommand(t,
		"stats", "--config", cfgFile, "--color", "never", tmpDir)
	require.NoError(t, err)

	assert.Contains(t, output, "WORDS")
	assert.Contains(t, output, "TOTAL")
	assert.Contains(t, output, "a.md")
	assert.Contains(t, output, "b.md")
}

func TestIntegration_View(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(testDocument), 0644))
	cfgFile := writeTestConfig(t, tmpDir)

	output, err := runCommand(t,
		"view", "--config", cfgFile, "--color", "never", "--width", "60", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "Getting Started")
	assert.Contains(t, output, "func main() {}")
	assert.Contains(t, output, "plain Markdown")
}

func TestIntegration_SearchFindsMatches(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(testDocument), 0644))
	cfgFile := writeTestConfig(t, tmpDir)

	output, err := runCommand(t,
		"search", "--config", cfgFile, "--color", "never", "TODO", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "test.md")
	assert.Contains(t, output, "2 matches in 1 file")
}

func TestIntegration_SearchNoMatches(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(testDocument), 0644))
	cfgFile := writeTestConfig(t, tmpDir)

	output, err := runCommand(t,
		"search", "--config", cfgFile, "--color", "never", "nonexistent-needle", mdFile)

	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrNoMatches), "expected ErrNoMatches, got %v", err)
	assert.Contains(t, output, "no matches")
}

func TestIntegration_SearchRegex(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(testDocument), 0644))
	cfgFile := writeTestConfig(t, tmpDir)

	output, err := runCommand(t,
		"search", "--config", cfgFile, "--color", "never",
		"--regex", "T[O]+DO", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "2 matches in 1 file")
}

func TestIntegration_SearchReplaceDryRun(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(testDocument), 0644))
	cfgFile := writeTestConfig(t, tmpDir)

	output, err := runCommand(t,
		"search", "--config", cfgFile, "--color", "never",
		"TODO", "--replace", "DONE", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "dry run")

	// Without --write the file is untouched.
	content, readErr := os.ReadFile(mdFile)
	require.NoError(t, readErr)
	assert.Equal(t, testDocument, string(content))
}

func TestIntegration_SearchReplaceWrite(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(testDocument), 0644))
	cfgFile := writeTestConfig(t, tmpDir)

	output, err := runCommand(t,
		"search", "--config", cfgFile, "--color", "never",
		"TODO", "--replace", "DONE", "--write", mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "2 replacements in 1 file")

	content, readErr := os.ReadFile(mdFile)
	require.NoError(t, readErr)
	assert.NotContains(t, string(content), "TODO")
	assert.Contains(t, string(content), "DONE")

	// Backups are on by default; the sidecar keeps the original text.
	backup, readErr := os.ReadFile(mdFile + fsutil.BackupSuffix)
	require.NoError(t, readErr)
	assert.Equal(t, testDocument, string(backup))
}

func TestIntegration_SearchWriteRequiresReplace(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(testDocument), 0644))
	cfgFile := writeTestConfig(t, tmpDir)

	_, err := runCommand(t,
		"search", "--config", cfgFile, "TODO", "--write", mdFile)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--write requires --replace")
}

func TestIntegration_ExportHTML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	mdFile := filepath.Join(tmpDir, "test.md")
	require.NoError(t, os.WriteFile(mdFile, []byte(testDocument), 0644))
	cfgFile := writeTestConfig(t, tmpDir)
	outDir := filepath.Join(tmpDir, "build")

	output, err := runCommand(t,
		"export", "--config", cfgFile, "--color", "never",
		"--format", "html", "--out", outDir, mdFile)
	require.NoError(t, err)

	assert.Contains(t, output, "1 exported, 0 failed")

	rendered, readErr := os.ReadFile(filepath.Join(outDir, "test.html"))
	require.NoError(t, readErr)
	assert.Contains(t, string(rendered), "<h1")
	assert.Contains(t, string(rendered), "Getting Started")
}

func TestIntegration_ExportDirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.md"), []byte("# A\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "b.md"), []byte("# B\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("skip me\n"), 0644))
	cfgFile := writeTestConfig(t, tmpDir)
	outDir := filepath.Join(tmpDir, "build")

	output, err := runCommand(t,
		"export", "--config", cfgFile, "--color", "never",
		"--format", "markdown", "--out", outDir, tmpDir)
	require.NoError(t, err)

	assert.Contains(t, output, "2 exported, 0 failed")

	entries, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 2)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "inkwell.yml")

	_, err := runCommand(t, "init", "--output", cfgPath)
	require.NoError(t, err)

	content, readErr := os.ReadFile(cfgPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "editor:")

	// A second run without --force refuses to clobber the file.
	_, err = runCommand(t, "init", "--output", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCommand(t, "init", "--force", "--output", cfgPath)
	require.NoError(t, err)
}
