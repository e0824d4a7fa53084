package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellco/inkwell/pkg/highlight"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.md", "# A\n")
	b := writeTestFile(t, dir, "sub/b.markdown", "# B\n")
	writeTestFile(t, dir, "c.txt", "not markdown\n")
	writeTestFile(t, dir, ".hidden.md", "# hidden\n")
	writeTestFile(t, dir, ".git/d.md", "# in vcs dir\n")

	files, err := Discover(context.Background(), BatchOptions{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestDiscoverExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.md", "# A\n")
	writeTestFile(t, dir, "drafts/b.md", "# B\n")
	writeTestFile(t, dir, "notes/c.md", "# C\n")

	files, err := Discover(context.Background(), BatchOptions{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"drafts/**", "c.md"},
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.md", filepath.Base(files[0]))
}

func TestDiscoverExplicitFileBypassesExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	txt := writeTestFile(t, dir, "notes.txt", "plain text\n")

	files, err := Discover(context.Background(), BatchOptions{
		WorkingDir: dir,
		Paths:      []string{"notes.txt"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{txt}, files)
}

func TestDiscoverMissingPath(t *testing.T) {
	_, err := Discover(context.Background(), BatchOptions{
		WorkingDir: t.TempDir(),
		Paths:      []string{"nope.md"},
	})
	assert.Error(t, err)
}

func TestRunnerExportsTree(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.md", "# Alpha\n\nbody text\n")
	writeTestFile(t, dir, "sub/b.md", "# Beta\n")
	outDir := filepath.Join(dir, "out")

	runner, err := NewRunner(Options{Format: FormatHTML}, highlight.NewRegistry(), nil)
	require.NoError(t, err)

	result, err := runner.Run(context.Background(), BatchOptions{
		WorkingDir: dir,
		OutDir:     outDir,
		Jobs:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 2, result.Stats.FilesExported)
	assert.Equal(t, 0, result.Stats.FilesErrored)
	require.Len(t, result.Files, 2)

	// Deterministic order by source path.
	assert.Equal(t, "a.md", filepath.Base(result.Files[0].Path))
	assert.Equal(t, "b.md", filepath.Base(result.Files[1].Path))

	content, err := os.ReadFile(filepath.Join(outDir, "a.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<h1>Alpha</h1>")
}

func TestRunnerWritesNextToSourceWithoutOutDir(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.md", "# Alpha\n")

	runner, err := NewRunner(Options{Format: FormatMarkdown}, nil, nil)
	require.NoError(t, err)

	result, err := runner.Run(context.Background(), BatchOptions{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Output)
}

func TestRunnerRecordsPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeTestFile(t, dir, "good.md", "# Good\n")
	bad := filepath.Join(dir, "bad.md")
	require.NoError(t, os.WriteFile(bad, []byte("# Bad\n"), 0644))
	require.NoError(t, os.Chmod(bad, 0000))
	t.Cleanup(func() { _ = os.Chmod(bad, 0644) })

	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	runner, err := NewRunner(Options{Format: FormatHTML}, nil, nil)
	require.NoError(t, err)

	result, err := runner.Run(context.Background(), BatchOptions{
		WorkingDir: dir,
		OutDir:     filepath.Join(dir, "out"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesExported)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	for _, outcome := range result.Files {
		if outcome.Path == good {
			assert.NoError(t, outcome.Err)
		} else {
			assert.Error(t, outcome.Err)
		}
	}
}

func TestRunnerEmptyDirectory(t *testing.T) {
	runner, err := NewRunner(Options{Format: FormatHTML}, nil, nil)
	require.NoError(t, err)

	result, err := runner.Run(context.Background(), BatchOptions{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
}
