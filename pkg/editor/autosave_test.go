package editor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellco/inkwell/pkg/editor"
	"github.com/inkwellco/inkwell/pkg/fsutil"
	"github.com/inkwellco/inkwell/pkg/textbuf"
)

// Both the session facade and the bare buffer can feed the autosaver.
var (
	_ editor.Snapshotter = (*editor.Session)(nil)
	_ editor.Snapshotter = (*textbuf.Buffer)(nil)
)

func TestAutosaverWritesOnTimer(t *testing.T) {
	t.Parallel()

	buf := textbuf.New("# Notes\n\ndraft\n")
	path := fsutil.AutosavePath(filepath.Join(t.TempDir(), "notes.md"))

	a := editor.NewAutosaver(buf, path, 5*time.Millisecond, nil)
	a.Start()
	defer a.Stop()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		return err == nil && string(data) == "# Notes\n\ndraft\n"
	}, 2*time.Second, 5*time.Millisecond)

	// Later edits reach the file through fresh snapshots.
	_, err := buf.Insert(buf.Len(), "more\n")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		return err == nil && string(data) == "# Notes\n\ndraft\nmore\n"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestAutosaverSaveNow(t *testing.T) {
	t.Parallel()

	buf := textbuf.New("content\n")
	path := filepath.Join(t.TempDir(), ".doc.md.autosave")

	a := editor.NewAutosaver(buf, path, time.Hour, nil)
	require.NoError(t, a.SaveNow(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(data))

	// Unchanged content is a no-op pass.
	require.NoError(t, a.SaveNow(context.Background()))
}

func TestAutosaverStartStopIdempotent(t *testing.T) {
	t.Parallel()

	buf := textbuf.New("x\n")
	path := filepath.Join(t.TempDir(), ".x.md.autosave")
	a := editor.NewAutosaver(buf, path, time.Hour, nil)

	a.Stop()
	a.Start()
	a.Start()
	a.Stop()
	a.Stop()
}

func TestAutosaverDoesNotTouchTheDocumentPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docPath := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(docPath, []byte("on disk\n"), 0o644))

	buf := textbuf.New("edited in memory\n")
	a := editor.NewAutosaver(buf, fsutil.AutosavePath(docPath), time.Hour, nil)
	require.NoError(t, a.SaveNow(context.Background()))

	data, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, "on disk\n", string(data), "autosave must write the sidecar, never the document")

	side, err := os.ReadFile(filepath.Join(dir, ".notes.md.autosave"))
	require.NoError(t, err)
	assert.Equal(t, "edited in memory\n", string(side))
}
