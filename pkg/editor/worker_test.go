package editor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellco/inkwell/pkg/editor"
)

// bigParagraph is a single block, so any edit makes the reparse window the
// whole document and, over the threshold, routes it to the worker.
func bigParagraph() string {
	return strings.Repeat("alpha beta gamma ", 20) + "end\n"
}

func TestBackgroundHandoff(t *testing.T) {
	t.Parallel()

	sess := newSession(t, bigParagraph(), editor.Options{AsyncThreshold: 64})
	rec := &recordingListener{}
	sess.AddListener(rec)

	_, err := sess.Insert(0, "word ")
	require.NoError(t, err)

	// The owner keeps the previous tree while the pass runs.
	assert.Equal(t, uint64(0), sess.Tree().Version)
	assert.Equal(t, uint64(1), sess.Version())
	assert.Empty(t, rec.trees)

	p := <-sess.BackgroundParses()
	require.True(t, sess.Absorb(p))

	assert.Equal(t, sess.Version(), sess.Tree().Version)
	assert.Equal(t, sess.Text(), sess.Tree().Source())
	require.Len(t, rec.trees, 1)
	assert.Equal(t, [2]int{0, sess.Len()}, rec.spans[0])
}

func TestBackgroundStaleResultDiscarded(t *testing.T) {
	t.Parallel()

	sess := newSession(t, bigParagraph(), editor.Options{AsyncThreshold: 64})

	_, err := sess.Insert(0, "one ")
	require.NoError(t, err)
	p1 := <-sess.BackgroundParses()

	// The document moves on before the owner absorbs the result.
	_, err = sess.Insert(0, "two ")
	require.NoError(t, err)

	assert.False(t, sess.Absorb(p1), "a superseded pass must be discarded, not merged")
	assert.Equal(t, uint64(0), sess.Tree().Version)

	p2 := <-sess.BackgroundParses()
	require.True(t, sess.Absorb(p2))
	assert.True(t, strings.HasPrefix(sess.Tree().Source(), "two one "))
}

func TestBackgroundAbsorbZeroValue(t *testing.T) {
	t.Parallel()

	sess := newSession(t, bigParagraph(), editor.Options{AsyncThreshold: 64})
	assert.False(t, sess.Absorb(editor.BackgroundParse{}))
}

func TestSmallDocumentStaysSynchronous(t *testing.T) {
	t.Parallel()

	// Under the threshold the whole-window pass runs on the owner
	// goroutine and the tree never lags.
	sess := newSession(t, "just one paragraph\n", editor.Options{AsyncThreshold: 1 << 20})
	_, err := sess.Insert(0, "edit ")
	require.NoError(t, err)
	assert.Equal(t, sess.Version(), sess.Tree().Version)
}

func TestErrReparseCancelled(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, editor.ErrReparseCancelled, context.Canceled)
}

func TestSessionCloseCancelsBackgroundWork(t *testing.T) {
	t.Parallel()

	sess := newSession(t, bigParagraph(), editor.Options{AsyncThreshold: 64})
	_, err := sess.Insert(0, "word ")
	require.NoError(t, err)

	sess.Close()
	sess.Close()

	// Synchronous editing keeps working after Close.
	_, err = sess.Delete(0, 5)
	require.NoError(t, err)
	assert.Equal(t, bigParagraph(), sess.Text())
}