package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellco/inkwell/pkg/mddoc"
)

// fenceDoc block spans: heading [0,8), paragraph [9,14), paragraph
// [15,25), paragraph [26,41).
const fenceDoc = "# Title\n\npara\n\nmore text\n\nlast paragraph\n"

func TestUnterminatedFenceExtendsWindow(t *testing.T) {
	t.Parallel()

	sess := newSession(t, fenceDoc)
	rec := &recordingListener{}
	sess.AddListener(rec)

	// Typing an opening fence with no closer swallows everything below it,
	// so the pass must reach the end of the document.
	_, err := sess.Insert(15, "```go\n")
	require.NoError(t, err)

	require.Len(t, rec.spans, 1)
	assert.Equal(t, sess.Len(), rec.spans[0][1], "window must extend to end of document")
	assert.Equal(t, 8, rec.spans[0][0], "the untouched heading stays outside the window")

	require.True(t, sess.Tree().Validate())
	blocks := sess.Tree().Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, mddoc.NodeCodeBlock, blocks[2].Node.Kind)
	assert.Equal(t, sess.Len(), blocks[2].Span.End, "the open fence swallows the rest of the document")
}

func TestClosingFenceReparsesTail(t *testing.T) {
	t.Parallel()

	sess := newSession(t, fenceDoc)
	_, err := sess.Insert(15, "```go\n")
	require.NoError(t, err)

	rec := &recordingListener{}
	sess.AddListener(rec)

	// Closing the fence at the end restores separate blocks below it.
	_, err = sess.Insert(sess.Len(), "```\n\ntail\n")
	require.NoError(t, err)

	require.True(t, sess.Tree().Validate())
	assert.Equal(t, sess.Text(), sess.Tree().Source())

	blocks := sess.Tree().Blocks()
	require.Len(t, blocks, 4)
	assert.Equal(t, mddoc.NodeCodeBlock, blocks[2].Node.Kind)
	assert.Equal(t, mddoc.NodeParagraph, blocks[3].Node.Kind)
}

func TestSingleBlockEditStaysWindowed(t *testing.T) {
	t.Parallel()

	sess := newSession(t, fenceDoc)
	rec := &recordingListener{}
	sess.AddListener(rec)

	// An ordinary in-paragraph edit reparses a neighborhood, not the
	// document.
	_, err := sess.Insert(17, "even ")
	require.NoError(t, err)

	require.Len(t, rec.spans, 1)
	assert.Greater(t, rec.spans[0][0], 0)
	assert.Less(t, rec.spans[0][1], sess.Len())
}
