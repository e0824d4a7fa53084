package editor

import (
	"github.com/inkwellco/inkwell/pkg/mddoc"
	"github.com/inkwellco/inkwell/pkg/preview"
)

// Listener receives notifications after each edit pass. Callbacks run on
// the session's owner goroutine and must not mutate the session.
type Listener interface {
	// TreeReplaced delivers the tree the pass adopted.
	TreeReplaced(tree *mddoc.Tree)

	// SpansInvalidated frames the rune range of the new text whose
	// rendering may have changed. A whole-document pass reports [0, len).
	SpansInvalidated(start, end int)

	// MappingReplaced delivers the rebuilt position mapping. It fires only
	// when the pass changed block structure; same-shape edits keep the
	// previous mapping valid.
	MappingReplaced(m *preview.Mapping)
}

// NopListener implements Listener with no-ops, for embedding by consumers
// that care about a subset of the notifications.
type NopListener struct{}

func (NopListener) TreeReplaced(*mddoc.Tree)         {}
func (NopListener) SpansInvalidated(int, int)        {}
func (NopListener) MappingReplaced(*preview.Mapping) {}
