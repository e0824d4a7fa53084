package preview

import "github.com/inkwellco/inkwell/pkg/mddoc"

// Driver identifies which pane currently drives scroll sync.
type Driver int

const (
	DriverNone Driver = iota
	DriverEditor
	DriverPreview
)

func (d Driver) String() string {
	switch d {
	case DriverEditor:
		return "editor"
	case DriverPreview:
		return "preview"
	}
	return "none"
}

// ScrollSync is the one-directional latch that prevents feedback
// oscillation between panes. Whichever pane the user interacts with
// claims the latch and drives the other; scroll events arriving from
// the driven pane are echoes and must be dropped until the latch is
// released.
//
// The latch lives on the document's owner goroutine, like the rest of
// the pipeline, so it needs no locking.
type ScrollSync struct {
	driver Driver
}

// Claim requests the latch for d. It reports whether d may drive:
// true when the latch is free or d already holds it.
func (s *ScrollSync) Claim(d Driver) bool {
	if d == DriverNone {
		return false
	}
	if s.driver == DriverNone {
		s.driver = d
	}
	return s.driver == d
}

// Release frees the latch if d holds it. Releasing a latch another
// pane holds is a no-op.
func (s *ScrollSync) Release(d Driver) {
	if s.driver == d {
		s.driver = DriverNone
	}
}

// Driver returns the current latch holder.
func (s *ScrollSync) Driver() Driver { return s.driver }

// Controller owns position sync for one document: the offset table
// and the scroll latch. The embedder routes scroll events through
// Claim/Release and position lookups through the mapping methods.
type Controller struct {
	mapping *Mapping
	scroll  ScrollSync
}

// NewController builds a controller over the first parse of a
// document.
func NewController(tree *mddoc.Tree) *Controller {
	return &Controller{mapping: NewMapping(tree)}
}

// Update points the controller at a new parse tree. The mapping is
// rebuilt only when block-level structure changed (count, ordering,
// or source ranges); edits confined inside blocks keep the table.
// It reports whether a rebuild happened.
func (c *Controller) Update(tree *mddoc.Tree) bool {
	if c.mapping.matchesTree(tree) {
		return false
	}
	c.mapping = NewMapping(tree)
	return true
}

// Mapping returns the current offset table.
func (c *Controller) Mapping() *Mapping { return c.mapping }

// Scroll returns the latch for scroll-event routing.
func (c *Controller) Scroll() *ScrollSync { return &c.scroll }

// ToPreview maps an editor offset to a preview coordinate.
func (c *Controller) ToPreview(offset int) (Coordinate, bool) {
	return c.mapping.ToPreview(offset)
}

// ToEditor maps a preview coordinate back to an editor offset.
func (c *Controller) ToEditor(coord Coordinate) (int, bool) {
	return c.mapping.ToOffset(coord)
}
