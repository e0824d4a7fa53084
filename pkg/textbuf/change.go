package textbuf

// Change describes one mutation, in terms a reparse scheduler can consume.
// Start and OldEnd frame the replaced range in the pre-edit text; Start and
// NewEnd frame the inserted range in the post-edit text. A pure insert has
// OldEnd == Start, a pure delete NewEnd == Start.
type Change struct {
	Start  int
	OldEnd int
	NewEnd int

	// Removed and Inserted hold the affected text. For merged multi-op
	// changes both are concatenations, useful only for content heuristics.
	Removed  string
	Inserted string

	// Version is the buffer version after the change.
	Version uint64
}

// Delta returns the signed length change in runes.
func (c Change) Delta() int {
	return c.NewEnd - c.OldEnd
}

// Empty reports whether the change touched nothing.
func (c Change) Empty() bool {
	return c.Start == c.OldEnd && c.Start == c.NewEnd
}

// Merge combines two changes applied in sequence (c first, then d) into one
// change expressed against the initial and final texts. Schedulers use it to
// coalesce a burst of edits into a single dirty range.
func Merge(c, d Change) Change {
	return mergeChanges(c, d)
}

// mergeChanges combines two changes applied in sequence (c first, then d)
// into one change expressed against the initial and final texts.
func mergeChanges(c, d Change) Change {
	if c.Empty() {
		return d
	}
	if d.Empty() {
		return c
	}
	deltaC := c.NewEnd - c.OldEnd
	deltaD := d.NewEnd - d.OldEnd

	start := min(c.Start, d.Start)

	// c.NewEnd expressed in post-d coordinates.
	cNewEnd := c.NewEnd
	if d.OldEnd <= c.NewEnd {
		cNewEnd += deltaD
	} else if d.Start < c.NewEnd {
		// d extends past c's insertion; d.NewEnd wins below.
		cNewEnd = d.NewEnd
	}
	newEnd := max(d.NewEnd, cNewEnd)

	// d.OldEnd expressed in pre-c coordinates.
	dOldEnd := d.OldEnd
	if d.OldEnd >= c.NewEnd {
		dOldEnd -= deltaC
	} else if d.OldEnd > c.Start {
		dOldEnd = c.OldEnd
	}
	oldEnd := max(c.OldEnd, dOldEnd)

	return Change{
		Start:    start,
		OldEnd:   oldEnd,
		NewEnd:   newEnd,
		Removed:  c.Removed + d.Removed,
		Inserted: c.Inserted + d.Inserted,
		Version:  d.Version,
	}
}
