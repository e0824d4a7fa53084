package textbuf

// Revision is an immutable copy of the document at one version. Revisions
// are published atomically after every mutation, so goroutines other than
// the buffer owner (auto-save, background reparse) read a consistent
// document without locking the edit path.
type Revision struct {
	Text    string
	Version uint64
}

// Snapshot returns the most recently published revision. Safe to call from
// any goroutine.
func (b *Buffer) Snapshot() Revision {
	return *b.snap.Load()
}

// publish records the current text and version for concurrent readers.
func (b *Buffer) publish() {
	rev := &Revision{Text: b.Text(), Version: b.version}
	b.snap.Store(rev)
}
