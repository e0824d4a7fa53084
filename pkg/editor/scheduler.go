package editor

import (
	"github.com/inkwellco/inkwell/pkg/mddoc"
	"github.com/inkwellco/inkwell/pkg/mdparse"
	"github.com/inkwellco/inkwell/pkg/textbuf"
)

// scheduler accumulates buffer changes between reparses. Everything noted
// since the last reset merges into one pending change whose Start and
// OldEnd are offsets into the source of the last adopted tree, which is
// the shape ComputeWindow consumes.
type scheduler struct {
	pending textbuf.Change
}

func (s *scheduler) note(ch textbuf.Change) {
	s.pending = textbuf.Merge(s.pending, ch)
}

func (s *scheduler) dirty() bool {
	return !s.pending.Empty()
}

func (s *scheduler) reset() {
	s.pending = textbuf.Change{}
}

// window picks the reparse window for the pending change against prev, the
// tree its offsets refer to. src is the post-edit source.
func (s *scheduler) window(prev *mddoc.Tree, src []rune) mdparse.Window {
	return mdparse.ComputeWindow(prev,
		s.pending.Start, s.pending.OldEnd,
		s.pending.Removed, s.pending.Inserted,
		src)
}
