// Package editor assembles one open document: the text buffer, the
// incremental reparse pipeline, the preview render model, and position
// synchronization, behind a single facade.
//
// A Session is owned by one goroutine, conventionally the UI event loop,
// and its methods are not safe for concurrent use. The two sanctioned
// concurrent collaborators never touch the session itself: the background
// parse worker hands finished trees back through a channel the owner
// drains, and the Autosaver reads atomically published buffer revisions.
package editor

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/inkwellco/inkwell/pkg/highlight"
	"github.com/inkwellco/inkwell/pkg/mddoc"
	"github.com/inkwellco/inkwell/pkg/mdparse"
	"github.com/inkwellco/inkwell/pkg/preview"
	"github.com/inkwellco/inkwell/pkg/search"
	"github.com/inkwellco/inkwell/pkg/textbuf"
)

// DefaultAsyncThreshold is the document length in runes above which a
// whole-document reparse moves off the owner goroutine.
const DefaultAsyncThreshold = 1 << 16

// Options configures a Session.
type Options struct {
	// History bounds the undo stack depth. 0 means
	// textbuf.DefaultHistoryLimit.
	History int

	// AsyncThreshold is the document length in runes above which
	// whole-document reparses run on the background worker instead of the
	// owner goroutine. 0 means DefaultAsyncThreshold.
	AsyncThreshold int

	// Registry supplies the highlight rule tables for fenced code blocks.
	// Nil means the built-in set.
	Registry *highlight.Registry

	// Logger receives background-pass and lifecycle logs. Nil discards
	// them; the edit path itself never logs.
	Logger *log.Logger
}

// Session is one open document and the machinery that keeps its parse
// tree, render model, and position mapping current across edits.
type Session struct {
	buf    *textbuf.Buffer
	parser *mdparse.Parser
	reg    *highlight.Registry
	ctrl   *preview.Controller

	tree  *mddoc.Tree
	model []preview.Block

	sched     scheduler
	worker    *reparseWorker
	listeners []Listener

	savedVersion   uint64
	asyncThreshold int
	logger         *log.Logger
}

// NewSession parses text and assembles the edit pipeline around it. The
// context bounds only the initial parse.
func NewSession(ctx context.Context, text string, opts ...Options) (*Session, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	logger := o.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	reg := o.Registry
	if reg == nil {
		reg = highlight.NewRegistry()
	}
	threshold := o.AsyncThreshold
	if threshold <= 0 {
		threshold = DefaultAsyncThreshold
	}

	buf := textbuf.New(text, textbuf.Options{HistoryLimit: o.History})
	parser := mdparse.New()
	tree, err := parser.Parse(ctx, buf.Text(), buf.Version())
	if err != nil {
		return nil, err
	}

	s := &Session{
		buf:            buf,
		parser:         parser,
		reg:            reg,
		ctrl:           preview.NewController(tree),
		tree:           tree,
		model:          preview.BuildModel(tree, reg),
		savedVersion:   buf.Version(),
		asyncThreshold: threshold,
		logger:         logger,
	}
	s.worker = newReparseWorker(parser, logger)
	return s, nil
}

// Close cancels any background pass in flight. The session stays usable
// for synchronous calls.
func (s *Session) Close() {
	s.worker.stop()
}

// AddListener registers l for post-edit notifications, delivered in
// registration order.
func (s *Session) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Text returns the full document.
func (s *Session) Text() string { return s.buf.Text() }

// Len returns the document length in runes.
func (s *Session) Len() int { return s.buf.Len() }

// Version returns the buffer version, incremented by every mutation.
func (s *Session) Version() uint64 { return s.buf.Version() }

// Tree returns the current parse tree. It may lag the buffer while a
// whole-document pass runs in the background; Tree().Version tells which
// buffer state it reflects.
func (s *Session) Tree() *mddoc.Tree { return s.tree }

// Blocks returns the preview render model for the current tree.
func (s *Session) Blocks() []preview.Block { return s.model }

// Preview returns the position-sync controller for the current tree.
func (s *Session) Preview() *preview.Controller { return s.ctrl }

// Snapshot returns the latest published revision. Safe from any goroutine.
func (s *Session) Snapshot() textbuf.Revision { return s.buf.Snapshot() }

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool { return s.buf.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool { return s.buf.CanRedo() }

// Modified reports whether the document changed since the last MarkSaved.
func (s *Session) Modified() bool { return s.buf.Version() != s.savedVersion }

// MarkSaved records the current version as the on-disk state.
func (s *Session) MarkSaved() { s.savedVersion = s.buf.Version() }

// Insert places text at pos and runs the reparse pass.
func (s *Session) Insert(pos int, text string) (textbuf.Change, error) {
	ch, err := s.buf.Insert(pos, text)
	if err != nil {
		return textbuf.Change{}, err
	}
	s.afterEdit(ch)
	return ch, nil
}

// Delete removes n runes at pos and runs the reparse pass.
func (s *Session) Delete(pos, n int) (textbuf.Change, error) {
	ch, err := s.buf.Delete(pos, n)
	if err != nil {
		return textbuf.Change{}, err
	}
	s.afterEdit(ch)
	return ch, nil
}

// Replace substitutes text for the n runes at pos and runs the reparse
// pass.
func (s *Session) Replace(pos, n int, text string) (textbuf.Change, error) {
	ch, err := s.buf.Replace(pos, n, text)
	if err != nil {
		return textbuf.Change{}, err
	}
	s.afterEdit(ch)
	return ch, nil
}

// Apply applies a prebuilt edit group as one undo step and runs the
// reparse pass.
func (s *Session) Apply(g textbuf.EditGroup) (textbuf.Change, error) {
	ch, err := s.buf.Apply(g)
	if err != nil {
		return textbuf.Change{}, err
	}
	s.afterEdit(ch)
	return ch, nil
}

// Undo reverts the most recent edit group. It reports ok=false, changing
// nothing, when the undo stack is empty.
func (s *Session) Undo() (textbuf.Change, bool) {
	ch, ok := s.buf.Undo()
	if !ok {
		return textbuf.Change{}, false
	}
	s.afterEdit(ch)
	return ch, true
}

// Redo reapplies the most recently undone group.
func (s *Session) Redo() (textbuf.Change, bool) {
	ch, ok := s.buf.Redo()
	if !ok {
		return textbuf.Change{}, false
	}
	s.afterEdit(ch)
	return ch, true
}

// Find reports the first match at or after from, wrapping to the top of
// the document when wrap is set.
func (s *Session) Find(q search.Query, from int, wrap bool) (search.Match, bool, error) {
	m, err := search.Compile(q)
	if err != nil {
		return search.Match{}, false, err
	}
	match, ok := m.Find(s.buf.Text(), from, wrap)
	return match, ok, nil
}

// FindAll returns every match in document order.
func (s *Session) FindAll(q search.Query) ([]search.Match, error) {
	m, err := search.Compile(q)
	if err != nil {
		return nil, err
	}
	return m.FindAll(s.buf.Text()), nil
}

// ReplaceAll rewrites every match in one undo step and runs the reparse
// pass. It returns the number of replacements.
func (s *Session) ReplaceAll(q search.Query, replacement string) (int, error) {
	m, err := search.Compile(q)
	if err != nil {
		return 0, err
	}
	count, ch, err := m.ReplaceAll(s.buf, replacement)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.afterEdit(ch)
	}
	return count, nil
}

// BackgroundParses delivers finished whole-document passes. The owner
// selects on it and hands each result to Absorb.
func (s *Session) BackgroundParses() <-chan BackgroundParse {
	return s.worker.results
}

// Absorb adopts a background pass. It reports false, changing nothing,
// when the document moved on while the pass was in flight.
func (s *Session) Absorb(p BackgroundParse) bool {
	if p.tree == nil || p.tree.Version != s.buf.Version() {
		return false
	}
	s.adopt(p.tree, 0, p.tree.SourceLen())
	return true
}

// afterEdit runs the reparse pass for an applied change. Small windows
// reparse synchronously; a whole-document window on large text hands off
// to the background worker, leaving the previous tree in place until the
// owner absorbs the result. Any pass in flight is superseded either way.
func (s *Session) afterEdit(ch textbuf.Change) {
	s.worker.stop()
	s.sched.note(ch)
	if !s.sched.dirty() {
		return
	}

	text := s.buf.Text()
	src := []rune(text)
	win := s.sched.window(s.tree, src)

	if win.Whole() && len(src) > s.asyncThreshold {
		s.worker.start(text, s.buf.Version())
		return
	}

	tree, err := s.parser.Reparse(context.Background(), s.tree, win, text, s.buf.Version())
	if err != nil {
		// The window no longer lines up with the tree, which happens when
		// edits accumulated across a deferred background pass. A full
		// parse always recovers.
		tree, err = s.parser.Parse(context.Background(), text, s.buf.Version())
		if err != nil {
			s.logger.Error("reparse failed", "doc_version", s.buf.Version(), "error", err)
			return
		}
		win = mdparse.Window{Start: 0, End: len(src)}
	}
	s.adopt(tree, win.Start, win.End)
}

// adopt installs tree as current, refreshes the render model and the
// mapping, clears the dirty state, and tells listeners what moved.
func (s *Session) adopt(tree *mddoc.Tree, invalStart, invalEnd int) {
	s.tree = tree
	s.sched.reset()
	s.model = preview.BuildModel(tree, s.reg)
	remapped := s.ctrl.Update(tree)

	for _, l := range s.listeners {
		l.TreeReplaced(tree)
		l.SpansInvalidated(invalStart, invalEnd)
		if remapped {
			l.MappingReplaced(s.ctrl.Mapping())
		}
	}
}
