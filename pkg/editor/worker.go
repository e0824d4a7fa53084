package editor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/inkwellco/inkwell/pkg/mddoc"
	"github.com/inkwellco/inkwell/pkg/mdparse"
)

// ErrReparseCancelled marks a background pass superseded by a newer edit.
// Results carrying it are dropped, never merged. It wraps context.Canceled
// so either sentinel satisfies errors.Is.
var ErrReparseCancelled = fmt.Errorf("reparse cancelled: %w", context.Canceled)

// BackgroundParse carries a finished whole-document pass back to the owner
// goroutine. Hand it to Session.Absorb.
type BackgroundParse struct {
	tree *mddoc.Tree
}

// reparseWorker runs whole-document parses off the owner goroutine. start
// and stop are owner-only calls; the parse goroutine communicates with the
// owner exclusively through the unbuffered results channel, so a finished
// pass parks on the send until the owner drains it or a newer edit cancels
// the pass.
type reparseWorker struct {
	parser  *mdparse.Parser
	logger  *log.Logger
	results chan BackgroundParse
	cancel  context.CancelFunc
}

func newReparseWorker(parser *mdparse.Parser, logger *log.Logger) *reparseWorker {
	return &reparseWorker{
		parser:  parser,
		logger:  logger,
		results: make(chan BackgroundParse),
	}
}

// start launches a parse of text at version, cancelling any pass still in
// flight.
func (w *reparseWorker) start(text string, version uint64) {
	w.stop()
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go func() {
		tree, err := w.parser.Parse(ctx, text, version)
		if err != nil {
			if ctx.Err() != nil {
				err = ErrReparseCancelled
			}
			w.logger.Debug("background parse dropped", "doc_version", version, "error", err)
			return
		}
		select {
		case w.results <- BackgroundParse{tree: tree}:
		case <-ctx.Done():
			w.logger.Debug("background parse dropped", "doc_version", version, "error", ErrReparseCancelled)
		}
	}()
}

// stop cancels the pass in flight, if any.
func (w *reparseWorker) stop() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}
