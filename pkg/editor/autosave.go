package editor

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/inkwellco/inkwell/pkg/fsutil"
	"github.com/inkwellco/inkwell/pkg/textbuf"
)

// DefaultAutosaveInterval is the timer period when the config leaves it
// unset.
const DefaultAutosaveInterval = 30 * time.Second

// Snapshotter is the read side the autosaver needs: an atomically
// published immutable revision. Both *Session and *textbuf.Buffer satisfy
// it.
type Snapshotter interface {
	Snapshot() textbuf.Revision
}

// Autosaver periodically writes the latest published revision to path.
// Each pass is stateless: it snapshots, then writes through
// fsutil.WriteAtomicIfChanged, which skips the write when the file already
// holds the same bytes. It shares nothing with the edit path beyond the
// snapshot, so it never blocks edits.
type Autosaver struct {
	src      Snapshotter
	path     string
	interval time.Duration
	logger   *log.Logger

	stop chan struct{}
	done chan struct{}
}

// NewAutosaver builds an autosaver writing src to path every interval.
// An interval of 0 or less means DefaultAutosaveInterval; a nil logger
// discards logs. Call Start to begin the timer.
func NewAutosaver(src Snapshotter, path string, interval time.Duration, logger *log.Logger) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Autosaver{src: src, path: path, interval: interval, logger: logger}
}

// Start launches the timer goroutine. Starting a running autosaver is a
// no-op.
func (a *Autosaver) Start() {
	if a.stop != nil {
		return
	}
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	go a.run(a.stop, a.done)
}

// Stop halts the timer, waiting for a write in progress to finish.
// Stopping a stopped autosaver is a no-op.
func (a *Autosaver) Stop() {
	if a.stop == nil {
		return
	}
	close(a.stop)
	<-a.done
	a.stop = nil
	a.done = nil
}

// SaveNow runs one pass immediately, independent of the timer. Callers use
// it to flush on close.
func (a *Autosaver) SaveNow(ctx context.Context) error {
	return a.save(ctx)
}

func (a *Autosaver) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := a.save(context.Background()); err != nil {
				a.logger.Error("autosave failed", "path", a.path, "error", err)
			}
		case <-stop:
			return
		}
	}
}

func (a *Autosaver) save(ctx context.Context) error {
	rev := a.src.Snapshot()
	written, err := fsutil.WriteAtomicIfChanged(ctx, a.path, []byte(rev.Text), fsutil.DefaultFileMode)
	if err != nil {
		return err
	}
	if written {
		a.logger.Debug("autosave written",
			"path", a.path, "doc_version", rev.Version, "bytes", len(rev.Text))
	}
	return nil
}
