package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/inkwellco/inkwell/pkg/fsutil"
	"github.com/inkwellco/inkwell/pkg/highlight"
	"github.com/inkwellco/inkwell/pkg/mdparse"
)

// BatchOptions controls a multi-file export run.
type BatchOptions struct {
	// Paths are the files or directories to export. Empty defaults to
	// the current working directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty uses the process
	// working directory.
	WorkingDir string

	// OutDir receives the rendered files. Empty writes each output
	// next to its source.
	OutDir string

	// ExcludeGlobs skips matching files and directories.
	ExcludeGlobs []string

	// Jobs caps concurrent workers. Zero or negative means one per CPU.
	Jobs int
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o BatchOptions) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// FileOutcome records the result of exporting one file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Output is the written destination, empty when Err is set.
	Output string

	// Err is set when the file could not be exported.
	Err error
}

// BatchStats aggregates a run.
type BatchStats struct {
	FilesDiscovered int
	FilesExported   int
	FilesErrored    int
}

// BatchResult is the outcome of a Runner.Run call. Files are ordered
// deterministically by source path.
type BatchResult struct {
	Files []FileOutcome
	Stats BatchStats
}

// Runner exports many files concurrently through a worker pool. Each
// worker parses its file once and renders through a shared Exporter;
// exporters are stateless after construction, so one instance serves
// all workers.
type Runner struct {
	exporter Exporter
	opts     Options
	registry *highlight.Registry
	parser   *mdparse.Parser
	logger   *log.Logger
}

// NewRunner creates a batch export runner. reg resolves code-fence
// languages for formats that style code; nil leaves code plain.
func NewRunner(opts Options, reg *highlight.Registry, logger *log.Logger) (*Runner, error) {
	exporter, err := New(opts)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		exporter: exporter,
		opts:     opts,
		registry: reg,
		parser:   mdparse.New(),
		logger:   logger,
	}, nil
}

// Run discovers files under batch.Paths and exports them concurrently.
func (r *Runner) Run(ctx context.Context, batch BatchOptions) (*BatchResult, error) {
	files, err := Discover(ctx, batch)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	if batch.OutDir != "" {
		if err := os.MkdirAll(batch.OutDir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	jobs := batch.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, batch.OutDir)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; collect by path and rebuild in
	// discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.Files = append(result.Files, outcome)
			if outcome.Err != nil {
				result.Stats.FilesErrored++
			} else {
				result.Stats.FilesExported++
			}
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("export run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, outDir string) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.exportOne(ctx, path, outDir)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) exportOne(ctx context.Context, path, outDir string) FileOutcome {
	outcome := FileOutcome{Path: path}

	text, _, err := fsutil.Load(ctx, path)
	if err != nil {
		outcome.Err = fmt.Errorf("load %s: %w", path, err)
		return outcome
	}

	tree, err := r.parser.Parse(ctx, text, 0)
	if err != nil {
		outcome.Err = fmt.Errorf("parse %s: %w", path, err)
		return outcome
	}

	doc := NewDocument(path, text, tree, r.registry)

	var buf bytes.Buffer
	if err := r.exporter.Export(ctx, doc, &buf); err != nil {
		outcome.Err = fmt.Errorf("render %s: %w", path, err)
		return outcome
	}

	outPath := OutputPath(path, outDir, r.opts.Format)
	if err := fsutil.WriteAtomic(ctx, outPath, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
		outcome.Err = fmt.Errorf("write %s: %w", outPath, err)
		return outcome
	}

	outcome.Output = outPath
	r.logger.Debug("exported file", "path", path, "output", outPath)
	return outcome
}
