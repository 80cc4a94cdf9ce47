// Package tracefile implements TraceFile: an append-only JSON array writer
// supporting two emission modes — a single growing aggregate file, or
// indexed rotation where every flush writes its own numbered file.
package tracefile

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/modelserving/tracing/metric"
)

// TraceFile is shared by weak reference in a TraceManager's file cache and
// by strong reference in every TraceSetting that resolved the same path.
// It is safe for concurrent use: SaveTraces may be called from many
// TraceSetting flushes concurrently.
type TraceFile struct {
	path string

	// index is the monotonically increasing indexed-file counter, local
	// to this TraceFile instance — a new TraceFile starts back at 0.
	index atomic.Uint64

	mu      sync.Mutex
	aggFile *os.File

	logger   Logger
	recorder *metric.Recorder
}

// Option configures a TraceFile at construction.
type Option func(*TraceFile)

// WithLogger sets the logger used to report I/O failures.
func WithLogger(logger Logger) Option {
	return func(f *TraceFile) {
		f.logger = logger
	}
}

// WithRecorder sets the self-observability recorder used to report bytes
// written. A nil recorder (the default) is a no-op.
func WithRecorder(recorder *metric.Recorder) Option {
	return func(f *TraceFile) {
		f.recorder = recorder
	}
}

// New creates a TraceFile for path. No file is opened until the first
// SaveTraces call.
func New(path string, opts ...Option) *TraceFile {
	f := &TraceFile{
		path:   path,
		logger: &noopLogger{},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Path returns the filepath this TraceFile was created for.
func (f *TraceFile) Path() string {
	return f.path
}

// SaveTraces writes stream, a fragment of concatenated JSON objects, to
// disk. When toIndexFile is true, it allocates the next index for this
// instance and writes a standalone file `<path>.<n>` containing
// `[stream]`. When false, it appends to a single growing aggregate file
// at `<path>`, opening it and emitting the leading `[` on the first call,
// and a leading `,` before every call after that.
//
// Writes are best-effort: any I/O failure is logged and swallowed so a
// broken disk never disturbs the caller.
func (f *TraceFile) SaveTraces(ctx context.Context, stream string, toIndexFile bool) {
	if toIndexFile {
		f.saveIndexed(ctx, stream)
		return
	}
	f.saveAggregate(ctx, stream)
}

func (f *TraceFile) saveIndexed(ctx context.Context, stream string) {
	n := f.index.Add(1) - 1
	path := fmt.Sprintf("%s.%d", f.path, n)

	fh, err := os.Create(path)
	if err != nil {
		f.logger.Error(fmt.Sprintf("tracefile: failed to create indexed file %s: %v", path, err))
		return
	}
	defer fh.Close()

	written, err := fmt.Fprintf(fh, "[%s]", stream)
	if err != nil {
		f.logger.Error(fmt.Sprintf("tracefile: failed to write indexed file %s: %v", path, err))
		return
	}

	f.recorder.RecordFileWrite(ctx, path, written)
}

func (f *TraceFile) saveAggregate(ctx context.Context, stream string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		written int
		err     error
	)

	if f.aggFile == nil {
		fh, openErr := os.Create(f.path)
		if openErr != nil {
			f.logger.Error(fmt.Sprintf("tracefile: failed to create aggregate file %s: %v", f.path, openErr))
			return
		}
		f.aggFile = fh
		written, err = fmt.Fprintf(f.aggFile, "[%s", stream)
	} else {
		written, err = fmt.Fprintf(f.aggFile, ",%s", stream)
	}

	if err != nil {
		f.logger.Error(fmt.Sprintf("tracefile: failed to write aggregate file %s: %v", f.path, err))
		return
	}

	f.recorder.RecordFileWrite(ctx, f.path, written)
}

// Close is the destructor-equivalent: if the aggregate file was opened
// (meaning at least one aggregate write occurred), it emits the trailing
// `]` and closes the handle. Indexed-mode writes are already self-closed
// and need no action here.
func (f *TraceFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.aggFile == nil {
		return nil
	}

	_, err := f.aggFile.WriteString("]")
	closeErr := f.aggFile.Close()
	f.aggFile = nil

	if err != nil {
		f.logger.Error(fmt.Sprintf("tracefile: failed to close aggregate file %s: %v", f.path, err))
		return err
	}
	return closeErr
}
