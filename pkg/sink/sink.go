// Package sink provides the byte destination rendered graphs are written to.
//
// A [Sink] is either standard output or a newly created (truncated) file.
// Writes are buffered; [Sink.Close] flushes the buffer and, for files, syncs
// and closes them. A nil error from Close means every written byte reached
// the destination. Every failure is reported as SINK_WRITE_FAILURE.
package sink

import (
	"bufio"
	"errors"
	"io"
	"os"
	"syscall"

	errs "github.com/matzehuels/cargodot/pkg/errors"
)

// Stdout is the path that selects standard output, as does "".
const Stdout = "-"

const bufferSize = 64 * 1024

// Sink is a buffered, write-all destination.
type Sink struct {
	name string
	buf  *bufio.Writer
	file *os.File // nil for standard output
	err  error
}

// Open returns a sink for path, creating or truncating the file.
// An empty path or [Stdout] selects standard output.
func Open(path string) (*Sink, error) {
	if path == "" || path == Stdout {
		return New("<stdout>", os.Stdout), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errs.FromIO(errs.ErrCodeSinkWriteFailure, err, "create %s", path)
	}
	s := New(path, f)
	s.file = f
	return s, nil
}

// New wraps an arbitrary writer. Closing the sink flushes but never closes w.
func New(name string, w io.Writer) *Sink {
	return &Sink{name: name, buf: bufio.NewWriterSize(w, bufferSize)}
}

// Name returns the file path, or "<stdout>".
func (s *Sink) Name() string { return s.name }

// Write buffers p. It either accepts all of p or returns an error; after
// the first error every later write fails with the same error.
func (s *Sink) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.buf.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		s.err = errs.FromIO(errs.ErrCodeSinkWriteFailure, err, "write %s", s.name)
		return n, s.err
	}
	return n, nil
}

// Close flushes buffered data, then syncs and closes a file sink.
// Standard output is flushed but left open.
func (s *Sink) Close() error {
	flushErr := s.err
	if flushErr == nil {
		if err := s.buf.Flush(); err != nil {
			flushErr = errs.FromIO(errs.ErrCodeSinkWriteFailure, err, "write %s", s.name)
		}
	}
	if s.file == nil {
		return flushErr
	}

	f := s.file
	s.file = nil
	if flushErr == nil {
		if err := f.Sync(); err != nil && !isUnsyncable(err) {
			flushErr = errs.FromIO(errs.ErrCodeSinkWriteFailure, err, "sync %s", s.name)
		}
	}
	if err := f.Close(); err != nil && flushErr == nil {
		flushErr = errs.FromIO(errs.ErrCodeSinkWriteFailure, err, "close %s", s.name)
	}
	return flushErr
}

// isUnsyncable reports whether Sync failed only because the file is a pipe
// or device that cannot be synced, such as /dev/stdout.
func isUnsyncable(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, errors.ErrUnsupported)
}
