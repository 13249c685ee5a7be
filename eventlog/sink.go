package eventlog

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/vk-perflayers/errors"
	"github.com/wippyai/vk-perflayers/internal/csvline"
)

// OpenMode selects how a file sink treats existing content.
type OpenMode uint8

const (
	// Truncate starts a fresh log.
	Truncate OpenMode = iota
	// Append adds to an existing log shared with other layers or runs.
	Append
)

// Sink is a line-oriented log destination.
//
// Every line is assembled in memory and handed to the writer in a single
// Write call under the sink lock, so concurrent writers never interleave
// within a line. Files opened in Append mode also get O_APPEND, which keeps
// lines whole when several sinks in one or more processes share a file.
//
// A sink either owns its file, closing it on Close, or borrows a writer
// such as stderr, which is never closed.
type Sink struct {
	w      io.Writer
	file   *os.File // non-nil when owned
	name   string
	mu     sync.Mutex
	closed bool
}

// NewStderrSink returns a sink borrowing the process's standard error.
func NewStderrSink() *Sink {
	return &Sink{name: "stderr", w: os.Stderr}
}

// NewWriterSink returns a sink borrowing w. Close flushes but does not
// close w.
func NewWriterSink(name string, w io.Writer) *Sink {
	return &Sink{name: name, w: w}
}

// OpenFileSink opens path and returns a sink that owns the file.
func OpenFileSink(path string, mode OpenMode) (*Sink, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if mode == Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, errors.SinkIO(path, "open", err)
	}
	return &Sink{name: path, w: f, file: f}, nil
}

// OpenFileSinkOrStderr opens path, falling back to stderr when path is
// empty or cannot be opened. The fallback is reported through Logger.
func OpenFileSinkOrStderr(path string, mode OpenMode) *Sink {
	if path == "" {
		return NewStderrSink()
	}
	s, err := OpenFileSink(path, mode)
	if err != nil {
		Logger().Error("failed to open log file, output will be to stderr",
			zap.String("path", path),
			zap.Error(err))
		return NewStderrSink()
	}
	return s
}

// Name returns the file path, or a label for borrowed writers.
func (s *Sink) Name() string { return s.name }

// IsStderr reports whether the sink writes to the process's stderr.
func (s *Sink) IsStderr() bool { return s.w == os.Stderr }

// Owned reports whether Close releases the underlying file.
func (s *Sink) Owned() bool { return s.file != nil }

// WriteLine writes line followed by a newline as one write.
func (s *Sink) WriteLine(line string) error {
	buf := csvline.Line(line)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.SinkClosed(s.name)
	}
	if _, err := s.w.Write(buf); err != nil {
		return errors.SinkIO(s.name, "write", err)
	}
	return s.flushLocked()
}

// Flush forces buffered output out. Owned files are synced to storage.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.SinkClosed(s.name)
	}
	if err := s.flushLocked(); err != nil {
		return err
	}
	if s.file != nil {
		if err := s.file.Sync(); err != nil {
			return errors.SinkIO(s.name, "sync", err)
		}
	}
	return nil
}

// flushLocked pushes out writers that buffer in user space.
func (s *Sink) flushLocked() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return errors.SinkIO(s.name, "flush", err)
		}
	}
	return nil
}

// Close releases the sink. Borrowed writers are flushed but left open.
// Closing twice is a no-op.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.flushLocked(); err != nil {
		if s.file != nil {
			s.file.Close()
		}
		return err
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			return errors.SinkIO(s.name, "close", err)
		}
	}
	return nil
}
