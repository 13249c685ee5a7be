package eventlog

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// EventLogger consumes events and appends them to a destination.
//
// After EndLog the only valid call is another EndLog.
type EventLogger interface {
	AddEvent(e *Event) error
	StartLog()
	EndLog() error
	Flush() error
}

// CommonLogger writes events in the common log format.
type CommonLogger struct {
	sink *Sink
}

var _ EventLogger = (*CommonLogger)(nil)

// NewCommonLogger writes to sink and takes ownership of it.
func NewCommonLogger(sink *Sink) *CommonLogger {
	return &CommonLogger{sink: sink}
}

// OpenCommonLogger writes to filename, or to stderr when filename is empty
// or cannot be opened.
func OpenCommonLogger(filename string) *CommonLogger {
	return NewCommonLogger(OpenFileSinkOrStderr(filename, Truncate))
}

func (l *CommonLogger) AddEvent(e *Event) error {
	return l.sink.WriteLine(ToCommonLogStr(e))
}

func (l *CommonLogger) StartLog() {}

// EndLog closes the sink unless it is stderr.
func (l *CommonLogger) EndLog() error {
	return l.sink.Close()
}

func (l *CommonLogger) Flush() error {
	return l.sink.Flush()
}

// CSVLogger writes a header row on StartLog and one row of attribute values
// per event.
type CSVLogger struct {
	sink    *Sink
	header  string
	started sync.Once
}

var _ EventLogger = (*CSVLogger)(nil)

// NewCSVLogger writes to sink and takes ownership of it.
func NewCSVLogger(header string, sink *Sink) *CSVLogger {
	return &CSVLogger{header: header, sink: sink}
}

func (l *CSVLogger) AddEvent(e *Event) error {
	l.StartLog()
	return l.sink.WriteLine(ToCSV(e))
}

// StartLog writes the header once.
func (l *CSVLogger) StartLog() {
	l.started.Do(func() {
		if l.header == "" {
			return
		}
		if err := l.sink.WriteLine(l.header); err != nil {
			Logger().Warn("csv header not written", zap.String("sink", l.sink.Name()), zap.Error(err))
		}
	})
}

func (l *CSVLogger) EndLog() error { return l.sink.Close() }
func (l *CSVLogger) Flush() error  { return l.sink.Flush() }

// FilterLogger forwards events at or above a minimum level.
type FilterLogger struct {
	next EventLogger
	min  LogLevel
}

var _ EventLogger = (*FilterLogger)(nil)

// NewFilterLogger wraps next, dropping events below min.
func NewFilterLogger(next EventLogger, min LogLevel) *FilterLogger {
	return &FilterLogger{next: next, min: min}
}

func (l *FilterLogger) AddEvent(e *Event) error {
	if e.Level < l.min {
		return nil
	}
	return l.next.AddEvent(e)
}

func (l *FilterLogger) StartLog()     { l.next.StartLog() }
func (l *FilterLogger) EndLog() error { return l.next.EndLog() }
func (l *FilterLogger) Flush() error  { return l.next.Flush() }

// Broadcast fans events out to several loggers.
//
// Loggers are called in registration order on the caller's goroutine so that
// each destination sees events in the order they were produced. Every
// logger is attempted; failures are combined.
type Broadcast struct {
	loggers []EventLogger
}

var _ EventLogger = (*Broadcast)(nil)

// NewBroadcast creates a fan-out over loggers. Nil loggers are ignored.
func NewBroadcast(loggers ...EventLogger) *Broadcast {
	b := &Broadcast{loggers: make([]EventLogger, 0, len(loggers))}
	for _, l := range loggers {
		if l != nil {
			b.loggers = append(b.loggers, l)
		}
	}
	return b
}

// Len returns the number of loggers.
func (b *Broadcast) Len() int { return len(b.loggers) }

func (b *Broadcast) AddEvent(e *Event) error {
	var err error
	for _, l := range b.loggers {
		err = multierr.Append(err, l.AddEvent(e))
	}
	return err
}

func (b *Broadcast) StartLog() {
	for _, l := range b.loggers {
		l.StartLog()
	}
}

func (b *Broadcast) EndLog() error {
	var err error
	for _, l := range b.loggers {
		err = multierr.Append(err, l.EndLog())
	}
	return err
}

func (b *Broadcast) Flush() error {
	var err error
	for _, l := range b.loggers {
		err = multierr.Append(err, l.Flush())
	}
	return err
}
