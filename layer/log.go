package layer

import (
	"time"

	"go.uber.org/multierr"

	"github.com/wippyai/vk-perflayers/eventlog"
	"github.com/wippyai/vk-perflayers/internal/csvline"
	"github.com/wippyai/vk-perflayers/shaderhash"
	"github.com/wippyai/vk-perflayers/timing"
)

// eventPrefix returns the "eventType,unixNanos" head of an event log row.
func eventPrefix(eventType string, ts time.Time) string {
	return csvline.Cat(eventType, timing.ToUnixNanos(ts))
}

// LogLine writes line to the primary log and, when an event log is open,
// writes "eventType,unixNanos,line" to it. Each line is flushed as soon as
// it is written.
func (d *LayerData) LogLine(eventType, line string, ts time.Time) error {
	err := d.out.WriteLine(line)
	if d.eventLog != nil {
		err = multierr.Append(err, d.eventLog.WriteLine(csvline.Cat(eventPrefix(eventType, ts), line)))
	}
	return err
}

// Log writes a pipeline's hashes followed by prefix. The hash list is
// quoted so it stays a single CSV cell.
func (d *LayerData) Log(eventType string, hashes shaderhash.HashVector, prefix string) error {
	line := csvline.Cat(csvline.Quote(shaderhash.VectorToString(hashes)), prefix)
	return d.LogLine(eventType, line, d.clock.Now())
}

// LogEventOnly writes to the event log only. Without an event log it does
// nothing.
func (d *LayerData) LogEventOnly(eventType, extra string) error {
	if d.eventLog == nil {
		return nil
	}
	line := eventPrefix(eventType, d.clock.Now())
	if extra != "" {
		line = csvline.Cat(line, extra)
	}
	return d.eventLog.WriteLine(line)
}

// LogEvent passes e to every configured event logger.
func (d *LayerData) LogEvent(e *eventlog.Event) error {
	return d.events.AddEvent(e)
}

// Now reads the layer clock.
func (d *LayerData) Now() time.Time { return d.clock.Now() }

// GetTimeDelta returns the time elapsed since the previous call. The first
// call returns timing.NoDelta.
func (d *LayerData) GetTimeDelta() time.Duration {
	d.timeMu.Lock()
	defer d.timeMu.Unlock()

	now := d.clock.Now()
	delta := timing.NoDelta
	if d.hasLogTime {
		delta = now.Sub(d.lastLogTime)
	}
	d.lastLogTime = now
	d.hasLogTime = true
	return delta
}
