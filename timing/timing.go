// Package timing provides the clock used for event timestamps and call
// durations.
//
// time.Time values returned by Now carry a monotonic reading, so
// differences between them are immune to wall-clock steps. ToUnixNanos
// exposes the wall-clock part for event log rows.
package timing

import (
	"math"
	"sync"
	"time"
)

// NoDelta marks "no previous point" where a delta is expected.
const NoDelta time.Duration = math.MinInt64

// Clock is the source of time points.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process clock.
type SystemClock struct{}

// Now returns the current time with a monotonic reading.
func (SystemClock) Now() time.Time { return time.Now() }

// Now returns the current time from the system clock.
func Now() time.Time { return time.Now() }

// ToUnixNanos converts a time point to nanoseconds since the Unix epoch.
func ToUnixNanos(t time.Time) int64 { return t.UnixNano() }

// ToMillis converts a duration to fractional milliseconds.
func ToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	now time.Time
	mu  sync.Mutex
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the frozen time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
