// Package otellog exports layer events to OpenTelemetry.
//
// Each event becomes a zero-length span named after the event, carrying the
// event's attributes and a session id. Events are also counted per name, and
// duration attributes feed a millisecond histogram:
//
//	l, err := otellog.New(otellog.Options{TracerProvider: tp, MeterProvider: mp})
//	data, err := layer.New(layer.Options{EventLoggers: []eventlog.EventLogger{l}})
package otellog

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"github.com/wippyai/vk-perflayers/errors"
	"github.com/wippyai/vk-perflayers/eventlog"
	"github.com/wippyai/vk-perflayers/shaderhash"
	"github.com/wippyai/vk-perflayers/timing"
)

const (
	instrumentationName = "github.com/wippyai/vk-perflayers"

	EventsCounterName     = "perflayers.events"
	DurationHistogramName = "perflayers.event.duration_ms"

	SessionAttr = "perflayers.session_id"
	EventAttr   = "perflayers.event"
	FieldAttr   = "perflayers.field"
)

// Options configures the logger. Nil providers select the global ones.
type Options struct {
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	// SessionID tags every span. A random UUID is used when empty.
	SessionID string
}

// Logger is an eventlog.EventLogger backed by OpenTelemetry.
type Logger struct {
	tracer    trace.Tracer
	tp        trace.TracerProvider
	mp        metric.MeterProvider
	events    metric.Int64Counter
	durations metric.Float64Histogram
	session   string
	ended     atomic.Bool
}

var _ eventlog.EventLogger = (*Logger)(nil)

// New creates a logger and its instruments.
func New(opts Options) (*Logger, error) {
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := opts.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	session := opts.SessionID
	if session == "" {
		session = uuid.NewString()
	}

	meter := mp.Meter(instrumentationName)
	events, err := meter.Int64Counter(EventsCounterName,
		metric.WithDescription("Events emitted by the performance layers"))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSink, errors.KindRegistration, err, "create events counter")
	}
	durations, err := meter.Float64Histogram(DurationHistogramName,
		metric.WithDescription("Duration attributes of layer events"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSink, errors.KindRegistration, err, "create duration histogram")
	}

	return &Logger{
		tracer:    tp.Tracer(instrumentationName),
		tp:        tp,
		mp:        mp,
		events:    events,
		durations: durations,
		session:   session,
	}, nil
}

// SessionID returns the id attached to every span.
func (l *Logger) SessionID() string { return l.session }

// AddEvent records e as a span and updates the metrics.
func (l *Logger) AddEvent(e *eventlog.Event) error {
	if l.ended.Load() {
		return errors.SinkClosed("otel")
	}
	ctx := context.Background()

	attrs := make([]attribute.KeyValue, 0, len(e.Attributes)+2)
	attrs = append(attrs,
		attribute.String(SessionAttr, l.session),
		attribute.String("perflayers.level", e.Level.String()))
	for _, a := range e.Attributes {
		attrs = append(attrs, toKeyValue(a))
	}

	_, span := l.tracer.Start(ctx, e.Name,
		trace.WithTimestamp(e.Timestamp),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal))
	span.End(trace.WithTimestamp(e.Timestamp))

	name := attribute.String(EventAttr, e.Name)
	l.events.Add(ctx, 1, metric.WithAttributes(name))
	for _, a := range e.Attributes {
		if d, ok := a.(eventlog.DurationAttr); ok {
			l.durations.Record(ctx, timing.ToMillis(d.Value),
				metric.WithAttributes(name, attribute.String(FieldAttr, d.Key)))
		}
	}
	return nil
}

func (l *Logger) StartLog() {}

// EndLog flushes pending telemetry and rejects further events. The
// providers are left running; their owner shuts them down.
func (l *Logger) EndLog() error {
	if l.ended.Swap(true) {
		return nil
	}
	return l.forceFlush()
}

// Flush forces providers that batch to export.
func (l *Logger) Flush() error {
	if l.ended.Load() {
		return errors.SinkClosed("otel")
	}
	return l.forceFlush()
}

type flusher interface {
	ForceFlush(ctx context.Context) error
}

func (l *Logger) forceFlush() error {
	ctx := context.Background()
	var err error
	if f, ok := l.tp.(flusher); ok {
		err = multierr.Append(err, f.ForceFlush(ctx))
	}
	if f, ok := l.mp.(flusher); ok {
		err = multierr.Append(err, f.ForceFlush(ctx))
	}
	return err
}

func toKeyValue(a eventlog.Attribute) attribute.KeyValue {
	switch v := a.(type) {
	case eventlog.Int64Attr:
		return attribute.Int64(v.Key, v.Value)
	case eventlog.StringAttr:
		return attribute.String(v.Key, v.Value)
	case eventlog.BoolAttr:
		return attribute.Bool(v.Key, v.Value)
	case eventlog.DurationAttr:
		return attribute.Int64(v.Key, int64(v.Value))
	case eventlog.TimestampAttr:
		return attribute.Int64(v.Key, timing.ToUnixNanos(v.Value))
	case eventlog.HashAttr:
		return attribute.String(v.Key, shaderhash.ToString(v.Value))
	case eventlog.HashVectorAttr:
		hashes := make([]string, len(v.Value))
		for i, h := range v.Value {
			hashes[i] = shaderhash.ToString(h)
		}
		return attribute.StringSlice(v.Key, hashes)
	case eventlog.Int64VectorAttr:
		return attribute.Int64Slice(v.Key, v.Value)
	default:
		return attribute.String(a.Name(), a.String())
	}
}
