// Package eventlog provides the structured events emitted by the
// performance layers and the sinks and loggers that persist them.
//
// # Events
//
// An Event is a name, a level, a timestamp and typed attributes kept in
// declaration order:
//
//	e := eventlog.NewEvent("compile_time", eventlog.LevelHigh, timing.Now(),
//	    eventlog.HashVector("pipeline", hashes),
//	    eventlog.Duration("duration", elapsed))
//
// # Formats
//
//	common log   compile_time,pipeline:"[0x1,0x2]",duration:1200
//	csv row      "[0x1,0x2]",1200
//	event log    compile_time,1700000000000000000,"[0x1,0x2]",1200
//
// # Sinks
//
// A Sink serializes whole lines: each line is written with a single call
// while holding the sink lock, so concurrent writers never produce a partial
// or interleaved line. Sinks own their file unless they borrow stderr.
//
// # Loggers
//
//	CommonLogger  common log format
//	CSVLogger     header row plus attribute values
//	FilterLogger  drops events below a level
//	Broadcast     fan-out to several loggers
//
// The otellog subpackage adds an OpenTelemetry logger.
package eventlog
