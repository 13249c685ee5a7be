// Package layer holds the state shared by the intercepted entry points of a
// performance layer.
//
// A LayerData is created once when the layer loads and is captured by every
// entry point. It tracks the next layer's dispatch table for each instance
// and device, resolves physical devices to their owning instance, remembers
// the content hash of every live shader module and pipeline, and writes the
// layer's log lines.
//
// # Create and destroy
//
// CreateInstance and CreateDevice find the loader's link record in the
// create info chain, step the link past this layer, call the next layer and
// register a dispatch table built from the next layer's resolver. Destroy
// calls drop the registry entries before forwarding.
//
// # Logging
//
// Two sinks are supported. The primary log receives caller-formatted lines
// after an optional header. The event log, enabled by setting
// VK_PERFORMANCE_LAYERS_EVENT_LOG_FILE, receives rows of the form
//
//	eventType,unixNanos[,payload]
//
// and is opened for append so that several layers can share one file.
// Every line is written in a single call and flushed immediately.
//
// Structured events go through LogEvent to the configured
// eventlog.EventLogger values.
package layer
