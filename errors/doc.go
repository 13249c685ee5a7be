// Package errors provides structured error types for the performance layers.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the handle and object class involved, a
// detail message and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRegister, errors.KindDuplicate).
//		Object("instance").
//		Handle(0x1234).
//		Detail("dispatch table already registered").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Duplicate(errors.PhaseRegister, "device", handle)
//	err := errors.SinkClosed("event log")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
