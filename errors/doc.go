// Package errors provides structured error types for memstream.
//
// Errors are categorized by Phase (which stream operation failed) and Kind
// (error category). Every failure in the stream engine is returned to the
// immediate caller as an *Error; nothing is logged and swallowed.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSeek, errors.KindInvalidSeek).
//		Stream("fixed").
//		Value(offset).
//		Detail("offset %d past capacity %d", offset, capacity).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotWritable("fixed")
//	err := errors.OutOfMemory(errors.PhaseGrow, "growable", 402, cause)
//
// Match by kind with the sentinels, regardless of phase:
//
//	if errors.Is(err, memerrors.ErrInvalidSeek) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
