// Package errors provides structured error types for the aout module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the header field path, the byte offset in the input,
// and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
//		Field("a_text").
//		Offset(8).
//		Detail("need 4 bytes, have 2").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BadMagic(got)
//	err := errors.Truncated(errors.PhaseDecode, "a_syms", 28, 4, 30)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
