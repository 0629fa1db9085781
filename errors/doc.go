// Package errors provides structured error types for the gale native boundary.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: element path, native/dynamic type names, and
// a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseFromValue, errors.KindTypeMismatch).
//		Path("arg[2]").
//		GoType("int8").
//		ValType("a str").
//		Detail("cannot convert a str to an integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseFromValue, "int8", "a str")
//	err := errors.TooFewArgs(0, 1)
//
// All errors implement the standard error interface and support errors.Is/As.
// An *Error produced anywhere in the boundary is never re-wrapped by another
// layer of the boundary, so error identity is preserved end to end.
package errors
