// Package wrap turns plain Go functions into callables the runtime can
// invoke, and invokes runtime callables from Go.
//
// # Wrapping
//
// Fn analyzes a function's signature once and produces a native
// callable:
//
//	add := wrap.MustFn("add", func(a, b int32) int32 { return a + b })
//
// Parameters are staged through the marshal package's conversion
// protocol. Beyond plain convertible types, a parameter may be:
//
//   - marshal.Opt[T]: an omissible argument; missing or nil arrives empty
//   - wrap.Rest[T] or a Go variadic tail: collects all remaining arguments
//   - wrap.Ref[T] / wrap.Mut[T]: a shared or exclusive borrow of a boxed
//     T, held for the duration of the call
//   - wrap.Global[T] / wrap.GlobalMut[T]: a borrow of the ambient global
//     of type T registered on the Env; consumes no argument slot
//   - a leading *value.Env: the call context itself
//
// Illegal orderings fail at construction with a bad_signature error: a
// required parameter may not follow an optional one, and nothing but
// ambient parameters may follow a rest parameter.
//
// Results may be (), (T), (error) or (T, error). A returned *errors.Error
// crosses the boundary verbatim; any other error is wrapped as foreign.
//
// # Invocation protocol
//
// A wrapped function receives its argument frame from the Env's shared
// stack, copies it, and ends the frame before any conversion or the
// body runs. Conversions registered by embedders may therefore call
// back into the runtime, as may the body itself.
//
// # Calling out
//
// Call and CallAs drive the same protocol from the host side:
//
//	n, err := wrap.CallAs[int32](env, f, 1, 2, wrap.Rest[int32]{3, 4})
//
// A Rest argument splices its elements into the frame.
package wrap
