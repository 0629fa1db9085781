// Package gale provides the embedding boundary of the gale scripting
// runtime: marshalling between native Go values and the runtime's
// dynamic values, and wrapping Go functions as runtime callables.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	gale/            Root package documentation
//	├── value/       Dynamic value representation, heap types, callables, Env
//	├── marshal/     Bidirectional Go <-> dynamic value conversion
//	├── wrap/        Wrapping Go functions as callables, host-side calling
//	├── native/      Boxed native data and the ambient global registry
//	└── errors/      Structured error types for the whole boundary
//
// # Quick Start
//
// Wrap a Go function and call it:
//
//	env := value.NewEnv()
//
//	sum := wrap.MustFn("sum", func(first int32, rest ...int32) int32 {
//	    for _, n := range rest {
//	        first += n
//	    }
//	    return first
//	})
//
//	result, err := wrap.CallAs[int32](env, sum, 1, 2, 3)
//	fmt.Println(result, err) // 6 <nil>
//
// # Conversion Rules
//
// Every Go value converts into a dynamic value: primitives and
// containers by structure, already-dynamic values by identity, and
// anything else as an opaque box. The runtime's int is 32 bits, so
// wider Go integers are range-checked; float64 deliberately truncates
// to the runtime's 32-bit float. The reverse direction is strict and
// fails with errors naming both the expected Go type and the received
// dynamic type.
//
// # Thread Safety
//
// The call model is single-threaded and re-entrant. An Env and the
// values flowing through it must stay on one goroutine; aliasing of
// boxed native data is policed at runtime by the borrow discipline
// rather than by locks.
package gale
