// Package value defines gale's dynamic value representation as seen from
// the native boundary.
//
// Value is a closed tagged union over the primitive runtime types (nil,
// int, flo, char, bool, sym) and the heap-resident reference types (arr,
// str, tab, box, fn, class, iter, obj, coro). The runtime integer is
// 32-bit signed and the runtime float is 32-bit IEEE 754.
//
// # Values
//
//	v := value.IntVal(42)
//	if i, ok := v.Int(); ok { ... }
//
// Heap kinds hold a pointer to the heap object; copying a Value copies
// the handle, not the object. Equality between values is structural for
// primitives and identity for heap objects.
//
// # Callables
//
// Callable is a closed union of the three invocable kinds: native
// functions, script-defined functions, and class constructors. It cannot
// be implemented outside this package. All three share one invocation
// protocol: the evaluator pushes argc arguments onto the environment's
// shared stack, then calls ReceiveCall(env, argc); the callee reads
// exactly that frame, releases it before its body runs, and returns one
// value or an error.
//
// # Environment
//
// Env is the explicit call context threaded through every invocation. It
// owns the shared argument stack and the registry of ambient global
// singletons; there is no process-global state anywhere in the boundary.
package value
