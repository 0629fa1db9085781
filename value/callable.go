package value

import (
	"github.com/gale-lang/gale/errors"
)

// NoMax marks an unbounded maximum argument count.
const NoMax = -1

// Callable is the closed union of gale's invocable kinds: native
// functions, script-defined functions, and class constructors. It is
// sealed; no type outside this package can implement it.
//
// Invocation protocol: the evaluator pushes argc arguments onto env's
// shared stack, then calls ReceiveCall(env, argc). The callee reads
// exactly that frame, ends it before its body runs, and returns one
// value or an error.
type Callable interface {
	ReceiveCall(env *Env, argc int) (Value, error)
	Name() (Sym, bool)
	// ArgLimits returns the minimum and maximum legal argument counts;
	// max is NoMax when a rest parameter makes the count unbounded.
	ArgLimits() (min, max int)

	sealedCallable()
}

// Invoker is the entry point a wrapped native function exposes to the
// boundary. Invoke receives the live argument frame; it must end the
// frame (env.EndFrame) after staging and before the native body runs, on
// error paths included.
type Invoker interface {
	ArgLimits() (min, max int)
	Invoke(env *Env, args []Value) (Value, error)
}

// NativeFn is a wrapped native function bound into the runtime.
type NativeFn struct {
	inv     Invoker
	name    Sym
	hasName bool
}

// NewNativeFn boxes an invoker as a callable, with an optional display
// name (empty name means anonymous).
func NewNativeFn(name Sym, inv Invoker) *NativeFn {
	return &NativeFn{inv: inv, name: name, hasName: name != ""}
}

func (f *NativeFn) ReceiveCall(env *Env, argc int) (Value, error) {
	return f.inv.Invoke(env, env.Frame(argc))
}

func (f *NativeFn) Name() (Sym, bool) {
	return f.name, f.hasName
}

func (f *NativeFn) ArgLimits() (min, max int) {
	return f.inv.ArgLimits()
}

func (f *NativeFn) sealedCallable() {}

// ScriptFn is a function defined in script code. The evaluator supplies
// its body; the boundary only checks arity and manages the frame.
type ScriptFn struct {
	fn      func(env *Env, args []Value) (Value, error)
	name    Sym
	min     int
	max     int
	hasName bool
}

func NewScriptFn(name Sym, min, max int, fn func(env *Env, args []Value) (Value, error)) *ScriptFn {
	return &ScriptFn{fn: fn, name: name, min: min, max: max, hasName: name != ""}
}

func (f *ScriptFn) ReceiveCall(env *Env, argc int) (Value, error) {
	args := env.Frame(argc)
	if argc < f.min {
		env.EndFrame(argc)
		return Nil, errors.TooFewArgs(argc, f.min)
	}
	if f.max != NoMax && argc > f.max {
		env.EndFrame(argc)
		return Nil, errors.TooManyArgs(argc, f.max)
	}

	// The body may push nested frames, so it must never alias the shared
	// stack region it was called with.
	own := make([]Value, argc)
	copy(own, args)
	env.EndFrame(argc)

	return f.fn(env, own)
}

func (f *ScriptFn) Name() (Sym, bool) {
	return f.name, f.hasName
}

func (f *ScriptFn) ArgLimits() (min, max int) {
	return f.min, f.max
}

func (f *ScriptFn) sealedCallable() {}

// Class is a user-level class; calling it invokes its constructor and
// yields an Obj.
type Class struct {
	ctor    func(env *Env, args []Value) (*Obj, error)
	name    Sym
	min     int
	max     int
	hasName bool
}

func NewClass(name Sym, min, max int, ctor func(env *Env, args []Value) (*Obj, error)) *Class {
	return &Class{ctor: ctor, name: name, min: min, max: max, hasName: name != ""}
}

func (c *Class) ReceiveCall(env *Env, argc int) (Value, error) {
	args := env.Frame(argc)
	if argc < c.min {
		env.EndFrame(argc)
		return Nil, errors.TooFewArgs(argc, c.min)
	}
	if c.max != NoMax && argc > c.max {
		env.EndFrame(argc)
		return Nil, errors.TooManyArgs(argc, c.max)
	}

	own := make([]Value, argc)
	copy(own, args)
	env.EndFrame(argc)

	obj, err := c.ctor(env, own)
	if err != nil {
		return Nil, err
	}
	return ObjVal(obj), nil
}

func (c *Class) Name() (Sym, bool) {
	return c.name, c.hasName
}

func (c *Class) ArgLimits() (min, max int) {
	return c.min, c.max
}

func (c *Class) sealedCallable() {}
